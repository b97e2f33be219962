package model

// Window represents an on-screen window as reported by the OS window registry.
type Window struct {
	Owner  string `yaml:"owner"           json:"owner"`
	PID    int    `yaml:"pid"             json:"pid"`
	ID     int    `yaml:"id"              json:"id"`
	Title  string `yaml:"title,omitempty" json:"title,omitempty"`
	Bounds [4]int `yaml:"bounds,flow"     json:"bounds"`
	Layer  int    `yaml:"layer"           json:"layer"`
}

// Width returns the window width in screen points.
func (w Window) Width() int { return w.Bounds[2] }

// Height returns the window height in screen points.
func (w Window) Height() int { return w.Bounds[3] }
