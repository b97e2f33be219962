package platform

import (
	"fmt"
	"strings"
	"time"
)

// ListOptions controls which windows are treated as scan targets.
type ListOptions struct {
	Owner     string // Substring of the window owner (process) name
	MinWidth  int    // Windows must be strictly wider than this
	MinHeight int    // Windows must be strictly taller than this
}

// CaptureBackend selects how window pixels are obtained.
type CaptureBackend string

const (
	// BackendCommand runs the platform's screenshot utility for one window id.
	BackendCommand CaptureBackend = "command"
	// BackendRect grabs the window's screen rectangle directly.
	BackendRect CaptureBackend = "rect"
)

// ParseCaptureBackend converts a config or flag value to CaptureBackend.
func ParseCaptureBackend(s string) (CaptureBackend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "command":
		return BackendCommand, nil
	case "rect":
		return BackendRect, nil
	default:
		return BackendCommand, fmt.Errorf("unknown capture backend: %q (expected command or rect)", s)
	}
}

// CaptureOptions configures the capturer built by a platform provider.
type CaptureOptions struct {
	Backend CaptureBackend
	Timeout time.Duration // Bound on the screenshot utility (command backend)
	TempDir string        // Directory for temporary capture files ("" = os.TempDir)
}
