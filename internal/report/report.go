// Package report renders scan progress and results for the operator.
package report

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/mj1618/window-qr/internal/model"
	"github.com/mj1618/window-qr/internal/scan"
)

// WindowReport records what happened to one target window.
type WindowReport struct {
	Index         int           `yaml:"index"                    json:"index"`
	Window        model.Window  `yaml:"window"                   json:"window"`
	Captured      bool          `yaml:"captured"                 json:"captured"`
	ImageSize     [2]int        `yaml:"image_size,flow"          json:"image_size"`
	SavedPath     string        `yaml:"saved_path,omitempty"     json:"saved_path,omitempty"`
	AnnotatedPath string        `yaml:"annotated_path,omitempty" json:"annotated_path,omitempty"`
	Results       []scan.Result `yaml:"results,omitempty"        json:"results,omitempty"`
}

// Summary is the outcome of one full run.
type Summary struct {
	RunID   string         `yaml:"run_id"  json:"run_id"`
	Owner   string         `yaml:"owner"   json:"owner"`
	Windows []WindowReport `yaml:"windows" json:"windows"`
	Found   bool           `yaml:"found"   json:"found"`
}

// ImageReport records the scan of one image file.
type ImageReport struct {
	Path      string        `yaml:"path"                json:"path"`
	ImageSize [2]int        `yaml:"image_size,flow"     json:"image_size"`
	Error     string        `yaml:"error,omitempty"     json:"error,omitempty"`
	Results   []scan.Result `yaml:"results,omitempty"   json:"results,omitempty"`
}

var rule = strings.Repeat("=", 70)

// Printer writes the human-readable console report.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w. Use io.Discard to silence it.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// Start prints the run banner.
func (p *Printer) Start(owner string) {
	p.printf("%s\nScanning all %s windows for QR codes\n%s\n", rule, owner, rule)
}

// WindowsFound prints the number of target windows.
func (p *Printer) WindowsFound(owner string, n int) {
	p.printf("\nFound %d %s windows:\n", n, owner)
}

// Window prints the header for the window at 1-based position index.
func (p *Printer) Window(index int, w model.Window) {
	p.printf("\n[%d] %s\n", index, w.Owner)
	p.printf("    Size: %dx%d, ID: %d, Layer: %d\n", w.Width(), w.Height(), w.ID, w.Layer)
	p.printf("    Capturing...\n")
}

// Image prints the header for the image file at 1-based position index.
func (p *Printer) Image(index int, path string) {
	p.printf("\n[%d] %s\n", index, path)
}

// OpenFailed reports an image file that could not be read.
func (p *Printer) OpenFailed(err error) {
	p.printf("    Open failed: %v\n", err)
}

// CaptureFailed reports a window that could not be captured.
func (p *Printer) CaptureFailed() {
	p.printf("    Capture failed\n")
}

// Captured reports the pixel size of a successful capture.
func (p *Printer) Captured(bounds image.Rectangle) {
	p.printf("    Captured: %dx%d\n", bounds.Dx(), bounds.Dy())
}

// Saved reports where the capture was written.
func (p *Printer) Saved(path string) {
	p.printf("    Saved: %s\n", path)
}

// Annotated reports where the annotated capture was written.
func (p *Printer) Annotated(path string) {
	p.printf("    Annotated: %s\n", path)
}

// Results prints every method and payload, or a notice when nothing decoded.
func (p *Printer) Results(results []scan.Result) {
	if !scan.Found(results) {
		p.printf("    No QR code detected\n")
		return
	}
	p.printf("    QR code found!\n")
	for _, r := range results {
		p.printf("       Method: %s\n", r.Method)
		for _, payload := range r.Payloads {
			p.printf("       > %s\n", payload.Text)
		}
	}
}

// Finish prints the final banner. When nothing was found it also prints
// the troubleshooting checklist followed by any extra hints.
func (p *Printer) Finish(owner string, found bool, hints []string) {
	p.printf("\n%s\n", rule)
	if found {
		p.printf("QR code found!\n")
	} else {
		p.printf("No QR code detected in any window\n")
		p.printf("Please check:\n")
		items := append(Checklist(owner), hints...)
		for i, item := range items {
			p.printf("   %d. %s\n", i+1, item)
		}
	}
	p.printf("%s\n", rule)
}

// Checklist returns the fixed troubleshooting items shown when no QR code
// was found.
func Checklist(owner string) []string {
	return []string{
		fmt.Sprintf("Is the QR code visible in the %s window?", owner),
		"Is the QR code large and sharp enough?",
		"Inspect the saved screenshot files",
	}
}
