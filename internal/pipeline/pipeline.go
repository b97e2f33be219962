// Package pipeline runs one pass of enumerate, capture, save, scan and
// report over the target windows.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/mj1618/window-qr/internal/model"
	"github.com/mj1618/window-qr/internal/notify"
	"github.com/mj1618/window-qr/internal/platform"
	"github.com/mj1618/window-qr/internal/report"
	"github.com/mj1618/window-qr/internal/scan"
	"go.uber.org/zap"
)

// Options controls one run.
type Options struct {
	List      platform.ListOptions
	OutputDir string // Directory for saved screenshots ("" = working directory)
	Annotate  bool   // Also save a copy with decoded codes outlined
}

// Runner drives the scan over every target window, strictly in sequence.
type Runner struct {
	Lister   platform.Lister
	Capturer platform.Capturer
	Scanner  *scan.Scanner
	Printer  *report.Printer

	// Optional.
	Notifier        notify.Notifier
	PermissionCheck func() error
	Logger          *zap.SugaredLogger
}

// Run processes all target windows and returns the summary. It never fails:
// enumeration errors count as zero windows and capture errors as a failed
// window. A cancelled ctx stops the loop after the current window.
func (r *Runner) Run(ctx context.Context, opts Options) report.Summary {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	summary := report.Summary{
		RunID:   uuid.NewString(),
		Owner:   opts.List.Owner,
		Windows: []report.WindowReport{},
	}
	logger = logger.Named("pipeline").With("run", summary.RunID)

	r.Printer.Start(opts.List.Owner)

	windows, err := r.Lister.ListTargetWindows(ctx, opts.List)
	if err != nil {
		logger.Warnw("Failed to enumerate windows", "error", err)
		windows = nil
	}
	r.Printer.WindowsFound(opts.List.Owner, len(windows))
	logger.Debugw("Enumerated target windows", "count", len(windows), "owner", opts.List.Owner)

	for i, w := range windows {
		if ctx.Err() != nil {
			logger.Warnw("Run cancelled", "processed", i, "total", len(windows))
			break
		}
		wr := r.processWindow(ctx, logger, i+1, w, opts)
		if scan.Found(wr.Results) {
			summary.Found = true
		}
		summary.Windows = append(summary.Windows, wr)
	}

	r.Printer.Finish(opts.List.Owner, summary.Found, r.hints(logger))

	if summary.Found && r.Notifier != nil {
		r.Notifier.Notify("QR code found", notificationMessage(summary))
	}
	return summary
}

func (r *Runner) processWindow(ctx context.Context, logger *zap.SugaredLogger, index int, w model.Window, opts Options) report.WindowReport {
	wr := report.WindowReport{Index: index, Window: w}
	r.Printer.Window(index, w)

	img, err := r.Capturer.CaptureWindow(ctx, w)
	if err != nil || img == nil {
		logger.Debugw("Capture failed", "windowID", w.ID, "error", err)
		r.Printer.CaptureFailed()
		return wr
	}
	wr.Captured = true
	wr.ImageSize = [2]int{img.Bounds().Dx(), img.Bounds().Dy()}
	r.Printer.Captured(img.Bounds())

	path := filepath.Join(opts.OutputDir, ScreenshotName(index, w.ID))
	if err := imaging.Save(img, path); err != nil {
		logger.Warnw("Failed to save screenshot", "path", path, "error", err)
	} else {
		wr.SavedPath = path
		r.Printer.Saved(path)
	}

	wr.Results = r.Scanner.Scan(img)
	r.Printer.Results(wr.Results)

	if opts.Annotate && scan.Found(wr.Results) {
		wr.AnnotatedPath = r.saveAnnotated(logger, img, wr.Results, filepath.Join(opts.OutputDir, AnnotatedName(index, w.ID)))
	}
	return wr
}

func (r *Runner) saveAnnotated(logger *zap.SugaredLogger, img image.Image, results []scan.Result, path string) string {
	if err := imaging.Save(report.Annotate(img, results), path); err != nil {
		logger.Warnw("Failed to save annotated screenshot", "path", path, "error", err)
		return ""
	}
	r.Printer.Annotated(path)
	return path
}

func (r *Runner) hints(logger *zap.SugaredLogger) []string {
	if r.PermissionCheck == nil {
		return nil
	}
	if err := r.PermissionCheck(); err != nil {
		logger.Debugw("Permission check failed", "error", err)
		return []string{firstLine(err.Error())}
	}
	return nil
}

// ScreenshotName is the file name of the capture of the window at 1-based
// position index.
func ScreenshotName(index, windowID int) string {
	return fmt.Sprintf("window_%d_%d.png", index, windowID)
}

// AnnotatedName is the file name of the annotated capture.
func AnnotatedName(index, windowID int) string {
	return fmt.Sprintf("window_%d_%d_annotated.png", index, windowID)
}

func notificationMessage(s report.Summary) string {
	for _, w := range s.Windows {
		for _, res := range w.Results {
			for _, p := range res.Payloads {
				return fmt.Sprintf("%s window %d: %s", s.Owner, w.Window.ID, p.Text)
			}
		}
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
