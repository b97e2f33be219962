// Package capture turns a window descriptor into an in-memory image.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"time"

	"github.com/disintegration/imaging"
	"github.com/mj1618/window-qr/internal/model"
	"go.uber.org/zap"
)

// ErrCaptureFailed wraps every capture failure. Callers treat it as an
// expected, non-fatal outcome.
var ErrCaptureFailed = errors.New("capture failed")

// DefaultTimeout bounds a single screenshot utility invocation.
const DefaultTimeout = 3 * time.Second

const tempPattern = "window-qr-*.png"

// Command describes an external screenshot utility that writes one window
// to an image file.
type Command struct {
	Name string
	Args func(windowID int, outputPath string) []string
}

// Options configures a CommandCapturer.
type Options struct {
	Timeout time.Duration // 0 = DefaultTimeout
	TempDir string        // "" = os.TempDir()
}

// CommandCapturer captures windows by running an external screenshot
// utility into a scoped temporary file.
type CommandCapturer struct {
	command Command
	timeout time.Duration
	tempDir string
	logger  *zap.SugaredLogger
}

// NewCommandCapturer creates a capturer that runs command for each window.
func NewCommandCapturer(command Command, opts Options, logger *zap.SugaredLogger) *CommandCapturer {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CommandCapturer{
		command: command,
		timeout: timeout,
		tempDir: opts.TempDir,
		logger:  logger.Named("capture"),
	}
}

// CaptureWindow runs the screenshot utility for w.ID and decodes its output.
// The temporary file is removed on every return path.
func (c *CommandCapturer) CaptureWindow(ctx context.Context, w model.Window) (image.Image, error) {
	tmp, err := os.CreateTemp(c.tempDir, tempPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file: %w", ErrCaptureFailed, err)
	}
	path := tmp.Name()
	tmp.Close()
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.logger.Warnw("Failed to remove temporary capture file", "path", path, "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.command.Name, c.command.Args(w.ID, path)...)
	cmd.WaitDelay = 500 * time.Millisecond

	c.logger.Debugw("Running screenshot utility", "command", c.command.Name, "windowID", w.ID, "path", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s timed out after %s", ErrCaptureFailed, c.command.Name, c.timeout)
		}
		return nil, fmt.Errorf("%w: %s: %w (output: %q)", ErrCaptureFailed, c.command.Name, err, bytes.TrimSpace(out))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: no output file: %w", ErrCaptureFailed, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: empty output file", ErrCaptureFailed)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrCaptureFailed, path, err)
	}
	return img, nil
}
