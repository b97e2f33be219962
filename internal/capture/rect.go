package capture

import (
	"context"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"github.com/mj1618/window-qr/internal/model"
)

// RectCapturer captures the screen rectangle a window occupies. Unlike
// CommandCapturer it also captures whatever overlaps the window.
type RectCapturer struct {
	grab func(image.Rectangle) (*image.RGBA, error)
}

// NewRectCapturer creates a capturer backed by kbinani/screenshot.
func NewRectCapturer() *RectCapturer {
	return &RectCapturer{grab: screenshot.CaptureRect}
}

// CaptureWindow captures the rectangle given by w.Bounds.
func (c *RectCapturer) CaptureWindow(ctx context.Context, w model.Window) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}
	r := image.Rect(w.Bounds[0], w.Bounds[1], w.Bounds[0]+w.Bounds[2], w.Bounds[1]+w.Bounds[3])
	if r.Empty() {
		return nil, fmt.Errorf("%w: window %d has empty bounds", ErrCaptureFailed, w.ID)
	}
	img, err := c.grab(r)
	if err != nil {
		return nil, fmt.Errorf("%w: capture rect %v: %w", ErrCaptureFailed, r, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty capture for window %d", ErrCaptureFailed, w.ID)
	}
	return img, nil
}
