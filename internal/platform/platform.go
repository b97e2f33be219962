package platform

import (
	"context"
	"image"

	"github.com/mj1618/window-qr/internal/model"
)

// Lister reads the on-screen window list from the OS window registry.
type Lister interface {
	// ListWindows returns every on-screen window in OS order, including
	// windows that are normally excluded from simple enumeration.
	ListWindows(ctx context.Context) ([]model.Window, error)

	// ListTargetWindows returns the windows matching opts in OS order.
	// No match is an empty slice, not an error.
	ListTargetWindows(ctx context.Context, opts ListOptions) ([]model.Window, error)
}

// Capturer captures the pixels of a single window.
type Capturer interface {
	// CaptureWindow captures the window identified by w.ID. Any failure,
	// including the window disappearing since enumeration, is reported as
	// an error and a nil image.
	CaptureWindow(ctx context.Context, w model.Window) (image.Image, error)
}
