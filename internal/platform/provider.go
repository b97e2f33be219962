package platform

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// Provider bundles the platform backends for the current OS.
type Provider struct {
	Lister   Lister
	Capturer Capturer

	// PermissionCheck reports a missing OS permission that would make every
	// capture fail. Nil on platforms without such a permission.
	PermissionCheck func() error
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("window-qr is not supported on %s/%s; supported: darwin (cgo), linux", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func(opts CaptureOptions, logger *zap.SugaredLogger) (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider(opts CaptureOptions, logger *zap.SugaredLogger) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts, logger)
}
