//go:build darwin && cgo

package darwin

import (
	"github.com/mj1618/window-qr/internal/capture"
	"github.com/mj1618/window-qr/internal/platform"
	"go.uber.org/zap"
)

func init() {
	platform.NewProviderFunc = func(opts platform.CaptureOptions, logger *zap.SugaredLogger) (*platform.Provider, error) {
		var capturer platform.Capturer
		switch opts.Backend {
		case platform.BackendRect:
			capturer = capture.NewRectCapturer()
		default:
			capturer = capture.NewCommandCapturer(Screencapture, capture.Options{
				Timeout: opts.Timeout,
				TempDir: opts.TempDir,
			}, logger)
		}
		return &platform.Provider{
			Lister:          NewLister(),
			Capturer:        capturer,
			PermissionCheck: CheckScreenRecordingPermission,
		}, nil
	}
}
