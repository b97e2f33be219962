//go:build linux

package linux

import (
	"strconv"

	"github.com/mj1618/window-qr/internal/capture"
	"github.com/mj1618/window-qr/internal/platform"
	"go.uber.org/zap"
)

// Import captures a single X11 window with ImageMagick.
var Import = capture.Command{
	Name: "import",
	Args: importArgs,
}

func importArgs(windowID int, outputPath string) []string {
	return []string{"-window", strconv.Itoa(windowID), "-silent", "png:" + outputPath}
}

func init() {
	platform.NewProviderFunc = func(opts platform.CaptureOptions, logger *zap.SugaredLogger) (*platform.Provider, error) {
		var capturer platform.Capturer
		switch opts.Backend {
		case platform.BackendRect:
			capturer = capture.NewRectCapturer()
		default:
			capturer = capture.NewCommandCapturer(Import, capture.Options{
				Timeout: opts.Timeout,
				TempDir: opts.TempDir,
			}, logger)
		}
		return &platform.Provider{
			Lister:   NewLister(logger),
			Capturer: capturer,
		}, nil
	}
}
