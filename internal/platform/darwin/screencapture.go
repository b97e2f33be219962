//go:build darwin

package darwin

import (
	"strconv"

	"github.com/mj1618/window-qr/internal/capture"
)

// Screencapture captures a single window with the macOS screencapture
// utility: -l selects the window id, -o drops the window shadow and -x
// silences the shutter sound.
var Screencapture = capture.Command{
	Name: "/usr/sbin/screencapture",
	Args: screencaptureArgs,
}

func screencaptureArgs(windowID int, outputPath string) []string {
	return []string{"-l", strconv.Itoa(windowID), "-o", "-x", outputPath}
}
