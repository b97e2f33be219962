//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>

static int has_screen_capture_access() {
    return CGPreflightScreenCaptureAccess();
}
*/
import "C"
import "fmt"

// CheckScreenRecordingPermission checks if the process has macOS screen
// recording permission. Without it screencapture only sees the desktop
// wallpaper and window contents come back blank.
func CheckScreenRecordingPermission() error {
	if C.has_screen_capture_access() == 0 {
		return fmt.Errorf(
			"screen recording permission required for your terminal app\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Screen Recording\n" +
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the terminal and try again.")
	}
	return nil
}
