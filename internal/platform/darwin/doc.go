//go:build darwin

// Package darwin provides macOS platform support: window enumeration through
// CoreGraphics and window capture through the screencapture utility.
// Window enumeration requires CGo. When CGo is disabled, the package only
// provides the screencapture command and registers no provider.
package darwin
