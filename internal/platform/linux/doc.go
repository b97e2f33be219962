//go:build linux

// Package linux provides X11 platform support: window enumeration through
// wmctrl and window capture through ImageMagick's import utility.
package linux
