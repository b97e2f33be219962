//go:build darwin && cgo

package cmd

import _ "github.com/mj1618/window-qr/internal/platform/darwin"
