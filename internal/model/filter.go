package model

import (
	"strings"

	"github.com/thoas/go-funk"
)

// FilterTargetWindows returns the windows whose owner name contains owner
// and whose size strictly exceeds minWidth x minHeight, in their original
// order. The owner match is case-sensitive. The result is never nil.
//
// To avoid circular imports between model and platform, this function accepts
// individual filter parameters rather than platform.ListOptions.
func FilterTargetWindows(windows []Window, owner string, minWidth, minHeight int) []Window {
	result := make([]Window, 0, len(windows))
	for _, w := range windows {
		if !strings.Contains(w.Owner, owner) {
			continue
		}
		if w.Width() <= minWidth || w.Height() <= minHeight {
			continue
		}
		result = append(result, w)
	}
	return result
}

// OwnerNames returns the distinct owner names of windows in first-seen order.
func OwnerNames(windows []Window) []string {
	names := make([]string, 0, len(windows))
	for _, w := range windows {
		if w.Owner != "" {
			names = append(names, w.Owner)
		}
	}
	return funk.UniqString(names)
}
