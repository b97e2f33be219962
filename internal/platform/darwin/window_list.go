//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>

typedef struct {
	int windowID;
	int pid;
	int layer;
	double x, y, width, height;
	char *ownerName;
	char *title;
} WQWindowInfo;

static char *wq_copy_string(CFStringRef s) {
	if (s == NULL || CFGetTypeID(s) != CFStringGetTypeID()) {
		return NULL;
	}
	CFIndex max = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
	char *buf = malloc(max);
	if (buf == NULL) {
		return NULL;
	}
	if (!CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) {
		free(buf);
		return NULL;
	}
	return buf;
}

static int wq_get_int(CFDictionaryRef d, CFStringRef key) {
	CFNumberRef n = (CFNumberRef)CFDictionaryGetValue(d, key);
	int v = 0;
	if (n != NULL && CFGetTypeID(n) == CFNumberGetTypeID()) {
		CFNumberGetValue(n, kCFNumberIntType, &v);
	}
	return v;
}

// wq_list_windows copies every window the window server knows about,
// including off-screen and overlapped ones, in window server order.
static int wq_list_windows(WQWindowInfo **out, int *count) {
	*out = NULL;
	*count = 0;

	CFArrayRef list = CGWindowListCopyWindowInfo(kCGWindowListOptionAll, kCGNullWindowID);
	if (list == NULL) {
		return -1;
	}
	CFIndex n = CFArrayGetCount(list);
	if (n == 0) {
		CFRelease(list);
		return 0;
	}

	WQWindowInfo *infos = calloc(n, sizeof(WQWindowInfo));
	if (infos == NULL) {
		CFRelease(list);
		return -1;
	}
	for (CFIndex i = 0; i < n; i++) {
		CFDictionaryRef d = (CFDictionaryRef)CFArrayGetValueAtIndex(list, i);
		WQWindowInfo *w = &infos[i];
		w->windowID = wq_get_int(d, kCGWindowNumber);
		w->pid = wq_get_int(d, kCGWindowOwnerPID);
		w->layer = wq_get_int(d, kCGWindowLayer);
		w->ownerName = wq_copy_string((CFStringRef)CFDictionaryGetValue(d, kCGWindowOwnerName));
		w->title = wq_copy_string((CFStringRef)CFDictionaryGetValue(d, kCGWindowName));

		CGRect r = CGRectZero;
		CFDictionaryRef bounds = (CFDictionaryRef)CFDictionaryGetValue(d, kCGWindowBounds);
		if (bounds != NULL) {
			CGRectMakeWithDictionaryRepresentation(bounds, &r);
		}
		w->x = r.origin.x;
		w->y = r.origin.y;
		w->width = r.size.width;
		w->height = r.size.height;
	}

	CFRelease(list);
	*out = infos;
	*count = (int)n;
	return 0;
}

static void wq_free_windows(WQWindowInfo *infos, int count) {
	if (infos == NULL) {
		return;
	}
	for (int i = 0; i < count; i++) {
		free(infos[i].ownerName);
		free(infos[i].title);
	}
	free(infos);
}
*/
import "C"
import (
	"context"
	"fmt"
	"unsafe"

	"github.com/mj1618/window-qr/internal/model"
	"github.com/mj1618/window-qr/internal/platform"
)

// DarwinLister implements platform.Lister with CGWindowListCopyWindowInfo.
type DarwinLister struct{}

// NewLister creates a new macOS window lister.
func NewLister() *DarwinLister {
	return &DarwinLister{}
}

// ListWindows returns every window known to the window server, in window
// server order. No layer filter is applied.
func (l *DarwinLister) ListWindows(ctx context.Context) ([]model.Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cWindows *C.WQWindowInfo
	var cCount C.int
	if C.wq_list_windows(&cWindows, &cCount) != 0 {
		return nil, fmt.Errorf("failed to enumerate windows")
	}
	defer C.wq_free_windows(cWindows, cCount)

	count := int(cCount)
	windows := make([]model.Window, 0, count)
	if count == 0 {
		return windows, nil
	}

	for _, cw := range unsafe.Slice(cWindows, count) {
		windows = append(windows, model.Window{
			Owner: C.GoString(cw.ownerName),
			PID:   int(cw.pid),
			ID:    int(cw.windowID),
			Title: C.GoString(cw.title),
			Bounds: [4]int{
				int(cw.x),
				int(cw.y),
				int(cw.width),
				int(cw.height),
			},
			Layer: int(cw.layer),
		})
	}
	return windows, nil
}

// ListTargetWindows returns the windows matching opts, in window server order.
func (l *DarwinLister) ListTargetWindows(ctx context.Context, opts platform.ListOptions) ([]model.Window, error) {
	windows, err := l.ListWindows(ctx)
	if err != nil {
		return nil, err
	}
	return model.FilterTargetWindows(windows, opts.Owner, opts.MinWidth, opts.MinHeight), nil
}
