//go:build linux

package linux

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"
	"github.com/mj1618/window-qr/internal/model"
	"github.com/mj1618/window-qr/internal/platform"
	"go.uber.org/zap"
)

// LinuxLister implements platform.Lister using `wmctrl -lpG`.
type LinuxLister struct {
	logger *zap.SugaredLogger
}

// NewLister creates a new X11 window lister.
func NewLister(logger *zap.SugaredLogger) *LinuxLister {
	return &LinuxLister{logger: logger.Named("lister")}
}

// ListWindows returns every window managed by the window manager, in
// stacking order as reported by wmctrl. X11 has no window layers, so Layer
// is always 0.
func (l *LinuxLister) ListWindows(ctx context.Context) ([]model.Window, error) {
	out, err := exec.CommandContext(ctx, "wmctrl", "-lpG").Output()
	if err != nil {
		return nil, fmt.Errorf("wmctrl -lpG: %w", err)
	}
	return parseWmctrl(out, l.processName), nil
}

// ListTargetWindows returns the windows matching opts, in wmctrl order.
func (l *LinuxLister) ListTargetWindows(ctx context.Context, opts platform.ListOptions) ([]model.Window, error) {
	windows, err := l.ListWindows(ctx)
	if err != nil {
		return nil, err
	}
	return model.FilterTargetWindows(windows, opts.Owner, opts.MinWidth, opts.MinHeight), nil
}

func (l *LinuxLister) processName(pid int) string {
	if pid <= 0 {
		return ""
	}
	p, err := ps.FindProcess(pid)
	if err != nil {
		l.logger.Debugw("Failed to look up process", "pid", pid, "error", err)
		return ""
	}
	if p == nil {
		return ""
	}
	return p.Executable()
}

// parseWmctrl parses `wmctrl -lpG` output:
//
//	0x04400003  0 3021   0    27   1920 1053 host Window title
//
// Columns are window id, desktop, pid, x, y, width, height, client host and
// title. Malformed lines are skipped. Titles are kept verbatim.
func parseWmctrl(out []byte, processName func(pid int) string) []model.Window {
	windows := []model.Window{}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 7 {
			continue
		}
		id, err := strconv.ParseInt(fields[0], 0, 64)
		if err != nil {
			continue
		}
		var nums [5]int
		ok := true
		for i := range nums {
			if nums[i], err = strconv.Atoi(fields[i+2]); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		pid := nums[0]
		windows = append(windows, model.Window{
			Owner:  processName(pid),
			PID:    pid,
			ID:     int(id),
			Title:  titleAfterFields(scanner.Text(), 8),
			Bounds: [4]int{nums[1], nums[2], nums[3], nums[4]},
		})
	}
	return windows
}

// titleAfterFields returns line with its first n whitespace-separated fields
// and the single separator after them removed.
func titleAfterFields(line string, n int) string {
	rest := line
	for i := 0; i < n; i++ {
		rest = strings.TrimLeft(rest, " \t")
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			return ""
		}
		rest = rest[end:]
	}
	if rest == "" {
		return ""
	}
	return rest[1:]
}
