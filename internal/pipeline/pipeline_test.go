package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/mj1618/window-qr/internal/capture"
	"github.com/mj1618/window-qr/internal/model"
	"github.com/mj1618/window-qr/internal/platform"
	"github.com/mj1618/window-qr/internal/report"
	"github.com/mj1618/window-qr/internal/scan"
	"github.com/mj1618/window-qr/internal/scan/scantest"
	"go.uber.org/zap"
)

const testPayload = "https://example.com/x"

type fakeLister struct {
	windows []model.Window
	err     error
}

func (l *fakeLister) ListWindows(context.Context) ([]model.Window, error) {
	return l.windows, l.err
}

func (l *fakeLister) ListTargetWindows(_ context.Context, opts platform.ListOptions) ([]model.Window, error) {
	if l.err != nil {
		return nil, l.err
	}
	return model.FilterTargetWindows(l.windows, opts.Owner, opts.MinWidth, opts.MinHeight), nil
}

// fakeCapturer returns the image registered for a window id, or fails.
type fakeCapturer struct {
	images map[int]image.Image
	calls  []int
}

func (c *fakeCapturer) CaptureWindow(_ context.Context, w model.Window) (image.Image, error) {
	c.calls = append(c.calls, w.ID)
	if img, ok := c.images[w.ID]; ok {
		return img, nil
	}
	return nil, capture.ErrCaptureFailed
}

type recordingNotifier struct{ messages []string }

func (n *recordingNotifier) Notify(title, message string) {
	n.messages = append(n.messages, title+": "+message)
}

func lineWindow(id int) model.Window {
	return model.Window{Owner: "LINE", ID: id, Bounds: [4]int{0, 0, 800, 600}}
}

func defaultOptions(t *testing.T) Options {
	return Options{
		List:      platform.ListOptions{Owner: "LINE", MinWidth: 200, MinHeight: 200},
		OutputDir: t.TempDir(),
	}
}

func newRunner(lister platform.Lister, capturer platform.Capturer, out *bytes.Buffer) *Runner {
	return &Runner{
		Lister:   lister,
		Capturer: capturer,
		Scanner:  scan.NewDefaultScanner(scan.DefaultOptions()),
		Printer:  report.NewPrinter(out),
		Logger:   zap.NewNop().Sugar(),
	}
}

func assertNotFoundReport(t *testing.T, out string) {
	t.Helper()
	if !strings.Contains(out, "No QR code detected in any window") {
		t.Errorf("missing not-found banner:\n%s", out)
	}
	for _, item := range report.Checklist("LINE") {
		if !strings.Contains(out, item) {
			t.Errorf("missing checklist item %q", item)
		}
	}
}

func TestRun_NoWindows(t *testing.T) {
	var out bytes.Buffer
	lister := &fakeLister{windows: []model.Window{
		{Owner: "Safari", ID: 1, Bounds: [4]int{0, 0, 800, 600}},
		{Owner: "LINE", ID: 2, Bounds: [4]int{0, 0, 100, 100}},
	}}
	capturer := &fakeCapturer{}

	summary := newRunner(lister, capturer, &out).Run(context.Background(), defaultOptions(t))

	if summary.Found {
		t.Error("Found should be false")
	}
	if len(summary.Windows) != 0 {
		t.Errorf("expected no window reports, got %d", len(summary.Windows))
	}
	if len(capturer.calls) != 0 {
		t.Errorf("capturer should not be called, got %v", capturer.calls)
	}
	if !strings.Contains(strings.ToLower(out.String()), "found 0 line windows") {
		t.Errorf("missing zero count:\n%s", out.String())
	}
	assertNotFoundReport(t, out.String())
}

func TestRun_CleanQRCode(t *testing.T) {
	img, err := scantest.CleanQRImage(testPayload)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	lister := &fakeLister{windows: []model.Window{lineWindow(77)}}
	capturer := &fakeCapturer{images: map[int]image.Image{77: img}}
	opts := defaultOptions(t)

	summary := newRunner(lister, capturer, &out).Run(context.Background(), opts)

	if !summary.Found {
		t.Fatalf("expected QR code to be found:\n%s", out.String())
	}
	if len(summary.Windows) != 1 {
		t.Fatalf("expected 1 window report, got %d", len(summary.Windows))
	}
	wr := summary.Windows[0]
	if !wr.Captured || wr.Index != 1 {
		t.Errorf("window report = %+v", wr)
	}
	if len(wr.Results) == 0 || wr.Results[0].Method != scan.MethodOriginal {
		t.Fatalf("expected %q first, got %+v", scan.MethodOriginal, wr.Results)
	}
	if got := wr.Results[0].Payloads[0].Text; got != testPayload {
		t.Errorf("payload = %q, want %q", got, testPayload)
	}

	wantPath := filepath.Join(opts.OutputDir, "window_1_77.png")
	if wr.SavedPath != wantPath {
		t.Errorf("saved path = %q, want %q", wr.SavedPath, wantPath)
	}
	if _, err := os.Stat(wantPath); err != nil {
		t.Errorf("screenshot not saved: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Method: original") || !strings.Contains(text, testPayload) {
		t.Errorf("missing method/payload lines:\n%s", text)
	}
	if !strings.Contains(text, "QR code found!") || strings.Contains(text, "No QR code detected in any window") {
		t.Errorf("expected found banner:\n%s", text)
	}
	if summary.RunID == "" {
		t.Error("run id should be set")
	}
}

func TestRun_CaptureTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	var out bytes.Buffer
	lister := &fakeLister{windows: []model.Window{lineWindow(5)}}
	tmpDir := t.TempDir()
	capturer := capture.NewCommandCapturer(capture.Command{
		Name: "sh",
		Args: func(int, string) []string { return []string{"-c", "exec sleep 5"} },
	}, capture.Options{Timeout: 100 * time.Millisecond, TempDir: tmpDir}, zap.NewNop().Sugar())

	summary := newRunner(lister, capturer, &out).Run(context.Background(), defaultOptions(t))

	if summary.Found {
		t.Error("Found should be false")
	}
	if len(summary.Windows) != 1 || summary.Windows[0].Captured {
		t.Errorf("expected one uncaptured window, got %+v", summary.Windows)
	}
	if !strings.Contains(out.String(), "Capture failed") {
		t.Errorf("missing capture failure line:\n%s", out.String())
	}
	assertNotFoundReport(t, out.String())

	entries, _ := os.ReadDir(tmpDir)
	if len(entries) != 0 {
		t.Errorf("temporary files left behind: %d", len(entries))
	}
}

func TestRun_ContinuesAfterCaptureFailure(t *testing.T) {
	img, err := scantest.CleanQRImage(testPayload)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	lister := &fakeLister{windows: []model.Window{lineWindow(1), lineWindow(2)}}
	capturer := &fakeCapturer{images: map[int]image.Image{2: img}}

	summary := newRunner(lister, capturer, &out).Run(context.Background(), defaultOptions(t))

	if len(capturer.calls) != 2 {
		t.Fatalf("expected both windows captured, got %v", capturer.calls)
	}
	if !summary.Found {
		t.Error("second window should have produced a QR code")
	}
	if summary.Windows[0].Captured || !summary.Windows[1].Captured {
		t.Errorf("captured flags = %v, %v", summary.Windows[0].Captured, summary.Windows[1].Captured)
	}
	if summary.Windows[1].Index != 2 {
		t.Errorf("second window index = %d, want 2", summary.Windows[1].Index)
	}
}

func TestRun_EnumerationErrorIsZeroWindows(t *testing.T) {
	var out bytes.Buffer
	lister := &fakeLister{err: errors.New("window server unavailable")}

	summary := newRunner(lister, &fakeCapturer{}, &out).Run(context.Background(), defaultOptions(t))

	if summary.Found || len(summary.Windows) != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(out.String(), "Found 0 LINE windows") {
		t.Errorf("missing zero count:\n%s", out.String())
	}
}

func TestRun_SaveFailureStillScans(t *testing.T) {
	img, err := scantest.CleanQRImage(testPayload)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	lister := &fakeLister{windows: []model.Window{lineWindow(9)}}
	capturer := &fakeCapturer{images: map[int]image.Image{9: img}}
	opts := defaultOptions(t)
	opts.OutputDir = filepath.Join(opts.OutputDir, "missing", "dir")

	summary := newRunner(lister, capturer, &out).Run(context.Background(), opts)

	if summary.Windows[0].SavedPath != "" {
		t.Errorf("saved path should be empty, got %q", summary.Windows[0].SavedPath)
	}
	if !summary.Found {
		t.Error("scan should still run when saving fails")
	}
}

func TestRun_AnnotateAndNotify(t *testing.T) {
	img, err := scantest.CleanQRImage(testPayload)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	lister := &fakeLister{windows: []model.Window{lineWindow(3)}}
	capturer := &fakeCapturer{images: map[int]image.Image{3: img}}
	notifier := &recordingNotifier{}
	runner := newRunner(lister, capturer, &out)
	runner.Notifier = notifier
	opts := defaultOptions(t)
	opts.Annotate = true

	summary := runner.Run(context.Background(), opts)

	want := filepath.Join(opts.OutputDir, "window_1_3_annotated.png")
	if summary.Windows[0].AnnotatedPath != want {
		t.Errorf("annotated path = %q, want %q", summary.Windows[0].AnnotatedPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("annotated screenshot not saved: %v", err)
	}
	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0], testPayload) {
		t.Errorf("notifications = %v", notifier.messages)
	}
}

func TestRun_NoNotificationWhenNotFound(t *testing.T) {
	var out bytes.Buffer
	notifier := &recordingNotifier{}
	runner := newRunner(&fakeLister{}, &fakeCapturer{}, &out)
	runner.Notifier = notifier

	runner.Run(context.Background(), defaultOptions(t))

	if len(notifier.messages) != 0 {
		t.Errorf("unexpected notifications: %v", notifier.messages)
	}
}

func TestRun_PermissionHint(t *testing.T) {
	var out bytes.Buffer
	runner := newRunner(&fakeLister{}, &fakeCapturer{}, &out)
	runner.PermissionCheck = func() error {
		return errors.New("grant Screen Recording permission to this terminal\n\ndetails")
	}

	runner.Run(context.Background(), defaultOptions(t))

	if !strings.Contains(out.String(), "4. grant Screen Recording permission to this terminal") {
		t.Errorf("missing permission hint:\n%s", out.String())
	}
	if strings.Contains(out.String(), "details") {
		t.Errorf("only the first line of the permission error should print:\n%s", out.String())
	}
}

func TestRun_CancelledContext(t *testing.T) {
	var out bytes.Buffer
	lister := &fakeLister{windows: []model.Window{lineWindow(1), lineWindow(2)}}
	capturer := &fakeCapturer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := newRunner(lister, capturer, &out).Run(ctx, defaultOptions(t))

	if len(capturer.calls) != 0 || len(summary.Windows) != 0 {
		t.Errorf("no window should be processed after cancellation, got %v", capturer.calls)
	}
	if !strings.Contains(out.String(), "No QR code detected in any window") {
		t.Errorf("summary should still print:\n%s", out.String())
	}
}

func TestScreenshotNames(t *testing.T) {
	if got := ScreenshotName(2, 1234); got != "window_2_1234.png" {
		t.Errorf("ScreenshotName = %q", got)
	}
	if got := AnnotatedName(2, 1234); got != "window_2_1234_annotated.png" {
		t.Errorf("AnnotatedName = %q", got)
	}
}
