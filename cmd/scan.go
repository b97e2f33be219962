package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/window-qr/internal/notify"
	"github.com/mj1618/window-qr/internal/output"
	"github.com/mj1618/window-qr/internal/pipeline"
	"github.com/mj1618/window-qr/internal/platform"
	"github.com/mj1618/window-qr/internal/report"
	"github.com/mj1618/window-qr/internal/scan"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Capture target windows and decode QR codes",
	Long: `Enumerate the windows of the target application, capture each one, save
the screenshot as window_<n>_<id>.png and try to decode QR codes from it
with several image transforms.

The exit status is 0 whether or not a QR code was found.

Examples:
  window-qr scan
  window-qr scan --owner Slack --annotate
  window-qr scan --format json --output-dir /tmp/shots`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	provider, err := platform.NewProvider(cfg.CaptureOptions(), logger)
	if err != nil {
		return err
	}

	format := cfg.OutputFormat()
	var console io.Writer = cmd.OutOrStdout()
	if format.Structured() {
		console = io.Discard
	}

	runner := newRunner(provider, report.NewPrinter(console))
	summary := runner.Run(ctx, pipelineOptions())

	if format.Structured() {
		return output.Print(cmd.OutOrStdout(), format, summary)
	}
	return nil
}

// newRunner assembles a pipeline runner from the resolved configuration.
func newRunner(provider *platform.Provider, printer *report.Printer) *pipeline.Runner {
	runner := &pipeline.Runner{
		Lister:          provider.Lister,
		Capturer:        provider.Capturer,
		Scanner:         newScanner(),
		Printer:         printer,
		PermissionCheck: provider.PermissionCheck,
		Logger:          logger,
	}
	if cfg.Notify {
		runner.Notifier = notify.NewDesktopNotifier(logger)
	}
	return runner
}

func newScanner() *scan.Scanner {
	return scan.NewDefaultScanner(scan.Options{Threshold: uint8(cfg.Scan.Threshold)})
}

func pipelineOptions() pipeline.Options {
	return pipeline.Options{
		List:      cfg.ListOptions(),
		OutputDir: cfg.OutputDir,
		Annotate:  cfg.Annotate,
	}
}
