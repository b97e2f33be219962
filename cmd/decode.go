package cmd

import (
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/mj1618/window-qr/internal/output"
	"github.com/mj1618/window-qr/internal/report"
	"github.com/mj1618/window-qr/internal/scan"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <image>...",
	Short: "Decode QR codes from saved image files",
	Long: `Run the QR scanner over image files, for example screenshots saved by a
previous scan. Every transform is tried on every image.

Examples:
  window-qr decode window_1_4242.png
  window-qr decode --threshold 100 --format yaml shots/*.png`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	format := cfg.OutputFormat()
	var console io.Writer = cmd.OutOrStdout()
	if format.Structured() {
		console = io.Discard
	}

	reports := decodeImages(newScanner(), args, report.NewPrinter(console))

	if format.Structured() {
		if err := output.Print(cmd.OutOrStdout(), format, reports); err != nil {
			return err
		}
	}

	failed := 0
	for _, r := range reports {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to open %d of %d images", failed, len(reports))
	}
	return nil
}

// decodeImages scans every file in paths, in order. Unreadable files are
// reported and skipped.
func decodeImages(scanner *scan.Scanner, paths []string, printer *report.Printer) []report.ImageReport {
	reports := make([]report.ImageReport, 0, len(paths))
	for i, path := range paths {
		printer.Image(i+1, path)
		r := report.ImageReport{Path: path}

		img, err := imaging.Open(path)
		if err != nil {
			logger.Debugw("Failed to open image", "path", path, "error", err)
			printer.OpenFailed(err)
			r.Error = err.Error()
			reports = append(reports, r)
			continue
		}
		b := img.Bounds()
		printer.Captured(b)
		r.ImageSize = [2]int{b.Dx(), b.Dy()}
		r.Results = scanner.Scan(img)
		printer.Results(r.Results)
		reports = append(reports, r)
	}
	return reports
}
