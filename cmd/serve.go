package cmd

import (
	"os"

	"github.com/mj1618/window-qr/internal/platform"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing window-qr tools",
	Long: `Start a Model Context Protocol (MCP) server on standard I/O that exposes
list_windows, scan_windows and decode_image as tools. Tool calls run one at
a time with the configuration and flags given to serve.

Examples:
  window-qr serve
  window-qr serve --owner LINE --output-dir /tmp/shots`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}
	provider, err := platform.NewProvider(cfg.CaptureOptions(), logger)
	if err != nil {
		return err
	}
	logger.Debugw("Serving MCP on stdio", "owner", cfg.Owner)
	return newMCPServer(provider).serve()
}
