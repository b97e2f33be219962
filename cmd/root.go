package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mj1618/window-qr/internal/config"
	"github.com/mj1618/window-qr/internal/logging"
	"github.com/mj1618/window-qr/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "window-qr",
	Short: "Find and decode QR codes shown in desktop windows",
	Long: `Capture every window of a target application, save the screenshots and
decode any QR code they contain. Running without a subcommand is the same
as "window-qr scan".`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runScan,
}

// Resolved by PersistentPreRunE before any command runs.
var (
	cfg    *config.Config
	logger *zap.SugaredLogger
)

// flagKeys maps persistent flag names to their config keys.
var flagKeys = map[string]string{
	"owner":      config.KeyOwner,
	"min-width":  config.KeyMinWidth,
	"min-height": config.KeyMinHeight,
	"timeout":    config.KeyCaptureTimeout,
	"backend":    config.KeyCaptureBackend,
	"output-dir": config.KeyOutputDir,
	"threshold":  config.KeyScanThreshold,
	"annotate":   config.KeyAnnotate,
	"notify":     config.KeyNotify,
	"format":     config.KeyFormat,
	"verbose":    config.KeyVerbose,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: ./window-qr.yaml or ~/.config/window-qr/window-qr.yaml)")
	flags.String("owner", config.DefaultOwner, "Owner (application) name substring of target windows")
	flags.Int("min-width", config.DefaultMinWidth, "Ignore windows not wider than this")
	flags.Int("min-height", config.DefaultMinHeight, "Ignore windows not taller than this")
	flags.Duration("timeout", config.DefaultTimeout, "Per-window capture timeout")
	flags.String("backend", "command", "Capture backend: command, rect")
	flags.String("output-dir", ".", "Directory for saved screenshots")
	flags.Int("threshold", config.DefaultThreshold, "Binarization threshold (0-255)")
	flags.Bool("annotate", false, "Also save screenshots with decoded QR codes outlined")
	flags.Bool("notify", false, "Send a desktop notification when a QR code is found")
	flags.String("format", "text", "Output format: text, yaml, json")
	flags.BoolP("verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		configFile, _ := rootCmd.PersistentFlags().GetString("config")
		v, err := config.NewViper(configFile)
		if err != nil {
			return err
		}
		if err := bindFlags(v); err != nil {
			return err
		}
		c, err := config.Load(v)
		if err != nil {
			return err
		}
		l, err := logging.NewLogger(c.Verbose)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		cfg, logger = c, l
		if used := v.ConfigFileUsed(); used != "" {
			logger.Debugw("Loaded config file", "path", used)
		}
		return nil
	}
}

// bindFlags layers the persistent flags over file and environment values.
func bindFlags(v *viper.Viper) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// commandContext returns the command's context, or a background context
// when the command was invoked directly.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
