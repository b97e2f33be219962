// Package config loads window-qr settings from defaults, an optional YAML
// file, WINDOWQR_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mj1618/window-qr/internal/output"
	"github.com/mj1618/window-qr/internal/platform"
	"github.com/spf13/viper"
)

const (
	configName = "window-qr"
	configType = "yaml"
	envPrefix  = "WINDOWQR"

	KeyOwner          = "owner"
	KeyMinWidth       = "min_width"
	KeyMinHeight      = "min_height"
	KeyCaptureTimeout = "capture.timeout"
	KeyCaptureBackend = "capture.backend"
	KeyOutputDir      = "output_dir"
	KeyScanThreshold  = "scan.threshold"
	KeyAnnotate       = "annotate"
	KeyNotify         = "notify"
	KeyFormat         = "format"
	KeyVerbose        = "verbose"

	DefaultOwner     = "LINE"
	DefaultMinWidth  = 200
	DefaultMinHeight = 200
	DefaultTimeout   = 3 * time.Second
	DefaultThreshold = 127
)

// Config is the resolved configuration of one invocation.
type Config struct {
	Owner     string        `mapstructure:"owner"`
	MinWidth  int           `mapstructure:"min_width"`
	MinHeight int           `mapstructure:"min_height"`
	Capture   CaptureConfig `mapstructure:"capture"`
	OutputDir string        `mapstructure:"output_dir"`
	Scan      ScanConfig    `mapstructure:"scan"`
	Annotate  bool          `mapstructure:"annotate"`
	Notify    bool          `mapstructure:"notify"`
	Format    string        `mapstructure:"format"`
	Verbose   bool          `mapstructure:"verbose"`
}

// CaptureConfig groups window capture settings.
type CaptureConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Backend string        `mapstructure:"backend"`
}

// ScanConfig groups QR scanner settings.
type ScanConfig struct {
	Threshold int `mapstructure:"threshold"`
}

var defaults = map[string]interface{}{
	KeyOwner:          DefaultOwner,
	KeyMinWidth:       DefaultMinWidth,
	KeyMinHeight:      DefaultMinHeight,
	KeyCaptureTimeout: DefaultTimeout,
	KeyCaptureBackend: string(platform.BackendCommand),
	KeyOutputDir:      ".",
	KeyScanThreshold:  DefaultThreshold,
	KeyAnnotate:       false,
	KeyNotify:         false,
	KeyFormat:         string(output.FormatText),
	KeyVerbose:        false,
}

// NewViper creates a viper instance with defaults and environment binding.
// configFile, when set, must exist; otherwise window-qr.yaml is looked up in
// the working directory and $HOME/.config/window-qr and is optional.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configName))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.MinWidth < 0 || c.MinHeight < 0 {
		return fmt.Errorf("invalid minimum size %dx%d: must not be negative", c.MinWidth, c.MinHeight)
	}
	if c.Capture.Timeout <= 0 {
		return fmt.Errorf("invalid capture timeout %s: must be positive", c.Capture.Timeout)
	}
	if _, err := platform.ParseCaptureBackend(c.Capture.Backend); err != nil {
		return err
	}
	if c.Scan.Threshold < 0 || c.Scan.Threshold > 255 {
		return fmt.Errorf("invalid scan threshold %d: must be within 0-255", c.Scan.Threshold)
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// CaptureOptions converts the capture settings for platform.NewProvider.
func (c *Config) CaptureOptions() platform.CaptureOptions {
	backend, _ := platform.ParseCaptureBackend(c.Capture.Backend)
	return platform.CaptureOptions{
		Backend: backend,
		Timeout: c.Capture.Timeout,
	}
}

// ListOptions converts the target window settings.
func (c *Config) ListOptions() platform.ListOptions {
	return platform.ListOptions{
		Owner:     c.Owner,
		MinWidth:  c.MinWidth,
		MinHeight: c.MinHeight,
	}
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() output.Format {
	f, _ := output.ParseFormat(c.Format)
	return f
}
