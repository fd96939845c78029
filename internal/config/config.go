// Package config loads storeview configuration from ~/.storeview/config.yaml
// and STOREVIEW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rshade/storeview/internal/bridge"
)

// Environment and file names.
const (
	EnvPrefix      = "STOREVIEW"
	EnvHome        = "STOREVIEW_HOME"
	ConfigFileName = "config.yaml"
	dirName        = ".storeview"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
)

var (
	// ErrMissingEndpoint is returned when no Admin API endpoint is configured.
	ErrMissingEndpoint = errors.New("store.endpoint is required")
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the full storeview configuration.
type Config struct {
	Store   StoreConfig   `mapstructure:"store" json:"store" yaml:"store"`
	View    ViewConfig    `mapstructure:"view" json:"view" yaml:"view"`
	Output  OutputConfig  `mapstructure:"output" json:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging" yaml:"logging"`

	// path is the file the config was read from, if any.
	path string
}

// StoreConfig locates and authenticates against the Admin GraphQL API.
type StoreConfig struct {
	Endpoint string        `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint"`
	Token    string        `mapstructure:"token" json:"token" yaml:"token"`
	AuthMode string        `mapstructure:"auth_mode" json:"auth_mode" yaml:"auth_mode"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
	// AppURL is the base of shareable links.
	AppURL string `mapstructure:"app_url" json:"app_url" yaml:"app_url"`
}

// ViewConfig controls how the last view is remembered.
type ViewConfig struct {
	StateFile string `mapstructure:"state_file" json:"state_file" yaml:"state_file"`
	Remember  bool   `mapstructure:"remember" json:"remember" yaml:"remember"`
}

// OutputConfig holds output defaults.
type OutputConfig struct {
	DefaultFormat string `mapstructure:"default_format" json:"default_format" yaml:"default_format"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
	File   string `mapstructure:"file" json:"file" yaml:"file"`
}

// Dir returns the storeview home directory: $STOREVIEW_HOME or ~/.storeview.
func Dir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(userHome, dirName)
}

// New returns the defaults.
func New() *Config {
	dir := Dir()
	return &Config{
		Store: StoreConfig{
			AuthMode: bridge.AuthModeSession,
			Timeout:  30 * time.Second, //nolint:mnd // Default request timeout.
		},
		View: ViewConfig{
			StateFile: filepath.Join(dir, "view.yaml"),
			Remember:  true,
		},
		Output: OutputConfig{DefaultFormat: FormatTable},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(dir, "logs", "storeview.log"),
		},
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("store.endpoint", d.Store.Endpoint)
	v.SetDefault("store.token", d.Store.Token)
	v.SetDefault("store.auth_mode", d.Store.AuthMode)
	v.SetDefault("store.timeout", d.Store.Timeout)
	v.SetDefault("store.app_url", d.Store.AppURL)
	v.SetDefault("view.state_file", d.View.StateFile)
	v.SetDefault("view.remember", d.View.Remember)
	v.SetDefault("output.default_format", d.Output.DefaultFormat)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

// Load reads defaults, then the config file, then STOREVIEW_* variables
// (STOREVIEW_STORE_ENDPOINT, STOREVIEW_LOGGING_LEVEL, ...). An empty path
// looks for config.yaml in Dir and tolerates its absence; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, New())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)))
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.path = v.ConfigFileUsed()
	return cfg, nil
}

// Path returns the file the config was read from, or "".
func (c *Config) Path() string {
	return c.path
}

// Validate checks settings that do not depend on the command being run.
func (c *Config) Validate() error {
	switch c.Store.AuthMode {
	case bridge.AuthModeSession, bridge.AuthModeAccessToken:
	default:
		return fmt.Errorf("%w: store.auth_mode %q must be %q or %q",
			ErrInvalidConfig, c.Store.AuthMode, bridge.AuthModeSession, bridge.AuthModeAccessToken)
	}
	if c.Store.Timeout < 0 {
		return fmt.Errorf("%w: store.timeout must be >= 0", ErrInvalidConfig)
	}
	if !IsValidFormat(c.Output.DefaultFormat) {
		return fmt.Errorf("%w: output.default_format %q", ErrInvalidConfig, c.Output.DefaultFormat)
	}
	return nil
}

// ValidateStore checks what a command needs to reach the Admin API.
func (c *Config) ValidateStore() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Store.Endpoint) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingEndpoint)
	}
	if c.Store.Token == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, bridge.ErrMissingToken)
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if out.Store.Token != "" {
		out.Store.Token = "********"
	}
	return out
}

// IsValidFormat reports whether format is a supported output format.
func IsValidFormat(format string) bool {
	switch format {
	case FormatTable, FormatJSON, FormatNDJSON, FormatYAML:
		return true
	default:
		return false
	}
}
