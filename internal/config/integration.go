package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	globalConfig   *Config      //nolint:gochecknoglobals // Set once per CLI invocation.
	globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfig.
)

// SetGlobalConfig stores the configuration loaded for this invocation.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the stored configuration, or defaults when nothing
// has been loaded.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg == nil {
		return New()
	}
	return cfg
}

// ResetGlobalConfigForTest clears the stored configuration.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetOutputFormat returns flagValue when set, else the configured default.
func GetOutputFormat(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return GetGlobalConfig().Output.DefaultFormat
}

// WriteDefault writes the default config to path. It refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(New())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
