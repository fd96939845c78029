package config

import (
	"os"
	"path/filepath"

	"github.com/rshade/storeview/internal/logging"
)

// ToLoggingConfig converts the logging section for the logging package.
// A configured file sends output there; otherwise logs go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// EnsureLogDir creates the directory of the configured log file.
func (lc LoggingConfig) EnsureLogDir() error {
	if lc.File == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(lc.File), 0o700)
}
