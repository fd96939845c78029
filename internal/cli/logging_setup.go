package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/storeview/internal/config"
	"github.com/rshade/storeview/internal/logging"
)

// drawsOnTerminal marks commands whose output is a full-screen program.
const drawsOnTerminal = "storeview/tui"

// setupLogging configures logging from the loaded config and CLI flags and
// stores a traced logger in the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) logging.LogPathResult {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	// A full-screen program owns the terminal, so its logs always go to a file.
	if _, ok := cmd.Annotations[drawsOnTerminal]; ok && loggingCfg.File == "" {
		loggingCfg.File = filepath.Join(config.Dir(), "logs", "storeview.log")
	}

	if loggingCfg.File != "" {
		if err := loggingCfg.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	} else if result.UsingFile && debug {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.CommandPath()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult == nil {
		return nil
	}
	logger.Debug().Ctx(cmd.Context()).Str("command", cmd.CommandPath()).Msg("command finished")
	return logResult.Close()
}
