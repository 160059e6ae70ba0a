package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/pathscribe/internal/config"
	"github.com/rshade/pathscribe/internal/logging"
)

// loggingResult aliases the logging package's handle so root.go need not
// import it directly.
type loggingResult = logging.Result

// setupLogging configures logging based on config file, environment, and
// CLI flags, and attaches a run-scoped logger to the command context.
func setupLogging(cmd *cobra.Command) loggingResult {
	cfg, err := config.Load()
	if err != nil {
		cmd.PrintErrf("Warning: could not load config, using defaults: %v\n", err)
		cfg = config.Default()
	}

	loggingCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	result := logging.New(loggingCfg)
	logger = logging.ComponentLogger(result.Logger, "cli").
		With().
		Str("run_id", logging.NewRunID()).
		Logger()

	if result.FallbackReason != "" {
		cmd.PrintErrf("Warning: log file unavailable, logging to stderr: %s\n", result.FallbackReason)
	}

	ctx := logging.WithContext(cmd.Context(), logger)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}
