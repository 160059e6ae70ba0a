// Package cli wires the pathscribe commands: annotation, config
// management, and the logging/migration plumbing shared by all of them.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/pathscribe/internal/migration"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the pathscribe CLI. It
// wires up logging, the config migration check, and subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *loggingResult

	cmd := &cobra.Command{
		Use:     "pathscribe",
		Short:   "Pathway annotation for functional feature tables",
		Long:    "pathscribe: annotate KO/EC/MetaCyc feature tables with pathway descriptions, locally or via KEGG",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Check for config migration if in an interactive terminal
			_, skipMigration := os.LookupEnv("PATHSCRIBE_SKIP_MIGRATION_CHECK")
			if isTerminal(os.Stdin) && !skipMigration {
				if err := migration.RunMigration(cmd.ErrOrStderr()); err != nil {
					// Migration is best-effort; a failed check never blocks the command
					cmd.PrintErrf("Warning: config migration check failed: %v\n", err)
				}
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logResult != nil {
				logResult.Close()
			}
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newAnnotateCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Annotate a KO abundance table with local reference descriptions
  pathscribe annotate --input ko_abundance.tsv --pathway ko --out annotated.tsv

  # Annotate DAA results and enrich significant KOs from KEGG
  pathscribe annotate --daa-results daa.tsv --pathway ko --ko-to-kegg --out enriched.tsv

  # EC table against a custom reference file
  pathscribe annotate --input ec_abundance.tsv --pathway ec --reference ec_full.tsv

  # Initialize configuration
  pathscribe config init`
