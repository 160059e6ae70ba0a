package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/pathscribe/internal/annotate"
	"github.com/rshade/pathscribe/internal/config"
	"github.com/rshade/pathscribe/internal/ingest"
	"github.com/rshade/pathscribe/internal/kegg"
	"github.com/rshade/pathscribe/internal/logging"
	"github.com/rshade/pathscribe/internal/reference"
	"github.com/rshade/pathscribe/internal/tui"
)

// annotateParams holds the flag values for the annotate command.
type annotateParams struct {
	input       string
	daaResults  string
	out         string
	pathway     string
	refPath     string
	koToKegg    bool
	keggLimit   int
	dfSizeLimit int
	maxAttempts int
	noProgress  bool
}

// newAnnotateCmd creates the "annotate" subcommand.
//
// Registered flags:
//   - --input: feature abundance table (TSV/CSV) for local annotation
//   - --daa-results: DAA results table (TSV/CSV)
//   - --out: output path (stdout when omitted)
//   - --pathway: feature id space, one of ko, ec, metacyc
//   - --reference: custom reference TSV overriding the embedded mapping
//   - --ko-to-kegg: enrich significant KO rows from the KEGG REST service
//   - --kegg-limit, --df-size-limit, --max-attempts: enrichment tuning
//   - --no-progress: suppress the interactive progress bar
func newAnnotateCmd() *cobra.Command {
	var params annotateParams

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Annotate a feature table or DAA results with pathway descriptions",
		Long: `Annotate functional-pathway feature tables with human-readable descriptions.

With --input, the feature abundance table is joined against the local
reference for the chosen pathway kind. With --daa-results, the results
table is annotated the same way, or, with --ko-to-kegg, significant
rows (p_adjust < threshold) are enriched with pathway name, description,
class, and map fetched from the KEGG REST service in batches.`,
		Example: annotateCmdExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeAnnotate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.input, "input", "", "Feature abundance table (TSV or CSV)")
	cmd.Flags().StringVar(&params.daaResults, "daa-results", "", "DAA results table (TSV or CSV)")
	cmd.Flags().StringVar(&params.out, "out", "", "Output path (defaults to stdout)")
	cmd.Flags().StringVar(&params.pathway, "pathway", "", "Pathway kind: ko, ec, or metacyc (default from config)")
	cmd.Flags().StringVar(&params.refPath, "reference", "", "Custom reference TSV (id<TAB>description)")
	cmd.Flags().BoolVar(&params.koToKegg, "ko-to-kegg", false, "Enrich significant KO rows from KEGG")
	cmd.Flags().IntVar(&params.keggLimit, "kegg-limit", 0, "Feature ids per KEGG request (default from config)")
	cmd.Flags().IntVar(&params.dfSizeLimit, "df-size-limit", 0, "Max rows submitted for KEGG enrichment (default from config)")
	cmd.Flags().IntVar(&params.maxAttempts, "max-attempts", 0, "Retry attempts per chunk (default from config)")
	cmd.Flags().BoolVar(&params.noProgress, "no-progress", false, "Disable the interactive progress bar")

	return cmd
}

const annotateCmdExample = `  # Local annotation of a KO abundance table
  pathscribe annotate --input ko_abundance.tsv --pathway ko --out annotated.tsv

  # MetaCyc pathway table, CSV in, stdout out
  pathscribe annotate --input path_abun.csv --pathway metacyc

  # KEGG enrichment of significant DAA rows
  pathscribe annotate --daa-results daa.tsv --pathway ko --ko-to-kegg --out enriched.tsv`

// executeAnnotate dispatches to the local or remote annotation flow.
func executeAnnotate(cmd *cobra.Command, params annotateParams) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, params)

	if params.input == "" && params.daaResults == "" {
		return annotate.ErrInvalidInput
	}

	kind, err := annotate.ParsePathwayKind(cfg.Pathway.Kind)
	if err != nil {
		return fmt.Errorf("%w: got %q", annotate.ErrUnsupportedPathway, cfg.Pathway.Kind)
	}

	if params.input != "" {
		return annotateFeatureTable(ctx, cmd, params, kind)
	}
	if params.koToKegg {
		if kind != annotate.KindKO {
			return fmt.Errorf("--ko-to-kegg requires --pathway ko, got %q", kind)
		}
		return enrichDaaResults(ctx, cmd, params, cfg)
	}
	return annotateDaaResultsLocally(ctx, cmd, params, kind)
}

// applyFlagOverrides layers explicitly-set flags over config values.
func applyFlagOverrides(cfg *config.Config, params annotateParams) {
	if params.pathway != "" {
		cfg.Pathway.Kind = params.pathway
	}
	if params.keggLimit > 0 {
		cfg.Kegg.Limit = params.keggLimit
	}
	if params.dfSizeLimit > 0 {
		cfg.Pathway.DfSizeLimit = params.dfSizeLimit
	}
	if params.maxAttempts > 0 {
		cfg.Retry.MaxAttempts = params.maxAttempts
	}
}

// annotateFeatureTable runs the local annotation flow for an abundance
// table. The table and the reference load concurrently; both must
// succeed before the join.
func annotateFeatureTable(ctx context.Context, cmd *cobra.Command, params annotateParams, kind annotate.PathwayKind) error {
	var (
		table *ingest.FeatureTable
		ref   *reference.Reference
		g     errgroup.Group
	)

	g.Go(func() error {
		var err error
		table, err = ingest.LoadFeatureTable(params.input)
		return err
	})
	g.Go(func() error {
		var err error
		ref, err = loadReference(kind, params.refPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	rows := annotate.AnnotateFeatures(ctx, table.Rows, ref)

	return withOutput(params.out, func(w io.Writer) error {
		if err := writeFeatureTable(w, table.SampleNames, rows); err != nil {
			return err
		}
		printFeatureSummary(cmd, rows)
		return nil
	})
}

// annotateDaaResultsLocally joins a DAA results table against the local
// reference without any remote calls.
func annotateDaaResultsLocally(ctx context.Context, cmd *cobra.Command, params annotateParams, kind annotate.PathwayKind) error {
	var (
		rows []annotate.DaaResult
		ref  *reference.Reference
		g    errgroup.Group
	)

	g.Go(func() error {
		var err error
		rows, err = ingest.LoadDaaResults(params.daaResults)
		return err
	})
	g.Go(func() error {
		var err error
		ref, err = loadReference(kind, params.refPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	annotated := annotate.AnnotateDaaResults(ctx, rows, ref)

	return withOutput(params.out, func(w io.Writer) error {
		if err := writeDaaResults(w, annotated); err != nil {
			return err
		}
		printDaaSummary(cmd, len(rows), annotated)
		return nil
	})
}

// enrichDaaResults runs the remote KO→KEGG flow: significance selection,
// batched enrichment with progress, then output.
func enrichDaaResults(ctx context.Context, cmd *cobra.Command, params annotateParams, cfg *config.Config) error {
	log := logging.FromContext(ctx)

	rows, err := ingest.LoadDaaResults(params.daaResults)
	if err != nil {
		return err
	}

	selected, err := annotate.SelectSignificant(ctx, rows, cfg.Pathway.SignificanceThreshold, cfg.Pathway.DfSizeLimit)
	if err != nil {
		return err
	}

	sink, finish := newProgressSink(ctx, cmd, params.noProgress)
	defer finish()

	client := kegg.NewClient(kegg.WithBaseURL(cfg.Kegg.BaseURL))
	enricher, err := annotate.NewEnricher(client,
		annotate.WithChunkSize(cfg.Kegg.Limit),
		annotate.WithRetryPolicy(cfg.RetryPolicy()),
		annotate.WithProgressSink(sink),
	)
	if err != nil {
		return err
	}

	enriched, err := enricher.Enrich(ctx, selected)
	finish()
	if err != nil {
		return err
	}

	log.Info().
		Ctx(ctx).
		Int("input_rows", len(rows)).
		Int("enriched_rows", len(enriched)).
		Msg("KEGG enrichment finished")

	return withOutput(params.out, func(w io.Writer) error {
		if err := writeDaaResults(w, enriched); err != nil {
			return err
		}
		printDaaSummary(cmd, len(rows), enriched)
		return nil
	})
}

// newProgressSink picks the progress presentation: a Bubble Tea bar on
// interactive terminals, zerolog lines otherwise. The returned finish
// func is idempotent and waits for the UI to drain.
func newProgressSink(ctx context.Context, cmd *cobra.Command, noProgress bool) (annotate.ProgressSink, func()) {
	if noProgress || !isTerminal(os.Stdout) {
		return logSink{ctx: ctx}, func() {}
	}

	sink := tui.NewChannelSink()
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := tui.RunEnrichProgress(sink.Updates()); err != nil {
			cmd.PrintErrf("Warning: progress display failed: %v\n", err)
		}
	}()

	var closed bool
	return sink, func() {
		if closed {
			return
		}
		closed = true
		sink.Close()
		<-done
	}
}

// logSink reports chunk progress through the structured logger.
type logSink struct {
	ctx context.Context
}

func (s logSink) Report(completed, total int, elapsed time.Duration) {
	logger := logging.FromContext(s.ctx)
	logger.Info().
		Int("completed_chunks", completed).
		Int("total_chunks", total).
		Dur("elapsed", elapsed).
		Msg("chunk processed")
}

// loadReference loads the reference mapping for kind, preferring a
// user-supplied file over the embedded data.
func loadReference(kind annotate.PathwayKind, path string) (*reference.Reference, error) {
	if path != "" {
		return reference.LoadFile(kind, path)
	}
	return reference.Load(kind)
}

// withOutput runs fn against the --out file, or stdout when unset.
func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := fn(f); err != nil {
		return err
	}
	return f.Close()
}
