package annotate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rshade/pathscribe/internal/batch"
	"github.com/rshade/pathscribe/internal/kegg"
	"github.com/rshade/pathscribe/internal/logging"
)

// DefaultKeggLimit is the per-chunk feature-id count, matching the KEGG
// REST service's per-call ceiling.
const DefaultKeggLimit = kegg.MaxIDsPerRequest

// Lookup is the remote pathway-lookup collaborator. Implementations may
// omit entries for unknown ids and may fail transiently; the enricher
// retries failures under its retry policy.
type Lookup interface {
	Get(ctx context.Context, ids []string) ([]kegg.Entry, error)
}

// ProgressSink receives chunk-completion updates. Presentation only: a
// sink has no effect on results.
type ProgressSink interface {
	Report(completed, total int, elapsed time.Duration)
}

// Enricher populates pathway metadata on DAA result rows by querying a
// remote lookup in fixed-size chunks.
type Enricher struct {
	lookup    Lookup
	chunkSize int
	retry     RetryPolicy
	sink      ProgressSink
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithChunkSize overrides the per-request id count. It must stay within
// the remote service's ceiling.
func WithChunkSize(size int) EnricherOption {
	return func(e *Enricher) {
		e.chunkSize = size
	}
}

// WithRetryPolicy overrides the per-chunk retry policy.
func WithRetryPolicy(policy RetryPolicy) EnricherOption {
	return func(e *Enricher) {
		e.retry = policy
	}
}

// WithProgressSink sets a sink for chunk-completion updates.
func WithProgressSink(sink ProgressSink) EnricherOption {
	return func(e *Enricher) {
		e.sink = sink
	}
}

// NewEnricher creates an enricher around the given remote lookup.
func NewEnricher(lookup Lookup, opts ...EnricherOption) (*Enricher, error) {
	if lookup == nil {
		return nil, errors.New("lookup collaborator cannot be nil")
	}

	e := &Enricher{
		lookup:    lookup,
		chunkSize: DefaultKeggLimit,
		retry:     DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.chunkSize < 1 || e.chunkSize > kegg.MaxIDsPerRequest {
		return nil, fmt.Errorf("chunk size must be between 1 and %d, got %d",
			kegg.MaxIDsPerRequest, e.chunkSize)
	}

	return e, nil
}

// Enrich returns a new row slice with PathwayName, PathwayDescription,
// PathwayClass, and PathwayMap populated for every row whose feature id
// the remote service returned an entry for. Rows are expected to have
// passed SelectSignificant already.
//
// Chunks are processed strictly sequentially, one remote call
// outstanding at a time, and merged in ascending original-row order.
// A chunk whose query exhausts the retry budget aborts the whole run
// with ErrRemoteUnavailable; ids the service silently drops are not
// errors and leave their rows' pathway fields nil.
func (e *Enricher) Enrich(ctx context.Context, rows []DaaResult) ([]DaaResult, error) {
	log := logging.FromContext(ctx)

	out := make([]DaaResult, len(rows))
	copy(out, rows)
	if len(out) == 0 {
		return out, nil
	}

	chunker, err := batch.NewChunker[DaaResult](e.chunkSize)
	if err != nil {
		return nil, err
	}
	if e.sink != nil {
		chunker = chunker.WithProgressCallback(func(progress *batch.Progress) {
			snap := progress.Snapshot()
			e.sink.Report(snap.ProcessedChunks, snap.TotalChunks, snap.ElapsedTime)
		})
	}

	log.Info().
		Ctx(ctx).
		Str("component", "annotate").
		Str("operation", "enrich").
		Int("rows", len(out)).
		Int("chunk_size", e.chunkSize).
		Int("chunks", chunker.NumChunks(len(out))).
		Msg("starting batched pathway enrichment")

	err = chunker.Process(ctx, out, func(ctx context.Context, chunk []DaaResult, bounds batch.Bounds, chunkIndex int) error {
		return e.enrichChunk(ctx, chunk, bounds, chunkIndex)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Ctx(ctx).
		Str("component", "annotate").
		Str("operation", "enrich").
		Int("rows", len(out)).
		Msg("pathway enrichment complete")

	return out, nil
}

// enrichChunk queries one chunk's ids and writes matched pathway fields
// back into the chunk rows. The chunk slice aliases the output sequence,
// so writes land at absolute row positions.
func (e *Enricher) enrichChunk(ctx context.Context, chunk []DaaResult, bounds batch.Bounds, chunkIndex int) error {
	log := logging.FromContext(ctx)

	ids := make([]string, len(chunk))
	for i := range chunk {
		ids[i] = chunk[i].Feature
	}

	var entries []kegg.Entry
	err := e.retry.do(ctx, func() error {
		result, lookupErr := e.lookup.Get(ctx, ids)
		if lookupErr != nil {
			log.Warn().
				Ctx(ctx).
				Str("component", "annotate").
				Int("chunk", chunkIndex).
				Err(lookupErr).
				Msg("chunk query failed, will retry")
			return lookupErr
		}
		entries = result
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: chunk %d [%d,%d): %w",
			ErrRemoteUnavailable, chunkIndex, bounds.Start, bounds.End, err)
	}

	// Match purely by id intersection. The response may cover a strict
	// subset of the requested ids, and may in principle carry entries
	// for ids never requested; neither is positional.
	byID := make(map[string]kegg.Entry, len(entries))
	for _, entry := range entries {
		if _, seen := byID[entry.ID]; !seen {
			byID[entry.ID] = entry
		}
	}

	matched := 0
	for i := range chunk {
		entry, ok := byID[chunk[i].Feature]
		if !ok {
			continue
		}
		matched++
		chunk[i].PathwayName = FirstOrNil(entry.Name)
		chunk[i].PathwayDescription = FirstOrNil(entry.Description)
		chunk[i].PathwayClass = FirstOrNil(entry.Class)
		chunk[i].PathwayMap = FirstOrNil(entry.PathwayMap)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "annotate").
		Int("chunk", chunkIndex).
		Int("requested", len(ids)).
		Int("matched", matched).
		Msg("chunk merged")

	return nil
}
