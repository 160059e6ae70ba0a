package annotate

import (
	"context"
	"sort"

	"github.com/rshade/pathscribe/internal/logging"
)

// DefaultSignificanceThreshold is the p_adjust cutoff below which a row
// counts as significant.
const DefaultSignificanceThreshold = 0.05

// DefaultDfSizeLimit caps the number of rows eligible for remote
// enrichment in a single run.
const DefaultDfSizeLimit = 1000

// SelectSignificant filters a DAA results table down to the rows eligible
// for remote enrichment:
//
//  1. Keep rows with PAdjust < threshold.
//  2. Fail with ErrNoSignificantFeatures when nothing is retained.
//  3. Stable-sort the retained rows by ascending PAdjust (ties keep
//     original row order) and truncate to at most limit rows.
//
// The input slice is never mutated; the returned rows are copies whose
// SourceIndex still identifies the originating row. Running the
// selector on its own output is a no-op once the row count is within
// limit.
func SelectSignificant(ctx context.Context, rows []DaaResult, threshold float64, limit int) ([]DaaResult, error) {
	log := logging.FromContext(ctx)

	retained := make([]DaaResult, 0, len(rows))
	for _, row := range rows {
		if row.PAdjust < threshold {
			retained = append(retained, row)
		}
	}

	if len(retained) == 0 {
		return nil, ErrNoSignificantFeatures
	}

	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].PAdjust < retained[j].PAdjust
	})

	if limit > 0 && len(retained) > limit {
		log.Warn().
			Ctx(ctx).
			Str("component", "annotate").
			Int("retained", len(retained)).
			Int("limit", limit).
			Msg("significant rows exceed enrichment cap, truncating by ascending p_adjust")
		retained = retained[:limit]
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "annotate").
		Int("input_rows", len(rows)).
		Int("selected_rows", len(retained)).
		Float64("threshold", threshold).
		Msg("significance selection complete")

	return retained, nil
}
