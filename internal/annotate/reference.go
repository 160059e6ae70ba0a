package annotate

import (
	"context"

	"github.com/rshade/pathscribe/internal/logging"
)

// Describer resolves a feature id to a human-readable description. When
// multiple reference entries share an id the implementation returns the
// first in the reference's natural order.
type Describer interface {
	Describe(id string) (string, bool)
}

// AnnotateFeatures returns a new row slice with Description populated
// from ref for every row whose feature id has a reference entry. Rows
// without a match keep a nil description. The input slice is not
// modified, and re-annotating an already-annotated table with the same
// reference yields the same descriptions.
func AnnotateFeatures(ctx context.Context, rows []FeatureRow, ref Describer) []FeatureRow {
	log := logging.FromContext(ctx)

	out := make([]FeatureRow, len(rows))
	matched := 0
	for i, row := range rows {
		out[i] = row
		if desc, ok := ref.Describe(row.Feature); ok {
			out[i].Description = &desc
			matched++
		} else {
			out[i].Description = nil
		}
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "annotate").
		Int("rows", len(rows)).
		Int("matched", matched).
		Msg("feature table annotated against local reference")

	return out
}

// AnnotateDaaResults is AnnotateFeatures for DAA results tables: it
// returns a new row slice with Description resolved from ref, leaving
// every other field untouched.
func AnnotateDaaResults(ctx context.Context, rows []DaaResult, ref Describer) []DaaResult {
	log := logging.FromContext(ctx)

	out := make([]DaaResult, len(rows))
	matched := 0
	for i, row := range rows {
		out[i] = row
		if desc, ok := ref.Describe(row.Feature); ok {
			out[i].Description = &desc
			matched++
		} else {
			out[i].Description = nil
		}
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "annotate").
		Int("rows", len(rows)).
		Int("matched", matched).
		Msg("DAA results annotated against local reference")

	return out
}
