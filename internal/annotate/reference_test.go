package annotate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapDescriber is a test Describer over a plain map.
type mapDescriber map[string]string

func (m mapDescriber) Describe(id string) (string, bool) {
	desc, ok := m[id]
	return desc, ok
}

func TestAnnotateFeatures(t *testing.T) {
	ctx := context.Background()
	ref := mapDescriber{
		"K00001": "alcohol dehydrogenase",
		"K00002": "alcohol dehydrogenase (NADP+)",
	}

	t.Run("populates descriptions for matched ids", func(t *testing.T) {
		rows := []FeatureRow{
			{Feature: "K00001", Samples: []float64{1, 2}},
			{Feature: "K99999", Samples: []float64{3, 4}},
			{Feature: "K00002"},
		}

		got := AnnotateFeatures(ctx, rows, ref)
		require.Len(t, got, 3)

		require.NotNil(t, got[0].Description)
		assert.Equal(t, "alcohol dehydrogenase", *got[0].Description)
		assert.Nil(t, got[1].Description)
		require.NotNil(t, got[2].Description)
		assert.Equal(t, "alcohol dehydrogenase (NADP+)", *got[2].Description)

		// Sample columns survive untouched.
		assert.Equal(t, []float64{1, 2}, got[0].Samples)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		rows := []FeatureRow{{Feature: "K00001"}}
		_ = AnnotateFeatures(ctx, rows, ref)
		assert.Nil(t, rows[0].Description)
	})

	t.Run("idempotent", func(t *testing.T) {
		rows := []FeatureRow{{Feature: "K00001"}, {Feature: "K99999"}}
		once := AnnotateFeatures(ctx, rows, ref)
		twice := AnnotateFeatures(ctx, once, ref)
		assert.Equal(t, once, twice)
	})
}

func TestAnnotateDaaResults(t *testing.T) {
	ctx := context.Background()
	ref := mapDescriber{"K00001": "alcohol dehydrogenase"}

	rows := []DaaResult{
		{Feature: "K00001", PAdjust: 0.01, SourceIndex: 0},
		{Feature: "K99999", PAdjust: 0.02, SourceIndex: 1},
	}

	got := AnnotateDaaResults(ctx, rows, ref)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Description)
	assert.Equal(t, "alcohol dehydrogenase", *got[0].Description)
	assert.Nil(t, got[1].Description)
	// Non-description fields are untouched.
	assert.Equal(t, 0.02, got[1].PAdjust)
	assert.Equal(t, 1, got[1].SourceIndex)
}

func TestParsePathwayKind(t *testing.T) {
	for _, valid := range []string{"ko", "ec", "metacyc"} {
		kind, err := ParsePathwayKind(valid)
		require.NoError(t, err)
		assert.Equal(t, PathwayKind(valid), kind)
	}

	_, err := ParsePathwayKind("kegg")
	assert.ErrorIs(t, err, ErrUnsupportedPathway)
}
