package annotate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeResults(pAdjusts ...float64) []DaaResult {
	rows := make([]DaaResult, len(pAdjusts))
	for i, p := range pAdjusts {
		rows[i] = DaaResult{
			Feature:     "K" + string(rune('0'+i%10)) + "0000",
			PAdjust:     p,
			SourceIndex: i,
		}
	}
	return rows
}

func TestSelectSignificant(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps only rows below threshold sorted ascending", func(t *testing.T) {
		rows := makeResults(0.20, 0.01, 0.04, 0.05, 0.03)

		got, err := SelectSignificant(ctx, rows, 0.05, 1000)
		require.NoError(t, err)

		require.Len(t, got, 3)
		assert.Equal(t, []float64{0.01, 0.03, 0.04}, []float64{got[0].PAdjust, got[1].PAdjust, got[2].PAdjust})
		// Row identity survives the sort.
		assert.Equal(t, []int{1, 4, 2}, []int{got[0].SourceIndex, got[1].SourceIndex, got[2].SourceIndex})
	})

	t.Run("threshold is strict", func(t *testing.T) {
		rows := makeResults(0.05, 0.049999)

		got, err := SelectSignificant(ctx, rows, 0.05, 1000)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].SourceIndex)
	})

	t.Run("errors when nothing is significant", func(t *testing.T) {
		rows := makeResults(0.05, 0.5, 0.9)

		_, err := SelectSignificant(ctx, rows, 0.05, 1000)
		assert.ErrorIs(t, err, ErrNoSignificantFeatures)
	})

	t.Run("truncates to limit by ascending p", func(t *testing.T) {
		rows := makeResults(0.04, 0.01, 0.03, 0.02)

		got, err := SelectSignificant(ctx, rows, 0.05, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 0.01, got[0].PAdjust)
		assert.Equal(t, 0.02, got[1].PAdjust)
	})

	t.Run("ties keep original row order", func(t *testing.T) {
		rows := makeResults(0.02, 0.02, 0.02)

		got, err := SelectSignificant(ctx, rows, 0.05, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 0, got[0].SourceIndex)
		assert.Equal(t, 1, got[1].SourceIndex)
	})

	t.Run("idempotent on own output", func(t *testing.T) {
		rows := makeResults(0.04, 0.01, 0.03)

		once, err := SelectSignificant(ctx, rows, 0.05, 1000)
		require.NoError(t, err)
		twice, err := SelectSignificant(ctx, once, 0.05, 1000)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		rows := makeResults(0.04, 0.01)
		_, err := SelectSignificant(ctx, rows, 0.05, 1000)
		require.NoError(t, err)
		assert.Equal(t, 0.04, rows[0].PAdjust)
		assert.Equal(t, 0, rows[0].SourceIndex)
	})
}
