package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFeatureTable(t *testing.T) {
	t.Run("tsv with OTU header", func(t *testing.T) {
		path := writeFile(t, "abundance.tsv",
			"#OTU ID\tsample1\tsample2\nK00001\t12.5\t0\nK00002\t3\t7.25\n")

		table, err := LoadFeatureTable(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"sample1", "sample2"}, table.SampleNames)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "K00001", table.Rows[0].Feature)
		assert.Equal(t, []float64{12.5, 0}, table.Rows[0].Samples)
		assert.Equal(t, []float64{3, 7.25}, table.Rows[1].Samples)
	})

	t.Run("csv extension switches delimiter", func(t *testing.T) {
		path := writeFile(t, "abundance.csv",
			"feature,s1\nEC:1.1.1.1,4.2\n")

		table, err := LoadFeatureTable(path)
		require.NoError(t, err)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "EC:1.1.1.1", table.Rows[0].Feature)
	})

	t.Run("unknown extension sniffs header", func(t *testing.T) {
		path := writeFile(t, "abundance.txt",
			"function,s1,s2\nPWY-6123,1,2\n")

		table, err := LoadFeatureTable(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"s1", "s2"}, table.SampleNames)
	})

	t.Run("rejects unknown id column", func(t *testing.T) {
		path := writeFile(t, "bad.tsv", "gene\ts1\nK00001\t1\n")
		_, err := LoadFeatureTable(path)
		assert.ErrorIs(t, err, ErrMissingFeature)
	})

	t.Run("rejects non-numeric sample", func(t *testing.T) {
		path := writeFile(t, "bad.tsv", "feature\ts1\nK00001\thigh\n")
		_, err := LoadFeatureTable(path)
		assert.ErrorIs(t, err, ErrNonNumericSample)
	})

	t.Run("rejects header-only table", func(t *testing.T) {
		path := writeFile(t, "empty.tsv", "feature\ts1\n")
		_, err := LoadFeatureTable(path)
		assert.ErrorIs(t, err, ErrEmptyTable)
	})
}

func TestLoadDaaResults(t *testing.T) {
	t.Run("resolves columns by name", func(t *testing.T) {
		path := writeFile(t, "daa.tsv",
			"feature\tmethod\tp_adjust\tdescription\n"+
				"K00001\tALDEx2\t0.001\tNA\n"+
				"K00002\tALDEx2\t0.2\talcohol dehydrogenase (NADP+)\n")

		rows, err := LoadDaaResults(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "K00001", rows[0].Feature)
		assert.Equal(t, 0.001, rows[0].PAdjust)
		assert.Equal(t, 0, rows[0].SourceIndex)
		assert.Nil(t, rows[0].Description, "NA should stay absent")

		assert.Equal(t, 1, rows[1].SourceIndex)
		require.NotNil(t, rows[1].Description)
		assert.Equal(t, "alcohol dehydrogenase (NADP+)", *rows[1].Description)
	})

	t.Run("column order does not matter", func(t *testing.T) {
		path := writeFile(t, "daa.tsv", "p_adjust\tfeature\n0.04\tK00003\n")

		rows, err := LoadDaaResults(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "K00003", rows[0].Feature)
		assert.Equal(t, 0.04, rows[0].PAdjust)
	})

	t.Run("requires feature column", func(t *testing.T) {
		path := writeFile(t, "daa.tsv", "id\tp_adjust\nK00001\t0.01\n")
		_, err := LoadDaaResults(path)
		assert.ErrorIs(t, err, ErrMissingFeature)
	})

	t.Run("requires p_adjust column", func(t *testing.T) {
		path := writeFile(t, "daa.tsv", "feature\tp_value\nK00001\t0.01\n")
		_, err := LoadDaaResults(path)
		assert.ErrorIs(t, err, ErrMissingPAdjust)
	})

	t.Run("rejects unparsable p_adjust", func(t *testing.T) {
		path := writeFile(t, "daa.tsv", "feature\tp_adjust\nK00001\tsignificant\n")
		_, err := LoadDaaResults(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDaaResults(filepath.Join(t.TempDir(), "nope.tsv"))
		assert.Error(t, err)
	})
}
