package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pathscribe/internal/annotate"
)

func strPtr(s string) *string { return &s }

func TestWriteFeatureTable(t *testing.T) {
	rows := []annotate.FeatureRow{
		{Feature: "K00001", Description: strPtr("alcohol dehydrogenase"), Samples: []float64{1.5, 0}},
		{Feature: "K99999", Samples: []float64{2, 3}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeFeatureTable(&buf, []string{"s1", "s2"}, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "feature\tdescription\ts1\ts2", lines[0])
	assert.Equal(t, "K00001\talcohol dehydrogenase\t1.5\t0", lines[1])
	assert.Equal(t, "K99999\tNA\t2\t3", lines[2])
}

func TestWriteDaaResults(t *testing.T) {
	rows := []annotate.DaaResult{
		{
			Feature:            "K00001",
			PAdjust:            0.001,
			PathwayName:        strPtr("Glycolysis"),
			PathwayDescription: strPtr("sugar breakdown"),
			PathwayClass:       strPtr("Metabolism"),
			PathwayMap:         strPtr("map00010"),
		},
		{Feature: "K00002", PAdjust: 0.04},
	}

	var buf bytes.Buffer
	require.NoError(t, writeDaaResults(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"feature\tp_adjust\tdescription\tpathway_name\tpathway_description\tpathway_class\tpathway_map",
		lines[0])
	assert.Equal(t, "K00001\t0.001\tNA\tGlycolysis\tsugar breakdown\tMetabolism\tmap00010", lines[1])
	assert.Equal(t, "K00002\t0.04\tNA\tNA\tNA\tNA\tNA", lines[2])
}

func TestOrNA(t *testing.T) {
	assert.Equal(t, "NA", orNA(nil))
	assert.Equal(t, "x", orNA(strPtr("x")))
}
