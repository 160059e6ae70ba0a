package kegg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `ENTRY       K00001                      KO
NAME        E1.1.1.1, adh
DESCRIPTION alcohol dehydrogenase [EC:1.1.1.1]
CLASS       Metabolism; Carbohydrate metabolism
            Metabolism; Energy metabolism
///
ENTRY       map00010                    Pathway
NAME        Glycolysis / Gluconeogenesis
PATHWAY_MAP map00010  Glycolysis / Gluconeogenesis
///
`

func TestParseFlatFile(t *testing.T) {
	t.Run("parses multiple entries", func(t *testing.T) {
		entries, err := ParseFlatFile(strings.NewReader(sampleResponse))
		require.NoError(t, err)
		require.Len(t, entries, 2)

		first := entries[0]
		assert.Equal(t, "K00001", first.ID)
		assert.Equal(t, []string{"E1.1.1.1, adh"}, first.Name)
		assert.Equal(t, []string{"alcohol dehydrogenase [EC:1.1.1.1]"}, first.Description)
		assert.Nil(t, first.PathwayMap)

		second := entries[1]
		assert.Equal(t, "map00010", second.ID)
		assert.Equal(t, []string{"Glycolysis / Gluconeogenesis"}, second.Name)
		assert.Nil(t, second.Description)
		require.Len(t, second.PathwayMap, 1)
	})

	t.Run("continuation lines become additional values", func(t *testing.T) {
		entries, err := ParseFlatFile(strings.NewReader(sampleResponse))
		require.NoError(t, err)

		assert.Equal(t, []string{
			"Metabolism; Carbohydrate metabolism",
			"Metabolism; Energy metabolism",
		}, entries[0].Class)
	})

	t.Run("final entry without terminator still parses", func(t *testing.T) {
		input := "ENTRY       K00002                      KO\nNAME        AKR1A1\n"
		entries, err := ParseFlatFile(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "K00002", entries[0].ID)
	})

	t.Run("unknown fields are skipped", func(t *testing.T) {
		input := "ENTRY       K00003                      KO\nSYMBOL      hom\nNAME        hom\n///\n"
		entries, err := ParseFlatFile(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, []string{"hom"}, entries[0].Name)
	})

	t.Run("empty body yields no entries", func(t *testing.T) {
		entries, err := ParseFlatFile(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("entry without ENTRY line is malformed", func(t *testing.T) {
		input := "NAME        orphaned\n///\n"
		_, err := ParseFlatFile(strings.NewReader(input))
		assert.Error(t, err)
	})
}
