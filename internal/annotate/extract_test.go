package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirst(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
		wantOK bool
	}{
		{name: "absent field", values: nil, want: "", wantOK: false},
		{name: "empty field", values: []string{}, want: "", wantOK: false},
		{name: "single value", values: []string{"Glycolysis"}, want: "Glycolysis", wantOK: true},
		{name: "multi valued takes first", values: []string{"first", "second"}, want: "first", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := First(tt.values)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstOrNil(t *testing.T) {
	t.Run("absent field returns nil", func(t *testing.T) {
		assert.Nil(t, FirstOrNil(nil))
	})

	t.Run("present field returns pointer to first", func(t *testing.T) {
		got := FirstOrNil([]string{"Glycolysis", "Gluconeogenesis"})
		require.NotNil(t, got)
		assert.Equal(t, "Glycolysis", *got)
	})
}
