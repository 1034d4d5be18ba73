package sizeorder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "letters with unranked token",
			input: []string{"XL", "S", "M", "Zed", "XS"},
			want:  []string{"XS", "S", "M", "XL", "Zed"},
		},
		{
			name:  "case insensitive",
			input: []string{"xl", "s", "M"},
			want:  []string{"s", "M", "xl"},
		},
		{
			name:  "numeric child before numeric adult",
			input: []string{"32", "10", "2", "28"},
			want:  []string{"2", "10", "28", "32"},
		},
		{
			name:  "hybrids between letters",
			input: []string{"L", "S-M", "M", "S"},
			want:  []string{"S", "S-M", "M", "L"},
		},
		{
			name:  "bands",
			input: []string{"M", "3T", "6M", "8Y", "30"},
			want:  []string{"6M", "3T", "8Y", "M", "30"},
		},
		{
			name:  "unranked keep discovery order",
			input: []string{"Petite", "M", "Tall", "Regular", "S"},
			want:  []string{"S", "M", "Petite", "Tall", "Regular"},
		},
		{
			name:  "empty",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	input := []string{"XL", "S"}
	_ = Sort(input)
	assert.Equal(t, []string{"XL", "S"}, input)
}

func TestCompare(t *testing.T) {
	c := New(nil)

	assert.Negative(t, c.Compare("XL", "XXL"))
	assert.Positive(t, c.Compare("XXL", "XL"))
	assert.Negative(t, c.Compare("2", "10"))
	assert.Negative(t, c.Compare("M", "Unknown"))
	assert.Positive(t, c.Compare("Unknown", "M"))
	assert.Zero(t, c.Compare("Foo", "Bar"))
	assert.Zero(t, c.Compare("8", "8Y"), "numeric child and youth share a band")
}

func TestNewRanks_Injected(t *testing.T) {
	ranks := NewRanks("test", map[string]float64{"petite": 1, "regular": 2, "tall": 3})
	c := New(ranks)

	assert.Equal(t, "test", c.Ranks().Version())
	assert.Equal(t, []string{"Petite", "Regular", "Tall", "M"}, c.Sorted([]string{"Tall", "M", "Regular", "Petite"}))
}

func TestLoadRanks(t *testing.T) {
	doc := `
version: eu-2025
ranks:
  xs: 1
  s: 2
  m: 3
`
	ranks, err := LoadRanks(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "eu-2025", ranks.Version())
	assert.Equal(t, 3, ranks.Len())

	r, ok := ranks.Rank("XS")
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 0)
}

func TestLoadRanks_Errors(t *testing.T) {
	_, err := LoadRanks(strings.NewReader("version: x\n"))
	require.Error(t, err)

	_, err = LoadRanks(strings.NewReader("ranks: [1, 2"))
	require.Error(t, err)
}

func TestDefaultRanks(t *testing.T) {
	ranks := DefaultRanks()
	assert.Equal(t, DefaultVersion, ranks.Version())

	for _, token := range []string{"3M", "2T", "16", "16Y", "XXS", "5XL", "S-M", "L-XL", "50"} {
		_, ok := ranks.Rank(token)
		assert.True(t, ok, "expected %q to be ranked", token)
	}
	_, ok := ranks.Rank("52")
	assert.False(t, ok)
}
