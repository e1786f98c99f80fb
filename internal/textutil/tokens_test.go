package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"punctuation only", "?!.,", []string{}},
		{"vietnamese sentence", "Tôi bị sốt, và đau họng!", []string{"tôi", "bị", "sốt", "và", "đau", "họng"}},
		{"digits kept", "sốt 39 độ", []string{"sốt", "39", "độ"}},
		{"hyphen splits", "dạ-dày", []string{"dạ", "dày"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFold_ComposesDecomposedText(t *testing.T) {
	decomposed := "ho\u0323\u0302ng"
	precomposed := "h\u1ed9ng"
	assert.NotEqual(t, decomposed, precomposed)
	assert.Equal(t, Fold(precomposed), Fold(decomposed))
	assert.Equal(t, []string{"h\u1ed9ng"}, Words("HO\u0323\u0302NG"))
}

func TestWordSet_Deduplicates(t *testing.T) {
	set := WordSet("ho ho HO khan")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "ho")
	assert.Contains(t, set, "khan")
}
