package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Selection
		n    int
		want Selection
	}{
		{"inside", Selection{1, 3}, 5, Selection{1, 3}},
		{"reversed", Selection{4, 2}, 5, Selection{2, 4}},
		{"past end", Selection{3, 9}, 5, Selection{3, 5}},
		{"negative", Selection{-2, 1}, 5, Selection{0, 1}},
		{"empty doc", Selection{2, 2}, 0, Selection{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp(tt.n))
		})
	}
}

func TestSelectionHelpers(t *testing.T) {
	assert.True(t, Caret(3).Empty())
	assert.Equal(t, 4, Selection{1, 5}.Len())
}
