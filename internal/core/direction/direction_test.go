package direction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"latin", "Hello", LTR},
		{"persian", "سلام", RTL},
		{"hebrew", "שלום", RTL},
		{"markup before persian", "## ۱. سلام", RTL},
		{"digits then latin", "123 abc", LTR},
		{"neutral only", "123 !?", RTL},
		{"empty", "", RTL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text, RTL))
		})
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, LTR, Parse("LTR", RTL))
	assert.Equal(t, RTL, Parse("rtl", LTR))
	assert.Equal(t, LTR, Parse("auto", LTR))
	assert.Equal(t, "rtl", RTL.String())
}
