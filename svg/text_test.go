package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/bidi"
)

func TestBidiRuns(t *testing.T) {
	tests := []struct {
		name string
		text string
		base bidi.Direction
		rtl  bool
	}{
		{"latin", "hello", bidi.Neutral, false},
		{"latin forced ltr", "hello", bidi.LeftToRight, false},
		{"hebrew", "שלום", bidi.RightToLeft, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := bidiRuns(tt.text, tt.base)
			require.NotEmpty(t, runs)
			total := 0
			for _, r := range runs {
				assert.Equal(t, tt.rtl, r.rtl)
				total += len(r.runes)
			}
			assert.Equal(t, len([]rune(tt.text)), total, "no runes lost")
		})
	}
}

func TestBidiRunsEmpty(t *testing.T) {
	assert.Empty(t, bidiRuns("", bidi.Neutral))
}
