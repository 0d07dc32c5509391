package style

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want draw.Color
		ok   bool
	}{
		{"#16a34a", draw.Color{R: 22, G: 163, B: 74}, true},
		{"#FFF", draw.Color{R: 255, G: 255, B: 255}, true},
		{" #000000 ", draw.Color{}, true},
		{"rgb(1, 2, 3)", draw.Color{R: 1, G: 2, B: 3}, true},
		{"rgb(1,2,300)", draw.Color{}, false},
		{"#12345", draw.Color{}, false},
		{"#gggggg", draw.Color{}, false},
		{"red", draw.Color{}, false},
		{"", draw.Color{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	th := DefaultTheme()
	for _, c := range append([]draw.Color{th.StatusOK, th.StatusIssue, th.StatusWarn}, th.Palette...) {
		got, ok := ParseColor(Hex(c))
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	assert.Equal(t, "#ff0000", Hex(draw.Color{R: 400, G: -3}))
}

func TestPaletteColorWraps(t *testing.T) {
	th := DefaultTheme()
	assert.Equal(t, th.Palette[0], th.PaletteColor(len(th.Palette)))

	th.Palette = nil
	assert.Equal(t, th.Primary, th.PaletteColor(3))
}
