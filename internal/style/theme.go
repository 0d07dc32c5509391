package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
)

// Theme holds the colours and type sizes shared by every block renderer
type Theme struct {
	FontFamily string

	HeadingSize float64
	BodySize    float64
	SmallSize   float64
	LineHeight  float64 // multiple of the font size
	BlockGap    float64
	Padding     float64

	Text        draw.Color
	Muted       draw.Color
	Primary     draw.Color
	HeaderFill  draw.Color
	HeaderText  draw.Color
	StripeFill  draw.Color
	ShadeFill   draw.Color
	Rule        draw.Color
	StatusOK    draw.Color
	StatusIssue draw.Color
	StatusWarn  draw.Color
	StatusNA    draw.Color

	// Palette is cycled for pie slices without an explicit colour
	Palette []draw.Color
}

// DefaultTheme returns the report look used by the web application
func DefaultTheme() Theme {
	return Theme{
		FontFamily:  "Helvetica",
		HeadingSize: 16,
		BodySize:    10,
		SmallSize:   8,
		LineHeight:  1.35,
		BlockGap:    8,
		Padding:     4,

		Text:        draw.Color{R: 31, G: 41, B: 55},
		Muted:       draw.Color{R: 107, G: 114, B: 128},
		Primary:     draw.Color{R: 30, G: 58, B: 95},
		HeaderFill:  draw.Color{R: 30, G: 58, B: 95},
		HeaderText:  draw.Color{R: 255, G: 255, B: 255},
		StripeFill:  draw.Color{R: 241, G: 245, B: 249},
		ShadeFill:   draw.Color{R: 243, G: 244, B: 246},
		Rule:        draw.Color{R: 220, G: 220, B: 220},
		StatusOK:    draw.Color{R: 22, G: 163, B: 74},
		StatusIssue: draw.Color{R: 220, G: 38, B: 38},
		StatusWarn:  draw.Color{R: 234, G: 179, B: 8},
		StatusNA:    draw.Color{R: 107, G: 114, B: 128},

		Palette: []draw.Color{
			{R: 34, G: 197, B: 94},
			{R: 239, G: 68, B: 68},
			{R: 234, G: 179, B: 8},
			{R: 59, G: 130, B: 246},
			{R: 168, G: 85, B: 247},
			{R: 107, G: 114, B: 128},
		},
	}
}

// Font returns the theme font at the given style and size
func (t Theme) Font(style string, size float64) draw.Font {
	return draw.Font{Family: t.FontFamily, Style: style, Size: size}
}

// PaletteColor returns the i-th palette colour, wrapping around
func (t Theme) PaletteColor(i int) draw.Color {
	if len(t.Palette) == 0 {
		return t.Primary
	}
	return t.Palette[i%len(t.Palette)]
}

// ParseColor parses a CSS-like colour value (#RGB, #RRGGBB or rgb(r,g,b)).
// The boolean is false when the value is not understood.
func ParseColor(value string) (draw.Color, bool) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "#") {
		if r, g, b, ok := parseHexColor(value); ok {
			return draw.Color{R: r, G: g, B: b}, true
		}
		return draw.Color{}, false
	}

	inner, found := strings.CutPrefix(value, "rgb(")
	if !found {
		return draw.Color{}, false
	}
	inner = strings.TrimSuffix(inner, ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return draw.Color{}, false
	}
	var rgb [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return draw.Color{}, false
		}
		rgb[i] = v
	}
	return draw.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, true
}

// Hex formats a colour as #rrggbb
func Hex(c draw.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

func clamp(v int) int {
	return min(max(v, 0), 255)
}

// parseHexColor parses #RRGGBB or #RGB into r,g,b
func parseHexColor(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
