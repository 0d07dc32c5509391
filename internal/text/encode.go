// Package text prepares strings for the core PDF fonts: normalisation,
// single-byte encoding, measurement and line wrapping.
package text

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Replacement is written for runes the core fonts cannot show
const Replacement = '?'

// Encode converts s to the Windows-1252 byte string expected by the core
// fonts. Input is NFC-normalised first so decomposed letters such as
// "a" + U+030A collapse to a single encodable rune.
func Encode(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t':
			b.WriteByte(' ')
		case r < 0x20:
			// control characters have no glyph
		case r < 0x80:
			b.WriteByte(byte(r))
		default:
			if c, ok := charmap.Windows1252.EncodeRune(r); ok {
				b.WriteByte(c)
			} else {
				b.WriteByte(Replacement)
			}
		}
	}
	return b.String()
}

// Clean collapses runs of whitespace into single spaces and trims the ends
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
