package text

import (
	"strings"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
)

// Ellipsis terminates truncated lines. It exists in Windows-1252.
const Ellipsis = "…"

// Wrap breaks s into lines no wider than maxWidth. Explicit newlines start a
// new line, runs of whitespace collapse, and words wider than maxWidth are
// split between runes. The result always has at least one line.
func Wrap(m Measurer, font draw.Font, s string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		lines = append(lines, wrapParagraph(m, font, para, maxWidth)...)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func wrapParagraph(m Measurer, font draw.Font, para string, maxWidth float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.Width(font, candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if m.Width(font, word) <= maxWidth {
			current = word
			continue
		}
		pieces := splitWord(m, font, word, maxWidth)
		lines = append(lines, pieces[:len(pieces)-1]...)
		current = pieces[len(pieces)-1]
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitWord hard-breaks a single word; every piece holds at least one rune
func splitWord(m Measurer, font draw.Font, word string, maxWidth float64) []string {
	var pieces []string
	runes := []rune(word)
	start := 0
	for start < len(runes) {
		end := start + 1
		for end < len(runes) && m.Width(font, string(runes[start:end+1])) <= maxWidth {
			end++
		}
		pieces = append(pieces, string(runes[start:end]))
		start = end
	}
	return pieces
}

// Truncate shortens s so that s plus an ellipsis fits in maxWidth
func Truncate(m Measurer, font draw.Font, s string, maxWidth float64) string {
	if m.Width(font, s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		cut := strings.TrimRight(string(runes[:n]), " ") + Ellipsis
		if m.Width(font, cut) <= maxWidth {
			return cut
		}
	}
	return Ellipsis
}
