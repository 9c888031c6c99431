package render

import (
	"github.com/schemavis/schemavis/pkg/fonts"
)

const ellipsis = "…"

// truncate shortens s until it measures at most maxWidth, appending an
// ellipsis when anything was cut. The second return reports whether the
// text was shortened. Binary search over the rune count keeps this
// cheap even for long documentation strings.
func truncate(s string, maxWidth float64, m fonts.Measurer, family string, size float64) (string, bool) {
	if m.Width(s, family, size) <= maxWidth {
		return s, false
	}
	runes := []rune(s)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.Width(string(runes[:mid])+ellipsis, family, size) <= maxWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return string(runes[:lo]) + ellipsis, true
}

// wrap splits s into at most maxLines lines that each fit maxWidth,
// breaking on spaces. The last line is truncated with an ellipsis when
// text remains.
func wrap(s string, maxWidth float64, maxLines int, m fonts.Measurer, family string, size float64) []string {
	words := splitWords(s)
	var lines []string
	var line string
	for i := 0; i < len(words); i++ {
		candidate := words[i]
		if line != "" {
			candidate = line + " " + words[i]
		}
		if m.Width(candidate, family, size) <= maxWidth || line == "" {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = words[i]
		if len(lines) == maxLines-1 {
			rest := line
			for j := i + 1; j < len(words); j++ {
				rest += " " + words[j]
			}
			last, _ := truncate(rest, maxWidth, m, family, size)
			return append(lines, last)
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\n' || r == '\t' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}
