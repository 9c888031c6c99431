// Package fonts provides font constants and text measurement for SVG
// rendering.
//
// The renderer needs to know how wide a string will draw before it can
// truncate labels, but it runs headless: there is no live rendering
// surface to ask. Measurement is therefore a narrow capability (text,
// font family, size in, rendered width out) with a metrics-table
// implementation here. Interactive hosts can substitute a measurer
// backed by their real text engine.
package fonts

// Measurer reports the rendered width of text in user units.
type Measurer interface {
	Width(text, family string, size float64) float64
}

// Family is the default font stack for diagram labels.
const Family = "Helvetica, Arial, sans-serif"

// MonoFamily is the font stack for lexical values (facets, patterns).
const MonoFamily = "Menlo, Consolas, monospace"

// advanceTable holds per-rune advance widths for a generic sans-serif
// face, expressed as fractions of the font size. Derived from Helvetica
// metrics; truncation decisions only need an approximate fit.
var advanceTable = map[rune]float64{
	'i': 0.222, 'j': 0.222, 'l': 0.222, 'f': 0.278, 't': 0.278, 'r': 0.333,
	'I': 0.278, 'J': 0.5, '.': 0.278, ',': 0.278, ':': 0.278, ';': 0.278,
	' ': 0.278, '(': 0.333, ')': 0.333, '[': 0.278, ']': 0.278, '-': 0.333,
	'a': 0.556, 'b': 0.556, 'c': 0.5, 'd': 0.556, 'e': 0.556, 'g': 0.556,
	'h': 0.556, 'k': 0.5, 'n': 0.556, 'o': 0.556, 'p': 0.556, 'q': 0.556,
	's': 0.5, 'u': 0.556, 'v': 0.5, 'x': 0.5, 'y': 0.5, 'z': 0.5,
	'm': 0.833, 'w': 0.722,
	'A': 0.667, 'B': 0.667, 'C': 0.722, 'D': 0.722, 'E': 0.667, 'F': 0.611,
	'G': 0.778, 'H': 0.722, 'K': 0.667, 'L': 0.556, 'M': 0.833, 'N': 0.722,
	'O': 0.778, 'P': 0.667, 'Q': 0.778, 'R': 0.722, 'S': 0.667, 'T': 0.611,
	'U': 0.722, 'V': 0.667, 'W': 0.944, 'X': 0.667, 'Y': 0.667, 'Z': 0.611,
	'0': 0.556, '1': 0.556, '2': 0.556, '3': 0.556, '4': 0.556, '5': 0.556,
	'6': 0.556, '7': 0.556, '8': 0.556, '9': 0.556,
	'…': 1.0,
}

// defaultAdvance is used for runes missing from the table.
const defaultAdvance = 0.6

// monoAdvance is the fixed advance for monospace families.
const monoAdvance = 0.6

// TableMeasurer measures text against the built-in advance table.
// The zero value is ready to use.
type TableMeasurer struct{}

// Width implements Measurer.
func (TableMeasurer) Width(text, family string, size float64) float64 {
	if family == MonoFamily {
		return float64(len([]rune(text))) * monoAdvance * size
	}
	var w float64
	for _, r := range text {
		adv, ok := advanceTable[r]
		if !ok {
			adv = defaultAdvance
		}
		w += adv
	}
	return w * size
}

// Default returns the standard measurer.
func Default() Measurer { return TableMeasurer{} }
