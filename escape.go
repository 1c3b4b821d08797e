package ansihtml

import "strings"

const controlPictures = 0x2400 // controlPictures is the first rune of the Unicode Control Pictures block

var (
	// htmlPairs are the entities of the HTML special characters.
	htmlPairs = []string{
		"<", "&lt;",
		">", "&gt;",
		"&", "&amp;",
		"'", "&#39;",
		`"`, "&quot;",
	}
	htmlEscaper    = strings.NewReplacer(htmlPairs...)
	controlEscaper = strings.NewReplacer(append(controlPairs(), htmlPairs...)...)
)

// controlPairs maps the control bytes 0x00-0x07 and 0x0e-0x1f to their control pictures.
// Backspace, tab, newline, vertical tab, form feed and carriage return are kept.
func controlPairs() []string {
	pairs := []string{}
	for b := range 0x20 {
		if b >= '\b' && b <= '\r' {
			continue
		}
		pairs = append(pairs, string(rune(b)), string(rune(controlPictures+b)))
	}
	return pairs
}

// Escape returns s with the HTML special characters <, >, &, ' and " replaced by entities.
// When controls is toggled, non-printable control characters are also replaced
// with the glyphs of the Unicode Control Pictures block, so ESC becomes ␛.
func Escape(s string, controls bool) string {
	if controls {
		return controlEscaper.Replace(s)
	}
	return htmlEscaper.Replace(s)
}
