package text

import (
	"strings"
	"unicode"
)

// Filename turns a document title into a single path element. Separators
// and control characters are replaced, whitespace is collapsed and the
// result never starts with a dot.
func Filename(title string) string {
	title = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}

		if unicode.IsControl(r) {
			return ' '
		}

		return r
	}, title)

	title = strings.Join(strings.Fields(title), " ")
	title = strings.TrimLeft(title, ".")

	return strings.TrimSpace(title)
}
