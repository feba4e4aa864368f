package text

import (
	"encoding/json"
	"math"
	"strings"
)

// LineThreshold is the vertical distance above which two consecutive words
// are considered to be on different lines.
const LineThreshold = 1.0

const TypeWord = "word"

// Word is one record of a text fragment body, e.g.
// {"t":"word","c":"A","p":{"x":90,"y":120,"w":10,"h":12}}.
type Word struct {
	Type string `json:"t"`

	// Content is a string for words and an object for pictures and other
	// record types.
	Content json.RawMessage `json:"c"`

	Position Position `json:"p"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (w Word) Text() (string, bool) {
	if w.Type != TypeWord {
		return "", false
	}

	var s string

	if err := json.Unmarshal(w.Content, &s); err != nil {
		return "", false
	}

	return s, true
}

// Assemble concatenates the text of all word records and starts a new line
// whenever the vertical position changes by more than LineThreshold.
func Assemble(words []Word) string {
	var b strings.Builder

	var lastY float64
	var started bool

	for _, w := range words {
		s, ok := w.Text()

		if !ok {
			continue
		}

		if started && math.Abs(w.Position.Y-lastY) > LineThreshold {
			b.WriteString("\n")
		}

		b.WriteString(s)

		lastY = w.Position.Y
		started = true
	}

	return b.String()
}
