// Package expand resolves abbreviations typed before the caret into
// longer text, such as "sf" into "SELECT * FROM ".
//
// Expanders are consulted when the configured trigger chord is pressed.
// An expansion may contain CaretMarker to say where the caret lands.
package expand

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// CaretMarker marks the caret position inside an expansion.
const CaretMarker = "${cursor}"

// Expander maps a word to its expansion.
type Expander interface {
	// Expand returns the expansion of word and whether one exists.
	Expand(word string) (string, bool)
}

// Func adapts a function to the Expander interface.
type Func func(word string) (string, bool)

// Expand calls f.
func (f Func) Expand(word string) (string, bool) {
	return f(word)
}

// Abbreviations is a fixed table of expansions looked up without regard
// to case.
type Abbreviations struct {
	m map[string]string
}

// NewAbbreviations creates a table from word/expansion pairs. When two
// words differ only in case the later one in iteration order is kept,
// so callers should not rely on such duplicates.
func NewAbbreviations(pairs map[string]string) *Abbreviations {
	a := &Abbreviations{m: make(map[string]string, len(pairs))}
	for word, text := range pairs {
		a.m[cases.Fold().String(word)] = text
	}
	return a
}

// Expand implements Expander.
func (a *Abbreviations) Expand(word string) (string, bool) {
	if a == nil || word == "" {
		return "", false
	}
	text, ok := a.m[cases.Fold().String(word)]
	return text, ok
}

// Len returns the number of abbreviations.
func (a *Abbreviations) Len() int {
	if a == nil {
		return 0
	}
	return len(a.m)
}

// Chain tries each expander in order and returns the first expansion.
type Chain []Expander

// Expand implements Expander.
func (c Chain) Expand(word string) (string, bool) {
	for _, e := range c {
		if e == nil {
			continue
		}
		if text, ok := e.Expand(word); ok {
			return text, true
		}
	}
	return "", false
}

// IsWordRune reports whether r can be part of an abbreviation.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// WordBefore returns the run of word characters ending at col in line.
func WordBefore(line []rune, col int) string {
	col = min(max(col, 0), len(line))
	start := col
	for start > 0 && IsWordRune(line[start-1]) {
		start--
	}
	return string(line[start:col])
}

// SplitCaret removes the first CaretMarker from text and returns the
// marker's position in runes, or -1 when text has no marker.
func SplitCaret(text string) (string, int) {
	before, after, found := strings.Cut(text, CaretMarker)
	if !found {
		return text, -1
	}
	return before + after, len([]rune(before))
}
