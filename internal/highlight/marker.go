package highlight

import (
	"errors"
	"fmt"
	"slices"
)

// ErrLineRange indicates a line index or changed-line range that does not
// fit the marker's cache or the line source.
var ErrLineRange = errors.New("line range out of bounds")

// LineSource provides line text to the marker.
// Returned slices are read-only and only need to be valid for the call.
type LineSource interface {
	LineCount() int
	LineRunes(line int) ([]rune, error)
}

// RelexResult describes the lines re-tokenized by an update.
type RelexResult struct {
	First int // first re-lexed line
	Last  int // last re-lexed line (inclusive)

	// Converged is true when re-lexing stopped because the end state of
	// Last matched the previously cached state, false when it ran to the
	// end of the buffer.
	Converged bool
}

// Lines returns the number of re-lexed lines.
func (r RelexResult) Lines() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

// Marker keeps per-line token chains and the lexer state at the start of
// every line. states[i] is the state at the start of line i and
// states[len(lines)] the state at the end of the buffer.
//
// Token chains returned by Tokens and MarkLine are views into the
// marker's storage. They are replaced (and their backing arrays reused)
// by the next Update or Reset, so callers must not retain them.
//
// Marker is not safe for concurrent use.
type Marker struct {
	scanner *Scanner
	lines   [][]Token
	states  []LineState
}

// NewMarker creates a marker tokenizing with scanner.
func NewMarker(scanner *Scanner) *Marker {
	return &Marker{
		scanner: scanner,
		states:  []LineState{StateNormal},
	}
}

// Scanner returns the scanner in use.
func (m *Marker) Scanner() *Scanner {
	return m.scanner
}

// SetScanner swaps the scanner. The cache is stale until Reset is called.
func (m *Marker) SetScanner(s *Scanner) {
	m.scanner = s
}

// LineCount returns the number of lines in the cache.
func (m *Marker) LineCount() int {
	return len(m.lines)
}

// Tokens returns the cached chain for line.
func (m *Marker) Tokens(line int) []Token {
	if line < 0 || line >= len(m.lines) {
		return nil
	}
	return m.lines[line]
}

// LineState returns the state at the start of line. line may equal
// LineCount, giving the state at the end of the buffer.
func (m *Marker) LineState(line int) LineState {
	if line < 0 || line >= len(m.states) {
		return StateNormal
	}
	return m.states[line]
}

// MarkLine tokenizes line from its cached start state, stores the chain
// and the resulting start state of the following line, and returns the
// chain.
func (m *Marker) MarkLine(src LineSource, line int) ([]Token, error) {
	if line < 0 || line >= len(m.lines) {
		return nil, fmt.Errorf("%w: line %d of %d", ErrLineRange, line, len(m.lines))
	}
	text, err := src.LineRunes(line)
	if err != nil {
		return nil, err
	}
	toks, end := m.scanner.ScanLine(text, m.states[line], m.lines[line])
	m.lines[line] = toks
	m.states[line+1] = end
	return toks, nil
}

// Reset re-tokenizes the whole source.
func (m *Marker) Reset(src LineSource) error {
	n := src.LineCount()
	if cap(m.lines) >= n {
		m.lines = m.lines[:n]
	} else {
		m.lines = append(m.lines[:cap(m.lines)], make([][]Token, n-cap(m.lines))...)
	}
	if cap(m.states) >= n+1 {
		m.states = m.states[:n+1]
	} else {
		m.states = make([]LineState, n+1)
	}
	m.states[0] = StateNormal
	for i := 0; i < n; i++ {
		if _, err := m.MarkLine(src, i); err != nil {
			return err
		}
	}
	return nil
}

// Update brings the cache in line with src after an edit that replaced
// lines [first, oldLast] of the previous text with lines [first, newLast]
// of the current one.
//
// Re-lexing starts at first, always covers the changed lines, and stops
// at the first later boundary whose newly computed state equals the
// state cached for it before the edit. Lines past that boundary see the
// same input state and the same text, so their chains are still valid.
func (m *Marker) Update(src LineSource, first, oldLast, newLast int) (RelexResult, error) {
	oldCount := len(m.lines)
	newCount := src.LineCount()
	if first < 0 || oldLast < first || oldLast >= oldCount || newLast < first || newLast >= newCount ||
		newCount-oldCount != newLast-oldLast {
		return RelexResult{}, fmt.Errorf("%w: first=%d oldLast=%d newLast=%d lines %d->%d",
			ErrLineRange, first, oldLast, newLast, oldCount, newCount)
	}

	removed := oldLast - first + 1
	added := newLast - first + 1
	switch {
	case added > removed:
		m.lines = slices.Insert(m.lines, oldLast+1, make([][]Token, added-removed)...)
		m.states = slices.Insert(m.states, first+1, make([]LineState, added-removed)...)
	case removed > added:
		m.lines = slices.Delete(m.lines, first+added, first+removed)
		m.states = slices.Delete(m.states, first+1, first+1+removed-added)
	}

	res := RelexResult{First: first, Last: first}
	for i := first; i < newCount; i++ {
		prev := m.states[i+1]
		if _, err := m.MarkLine(src, i); err != nil {
			return res, err
		}
		res.Last = i
		if i >= newLast && m.states[i+1] == prev {
			res.Converged = true
			break
		}
	}
	return res, nil
}
