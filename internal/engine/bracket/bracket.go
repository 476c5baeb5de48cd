// Package bracket finds matching delimiters by walking the token stream.
//
// Brackets inside comments and literals are skipped, which is why the
// matcher reads token chains instead of raw text: the ')' in
// `a = '(' || ')'` is part of a string and never pairs with anything.
package bracket

import (
	"fmt"
	"strings"

	"github.com/dshills/sqledit/internal/highlight"
)

// Source is the tokenized text the matcher reads.
// *engine.Document implements it.
type Source interface {
	Len() int
	LineCount() int
	OffsetToLine(offset int) (int, error)
	LineToOffset(line int) (int, error)
	LineRunes(line int) ([]rune, error)
	Tokens(line int) []highlight.Token
}

// Side selects which character next to the caret is tested.
type Side uint8

const (
	// Before tests the character just before the caret.
	Before Side = iota
	// After tests the character under the caret.
	After
	// Either tests Before, then After.
	Either
)

var sideNames = [...]string{Before: "before", After: "after", Either: "either"}

// String returns the side name.
func (s Side) String() string {
	if int(s) < len(sideNames) {
		return sideNames[s]
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// ParseSide parses "before", "after" or "either", ignoring case.
func ParseSide(s string) (Side, error) {
	for i, name := range sideNames {
		if strings.EqualFold(s, name) {
			return Side(i), nil
		}
	}
	return Before, fmt.Errorf("unknown bracket side %q", s)
}

// pairs maps each bracket to its partner; open reports direction.
var pairs = map[rune]struct {
	partner rune
	open    bool
}{
	'(': {')', true},
	'[': {']', true},
	'{': {'}', true},
	')': {'(', false},
	']': {'[', false},
	'}': {'{', false},
}

// IsBracket reports whether r is one of ()[]{}.
func IsBracket(r rune) bool {
	_, ok := pairs[r]
	return ok
}

// Matcher finds matching brackets in a Source.
type Matcher struct {
	src  Source
	side Side
}

// New creates a matcher reading src.
func New(src Source, side Side) *Matcher {
	return &Matcher{src: src, side: side}
}

// Side returns the side the matcher tests.
func (m *Matcher) Side() Side {
	return m.side
}

// SetSide changes the side the matcher tests.
func (m *Matcher) SetSide(s Side) {
	m.side = s
}

// FindMatch returns the offset of the bracket matching the one adjacent
// to caret. It returns false when no bracket is adjacent, when the
// adjacent bracket sits inside a comment or literal, or when the scan
// leaves the text before the brackets balance.
func (m *Matcher) FindMatch(caret int) (int, bool) {
	_, match, ok := m.Pair(caret)
	return match, ok
}

// Pair is like FindMatch but also returns the offset of the bracket next
// to the caret, so both ends can be highlighted.
func (m *Matcher) Pair(caret int) (at, match int, ok bool) {
	var candidates []int
	switch m.side {
	case Before:
		candidates = []int{caret - 1}
	case After:
		candidates = []int{caret}
	default:
		candidates = []int{caret - 1, caret}
	}
	for _, off := range candidates {
		if match, ok := m.matchAt(off); ok {
			return off, match, true
		}
	}
	return -1, -1, false
}

// matchAt matches the bracket at offset.
func (m *Matcher) matchAt(offset int) (int, bool) {
	if offset < 0 || offset >= m.src.Len() {
		return -1, false
	}
	line, err := m.src.OffsetToLine(offset)
	if err != nil {
		return -1, false
	}
	start, _ := m.src.LineToOffset(line)
	runes, _ := m.src.LineRunes(line)
	col := offset - start
	if col >= len(runes) {
		// the line terminator
		return -1, false
	}
	p, ok := pairs[runes[col]]
	if !ok || m.opaqueAt(line, col) {
		return -1, false
	}
	if p.open {
		return m.scanForward(line, col, runes[col], p.partner)
	}
	return m.scanBackward(line, col, runes[col], p.partner)
}

// opaqueAt reports whether col on line falls in a comment or literal.
func (m *Matcher) opaqueAt(line, col int) bool {
	tokens := m.src.Tokens(line)
	idx, _ := highlight.TokenAt(tokens, col)
	return idx >= 0 && tokens[idx].Category.Opaque()
}

// scanForward looks for the closer of the opener at (line, col).
func (m *Matcher) scanForward(line, col int, opener, closer rune) (int, bool) {
	depth := 1
	from := col + 1
	for l := line; l < m.src.LineCount(); l++ {
		runes, _ := m.src.LineRunes(l)
		pos := 0
		for _, tok := range m.src.Tokens(l) {
			end := pos + tok.Length
			if !tok.Category.Opaque() {
				for i := max(pos, from); i < end; i++ {
					switch runes[i] {
					case opener:
						depth++
					case closer:
						depth--
						if depth == 0 {
							start, _ := m.src.LineToOffset(l)
							return start + i, true
						}
					}
				}
			}
			pos = end
		}
		from = 0
	}
	return -1, false
}

// scanBackward looks for the opener of the closer at (line, col).
func (m *Matcher) scanBackward(line, col int, closer, opener rune) (int, bool) {
	depth := 1
	for l := line; l >= 0; l-- {
		runes, _ := m.src.LineRunes(l)
		tokens := m.src.Tokens(l)
		to := len(runes)
		if l == line {
			to = col
		}
		end := highlight.ChainLength(tokens)
		for t := len(tokens) - 1; t >= 0; t-- {
			tok := tokens[t]
			start := end - tok.Length
			if !tok.Category.Opaque() {
				for i := min(end, to) - 1; i >= start; i-- {
					switch runes[i] {
					case closer:
						depth++
					case opener:
						depth--
						if depth == 0 {
							lineStart, _ := m.src.LineToOffset(l)
							return lineStart + i, true
						}
					}
				}
			}
			end = start
		}
	}
	return -1, false
}
