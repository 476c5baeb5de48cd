package highlight

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// maxFoldLen bounds the stack buffer used for allocation-free lookups.
// Longer words take the slow path.
const maxFoldLen = 64

// KeywordTable classifies identifier text into token categories.
// Lookups are case-insensitive. A table is immutable once built and
// safe to share between markers.
type KeywordTable struct {
	words map[string]Category
	order []string // folded words in registration order
}

// TableBuilder accumulates keyword lists in precedence order.
// The first registration of a word wins; later ones are ignored.
type TableBuilder struct {
	t *KeywordTable
}

// NewTableBuilder creates an empty builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{t: &KeywordTable{words: make(map[string]Category)}}
}

// Add registers words under category. Empty words are skipped.
func (b *TableBuilder) Add(category Category, words ...string) *TableBuilder {
	for _, w := range words {
		if w == "" {
			continue
		}
		key := fold(w)
		if _, ok := b.t.words[key]; ok {
			continue
		}
		b.t.words[key] = category
		b.t.order = append(b.t.order, key)
	}
	return b
}

// Build returns the finished table. The builder must not be used afterwards.
func (b *TableBuilder) Build() *KeywordTable {
	t := b.t
	b.t = nil
	return t
}

// Classify returns the category registered for word, if any.
// ASCII words up to 64 bytes are folded on the stack without allocating.
func (t *KeywordTable) Classify(word string) (Category, bool) {
	if t == nil || len(word) == 0 {
		return CategoryNull, false
	}
	if len(word) <= maxFoldLen {
		var buf [maxFoldLen]byte
		ascii := true
		for i := 0; i < len(word); i++ {
			c := word[i]
			if c >= utf8.RuneSelf {
				ascii = false
				break
			}
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			buf[i] = c
		}
		if ascii {
			cat, ok := t.words[string(buf[:len(word)])]
			return cat, ok
		}
	}
	cat, ok := t.words[fold(word)]
	return cat, ok
}

// ClassifyRunes is Classify for a rune slice, used by the scanner.
func (t *KeywordTable) ClassifyRunes(word []rune) (Category, bool) {
	if t == nil || len(word) == 0 {
		return CategoryNull, false
	}
	if len(word) <= maxFoldLen {
		var buf [maxFoldLen]byte
		ascii := true
		for i, r := range word {
			if r >= utf8.RuneSelf {
				ascii = false
				break
			}
			c := byte(r)
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			buf[i] = c
		}
		if ascii {
			cat, ok := t.words[string(buf[:len(word)])]
			return cat, ok
		}
	}
	return t.Classify(string(word))
}

// Len returns the number of distinct words.
func (t *KeywordTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.words)
}

// Words returns the folded words registered under category, in
// registration order.
func (t *KeywordTable) Words(category Category) []string {
	if t == nil {
		return nil
	}
	var out []string
	for _, w := range t.order {
		if t.words[w] == category {
			out = append(out, w)
		}
	}
	return out
}

// fold returns the case-folded key for word.
func fold(word string) string {
	ascii := true
	for i := 0; i < len(word); i++ {
		if word[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if !ascii {
		return cases.Fold().String(word)
	}
	b := []byte(word)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
