package highlight

import "unicode"

// Rules holds the dialect switches that change how a line is scanned.
type Rules struct {
	// BackslashEscapes lets a backslash escape the next character inside
	// single-quoted literals (MySQL style).
	BackslashEscapes bool `yaml:"backslash_escapes" toml:"backslash_escapes"`

	// HashComments treats '#' as a line comment introducer.
	HashComments bool `yaml:"hash_comments" toml:"hash_comments"`

	// BacktickIdentifiers treats `...` as a quoted identifier.
	BacktickIdentifiers bool `yaml:"backtick_identifiers" toml:"backtick_identifiers"`
}

// Scanner tokenizes single lines of SQL.
// Scanning is a pure function of (table, rules, input state, line text).
type Scanner struct {
	table *KeywordTable
	rules Rules
}

// NewScanner creates a scanner classifying words with table.
func NewScanner(table *KeywordTable, rules Rules) *Scanner {
	return &Scanner{table: table, rules: rules}
}

// Table returns the keyword table in use.
func (s *Scanner) Table() *KeywordTable {
	return s.table
}

// Rules returns the dialect rules in use.
func (s *Scanner) Rules() Rules {
	return s.rules
}

// chain appends tokens, merging adjacent null runs.
type chain struct {
	toks []Token
}

func (c *chain) emit(cat Category, n int) {
	if n <= 0 {
		return
	}
	if cat == CategoryNull && len(c.toks) > 0 && c.toks[len(c.toks)-1].Category == CategoryNull {
		c.toks[len(c.toks)-1].Length += n
		return
	}
	c.toks = append(c.toks, Token{Category: cat, Length: n})
}

// ScanLine tokenizes line starting in state and appends the tokens to
// out[:0]. It returns the tokens and the state at the end of the line.
// An empty line yields an empty chain and leaves the state unchanged.
func (s *Scanner) ScanLine(line []rune, state LineState, out []Token) ([]Token, LineState) {
	c := chain{toks: out[:0]}
	n := len(line)
	i := 0

	switch state {
	case StateBlockComment:
		end := blockCommentEnd(line, 0)
		if end < 0 {
			c.emit(CategoryCommentBlock, n)
			return c.toks, StateBlockComment
		}
		c.emit(CategoryCommentBlock, end)
		i = end
	case StateSingleQuote, StateDoubleQuote, StateBacktick:
		q, cat := quoteFor(state)
		end, closed := s.quotedEnd(line, 0, q)
		c.emit(cat, end)
		if !closed {
			return c.toks, state
		}
		i = end
	}

	for i < n {
		r := line[i]
		switch {
		case r == '-' && at(line, i+1) == '-', r == '#' && s.rules.HashComments:
			c.emit(CategoryCommentLine, n-i)
			return c.toks, StateNormal

		case r == '/' && at(line, i+1) == '*':
			end := blockCommentEnd(line, i+2)
			if end < 0 {
				c.emit(CategoryCommentBlock, n-i)
				return c.toks, StateBlockComment
			}
			c.emit(CategoryCommentBlock, end-i)
			i = end

		case r == '\'' || r == '"' || (r == '`' && s.rules.BacktickIdentifiers):
			st := quoteState(r)
			_, cat := quoteFor(st)
			end, closed := s.quotedEnd(line, i+1, r)
			c.emit(cat, end-i)
			if !closed {
				return c.toks, st
			}
			i = end

		case isDigit(r) || (r == '.' && isDigit(at(line, i+1))):
			end := numberEnd(line, i)
			if end < n && s.isWordPart(line[end]) {
				end = s.wordEnd(line, end)
				c.emit(CategoryInvalid, end-i)
			} else {
				c.emit(CategoryLiteralString, end-i)
			}
			i = end

		case s.isWordStart(r):
			end := s.wordEnd(line, i)
			cat := CategoryNull
			if kc, ok := s.table.ClassifyRunes(line[i:end]); ok {
				cat = kc
			}
			c.emit(cat, end-i)
			i = end

		case isBracket(r):
			c.emit(CategoryOperator, 1)
			i++

		case isOperator(r):
			end := i + 1
			for end < n && isOperator(line[end]) && !s.commentStart(line, end) &&
				!(line[end] == '.' && isDigit(at(line, end+1))) {
				end++
			}
			c.emit(CategoryOperator, end-i)
			i = end

		default:
			// whitespace and unclassified punctuation
			c.emit(CategoryNull, 1)
			i++
		}
	}
	return c.toks, StateNormal
}

// quotedEnd scans from i (just past an opening quote q) to the index
// after the closing quote. A doubled quote does not terminate the
// literal, nor does an escaped one when backslash escapes are enabled.
func (s *Scanner) quotedEnd(line []rune, i int, q rune) (int, bool) {
	n := len(line)
	escapes := s.rules.BackslashEscapes && q == '\''
	for i < n {
		r := line[i]
		if escapes && r == '\\' {
			i += 2
			continue
		}
		if r == q {
			if at(line, i+1) == q {
				i += 2
				continue
			}
			return i + 1, true
		}
		i++
	}
	return n, false
}

func (s *Scanner) commentStart(line []rune, i int) bool {
	r := line[i]
	return (r == '-' && at(line, i+1) == '-') ||
		(r == '/' && at(line, i+1) == '*') ||
		(r == '#' && s.rules.HashComments)
}

func (s *Scanner) isWordStart(r rune) bool {
	if r == '#' {
		return !s.rules.HashComments
	}
	return unicode.IsLetter(r) || r == '_' || r == '@' || r == '$'
}

func (s *Scanner) isWordPart(r rune) bool {
	if r == '#' {
		return !s.rules.HashComments
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' || r == '@'
}

func (s *Scanner) wordEnd(line []rune, i int) int {
	i++
	for i < len(line) && s.isWordPart(line[i]) {
		i++
	}
	return i
}

func blockCommentEnd(line []rune, i int) int {
	for ; i+1 < len(line); i++ {
		if line[i] == '*' && line[i+1] == '/' {
			return i + 2
		}
	}
	return -1
}

// numberEnd scans digits, an optional fraction and an optional exponent.
func numberEnd(line []rune, i int) int {
	n := len(line)
	for i < n && isDigit(line[i]) {
		i++
	}
	if i < n && line[i] == '.' {
		i++
		for i < n && isDigit(line[i]) {
			i++
		}
	}
	if i < n && (line[i] == 'e' || line[i] == 'E') {
		j := i + 1
		if j < n && (line[j] == '+' || line[j] == '-') {
			j++
		}
		if j < n && isDigit(line[j]) {
			for j < n && isDigit(line[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func quoteState(q rune) LineState {
	switch q {
	case '\'':
		return StateSingleQuote
	case '"':
		return StateDoubleQuote
	default:
		return StateBacktick
	}
}

func quoteFor(state LineState) (rune, Category) {
	switch state {
	case StateSingleQuote:
		return '\'', CategoryLiteralString
	case StateDoubleQuote:
		return '"', CategoryLiteralQuotedIdent
	default:
		return '`', CategoryLiteralQuotedIdent
	}
}

func at(line []rune, i int) rune {
	if i < len(line) {
		return line[i]
	}
	return 0
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isBracket(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

func isOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '=', '<', '>', '!', '&', '|', '^', '~',
		',', ';', '.', ':', '?':
		return true
	}
	return false
}
