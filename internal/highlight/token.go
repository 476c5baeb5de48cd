// Package highlight provides SQL syntax classification for the editor:
// the token categories, the case-insensitive keyword table, a per-line
// scanner and the incremental token marker that keeps per-line token
// chains and lexer states in sync with the text buffer.
package highlight

// Category is the semantic class of a token.
// The set is closed; every switch over Category should be exhaustive.
type Category uint8

// Token categories.
const (
	CategoryNull Category = iota // plain text, whitespace, identifiers

	CategoryCommentBlock // /* ... */
	CategoryCommentLine  // -- ...

	CategoryKeywordStandard // SELECT, FROM, WHERE
	CategoryKeywordCommand  // vendor command verbs (GO, SPOOL, DESCRIBE)
	CategoryKeywordFunction // COUNT, SUBSTR, NVL

	CategoryLiteralString      // 'text' and numeric literals
	CategoryLiteralQuotedIdent // "Quoted Identifier"

	CategoryOperator
	CategoryDatatype
	CategoryInvalid

	categoryCount
)

// NumCategories is the number of token categories.
const NumCategories = int(categoryCount)

var categoryNames = [categoryCount]string{
	CategoryNull:               "null",
	CategoryCommentBlock:       "comment.block",
	CategoryCommentLine:        "comment.line",
	CategoryKeywordStandard:    "keyword",
	CategoryKeywordCommand:     "keyword.command",
	CategoryKeywordFunction:    "keyword.function",
	CategoryLiteralString:      "literal.string",
	CategoryLiteralQuotedIdent: "literal.identifier",
	CategoryOperator:           "operator",
	CategoryDatatype:           "datatype",
	CategoryInvalid:            "invalid",
}

// String returns the scope-style name of the category.
func (c Category) String() string {
	if c < categoryCount {
		return categoryNames[c]
	}
	return "unknown"
}

// IsComment reports whether c is a comment category.
func (c Category) IsComment() bool {
	return c == CategoryCommentBlock || c == CategoryCommentLine
}

// IsLiteral reports whether c is a string or quoted identifier literal.
func (c Category) IsLiteral() bool {
	return c == CategoryLiteralString || c == CategoryLiteralQuotedIdent
}

// IsKeyword reports whether c is one of the keyword categories.
func (c Category) IsKeyword() bool {
	return c >= CategoryKeywordStandard && c <= CategoryKeywordFunction
}

// Opaque reports whether characters inside a token of this category
// carry no structural meaning (brackets in comments and literals).
func (c Category) Opaque() bool {
	return c.IsComment() || c.IsLiteral()
}

// CategoryFromString parses a category name as returned by String.
func CategoryFromString(s string) (Category, bool) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), true
		}
	}
	return CategoryNull, false
}

// Token is a classified span of one line's characters.
// A line's tokens form an ordered, non-overlapping partition of the line:
// their lengths sum to the line length.
type Token struct {
	Category Category
	Length   int
}

// LineState is the lexer state carried across a line boundary.
type LineState uint8

// Lexer states.
const (
	StateNormal       LineState = iota
	StateBlockComment           // inside /* ... */
	StateSingleQuote            // inside '...'
	StateDoubleQuote            // inside "..."
	StateBacktick               // inside `...` (dialects with backtick identifiers)
)

// String returns a readable name for the state.
func (s LineState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateBlockComment:
		return "block-comment"
	case StateSingleQuote:
		return "single-quote"
	case StateDoubleQuote:
		return "double-quote"
	case StateBacktick:
		return "backtick"
	default:
		return "unknown"
	}
}

// Open reports whether the state represents an unterminated construct.
func (s LineState) Open() bool {
	return s != StateNormal
}

// ChainLength returns the sum of token lengths.
func ChainLength(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		n += t.Length
	}
	return n
}

// TokenAt returns the index of the token covering column col and the
// column at which that token starts. Returns -1 if col is past the chain.
func TokenAt(tokens []Token, col int) (idx, start int) {
	pos := 0
	for i, t := range tokens {
		if col >= pos && col < pos+t.Length {
			return i, pos
		}
		pos += t.Length
	}
	return -1, pos
}
