package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type span struct {
	text string
	cat  Category
}

// spans splits line by tokens, dropping whitespace-only null tokens.
func spans(line string, tokens []Token) []span {
	r := []rune(line)
	var out []span
	pos := 0
	for _, tok := range tokens {
		text := string(r[pos : pos+tok.Length])
		pos += tok.Length
		if tok.Category == CategoryNull && strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, span{text: text, cat: tok.Category})
	}
	return out
}

func scan(s *Scanner, line string, state LineState) ([]Token, LineState) {
	return s.ScanLine([]rune(line), state, nil)
}

func TestScanLineSelectWithComment(t *testing.T) {
	s := ANSIDialect().Scanner()
	line := "select * from foo -- comment"

	toks, end := scan(s, line, StateNormal)

	require.Equal(t, StateNormal, end)
	require.Equal(t, []span{
		{"select", CategoryKeywordStandard},
		{"*", CategoryOperator},
		{"from", CategoryKeywordStandard},
		{" foo ", CategoryNull},
		{"-- comment", CategoryCommentLine},
	}, spans(line, toks))
}

func TestScanLineBlockCommentAcrossLines(t *testing.T) {
	s := ANSIDialect().Scanner()

	toks, st := scan(s, "/* start", StateNormal)
	require.Equal(t, StateBlockComment, st)
	require.Equal(t, []Token{{CategoryCommentBlock, 8}}, toks)

	toks, st = scan(s, "still in comment", st)
	require.Equal(t, StateBlockComment, st)
	require.Equal(t, []Token{{CategoryCommentBlock, 16}}, toks)

	line := "end */ select 1"
	toks, st = scan(s, line, st)
	require.Equal(t, StateNormal, st)
	require.Equal(t, []span{
		{"end */", CategoryCommentBlock},
		{"select", CategoryKeywordStandard},
		{"1", CategoryLiteralString},
	}, spans(line, toks))
}

func TestScanLineEmpty(t *testing.T) {
	s := ANSIDialect().Scanner()
	for _, st := range []LineState{StateNormal, StateBlockComment, StateSingleQuote, StateDoubleQuote} {
		toks, end := scan(s, "", st)
		require.Empty(t, toks, "state %s", st)
		require.Equal(t, st, end)
	}
}

func TestScanLineQuotes(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		line  string
		in    LineState
		want  []span
		end   LineState
	}{
		{
			name: "doubled quote stays inside literal",
			line: "x = 'it''s'",
			want: []span{{"x ", CategoryNull}, {"=", CategoryOperator}, {"'it''s'", CategoryLiteralString}},
		},
		{
			name: "backslash is plain without escapes",
			line: `'a\' b`,
			want: []span{{`'a\'`, CategoryLiteralString}, {" b", CategoryNull}},
		},
		{
			name:  "backslash escapes quote",
			rules: Rules{BackslashEscapes: true},
			line:  `'a\' b`,
			want:  []span{{`'a\' b`, CategoryLiteralString}},
			end:   StateSingleQuote,
		},
		{
			name: "quoted identifier",
			line: `select "Order ""Id""" from t`,
			want: []span{
				{"select", CategoryKeywordStandard},
				{`"Order ""Id"""`, CategoryLiteralQuotedIdent},
				{"from", CategoryKeywordStandard},
				{" t", CategoryNull},
			},
		},
		{
			name: "unterminated literal carries state",
			line: "values ('abc",
			want: []span{{"values", CategoryKeywordStandard}, {"(", CategoryOperator}, {"'abc", CategoryLiteralString}},
			end:  StateSingleQuote,
		},
		{
			name: "literal continues from previous line",
			line: "def') x",
			in:   StateSingleQuote,
			want: []span{{"def'", CategoryLiteralString}, {")", CategoryOperator}, {" x", CategoryNull}},
		},
		{
			name:  "backtick identifier",
			rules: Rules{BacktickIdentifiers: true},
			line:  "`my col`",
			want:  []span{{"`my col`", CategoryLiteralQuotedIdent}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner(ANSIDialect().Table(), tt.rules)
			toks, end := scan(s, tt.line, tt.in)
			require.Equal(t, tt.want, spans(tt.line, toks))
			require.Equal(t, tt.end, end)
		})
	}
}

func TestScanLineNumbersAndOperators(t *testing.T) {
	s := ANSIDialect().Scanner()
	line := "a<=1.5e3||.25 12abc"

	toks, _ := scan(s, line, StateNormal)
	require.Equal(t, []span{
		{"a", CategoryNull},
		{"<=", CategoryOperator},
		{"1.5e3", CategoryLiteralString},
		{"||", CategoryOperator},
		{".25", CategoryLiteralString},
		{"12abc", CategoryInvalid},
	}, spans(line, toks))
}

func TestScanLineBracketsAreSingleTokens(t *testing.T) {
	s := ANSIDialect().Scanner()
	toks, _ := scan(s, "((", StateNormal)
	require.Equal(t, []Token{{CategoryOperator, 1}, {CategoryOperator, 1}}, toks)
}

func TestScanLineOperatorRunStopsAtComment(t *testing.T) {
	s := ANSIDialect().Scanner()
	line := "a=--x"
	toks, _ := scan(s, line, StateNormal)
	require.Equal(t, []span{{"a", CategoryNull}, {"=", CategoryOperator}, {"--x", CategoryCommentLine}}, spans(line, toks))
}

func TestScanLineHashComments(t *testing.T) {
	mysql := MySQLDialect().Scanner()
	line := "use db # switch"
	toks, _ := scan(mysql, line, StateNormal)
	require.Equal(t, []span{
		{"use", CategoryKeywordCommand},
		{" db ", CategoryNull},
		{"# switch", CategoryCommentLine},
	}, spans(line, toks))

	ansi := ANSIDialect().Scanner()
	toks, _ = scan(ansi, "#tmp", StateNormal)
	require.Equal(t, []Token{{CategoryNull, 4}}, toks)
}

func TestScanLineHashEndsWord(t *testing.T) {
	tests := []struct {
		name    string
		dialect *Dialect
		line    string
		want    []span
	}{
		{"mysql glued comment", MySQLDialect(), "select#c", []span{
			{"select", CategoryKeywordStandard},
			{"#c", CategoryCommentLine},
		}},
		{"mysql spaced comment", MySQLDialect(), "select #c", []span{
			{"select", CategoryKeywordStandard},
			{"#c", CategoryCommentLine},
		}},
		{"ansi hash in word", ANSIDialect(), "a#b", []span{
			{"a#b", CategoryNull},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, end := scan(tt.dialect.Scanner(), tt.line, StateNormal)
			require.Equal(t, StateNormal, end)
			require.Equal(t, tt.want, spans(tt.line, toks))
		})
	}
}

func TestScanLineReusesStorage(t *testing.T) {
	s := ANSIDialect().Scanner()
	buf := make([]Token, 0, 16)
	toks, _ := s.ScanLine([]rune("select 1"), StateNormal, buf)
	require.Same(t, &buf[:1][0], &toks[0])
}

func TestScanLineCoverage_Property(t *testing.T) {
	alphabet := []rune("ab1 _'\"-*/()\\.#`=\té")
	rules := []Rules{{}, {BackslashEscapes: true, HashComments: true, BacktickIdentifiers: true}}

	rapid.Check(t, func(t *rapid.T) {
		line := rapid.SliceOfN(rapid.SampledFrom(alphabet), 0, 40).Draw(t, "line")
		state := LineState(rapid.IntRange(0, int(StateBacktick)).Draw(t, "state"))
		s := NewScanner(ANSIDialect().Table(), rapid.SampledFrom(rules).Draw(t, "rules"))

		toks, _ := s.ScanLine(line, state, nil)
		require.Equal(t, len(line), ChainLength(toks))
		for _, tok := range toks {
			require.Positive(t, tok.Length)
		}
	})
}
