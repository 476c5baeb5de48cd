package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// lines is a LineSource over a string slice.
type lines []string

func (l lines) LineCount() int { return len(l) }

func (l lines) LineRunes(i int) ([]rune, error) {
	if i < 0 || i >= len(l) {
		return nil, ErrLineRange
	}
	return []rune(l[i]), nil
}

func chainCopy(toks []Token) []Token {
	return append([]Token(nil), toks...)
}

// requireFullRelex checks m against a marker built from scratch over src.
func requireFullRelex(t *testing.T, m *Marker, src LineSource) {
	t.Helper()
	full := NewMarker(m.Scanner())
	require.NoError(t, full.Reset(src))
	require.Equal(t, full.LineCount(), m.LineCount())
	for i := 0; i <= full.LineCount(); i++ {
		require.Equal(t, full.LineState(i), m.LineState(i), "state at line %d", i)
	}
	for i := 0; i < full.LineCount(); i++ {
		require.Equal(t, chainCopy(full.Tokens(i)), chainCopy(m.Tokens(i)), "tokens of line %d", i)
	}
}

func newANSIMarker() *Marker {
	return NewMarker(ANSIDialect().Scanner())
}

func TestMarkerResetFirstScenario(t *testing.T) {
	src := lines{"select * from foo -- comment", "where id=1"}
	m := newANSIMarker()
	require.NoError(t, m.Reset(src))

	require.Equal(t, 2, m.LineCount())
	require.Equal(t, StateNormal, m.LineState(1))
	for i := range src {
		require.Equal(t, len([]rune(src[i])), ChainLength(m.Tokens(i)))
	}
}

func TestMarkerResetBlockComment(t *testing.T) {
	src := lines{"/* start", "still in comment", "end */ select 1"}
	m := newANSIMarker()
	require.NoError(t, m.Reset(src))

	require.Equal(t, StateBlockComment, m.LineState(1))
	require.Equal(t, StateBlockComment, m.LineState(2))
	require.Equal(t, StateNormal, m.LineState(3))

	toks := m.Tokens(2)
	require.NotEmpty(t, toks)
	require.Equal(t, Token{Category: CategoryCommentBlock, Length: len("end */")}, toks[0])

	got := spans(src[2], toks)
	require.Equal(t, []span{
		{"end */", CategoryCommentBlock},
		{"select", CategoryKeywordStandard},
		{"1", CategoryLiteralString},
	}, got)
}

func TestMarkerUnterminatedAtEnd(t *testing.T) {
	src := lines{"select 1", "/* open", "", "more"}
	m := newANSIMarker()
	require.NoError(t, m.Reset(src))

	require.Empty(t, m.Tokens(2))
	require.Equal(t, []Token{{Category: CategoryCommentBlock, Length: 4}}, chainCopy(m.Tokens(3)))
	require.Equal(t, StateBlockComment, m.LineState(4))
	require.True(t, m.LineState(m.LineCount()).Open())
}

func TestMarkerUpdateOpensComment(t *testing.T) {
	before := lines{"select 1", "from t", "where x = 1 */ and y", "order by 2"}
	m := newANSIMarker()
	require.NoError(t, m.Reset(before))
	require.Equal(t, StateNormal, m.LineState(2))

	after := lines{"select 1", "/*from t", "where x = 1 */ and y", "order by 2"}
	res, err := m.Update(after, 1, 1, 1)
	require.NoError(t, err)

	// The edited line opens a comment, so re-lexing continues to the line
	// holding the terminator and converges there.
	require.Equal(t, RelexResult{First: 1, Last: 2, Converged: true}, res)
	require.Equal(t, 2, res.Lines())
	require.Equal(t, StateBlockComment, m.LineState(2))
	require.Equal(t, Token{Category: CategoryCommentBlock, Length: len("where x = 1 */")}, m.Tokens(2)[0])
	requireFullRelex(t, m, after)
}

func TestMarkerUpdateRunsToEnd(t *testing.T) {
	before := lines{"a", "b", "c"}
	m := newANSIMarker()
	require.NoError(t, m.Reset(before))

	after := lines{"/*a", "b", "c"}
	res, err := m.Update(after, 0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, RelexResult{First: 0, Last: 2, Converged: false}, res)
	for i := 1; i <= 3; i++ {
		require.Equal(t, StateBlockComment, m.LineState(i))
	}
	requireFullRelex(t, m, after)
}

func TestMarkerUpdateSingleLine(t *testing.T) {
	before := lines{"select a", "from t", "where b"}
	m := newANSIMarker()
	require.NoError(t, m.Reset(before))

	after := lines{"select a", "from t2", "where b"}
	res, err := m.Update(after, 1, 1, 1)
	require.NoError(t, err)
	require.Equal(t, RelexResult{First: 1, Last: 1, Converged: true}, res)
	requireFullRelex(t, m, after)
}

func TestMarkerUpdateLineCountChanges(t *testing.T) {
	tests := []struct {
		name                    string
		before, after           lines
		first, oldLast, newLast int
	}{
		{
			name:   "split line",
			before: lines{"select a", "from t /* x */", "where b"},
			after:  lines{"select a", "from t /* x", "y */ join u", "where b"},
			first:  1, oldLast: 1, newLast: 2,
		},
		{
			name:   "join lines",
			before: lines{"select '", "a", "b", "' from t", "where c"},
			after:  lines{"select 'ab' from t", "where c"},
			first:  0, oldLast: 3, newLast: 0,
		},
		{
			name:   "insert lines at end",
			before: lines{"select 1"},
			after:  lines{"select 1", "union", "select 2"},
			first:  0, oldLast: 0, newLast: 2,
		},
		{
			name:   "delete closing line",
			before: lines{"/* a", "b */", "select 1", "from t"},
			after:  lines{"/* a", "select 1", "from t"},
			first:  1, oldLast: 2, newLast: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newANSIMarker()
			require.NoError(t, m.Reset(tt.before))
			res, err := m.Update(tt.after, tt.first, tt.oldLast, tt.newLast)
			require.NoError(t, err)
			require.Equal(t, tt.first, res.First)
			require.GreaterOrEqual(t, res.Last, tt.newLast)
			requireFullRelex(t, m, tt.after)
		})
	}
}

func TestMarkerUpdateRejectsBadRange(t *testing.T) {
	before := lines{"a", "b"}
	m := newANSIMarker()
	require.NoError(t, m.Reset(before))

	tests := []struct {
		name                    string
		src                     lines
		first, oldLast, newLast int
	}{
		{"negative first", before, -1, 0, 0},
		{"old past end", before, 0, 2, 2},
		{"new past end", lines{"a"}, 0, 1, 1},
		{"count mismatch", lines{"a", "b", "c"}, 0, 0, 0},
		{"reversed", before, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Update(tt.src, tt.first, tt.oldLast, tt.newLast)
			require.ErrorIs(t, err, ErrLineRange)
		})
	}

	_, err := m.MarkLine(before, 2)
	require.ErrorIs(t, err, ErrLineRange)
}

func TestMarkerSetScanner(t *testing.T) {
	src := lines{"use db # x"}
	m := newANSIMarker()
	require.NoError(t, m.Reset(src))
	require.Equal(t, CategoryNull, m.Tokens(0)[0].Category)

	m.SetScanner(MySQLDialect().Scanner())
	require.NoError(t, m.Reset(src))
	require.Equal(t, CategoryKeywordCommand, m.Tokens(0)[0].Category)
	require.Equal(t, CategoryCommentLine, m.Tokens(0)[len(m.Tokens(0))-1].Category)
}
