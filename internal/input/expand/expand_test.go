package expand

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAbbreviationsIgnoreCase(t *testing.T) {
	a := NewAbbreviations(map[string]string{"sf": "SELECT * FROM ", "Straße": "street"})

	for _, word := range []string{"sf", "SF", "Sf"} {
		text, ok := a.Expand(word)
		require.True(t, ok, word)
		require.Equal(t, "SELECT * FROM ", text)
	}
	text, ok := a.Expand("STRASSE")
	require.True(t, ok)
	require.Equal(t, "street", text)

	_, ok = a.Expand("")
	require.False(t, ok)
	_, ok = a.Expand("xyz")
	require.False(t, ok)
	require.Equal(t, 2, a.Len())

	var none *Abbreviations
	_, ok = none.Expand("sf")
	require.False(t, ok)
	require.Zero(t, none.Len())
}

func TestChainFirstMatchWins(t *testing.T) {
	c := Chain{
		nil,
		NewAbbreviations(map[string]string{"a": "first"}),
		Func(func(word string) (string, bool) { return "second:" + word, true }),
	}

	text, ok := c.Expand("a")
	require.True(t, ok)
	require.Equal(t, "first", text)

	text, ok = c.Expand("b")
	require.True(t, ok)
	require.Equal(t, "second:b", text)

	_, ok = Chain{}.Expand("a")
	require.False(t, ok)
}

func TestWordBefore(t *testing.T) {
	tests := []struct {
		line string
		col  int
		want string
	}{
		{"select sf", 9, "sf"},
		{"select sf", 8, "s"},
		{"x.sf_1", 6, "sf_1"},
		{"sf ", 3, ""},
		{"", 0, ""},
		{"abc", 10, "abc"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, WordBefore([]rune(tt.line), tt.col), "%q at %d", tt.line, tt.col)
	}
}

func TestSplitCaret(t *testing.T) {
	text, caret := SplitCaret("COUNT(${cursor})")
	require.Equal(t, "COUNT()", text)
	require.Equal(t, 6, caret)

	text, caret = SplitCaret("plain")
	require.Equal(t, "plain", text)
	require.Equal(t, -1, caret)
}

func TestLuaTableScript(t *testing.T) {
	e, err := NewLuaExpander(`return { sf = "SELECT * FROM ", n = 42, [1] = "ignored" }`)
	require.NoError(t, err)
	defer e.Close()

	text, ok := e.Expand("SF")
	require.True(t, ok)
	require.Equal(t, "SELECT * FROM ", text)

	text, ok = e.Expand("n")
	require.True(t, ok)
	require.Equal(t, "42", text)

	_, ok = e.Expand("missing")
	require.False(t, ok)
}

func TestLuaFunctionScript(t *testing.T) {
	e, err := NewLuaExpander(`
function expand(word)
  if word:sub(1, 1) == "q" then
    return "'" .. string.upper(word:sub(2)) .. "'"
  end
  return nil
end
`)
	require.NoError(t, err)
	defer e.Close()

	text, ok := e.Expand("qabc")
	require.True(t, ok)
	require.Equal(t, "'ABC'", text)

	_, ok = e.Expand("abc")
	require.False(t, ok)
}

func TestLuaScriptErrors(t *testing.T) {
	_, err := NewLuaExpander(`return 1 +`)
	require.Error(t, err)

	_, err = NewLuaExpander(`x = 1`)
	require.ErrorIs(t, err, ErrNoExpansions)

	_, err = NewLuaExpander(`error("boom")`)
	require.Error(t, err)
}

func TestLuaSandbox(t *testing.T) {
	for _, script := range []string{
		`return dofile("/etc/passwd")`,
		`return require("os")`,
		`return io.open("/etc/passwd")`,
		`return os.exit(1)`,
		`return load("return 1")()`,
	} {
		_, err := NewLuaExpander(script)
		require.Error(t, err, script)
	}
}

func TestLuaRuntimeErrorIsNoExpansion(t *testing.T) {
	e, err := NewLuaExpander(`function expand(word) error("bad " .. word) end`)
	require.NoError(t, err)
	defer e.Close()

	_, ok := e.Expand("x")
	require.False(t, ok)

	_, _, err = e.Call("x")
	require.Error(t, err)
}

func TestLuaTimeout(t *testing.T) {
	e, err := NewLuaExpander(`function expand(word) while true do end end`, WithLuaTimeout(20*time.Millisecond))
	require.NoError(t, err)
	defer e.Close()

	start := time.Now()
	_, _, err = e.Call("x")
	require.Error(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestLoadLuaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expand.lua")
	require.NoError(t, os.WriteFile(path, []byte(`return { ob = "ORDER BY " }`), 0o644))

	e, err := LoadLuaFile(path)
	require.NoError(t, err)
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	_, _, err = e.Call("ob")
	require.Error(t, err, "closed expander")

	_, err = LoadLuaFile(filepath.Join(t.TempDir(), "missing.lua"))
	require.Error(t, err)
}
