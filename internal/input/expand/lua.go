package expand

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultLuaTimeout bounds a single call into a script.
const DefaultLuaTimeout = 100 * time.Millisecond

// ErrNoExpansions is returned when a script neither returns a table nor
// defines an expand function.
var ErrNoExpansions = errors.New("script defines no expansions")

// LuaExpander expands words with a Lua script. The script may either
// return a table of abbreviations:
//
//	return { sf = "SELECT * FROM ", ob = "ORDER BY " }
//
// or define a global function that receives the word and returns its
// expansion, or nil:
//
//	function expand(word)
//	  if word:sub(1, 1) == "@" then return "'" .. word:sub(2) .. "'" end
//	end
//
// Scripts run with the base, string and table libraries only, and with
// no way to load files or modules.
//
// gopher-lua states are not goroutine-safe; LuaExpander serializes calls
// with a mutex.
type LuaExpander struct {
	mu      sync.Mutex
	L       *lua.LState
	fn      *lua.LFunction
	table   *Abbreviations
	timeout time.Duration
	closed  bool
}

// LuaOption configures a LuaExpander.
type LuaOption func(*LuaExpander)

// WithLuaTimeout sets the time limit for each call into the script.
func WithLuaTimeout(d time.Duration) LuaOption {
	return func(e *LuaExpander) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewLuaExpander runs script and captures the expansions it defines.
func NewLuaExpander(script string, opts ...LuaOption) (*LuaExpander, error) {
	e := &LuaExpander{timeout: DefaultLuaTimeout}
	for _, opt := range opts {
		opt(e)
	}

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(e.L)

	if err := e.load(script); err != nil {
		e.L.Close()
		return nil, err
	}
	return e, nil
}

// LoadLuaFile reads a script from path and creates an expander from it.
func LoadLuaFile(path string, opts ...LuaOption) (*LuaExpander, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading expand script: %w", err)
	}
	e, err := NewLuaExpander(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// openSafeLibraries opens the base, table and string libraries and
// removes the base functions that reach the file system or compile code.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// load runs the script and looks for a returned table or an expand
// function, preferring the table.
func (e *LuaExpander) load(script string) error {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	chunk, err := e.L.LoadString(script)
	if err != nil {
		return fmt.Errorf("compiling expand script: %w", err)
	}
	e.L.Push(chunk)
	if err := e.L.PCall(0, 1, nil); err != nil {
		return fmt.Errorf("running expand script: %w", err)
	}
	ret := e.L.Get(-1)
	e.L.Pop(1)

	if tbl, ok := ret.(*lua.LTable); ok {
		pairs := make(map[string]string)
		tbl.ForEach(func(k, v lua.LValue) {
			ks, kok := k.(lua.LString)
			if !kok {
				return
			}
			switch v.(type) {
			case lua.LString, lua.LNumber:
				pairs[string(ks)] = v.String()
			}
		})
		e.table = NewAbbreviations(pairs)
		return nil
	}

	if fn, ok := e.L.GetGlobal("expand").(*lua.LFunction); ok {
		e.fn = fn
		return nil
	}
	return ErrNoExpansions
}

// Expand implements Expander. A script error counts as no expansion.
func (e *LuaExpander) Expand(word string) (string, bool) {
	text, ok, err := e.Call(word)
	if err != nil {
		return "", false
	}
	return text, ok
}

// Call is like Expand but reports script errors, including timeouts.
func (e *LuaExpander) Call(word string) (string, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return "", false, errors.New("lua expander is closed")
	}
	if e.table != nil {
		text, ok := e.table.Expand(word)
		return text, ok, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	err := e.L.CallByParam(lua.P{Fn: e.fn, NRet: 1, Protect: true}, lua.LString(word))
	if err != nil {
		return "", false, fmt.Errorf("expand(%q): %w", word, err)
	}
	ret := e.L.Get(-1)
	e.L.Pop(1)

	switch v := ret.(type) {
	case lua.LString:
		return string(v), true, nil
	case lua.LNumber:
		return v.String(), true, nil
	default:
		return "", false, nil
	}
}

// Close releases the Lua state.
func (e *LuaExpander) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.L.Close()
		e.closed = true
	}
	return nil
}
