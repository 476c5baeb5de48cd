package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/sqledit/internal/engine/bracket"
	"github.com/dshills/sqledit/internal/highlight"
	"github.com/dshills/sqledit/internal/input/expand"
	"github.com/dshills/sqledit/internal/input/key"
	"github.com/dshills/sqledit/internal/input/keymap"
	"github.com/dshills/sqledit/internal/log"
)

// Limits enforced by Validate.
const (
	MaxTabWidth = 16
)

// Config is the editor configuration, one struct per TOML section.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Dialect DialectConfig `toml:"dialect"`
	Keys    KeysConfig    `toml:"keys"`
	Expand  ExpandConfig  `toml:"expand"`
	Log     LogConfig     `toml:"log"`

	// dir resolves relative paths; it is the directory of the loaded file.
	dir string
}

// EditorConfig holds [editor].
type EditorConfig struct {
	TabWidth     int    `toml:"tab_width"`
	VisibleLines int    `toml:"visible_lines"`
	BracketSide  string `toml:"bracket_side"`
	AutoIndent   bool   `toml:"auto_indent"`
}

// DialectConfig holds [dialect]. The rule switches override the chosen
// dialect's own rules when set.
type DialectConfig struct {
	Name                string `toml:"name"`
	File                string `toml:"file"`
	BackslashEscapes    *bool  `toml:"backslash_escapes"`
	HashComments        *bool  `toml:"hash_comments"`
	BacktickIdentifiers *bool  `toml:"backtick_identifiers"`
}

// KeysConfig holds [keys]. Bindings maps a chord to an action name; an
// empty action unbinds the chord.
type KeysConfig struct {
	ExpandTrigger string            `toml:"expand_trigger"`
	Bindings      map[string]string `toml:"bindings"`
}

// ExpandConfig holds [expand].
type ExpandConfig struct {
	Abbreviations map[string]string `toml:"abbreviations"`
	Script        string            `toml:"script"`
}

// LogConfig holds [log].
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:     4,
			VisibleLines: 24,
			BracketSide:  bracket.Before.String(),
			AutoIndent:   true,
		},
		Dialect: DialectConfig{Name: "ansi"},
		Keys:    KeysConfig{ExpandTrigger: keymap.DefaultExpandTrigger},
		Log:     LogConfig{Level: "info"},
	}
}

// Parse decodes TOML on top of the defaults. Unknown keys are errors.
// source names the input in error messages.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, parseError(source, err)
	}
	return cfg, nil
}

func parseError(source string, err error) error {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
		return pe
	}
	var serr *toml.StrictMissingError
	if errors.As(err, &serr) && len(serr.Errors) > 0 {
		first := serr.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = fmt.Sprintf("%s: %s", ErrUnknownSetting, strings.Join(first.Key(), "."))
		pe.Err = fmt.Errorf("%w: %w", ErrUnknownSetting, err)
	}
	return pe
}

// Load reads the configuration at path, applies SQLEDIT_* environment
// overrides and validates the result. A missing file yields the
// defaults with overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if cfg, err = Parse(data, path); err != nil {
				return nil, err
			}
		}
		cfg.dir = filepath.Dir(path)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve returns p relative to the configuration file's directory.
// Absolute and empty paths are returned unchanged.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// SetDir sets the directory relative paths are resolved against.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// Validate checks every setting and reports all failures at once.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, value any, err error) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Err: err})
	}

	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > MaxTabWidth {
		fail("editor.tab_width", fmt.Sprintf("must be between 1 and %d", MaxTabWidth), c.Editor.TabWidth, nil)
	}
	if c.Editor.VisibleLines < 1 {
		fail("editor.visible_lines", "must be at least 1", c.Editor.VisibleLines, nil)
	}
	if _, err := bracket.ParseSide(c.Editor.BracketSide); err != nil {
		fail("editor.bracket_side", "must be before, after or either", c.Editor.BracketSide, err)
	}
	if c.Dialect.File == "" {
		if _, ok := highlight.BuiltinDialect(c.Dialect.Name); !ok {
			fail("dialect.name", "unknown built-in dialect", c.Dialect.Name, nil)
		}
	}
	if _, err := key.Parse(c.Keys.ExpandTrigger); err != nil {
		fail("keys.expand_trigger", "invalid chord", c.Keys.ExpandTrigger, err)
	}
	for _, spec := range slices.Sorted(maps.Keys(c.Keys.Bindings)) {
		if _, err := key.Parse(spec); err != nil {
			fail("keys.bindings", "invalid chord", spec, err)
		}
		if action := c.Keys.Bindings[spec]; action != "" {
			if _, err := keymap.ParseAction(action); err != nil {
				fail("keys.bindings."+spec, "unknown action", action, err)
			}
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		fail("log.level", "must be debug, info, warn or error", c.Log.Level, err)
	}
	return errors.Join(errs...)
}

// Side returns the configured bracket side.
func (c *Config) Side() bracket.Side {
	s, _ := bracket.ParseSide(c.Editor.BracketSide)
	return s
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() log.Level {
	l, _ := log.ParseLevel(c.Log.Level)
	return l
}

// DialectPath returns the resolved dialect file, or "" for a built-in
// dialect.
func (c *Config) DialectPath() string {
	return c.Resolve(c.Dialect.File)
}

// LoadDialect loads the configured dialect and applies the rule
// overrides.
func (c *Config) LoadDialect() (*highlight.Dialect, error) {
	var d *highlight.Dialect
	if path := c.DialectPath(); path != "" {
		var err error
		if d, err = highlight.LoadDialect(path); err != nil {
			return nil, err
		}
	} else {
		var ok bool
		if d, ok = highlight.BuiltinDialect(c.Dialect.Name); !ok {
			return nil, fmt.Errorf("%w: unknown built-in dialect %q", highlight.ErrDialectInvalid, c.Dialect.Name)
		}
	}

	if v := c.Dialect.BackslashEscapes; v != nil {
		d.Rules.BackslashEscapes = *v
	}
	if v := c.Dialect.HashComments; v != nil {
		d.Rules.HashComments = *v
	}
	if v := c.Dialect.BacktickIdentifiers; v != nil {
		d.Rules.BacktickIdentifiers = *v
	}
	return d, nil
}

// Bindings returns the [keys.bindings] overrides in a stable order.
func (c *Config) Bindings() []keymap.Binding {
	specs := slices.Sorted(maps.Keys(c.Keys.Bindings))
	out := make([]keymap.Binding, 0, len(specs))
	for _, spec := range specs {
		out = append(out, keymap.Binding{
			Keys:     spec,
			Action:   keymap.Action(c.Keys.Bindings[spec]),
			Category: "User",
		})
	}
	return out
}

// Dispatcher builds the key dispatcher: the default bindings with the
// configured overrides, the expand trigger and exp.
func (c *Config) Dispatcher(exp expand.Expander) (*keymap.Dispatcher, error) {
	table, err := keymap.NewDefaultTable(c.Bindings()...)
	if err != nil {
		return nil, err
	}
	trigger, err := key.Parse(c.Keys.ExpandTrigger)
	if err != nil {
		return nil, fmt.Errorf("keys.expand_trigger: %w", err)
	}
	opts := []keymap.DispatcherOption{keymap.WithExpandTrigger(trigger)}
	if exp != nil {
		opts = append(opts, keymap.WithExpander(exp))
	}
	return keymap.NewDispatcher(table, opts...), nil
}

// Expander builds the configured expander: abbreviations first, then
// the script. The returned function releases the script; it is never
// nil. A nil Expander means nothing is configured.
func (c *Config) Expander() (expand.Expander, func() error, error) {
	noop := func() error { return nil }

	var chain expand.Chain
	if len(c.Expand.Abbreviations) > 0 {
		chain = append(chain, expand.NewAbbreviations(c.Expand.Abbreviations))
	}
	closeFn := noop
	if c.Expand.Script != "" {
		lx, err := expand.LoadLuaFile(c.Resolve(c.Expand.Script))
		if err != nil {
			return nil, noop, err
		}
		chain = append(chain, lx)
		closeFn = lx.Close
	}

	switch len(chain) {
	case 0:
		return nil, noop, nil
	case 1:
		return chain[0], closeFn, nil
	}
	return chain, closeFn, nil
}
