package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/sqledit/internal/engine/bracket"
	"github.com/dshills/sqledit/internal/highlight"
	"github.com/dshills/sqledit/internal/input/key"
	"github.com/dshills/sqledit/internal/input/keymap"
	"github.com/dshills/sqledit/internal/log"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if cfg.Editor.TabWidth != 4 || !cfg.Editor.AutoIndent {
		t.Errorf("unexpected editor defaults %+v", cfg.Editor)
	}
	if cfg.Side() != bracket.Before {
		t.Errorf("Side() = %v, want before", cfg.Side())
	}
	if cfg.LogLevel() != log.LevelInfo {
		t.Errorf("LogLevel() = %v, want INFO", cfg.LogLevel())
	}
}

func TestParse(t *testing.T) {
	data := `
[editor]
tab_width = 8
bracket_side = "either"
auto_indent = false

[dialect]
name = "mysql"
hash_comments = false

[keys]
expand_trigger = "<C-Space>"

[keys.bindings]
"<C-k>" = "edit.deleteWordForward"
"<C-d>" = ""

[expand.abbreviations]
sf = "SELECT * FROM "

[log]
level = "debug"
`
	cfg, err := Parse([]byte(data), "test.toml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Editor.TabWidth != 8 {
		t.Errorf("tab_width = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.VisibleLines != 24 {
		t.Errorf("visible_lines = %d, want default 24", cfg.Editor.VisibleLines)
	}
	if cfg.Editor.AutoIndent {
		t.Error("auto_indent should be false")
	}
	if cfg.Side() != bracket.Either {
		t.Errorf("Side() = %v, want either", cfg.Side())
	}
	if cfg.Dialect.HashComments == nil || *cfg.Dialect.HashComments {
		t.Error("hash_comments override not decoded")
	}
	if cfg.Dialect.BackslashEscapes != nil {
		t.Error("backslash_escapes should be unset")
	}
	if got := cfg.Expand.Abbreviations["sf"]; got != "SELECT * FROM " {
		t.Errorf("abbreviation sf = %q", got)
	}
	if cfg.LogLevel() != log.LevelDebug {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("[editor]\ntab_width = = 3\n"), "bad.toml")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Path != "bad.toml" || pe.Line != 2 {
		t.Errorf("ParseError = %+v", pe)
	}

	_, err = Parse([]byte("[editor]\ntabwidth = 3\n"), "typo.toml")
	if !errors.Is(err, ErrUnknownSetting) {
		t.Fatalf("expected ErrUnknownSetting, got %v", err)
	}
	if !strings.Contains(err.Error(), "editor.tabwidth") {
		t.Errorf("error should name the key: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"tab width zero", func(c *Config) { c.Editor.TabWidth = 0 }, "editor.tab_width"},
		{"tab width large", func(c *Config) { c.Editor.TabWidth = MaxTabWidth + 1 }, "editor.tab_width"},
		{"visible lines", func(c *Config) { c.Editor.VisibleLines = 0 }, "editor.visible_lines"},
		{"bracket side", func(c *Config) { c.Editor.BracketSide = "around" }, "editor.bracket_side"},
		{"dialect", func(c *Config) { c.Dialect.Name = "cobol" }, "dialect.name"},
		{"trigger", func(c *Config) { c.Keys.ExpandTrigger = "<Hyper-x>" }, "keys.expand_trigger"},
		{"binding chord", func(c *Config) { c.Keys.Bindings = map[string]string{"<Hyper-x>": "edit.undo"} }, "keys.bindings"},
		{"binding action", func(c *Config) { c.Keys.Bindings = map[string]string{"<C-x>": "edit.cut"} }, "keys.bindings.<C-x>"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected validation failure, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Path != tt.path {
				t.Errorf("error path = %v, want %s", err, tt.path)
			}
		})
	}
}

func TestValidate_CustomDialectSkipsName(t *testing.T) {
	cfg := Default()
	cfg.Dialect.Name = "postgres"
	cfg.Dialect.File = "pg.yaml"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SQLEDIT_TAB_WIDTH":     "2",
		"SQLEDIT_AUTO_INDENT":   "false",
		"SQLEDIT_DIALECT":       "oracle",
		"SQLEDIT_HASH_COMMENTS": "true",
		"SQLEDIT_LOG_LEVEL":     "warn",
	}
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Editor.TabWidth != 2 || cfg.Editor.AutoIndent || cfg.Dialect.Name != "oracle" {
		t.Errorf("overrides not applied: %+v %+v", cfg.Editor, cfg.Dialect)
	}
	if cfg.Dialect.HashComments == nil || !*cfg.Dialect.HashComments {
		t.Error("SQLEDIT_HASH_COMMENTS not applied")
	}
	if cfg.LogLevel() != log.LevelWarn {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestApplyEnv_BadValue(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		if k == "SQLEDIT_VISIBLE_LINES" {
			return "many", true
		}
		return "", false
	})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Path != "editor.visible_lines" {
		t.Fatalf("expected validation error for visible_lines, got %v", err)
	}
}

func TestEnvNames(t *testing.T) {
	for _, name := range EnvNames() {
		if !strings.HasPrefix(name, EnvPrefix) {
			t.Errorf("%s lacks prefix", name)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("SQLEDIT_VISIBLE_LINES", "50")
	dir := t.TempDir()
	path := writeFile(t, dir, "sqledit.toml", "[editor]\ntab_width = 2\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidth != 2 || cfg.Editor.VisibleLines != 50 {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if got := cfg.Resolve("pg.yaml"); got != filepath.Join(dir, "pg.yaml") {
		t.Errorf("Resolve = %q", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidth != Default().Editor.TabWidth {
		t.Errorf("expected defaults, got %+v", cfg.Editor)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sqledit.toml", "[editor]\ntab_width = 0\n")
	if _, err := Load(path); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestLoadDialect(t *testing.T) {
	cfg := Default()
	cfg.Dialect.Name = "mysql"
	off := false
	cfg.Dialect.HashComments = &off

	d, err := cfg.LoadDialect()
	if err != nil {
		t.Fatalf("LoadDialect: %v", err)
	}
	if d.Name != "mysql" {
		t.Errorf("Name = %q", d.Name)
	}
	if d.Rules.HashComments {
		t.Error("hash_comments override ignored")
	}
}

func TestLoadDialect_File(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tiny.yaml", "name: tiny\nkeywords: [SELECT, FROM]\nrules:\n  hash_comments: true\n")

	cfg := Default()
	cfg.SetDir(dir)
	cfg.Dialect.File = "tiny.yaml"

	d, err := cfg.LoadDialect()
	if err != nil {
		t.Fatalf("LoadDialect: %v", err)
	}
	if !d.Rules.HashComments {
		t.Error("file rules lost")
	}
	if cat, ok := d.Table().Classify("select"); !ok || cat != highlight.CategoryKeywordStandard {
		t.Errorf("Classify(select) = %v, %v", cat, ok)
	}
}

func TestDispatcher(t *testing.T) {
	cfg := Default()
	cfg.Keys.Bindings = map[string]string{
		"<C-k>": string(keymap.ActionDeleteWordForward),
		"<C-d>": "",
	}
	d, err := cfg.Dispatcher(nil)
	if err != nil {
		t.Fatalf("Dispatcher: %v", err)
	}

	if a, _ := d.Table().Lookup(key.MustParse("<C-k>")); a != keymap.ActionDeleteWordForward {
		t.Errorf("<C-k> = %q", a)
	}
	if _, ok := d.Table().Lookup(key.MustParse("<C-d>")); ok {
		t.Error("<C-d> should be unbound")
	}
	if d.Trigger() != key.MustParse("Tab") {
		t.Errorf("Trigger() = %v", d.Trigger())
	}
}

func TestExpander(t *testing.T) {
	cfg := Default()
	exp, closeFn, err := cfg.Expander()
	if err != nil || exp != nil {
		t.Fatalf("empty config: exp=%v err=%v", exp, err)
	}
	_ = closeFn()

	dir := t.TempDir()
	writeFile(t, dir, "expand.lua", `function expand(w) if w == "now" then return "CURRENT_TIMESTAMP" end end`)
	cfg.SetDir(dir)
	cfg.Expand.Script = "expand.lua"
	cfg.Expand.Abbreviations = map[string]string{"sf": "SELECT * FROM "}

	exp, closeFn, err = cfg.Expander()
	if err != nil {
		t.Fatalf("Expander: %v", err)
	}
	defer func() { _ = closeFn() }()

	for word, want := range map[string]string{"SF": "SELECT * FROM ", "now": "CURRENT_TIMESTAMP"} {
		got, ok := exp.Expand(word)
		if !ok || got != want {
			t.Errorf("Expand(%q) = %q, %v; want %q", word, got, ok, want)
		}
	}
	if _, ok := exp.Expand("other"); ok {
		t.Error("unexpected expansion")
	}
}

func TestExpander_MissingScript(t *testing.T) {
	cfg := Default()
	cfg.Expand.Script = filepath.Join(t.TempDir(), "none.lua")
	if _, _, err := cfg.Expander(); err == nil {
		t.Fatal("expected error for missing script")
	}
}
