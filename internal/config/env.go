package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SQLEDIT_"

// envSetting maps one environment variable onto a setting.
type envSetting struct {
	name string // without the prefix
	path string // setting path for errors
	set  func(c *Config, value string) error
}

func setString(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func setInt(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func setBool(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func setOptionalBool(field func(*Config) **bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = &b
		return nil
	}
}

var envSettings = []envSetting{
	{"TAB_WIDTH", "editor.tab_width", setInt(func(c *Config) *int { return &c.Editor.TabWidth })},
	{"VISIBLE_LINES", "editor.visible_lines", setInt(func(c *Config) *int { return &c.Editor.VisibleLines })},
	{"BRACKET_SIDE", "editor.bracket_side", setString(func(c *Config) *string { return &c.Editor.BracketSide })},
	{"AUTO_INDENT", "editor.auto_indent", setBool(func(c *Config) *bool { return &c.Editor.AutoIndent })},
	{"DIALECT", "dialect.name", setString(func(c *Config) *string { return &c.Dialect.Name })},
	{"DIALECT_FILE", "dialect.file", setString(func(c *Config) *string { return &c.Dialect.File })},
	{"BACKSLASH_ESCAPES", "dialect.backslash_escapes", setOptionalBool(func(c *Config) **bool { return &c.Dialect.BackslashEscapes })},
	{"HASH_COMMENTS", "dialect.hash_comments", setOptionalBool(func(c *Config) **bool { return &c.Dialect.HashComments })},
	{"BACKTICK_IDENTIFIERS", "dialect.backtick_identifiers", setOptionalBool(func(c *Config) **bool { return &c.Dialect.BacktickIdentifiers })},
	{"EXPAND_TRIGGER", "keys.expand_trigger", setString(func(c *Config) *string { return &c.Keys.ExpandTrigger })},
	{"EXPAND_SCRIPT", "expand.script", setString(func(c *Config) *string { return &c.Expand.Script })},
	{"LOG_LEVEL", "log.level", setString(func(c *Config) *string { return &c.Log.Level })},
	{"LOG_FILE", "log.file", setString(func(c *Config) *string { return &c.Log.File })},
}

// EnvNames returns the recognised environment variables.
func EnvNames() []string {
	names := make([]string, len(envSettings))
	for i, s := range envSettings {
		names[i] = EnvPrefix + s.name
	}
	return names
}

// ApplyEnv applies SQLEDIT_* overrides found with lookup, usually
// os.LookupEnv. Empty values count as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, s := range envSettings {
		v, ok := lookup(EnvPrefix + s.name)
		if !ok {
			continue
		}
		if err := s.set(c, v); err != nil {
			return &ValidationError{
				Path:    s.path,
				Message: fmt.Sprintf("bad value in %s%s", EnvPrefix, s.name),
				Value:   v,
				Err:     err,
			}
		}
	}
	return nil
}
