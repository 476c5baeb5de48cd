// Package config loads editor settings from a TOML file.
//
// # Sources
//
// Settings come from three places, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. The TOML file passed to Load
//  3. SQLEDIT_* environment variables (EnvNames lists them)
//
// A missing file is not an error. Unknown keys are, so typos surface as
// a ParseError with a line and column.
//
// # File Format
//
//	[editor]
//	tab_width = 4
//	visible_lines = 40
//	bracket_side = "either"     # before, after or either
//	auto_indent = true
//
//	[dialect]
//	name = "mysql"              # built-in: ansi, mysql, oracle
//	file = "dialects/pg.yaml"   # overrides name; relative to this file
//	hash_comments = false       # overrides the dialect's own rule
//
//	[keys]
//	expand_trigger = "Tab"
//
//	[keys.bindings]
//	"<C-k>" = "edit.deleteWordForward"
//	"<C-d>" = ""                # unbind
//
//	[expand]
//	script = "expand.lua"
//
//	[expand.abbreviations]
//	sf = "SELECT * FROM "
//
//	[log]
//	level = "debug"
//	file = "/tmp/sqledit.log"
//
// # Building Components
//
// Config turns settings into the objects the editor needs: LoadDialect,
// Dispatcher, Expander, Side and LogLevel. The watcher subpackage
// reports changes to the files they were built from.
package config
