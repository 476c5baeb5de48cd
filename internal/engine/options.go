package engine

import "github.com/dshills/sqledit/internal/highlight"

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
)

// Option configures a Document during creation.
type Option func(*Document)

// WithContent sets the initial content.
func WithContent(content string) Option {
	return func(d *Document) {
		d.initContent = content
	}
}

// WithTabWidth sets the tab width used for column geometry.
func WithTabWidth(width int) Option {
	return func(d *Document) {
		if width > 0 {
			d.tabWidth = width
		}
	}
}

// WithScanner sets the scanner (keyword table and dialect rules).
func WithScanner(s *highlight.Scanner) Option {
	return func(d *Document) {
		d.scanner = s
	}
}

// WithMaxUndoEntries sets the maximum number of undo steps.
func WithMaxUndoEntries(max int) Option {
	return func(d *Document) {
		if max > 0 {
			d.maxUndo = max
		}
	}
}

// WithReadOnly creates a read-only document.
// Edits return ErrReadOnly.
func WithReadOnly() Option {
	return func(d *Document) {
		d.readOnly = true
	}
}
