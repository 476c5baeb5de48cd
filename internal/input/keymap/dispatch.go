package keymap

import (
	"github.com/dshills/sqledit/internal/input/expand"
	"github.com/dshills/sqledit/internal/input/key"
)

// Command is the result of dispatching a chord.
type Command struct {
	Action Action

	// Rune is the character to type for ActionInsertChar.
	Rune rune

	// Word and Text are set for ActionExpand: the word before the caret
	// and the text that replaces it.
	Word string
	Text string
}

// Context supplies the editor state the dispatcher needs.
type Context interface {
	// WordBeforeCaret returns the word that ends at the caret, or "".
	WordBeforeCaret() string
}

// Dispatcher turns chords into commands.
type Dispatcher struct {
	table    *Table
	trigger  key.Chord
	expander expand.Expander
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithExpander sets the expander consulted on the expand trigger.
func WithExpander(e expand.Expander) DispatcherOption {
	return func(d *Dispatcher) {
		d.expander = e
	}
}

// WithExpandTrigger sets the chord that triggers word expansion.
func WithExpandTrigger(c key.Chord) DispatcherOption {
	return func(d *Dispatcher) {
		d.trigger = c.Normalize()
	}
}

// NewDispatcher creates a dispatcher over table. The expand trigger
// defaults to DefaultExpandTrigger.
func NewDispatcher(table *Table, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		table:   table,
		trigger: key.MustParse(DefaultExpandTrigger),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Table returns the dispatcher's binding table.
func (d *Dispatcher) Table() *Table {
	return d.table
}

// Trigger returns the expand trigger chord.
func (d *Dispatcher) Trigger() key.Chord {
	return d.trigger
}

// Dispatch resolves c in three steps:
//
//  1. On the expand trigger, if the word before the caret expands, the
//     chord becomes ActionExpand.
//  2. A bound chord becomes its action.
//  3. A printable character becomes ActionInsertChar.
//
// Anything else reports false.
func (d *Dispatcher) Dispatch(c key.Chord, ctx Context) (Command, bool) {
	c = c.Normalize()

	if c == d.trigger && d.expander != nil && ctx != nil {
		if word := ctx.WordBeforeCaret(); word != "" {
			if text, ok := d.expander.Expand(word); ok {
				return Command{Action: ActionExpand, Word: word, Text: text}, true
			}
		}
	}

	if a, ok := d.table.Lookup(c); ok {
		return Command{Action: a}, true
	}

	if c.IsPrintable() {
		return Command{Action: ActionInsertChar, Rune: c.Rune}, true
	}
	return Command{}, false
}
