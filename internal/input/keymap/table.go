package keymap

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dshills/sqledit/internal/input/key"
)

// Table maps chords to actions. It is built once and never mutated, so
// Lookup is a single map access.
type Table struct {
	actions  map[key.Chord]Action
	bindings map[key.Chord]Binding
}

// NewTable builds a table from bindings. Later bindings for the same
// chord replace earlier ones, and a binding with an empty Action removes
// the chord.
//
// After the explicit bindings are applied, every chord bound to a
// navigation action gains a Shift variant bound to the extending twin,
// unless that variant was bound or unbound explicitly. Printable runes
// are never mirrored.
func NewTable(bindings []Binding) (*Table, error) {
	t := &Table{
		actions:  make(map[key.Chord]Action, len(bindings)*2),
		bindings: make(map[key.Chord]Binding, len(bindings)*2),
	}
	explicit := make(map[key.Chord]bool, len(bindings))

	for _, b := range bindings {
		chord, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", b.Keys, err)
		}
		explicit[chord] = true
		if b.Action == "" {
			delete(t.actions, chord)
			delete(t.bindings, chord)
			continue
		}
		if !b.Action.IsValid() {
			return nil, fmt.Errorf("binding %q: %w: %q", b.Keys, ErrUnknownAction, b.Action)
		}
		t.actions[chord] = b.Action
		t.bindings[chord] = b
	}

	bound := make([]key.Chord, 0, len(t.actions))
	for chord := range t.actions {
		bound = append(bound, chord)
	}
	for _, chord := range bound {
		twin, ok := t.actions[chord].ExtendTwin()
		if !ok || chord.HasShift() || chord.IsPrintable() {
			continue
		}
		shifted := chord.WithShift()
		if explicit[shifted] {
			continue
		}
		src := t.bindings[chord]
		t.actions[shifted] = twin
		t.bindings[shifted] = Binding{
			Keys:        shifted.String(),
			Action:      twin,
			Description: src.Description + " (extend selection)",
			Category:    "Selection",
		}
	}
	return t, nil
}

// NewDefaultTable builds a table from DefaultBindings followed by extra.
func NewDefaultTable(extra ...Binding) (*Table, error) {
	return NewTable(append(DefaultBindings(), extra...))
}

// Lookup returns the action bound to c.
func (t *Table) Lookup(c key.Chord) (Action, bool) {
	a, ok := t.actions[c.Normalize()]
	return a, ok
}

// Len returns the number of bound chords, mirrored ones included.
func (t *Table) Len() int {
	return len(t.actions)
}

// Bindings returns every binding sorted by category, then action, then
// keys.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, 0, len(t.bindings))
	for _, b := range t.bindings {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b Binding) int {
		switch {
		case a.Category != b.Category:
			return cmp.Compare(a.Category, b.Category)
		case a.Action != b.Action:
			return cmp.Compare(a.Action, b.Action)
		default:
			return cmp.Compare(a.Keys, b.Keys)
		}
	})
	return out
}
