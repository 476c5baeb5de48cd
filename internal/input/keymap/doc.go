// Package keymap maps key chords to editing actions.
//
// # Tables
//
// A Table is built once from a list of bindings and is read-only after
// that. Bindings use the notation of the key package:
//
//	"<C-Left>"         - Ctrl+Left
//	"Ctrl+Shift+Left"  - Ctrl+Shift+Left
//	"<BS>"             - Backspace
//
// Navigation actions have extending twins (cursor.nextWord and
// select.nextWord). While the table is built, every navigation chord
// without Shift gets a Shift variant bound to the twin, so
// Shift+Ctrl+Right selects by word without a binding of its own. An
// explicit binding for the Shift variant wins over the mirror.
//
// # Dispatch
//
// The Dispatcher checks the expand trigger first. If the word before
// the caret expands, the chord is consumed as edit.expand; otherwise the
// trigger falls through to its table binding like any other chord.
// Printable characters with no binding become edit.insertChar.
//
// # Usage
//
//	table, err := keymap.NewDefaultTable()
//	if err != nil {
//	    return err
//	}
//	d := keymap.NewDispatcher(table, keymap.WithExpander(abbrevs))
//
//	cmd, ok := d.Dispatch(key.FromTcell(ev), session)
package keymap
