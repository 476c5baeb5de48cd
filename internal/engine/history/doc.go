// Package history provides undo/redo for document edits.
//
// Every edit applied to a document is recorded as an Operation holding
// the offset, the removed text and the inserted text, which is enough to
// invert it. Operations are grouped into entries; one entry is one undo
// step.
//
//	h := history.New(1000) // keep at most 1000 undo steps
//
//	h.Push(history.NewOperation(0, "", "select"))
//
//	h.BeginGroup("column insert")
//	// ... several edits, each pushed ...
//	h.EndGroup()
//
//	entry, err := h.Undo(doc) // doc implements Editor
//
// Undo and Redo replay operations through an Editor, which must apply
// them without recording them again.
package history
