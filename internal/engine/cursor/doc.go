// Package cursor provides the caret and selection model for text editing.
//
// The cursor package handles:
//
//   - Linear selections with an anchor/head model via Selection
//   - Rectangular (column) selections described by a Rect
//   - Navigation primitives on a Model, each with an extending variant
//   - Selection transformation after edits made elsewhere
//
// Selection Model:
//
// Linear selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The caret (where typing would occur)
//
// When Anchor == Head the selection is just a caret. The selection can
// extend forward (head > anchor) or backward (head < anchor).
//
// Rectangular Selections:
//
// A rectangular selection covers display columns [StartCol, EndCol) on
// every line from StartLine to EndLine. The span on each line is derived
// from columns, not offsets, so a line shorter than StartCol contributes
// an empty span and tabs or wide characters shift where the span falls.
// Replacing a rectangular selection edits each covered line bottom to
// top as one undo step.
//
// Basic usage:
//
//	doc := engine.New(engine.WithContent("select a\nfrom b"))
//	m := cursor.New(doc)
//
//	m.NextWord(true)           // select "select"
//	m.ReplaceSelection("SELECT")
//
//	m.SetRectangularSelection(0, 0, 1, 0)
//	m.InsertText("-- ")        // comment out both lines
//
// Thread Safety:
//
// Selection and Rect are immutable value types. Model is not safe for
// concurrent use; it is owned by the goroutine that dispatches input.
package cursor
