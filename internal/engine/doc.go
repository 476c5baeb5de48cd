// Package engine ties the text buffer, the incremental token marker and
// the undo history together into a Document.
//
// # Data flow
//
// Edits arrive as (offset, deleteLength, text) triples:
//
//	doc := engine.New(engine.WithContent("select 1\nfrom dual"))
//	ch, err := doc.ApplyEdit(0, 0, "/* ")
//
// The buffer applies the edit and reports the changed lines, the token
// marker re-lexes from the first changed line until the lexer state
// converges with the cached one, and the history records the edit.
// ch.Relex tells consumers which token chains were replaced.
//
// # Sub-packages
//
//   - buffer: character store and line index
//   - history: undo/redo
//   - cursor: caret and selection model
//   - bracket: bracket matching over the token stream
//
// Consumers only query a Document. Token chains returned by Tokens are
// views that are invalidated by the next edit.
package engine
