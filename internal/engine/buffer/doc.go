// Package buffer provides the editor's text buffer: a character store
// with a line index kept in step with every edit.
//
// Offsets count characters (runes). Lines are separated by a single LF;
// CRLF and CR are normalized on load and on insert. An empty buffer has
// one empty line, and the last line never has a terminator.
//
// Basic usage:
//
//	buf := buffer.NewFromString("select 1\nfrom dual")
//
//	res, err := buf.ApplyEdit(7, 1, "2, 3")   // "select 2, 3\nfrom dual"
//	if err != nil {
//	    // offset or length outside the buffer
//	}
//	changed := res.LinesChanged()             // lines 0..0
//
// Every query validates its arguments and returns ErrOutOfBounds rather
// than clamping. Column helpers (OffsetToColumn, ColumnToOffset) convert
// between character offsets and display columns, expanding tabs to the
// configured tab width and counting East Asian wide characters as two
// columns.
package buffer
