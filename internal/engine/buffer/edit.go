package buffer

import "fmt"

// LineRange is an inclusive range of line indices.
type LineRange struct {
	First int
	Last  int
}

// Len returns the number of lines in the range.
func (r LineRange) Len() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

// Contains reports whether line is inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.First && line <= r.Last
}

// String returns a human-readable representation of the range.
func (r LineRange) String() string {
	return fmt.Sprintf("lines %d..%d", r.First, r.Last)
}

// EditResult describes an applied edit.
//
// FirstLine..OldLastLine are the lines the edit touched in the previous
// text; FirstLine..NewLastLine are the lines holding the result in the
// current text. Lines after OldLastLine are unchanged in content and
// reappear after NewLastLine.
type EditResult struct {
	Offset      int    // where the edit was applied
	DeletedLen  int    // characters removed
	InsertedLen int    // characters inserted (after normalization)
	OldText     string // text that was removed
	NewText     string // text that was inserted (after normalization)

	FirstLine   int
	OldLastLine int
	NewLastLine int
}

// LinesChanged returns the inclusive range of lines, in the current
// text, whose content changed.
func (r EditResult) LinesChanged() LineRange {
	return LineRange{First: r.FirstLine, Last: r.NewLastLine}
}

// Delta returns the change in buffer length.
func (r EditResult) Delta() int {
	return r.InsertedLen - r.DeletedLen
}

// LineDelta returns the change in line count.
func (r EditResult) LineDelta() int {
	return r.NewLastLine - r.OldLastLine
}

// OldEnd returns the end offset of the replaced range in the old text.
func (r EditResult) OldEnd() int {
	return r.Offset + r.DeletedLen
}

// NewEnd returns the end offset of the inserted text.
func (r EditResult) NewEnd() int {
	return r.Offset + r.InsertedLen
}

// IsNoOp reports whether the edit changed nothing.
func (r EditResult) IsNoOp() bool {
	return r.DeletedLen == 0 && r.InsertedLen == 0
}

// Inverse returns the offset, delete length and text that undo the edit.
func (r EditResult) Inverse() (offset, deleteLength int, text string) {
	return r.Offset, r.InsertedLen, r.OldText
}

// String returns a human-readable representation of the edit.
func (r EditResult) String() string {
	switch {
	case r.DeletedLen == 0:
		return fmt.Sprintf("Insert(%d, %q)", r.Offset, r.NewText)
	case r.InsertedLen == 0:
		return fmt.Sprintf("Delete[%d:%d)", r.Offset, r.OldEnd())
	default:
		return fmt.Sprintf("Replace[%d:%d) with %q", r.Offset, r.OldEnd(), r.NewText)
	}
}
