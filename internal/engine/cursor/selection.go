package cursor

import (
	"fmt"

	"github.com/dshills/sqledit/internal/engine/buffer"
)

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Mode tags a selection as linear or rectangular.
type Mode uint8

const (
	// Linear selections cover the offsets between anchor and head.
	Linear Mode = iota
	// Rectangular selections cover a column range on each covered line.
	Rectangular
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Rectangular {
		return "rectangular"
	}
	return "linear"
}

// Rect is the geometry of a rectangular selection. Lines are inclusive,
// columns are display columns with StartCol <= EndCol. Columns may lie
// past the end of short lines.
type Rect struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// NewRect creates a rect from two corners in any order.
func NewRect(line1, col1, line2, col2 int) Rect {
	if line2 < line1 {
		line1, line2 = line2, line1
	}
	if col2 < col1 {
		col1, col2 = col2, col1
	}
	return Rect{StartLine: line1, StartCol: col1, EndLine: line2, EndCol: col2}
}

// Lines returns the number of covered lines.
func (r Rect) Lines() int {
	return r.EndLine - r.StartLine + 1
}

// Width returns the column width.
func (r Rect) Width() int {
	return r.EndCol - r.StartCol
}

// Selection is the selected region. Anchor is where the selection
// started and Head is the caret. When Anchor == Head in linear mode the
// selection is just a caret.
//
// In rectangular mode Rect holds the authoritative geometry; Anchor and
// Head are the offsets of its corners clamped to their lines.
// Selection is an immutable value type.
type Selection struct {
	Anchor int
	Head   int
	Mode   Mode
	Rect   Rect
}

// NewCursorSelection creates a caret with no extent.
func NewCursorSelection(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// NewSelection creates a linear selection from anchor to head.
func NewSelection(anchor, head int) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// IsRectangular reports whether the selection is rectangular.
func (s Selection) IsRectangular() bool {
	return s.Mode == Rectangular
}

// IsEmpty returns true if the selection selects nothing. A rectangular
// selection of zero width is empty but still addresses every line it
// covers.
func (s Selection) IsEmpty() bool {
	if s.Mode == Rectangular {
		return s.Rect.Width() == 0
	}
	return s.Anchor == s.Head
}

// Range returns the linear extent (always Start <= End).
func (s Selection) Range() Range {
	return buffer.NewRange(s.Anchor, s.Head)
}

// Start returns the lower bound of the linear extent.
func (s Selection) Start() int {
	return min(s.Anchor, s.Head)
}

// End returns the upper bound of the linear extent.
func (s Selection) End() int {
	return max(s.Anchor, s.Head)
}

// Caret returns the head position (where typing would occur).
func (s Selection) Caret() int {
	return s.Head
}

// IsBackward returns true if the selection extends backward (head < anchor).
func (s Selection) IsBackward() bool {
	return s.Head < s.Anchor
}

// Collapse collapses the selection to a linear caret at the head.
func (s Selection) Collapse() Selection {
	return NewCursorSelection(s.Head)
}

// Clamp returns a selection with offsets clamped to [0, maxOffset].
func (s Selection) Clamp(maxOffset int) Selection {
	s.Anchor = min(max(s.Anchor, 0), maxOffset)
	s.Head = min(max(s.Head, 0), maxOffset)
	return s
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.Mode == Rectangular {
		r := s.Rect
		return fmt.Sprintf("Rect(%d:%d-%d:%d)", r.StartLine, r.StartCol, r.EndLine, r.EndCol)
	}
	if s.Anchor == s.Head {
		return fmt.Sprintf("Cursor(%d)", s.Head)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Anchor, dir, s.Head)
}
