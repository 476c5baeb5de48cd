package cursor

import "github.com/dshills/sqledit/internal/engine/buffer"

// TransformOffset updates an offset after an edit.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset int, edit buffer.EditResult) int {
	if edit.OldEnd() <= offset {
		return offset + edit.Delta()
	}
	if edit.Offset >= offset {
		return offset
	}
	return edit.NewEnd()
}

// TransformOffsetSticky is like TransformOffset but decides what happens
// to an offset sitting exactly where text was inserted: sticky offsets
// stay before the insertion, others move past it.
func TransformOffsetSticky(offset int, edit buffer.EditResult, sticky bool) int {
	if edit.DeletedLen == 0 && edit.Offset == offset {
		if sticky {
			return offset
		}
		return edit.NewEnd()
	}
	return TransformOffset(offset, edit)
}

// TransformSelection updates a selection after an edit. The anchor
// sticks in front of insertions at its position while the head moves
// past them. A rectangular selection becomes linear, since its columns
// no longer describe the edited lines.
func TransformSelection(sel Selection, edit buffer.EditResult) Selection {
	return Selection{
		Anchor: TransformOffsetSticky(sel.Anchor, edit, true),
		Head:   TransformOffsetSticky(sel.Head, edit, false),
	}
}
