package cursor

import (
	"testing"

	"github.com/dshills/sqledit/internal/engine/buffer"
)

func TestNewSelection(t *testing.T) {
	s := NewSelection(20, 10)

	if s.Start() != 10 || s.End() != 20 {
		t.Errorf("expected [10, 20), got [%d, %d)", s.Start(), s.End())
	}
	if !s.IsBackward() {
		t.Error("selection with head before anchor should be backward")
	}
	if s.Caret() != 10 {
		t.Errorf("caret should be the head, got %d", s.Caret())
	}
	if r := s.Range(); r.Start != 10 || r.End != 20 {
		t.Errorf("unexpected range %v", r)
	}
}

func TestSelectionIsEmpty(t *testing.T) {
	if !NewCursorSelection(5).IsEmpty() {
		t.Error("cursor selection should be empty")
	}
	if NewSelection(5, 6).IsEmpty() {
		t.Error("one-character selection should not be empty")
	}

	rect := Selection{Mode: Rectangular, Rect: NewRect(0, 3, 4, 3)}
	if !rect.IsEmpty() {
		t.Error("zero-width rectangle should be empty")
	}
	rect.Rect = NewRect(0, 3, 0, 4)
	if rect.IsEmpty() {
		t.Error("one-column rectangle should not be empty")
	}
}

func TestNewRectNormalizes(t *testing.T) {
	r := NewRect(5, 10, 2, 3)
	want := Rect{StartLine: 2, StartCol: 3, EndLine: 5, EndCol: 10}
	if r != want {
		t.Errorf("expected %+v, got %+v", want, r)
	}
	if r.Lines() != 4 || r.Width() != 7 {
		t.Errorf("unexpected lines %d width %d", r.Lines(), r.Width())
	}
}

func TestSelectionCollapseAndClamp(t *testing.T) {
	s := Selection{Anchor: 2, Head: 9, Mode: Rectangular, Rect: NewRect(0, 2, 1, 4)}
	c := s.Collapse()
	if c.Mode != Linear || c.Anchor != 9 || c.Head != 9 {
		t.Errorf("collapse should give a linear caret at the head, got %v", c)
	}

	s = NewSelection(-3, 50).Clamp(30)
	if s.Anchor != 0 || s.Head != 30 {
		t.Errorf("expected [0, 30], got [%d, %d]", s.Anchor, s.Head)
	}
}

func TestSelectionString(t *testing.T) {
	tests := []struct {
		sel  Selection
		want string
	}{
		{NewCursorSelection(4), "Cursor(4)"},
		{NewSelection(1, 4), "Selection(1→4)"},
		{NewSelection(4, 1), "Selection(4←1)"},
		{Selection{Mode: Rectangular, Rect: NewRect(0, 1, 2, 3)}, "Rect(0:1-2:3)"},
	}
	for _, tt := range tests {
		if got := tt.sel.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func insert(offset int, text string) buffer.EditResult {
	return buffer.EditResult{Offset: offset, InsertedLen: len([]rune(text)), NewText: text}
}

func remove(start, end int) buffer.EditResult {
	return buffer.EditResult{Offset: start, DeletedLen: end - start}
}

func TestTransformOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		edit   buffer.EditResult
		want   int
	}{
		{"insert before", 10, insert(0, "Hello"), 15},
		{"insert after", 10, insert(20, "Hello"), 10},
		{"insert at offset", 10, insert(10, "Hello"), 15},
		{"delete before", 10, remove(0, 5), 5},
		{"delete after", 10, remove(12, 20), 10},
		{"delete spanning", 10, remove(5, 15), 5},
		{"replace before", 10, buffer.EditResult{Offset: 0, DeletedLen: 5, InsertedLen: 10}, 15},
		{"replace spanning", 10, buffer.EditResult{Offset: 8, DeletedLen: 4, InsertedLen: 1}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformOffset(tt.offset, tt.edit); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTransformOffsetSticky(t *testing.T) {
	edit := insert(10, "abc")
	if got := TransformOffsetSticky(10, edit, true); got != 10 {
		t.Errorf("sticky offset should stay put, got %d", got)
	}
	if got := TransformOffsetSticky(10, edit, false); got != 13 {
		t.Errorf("non-sticky offset should move past the insert, got %d", got)
	}
	if got := TransformOffsetSticky(12, remove(10, 11), true); got != 11 {
		t.Errorf("deletes ignore stickiness, got %d", got)
	}
}

func TestTransformSelection(t *testing.T) {
	sel := NewSelection(10, 20)

	got := TransformSelection(sel, insert(0, "Hello"))
	if got.Anchor != 15 || got.Head != 25 {
		t.Errorf("selection should shift by 5, got [%d:%d]", got.Anchor, got.Head)
	}

	got = TransformSelection(sel, insert(10, "abc"))
	if got.Anchor != 10 || got.Head != 23 {
		t.Errorf("insert at the anchor should grow the selection, got [%d:%d]", got.Anchor, got.Head)
	}

	rect := Selection{Anchor: 1, Head: 7, Mode: Rectangular, Rect: NewRect(0, 1, 1, 2)}
	got = TransformSelection(rect, insert(0, "x"))
	if got.Mode != Linear || got.Anchor != 2 || got.Head != 8 {
		t.Errorf("rectangle should become a shifted linear selection, got %v", got)
	}
}
