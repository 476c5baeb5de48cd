package cursor

import "strings"

// Editing helpers built on ReplaceSelection and direct document edits.
// Each leaves the caret where typing would continue.

// InsertText replaces the selection with text. It is the fallback for
// printable characters with no bound action.
func (m *Model) InsertText(text string) error {
	return m.ReplaceSelection(text)
}

// InsertChar types r. In overwrite mode an empty linear selection
// replaces the character under the caret unless the caret is at the
// line end.
func (m *Model) InsertChar(r rune) error {
	head := m.sel.Head
	if m.overwrite && m.sel.Mode == Linear && m.sel.IsEmpty() &&
		head < m.line(m.lineOf(head)).End() {
		ch, err := m.doc.ApplyEdit(head, 1, string(r))
		if err != nil {
			return err
		}
		m.goalCol = -1
		m.sel = NewCursorSelection(ch.Edit.NewEnd())
		return nil
	}
	return m.ReplaceSelection(string(r))
}

// InsertTab inserts a tab character.
func (m *Model) InsertTab() error {
	return m.ReplaceSelection("\t")
}

// InsertBreak inserts a line break. With auto-indent the new line starts
// with the leading whitespace of the current line up to the caret. A
// rectangular selection collapses to its head first.
func (m *Model) InsertBreak() error {
	if m.sel.Mode == Rectangular {
		m.sel = m.sel.Collapse()
	}
	text := "\n"
	if m.autoIndent {
		text += m.indentBefore(m.sel.Start())
	}
	return m.ReplaceSelection(text)
}

// indentBefore returns the leading whitespace of offset's line that lies
// before offset.
func (m *Model) indentBefore(offset int) string {
	l := m.line(m.lineOf(offset))
	var sb strings.Builder
	for i := l.Start; i < offset; i++ {
		r := m.runeAt(i)
		if r != ' ' && r != '\t' {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Backspace deletes the selection, or the character before the caret.
// On a zero-width rectangle it deletes the column before it on every
// covered line.
func (m *Model) Backspace() error {
	if m.sel.Mode == Rectangular && m.sel.IsEmpty() {
		col := m.sel.Rect.StartCol
		if col == 0 {
			return nil
		}
		m.widenRect(col-1, col)
	}
	if !m.sel.IsEmpty() {
		return m.ReplaceSelection("")
	}
	head := m.sel.Head
	if head == 0 {
		return nil
	}
	return m.deleteRange(head-1, head)
}

// Delete deletes the selection, or the character after the caret. On a
// zero-width rectangle it deletes the column after it on every covered
// line.
func (m *Model) Delete() error {
	if m.sel.Mode == Rectangular && m.sel.IsEmpty() {
		col := m.sel.Rect.StartCol
		m.widenRect(col, col+1)
	}
	if !m.sel.IsEmpty() {
		return m.ReplaceSelection("")
	}
	head := m.sel.Head
	if head >= m.doc.Len() {
		return nil
	}
	return m.deleteRange(head, head+1)
}

// widenRect sets the rectangle's columns, keeping its lines.
func (m *Model) widenRect(startCol, endCol int) {
	m.rectAnchor.col = startCol
	m.setRectHead(corner{line: m.rectHead.line, col: endCol})
}

// DeleteWordBackward deletes the selection, or back to the previous word
// boundary.
func (m *Model) DeleteWordBackward() error {
	if !m.sel.IsEmpty() {
		return m.ReplaceSelection("")
	}
	head := m.sel.Head
	return m.deleteRange(m.prevWordBoundary(head), head)
}

// DeleteWordForward deletes the selection, or up to the next word
// boundary.
func (m *Model) DeleteWordForward() error {
	if !m.sel.IsEmpty() {
		return m.ReplaceSelection("")
	}
	head := m.sel.Head
	return m.deleteRange(head, m.nextWordBoundary(head))
}

// deleteRange removes [start, end) and leaves a caret at start.
func (m *Model) deleteRange(start, end int) error {
	if start >= end {
		m.MoveCaret(start)
		return nil
	}
	if _, err := m.doc.ApplyEdit(start, end-start, ""); err != nil {
		return err
	}
	m.MoveCaret(start)
	return nil
}

// DuplicateLine copies the caret's line below itself and moves the
// caret to the same position on the copy.
func (m *Model) DuplicateLine() error {
	head := m.sel.Head
	l := m.line(m.lineOf(head))
	text, err := m.doc.Slice(l.Start, l.End())
	if err != nil {
		return err
	}
	if _, err := m.doc.ApplyEdit(l.End(), 0, "\n"+text); err != nil {
		return err
	}
	m.MoveCaret(head + l.Length + 1)
	return nil
}

// DeleteLine removes the caret's line with its terminator and leaves the
// caret at the start of the line that takes its place.
func (m *Model) DeleteLine() error {
	line := m.lineOf(m.sel.Head)
	l := m.line(line)
	start, end := l.Start, l.End()
	switch {
	case line+1 < m.doc.LineCount():
		end++
	case line > 0:
		// Last line: take the preceding terminator instead.
		start--
	}
	if _, err := m.doc.ApplyEdit(start, end-start, ""); err != nil {
		return err
	}
	m.MoveCaret(m.line(min(line, m.doc.LineCount()-1)).Start)
	return nil
}
