package cursor

import "unicode"

// Every navigation primitive takes an extend flag. When set, the head
// moves and the anchor stays, growing or shrinking the selection; when
// clear, the selection collapses to a caret at the target.

// charClass groups characters for word navigation.
type charClass uint8

const (
	classSpace charClass = iota
	classWord
	classPunct
)

func classOf(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}

// NextChar moves one character right. Without extend a non-empty linear
// selection collapses to its end instead. In rectangular mode with extend
// the head column grows by one, past the end of short lines if need be.
func (m *Model) NextChar(extend bool) {
	m.goalCol = -1
	switch {
	case extend && m.sel.Mode == Rectangular:
		m.setRectHead(corner{line: m.rectHead.line, col: m.rectHead.col + 1})
	case !extend && m.sel.Mode == Linear && !m.sel.IsEmpty():
		m.moveTo(m.sel.End(), false)
	default:
		m.moveTo(m.sel.Head+1, extend)
	}
}

// PrevChar moves one character left. Without extend a non-empty linear
// selection collapses to its start instead.
func (m *Model) PrevChar(extend bool) {
	m.goalCol = -1
	switch {
	case extend && m.sel.Mode == Rectangular:
		m.setRectHead(corner{line: m.rectHead.line, col: max(m.rectHead.col-1, 0)})
	case !extend && m.sel.Mode == Linear && !m.sel.IsEmpty():
		m.moveTo(m.sel.Start(), false)
	default:
		m.moveTo(m.sel.Head-1, extend)
	}
}

// NextWord moves to the end of the run of same-class characters at the
// head. A line break is a stop of its own.
func (m *Model) NextWord(extend bool) {
	m.goalCol = -1
	m.moveTo(m.nextWordBoundary(m.sel.Head), extend)
}

// PrevWord moves to the start of the run of same-class characters before
// the head.
func (m *Model) PrevWord(extend bool) {
	m.goalCol = -1
	m.moveTo(m.prevWordBoundary(m.sel.Head), extend)
}

func (m *Model) runeAt(offset int) rune {
	r, _ := m.doc.RuneAt(offset)
	return r
}

func (m *Model) nextWordBoundary(offset int) int {
	n := m.doc.Len()
	if offset >= n {
		return n
	}
	first := m.runeAt(offset)
	if first == '\n' {
		return offset + 1
	}
	class := classOf(first)
	offset++
	for offset < n {
		r := m.runeAt(offset)
		if r == '\n' || classOf(r) != class {
			break
		}
		offset++
	}
	return offset
}

func (m *Model) prevWordBoundary(offset int) int {
	if offset <= 0 {
		return 0
	}
	first := m.runeAt(offset - 1)
	if first == '\n' {
		return offset - 1
	}
	class := classOf(first)
	offset--
	for offset > 0 {
		r := m.runeAt(offset - 1)
		if r == '\n' || classOf(r) != class {
			break
		}
		offset--
	}
	return offset
}

// LineStart moves to the first non-blank character of the line, or to
// the line's first column if the head is already there.
func (m *Model) LineStart(extend bool) {
	m.goalCol = -1
	l := m.line(m.lineOf(m.sel.Head))
	target := l.Start
	for target < l.End() {
		if r := m.runeAt(target); r != ' ' && r != '\t' {
			break
		}
		target++
	}
	if m.sel.Head == target {
		target = l.Start
	}
	m.moveTo(target, extend)
}

// LineEnd moves to the end of the line, before its terminator.
func (m *Model) LineEnd(extend bool) {
	m.goalCol = -1
	m.moveTo(m.line(m.lineOf(m.sel.Head)).End(), extend)
}

// DocumentHome moves to offset 0.
func (m *Model) DocumentHome(extend bool) {
	m.goalCol = -1
	m.moveTo(0, extend)
}

// DocumentEnd moves to the end of the text.
func (m *Model) DocumentEnd(extend bool) {
	m.goalCol = -1
	m.moveTo(m.doc.Len(), extend)
}

// NextLine moves down one line, keeping the goal column.
func (m *Model) NextLine(extend bool) {
	m.moveVertical(1, extend)
}

// PrevLine moves up one line, keeping the goal column.
func (m *Model) PrevLine(extend bool) {
	m.moveVertical(-1, extend)
}

// NextPage moves down by the visible line count.
func (m *Model) NextPage(extend bool) {
	m.moveVertical(m.visibleLines, extend)
}

// PrevPage moves up by the visible line count.
func (m *Model) PrevPage(extend bool) {
	m.moveVertical(-m.visibleLines, extend)
}

// moveVertical moves delta lines. Moving above the first line goes to the
// document start and below the last line to the document end.
func (m *Model) moveVertical(delta int, extend bool) {
	if extend && m.sel.Mode == Rectangular {
		m.setRectHead(corner{line: m.clampLine(m.rectHead.line + delta), col: m.rectHead.col})
		return
	}

	head := m.sel.Head
	col := m.goalCol
	if col < 0 {
		col = m.column(head)
	}
	target := m.lineOf(head) + delta
	switch {
	case target < 0:
		m.moveTo(0, extend)
	case target >= m.doc.LineCount():
		m.moveTo(m.doc.Len(), extend)
	default:
		m.moveTo(m.offsetAt(target, col), extend)
	}
	m.goalCol = col
}
