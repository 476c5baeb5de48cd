package cursor

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/sqledit/internal/engine"
	"github.com/dshills/sqledit/internal/engine/buffer"
)

// DefaultVisibleLines is the page size used until the view reports one.
const DefaultVisibleLines = 24

// Document is the text the model navigates and edits.
// *engine.Document implements it.
type Document interface {
	Len() int
	LineCount() int
	Line(line int) (buffer.Line, error)
	OffsetToLine(offset int) (int, error)
	OffsetToColumn(offset int) (int, error)
	ColumnToOffset(line, col int) (int, error)
	RuneAt(offset int) (rune, error)
	Slice(start, end int) (string, error)
	ApplyEdit(offset, deleteLength int, text string) (engine.Change, error)
	Transaction(name string, fn func() error) error
}

// corner is a (line, display column) position of a rectangle corner.
type corner struct {
	line, col int
}

// Model is the caret and selection of one document. There is a single
// caret; multiple cursors are not supported.
//
// Navigation never fails: targets past either end of the document are
// clamped. Model is not safe for concurrent use.
type Model struct {
	doc Document
	sel Selection

	// rectangle corners in display columns; only meaningful in
	// rectangular mode
	rectAnchor corner
	rectHead   corner

	// goalCol is the column vertical movement tries to keep, -1 if unset.
	goalCol int

	visibleLines int
	autoIndent   bool
	overwrite    bool
}

// Option configures a Model.
type Option func(*Model)

// WithVisibleLines sets the page size for page navigation.
func WithVisibleLines(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.visibleLines = n
		}
	}
}

// WithAutoIndent controls whether a line break copies the current
// line's leading whitespace.
func WithAutoIndent(on bool) Option {
	return func(m *Model) {
		m.autoIndent = on
	}
}

// New creates a model with the caret at the start of doc.
func New(doc Document, opts ...Option) *Model {
	m := &Model{
		doc:          doc,
		goalCol:      -1,
		visibleLines: DefaultVisibleLines,
		autoIndent:   true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Accessors

// Selection returns the current selection.
func (m *Model) Selection() Selection {
	return m.sel
}

// Caret returns the caret offset.
func (m *Model) Caret() int {
	return m.sel.Head
}

// VisibleLines returns the page size.
func (m *Model) VisibleLines() int {
	return m.visibleLines
}

// SetVisibleLines sets the page size reported by the view.
func (m *Model) SetVisibleLines(n int) {
	if n > 0 {
		m.visibleLines = n
	}
}

// Overwrite reports whether typed characters replace existing ones.
func (m *Model) Overwrite() bool {
	return m.overwrite
}

// SetOverwrite switches overwrite mode.
func (m *Model) SetOverwrite(on bool) {
	m.overwrite = on
}

// AutoIndent reports whether line breaks copy indentation.
func (m *Model) AutoIndent() bool {
	return m.autoIndent
}

// Geometry helpers. The document only rejects arguments outside its
// bounds, and every caller clamps first, so errors are not expected.

func (m *Model) clamp(offset int) int {
	return min(max(offset, 0), m.doc.Len())
}

func (m *Model) clampLine(line int) int {
	return min(max(line, 0), m.doc.LineCount()-1)
}

func (m *Model) lineOf(offset int) int {
	line, _ := m.doc.OffsetToLine(m.clamp(offset))
	return line
}

func (m *Model) line(line int) buffer.Line {
	l, _ := m.doc.Line(m.clampLine(line))
	return l
}

func (m *Model) column(offset int) int {
	col, _ := m.doc.OffsetToColumn(m.clamp(offset))
	return col
}

func (m *Model) offsetAt(line, col int) int {
	off, _ := m.doc.ColumnToOffset(m.clampLine(line), max(col, 0))
	return off
}

func (m *Model) cornerOf(offset int) corner {
	return corner{line: m.lineOf(offset), col: m.column(offset)}
}

// Selection operations

// MoveCaret collapses the selection to a caret at target.
func (m *Model) MoveCaret(target int) {
	m.goalCol = -1
	m.moveTo(target, false)
}

// ExtendSelection moves the head to target, keeping the anchor. In
// rectangular mode the rectangle's head corner follows target.
func (m *Model) ExtendSelection(target int) {
	m.goalCol = -1
	m.moveTo(target, true)
}

// SetSelection replaces the selection, clamping it to the document.
// Rectangular selections are rebuilt from their Rect.
func (m *Model) SetSelection(s Selection) {
	m.goalCol = -1
	if s.Mode == Rectangular {
		r := s.Rect
		m.SetRectangularSelection(r.StartLine, r.StartCol, r.EndLine, r.EndCol)
		return
	}
	m.sel = Selection{Anchor: m.clamp(s.Anchor), Head: m.clamp(s.Head)}
}

// SetRectangularSelection selects display columns [startCol, endCol) on
// lines startLine..endLine. Lines are clamped to the document and
// columns to zero; columns past a line's end are kept and yield empty
// or shortened spans on that line.
func (m *Model) SetRectangularSelection(startLine, startCol, endLine, endCol int) {
	m.goalCol = -1
	m.rectAnchor = corner{line: m.clampLine(startLine), col: max(startCol, 0)}
	m.setRectHead(corner{line: m.clampLine(endLine), col: max(endCol, 0)})
}

// setRectHead moves the head corner and recomputes the selection.
func (m *Model) setRectHead(head corner) {
	m.rectHead = head
	a := m.rectAnchor
	m.sel = Selection{
		Anchor: m.offsetAt(a.line, a.col),
		Head:   m.offsetAt(head.line, head.col),
		Mode:   Rectangular,
		Rect:   NewRect(a.line, a.col, head.line, head.col),
	}
}

// ToggleRectangular switches between linear and rectangular mode over
// the same anchor and head.
func (m *Model) ToggleRectangular() {
	if m.sel.Mode == Rectangular {
		m.sel = Selection{Anchor: m.sel.Anchor, Head: m.sel.Head}
		return
	}
	m.rectAnchor = m.cornerOf(m.sel.Anchor)
	m.setRectHead(m.cornerOf(m.sel.Head))
}

// SelectAll selects the whole document.
func (m *Model) SelectAll() {
	m.goalCol = -1
	m.sel = Selection{Anchor: 0, Head: m.doc.Len()}
}

// moveTo moves the head to target, collapsing unless extend is set.
func (m *Model) moveTo(target int, extend bool) {
	target = m.clamp(target)
	switch {
	case !extend:
		m.sel = NewCursorSelection(target)
	case m.sel.Mode == Rectangular:
		m.setRectHead(m.cornerOf(target))
	default:
		m.sel = Selection{Anchor: m.sel.Anchor, Head: target}
	}
}

// Spans returns the selected ranges. A linear selection yields one range
// (empty for a bare caret). A rectangular selection yields one range per
// covered line, [ColumnToOffset(line, StartCol), ColumnToOffset(line,
// EndCol)), so lines shorter than a column contribute a shortened or
// empty span.
func (m *Model) Spans() []Range {
	if m.sel.Mode != Rectangular {
		return []Range{m.sel.Range()}
	}
	r := m.sel.Rect
	spans := make([]Range, 0, r.Lines())
	for l := r.StartLine; l <= r.EndLine; l++ {
		spans = append(spans, Range{Start: m.offsetAt(l, r.StartCol), End: m.offsetAt(l, r.EndCol)})
	}
	return spans
}

// SelectedText returns the selected text. Rectangular spans are joined
// with line breaks.
func (m *Model) SelectedText() string {
	spans := m.Spans()
	parts := make([]string, len(spans))
	for i, sp := range spans {
		parts[i], _ = m.doc.Slice(sp.Start, sp.End)
	}
	return strings.Join(parts, "\n")
}

// ReplaceSelection replaces the selected text with text. A linear
// selection is replaced by exactly one edit; an empty one degenerates to
// an insert at the caret. The caret ends after the inserted text.
//
// A rectangular selection is replaced by one edit per covered line,
// applied bottom to top and recorded as a single undo step. Text
// without line breaks is inserted on every line and the selection stays
// rectangular with zero width just after it, so typing continues on all
// lines. Text with line breaks is split and distributed one segment per
// line; surplus segments are dropped and the selection collapses to a
// caret after the last segment.
func (m *Model) ReplaceSelection(text string) error {
	if m.sel.Mode == Rectangular {
		return m.replaceRect(text)
	}
	r := m.sel.Range()
	ch, err := m.doc.ApplyEdit(r.Start, r.Len(), text)
	if err != nil {
		return err
	}
	m.goalCol = -1
	m.sel = NewCursorSelection(ch.Edit.NewEnd())
	return nil
}

func (m *Model) replaceRect(text string) error {
	text = strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
	r := m.sel.Rect
	spans := m.Spans()

	segs := make([]string, len(spans))
	multi := strings.Contains(text, "\n")
	if multi {
		parts := strings.Split(text, "\n")
		copy(segs, parts)
	} else {
		for i := range segs {
			segs[i] = text
		}
	}

	bottom := spans[len(spans)-1]
	bottomOff := bottom.Start - m.line(r.EndLine).Start

	err := m.doc.Transaction("rectangular replace", func() error {
		for i := len(spans) - 1; i >= 0; i-- {
			sp := spans[i]
			if sp.IsEmpty() && segs[i] == "" {
				continue
			}
			if _, err := m.doc.ApplyEdit(sp.Start, sp.Len(), segs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.goalCol = -1
	if multi {
		// Segments hold no line breaks, so line indices are unchanged.
		end := m.line(r.EndLine).Start + bottomOff + len([]rune(segs[len(segs)-1]))
		m.sel = NewCursorSelection(m.clamp(end))
		return nil
	}
	col := r.StartCol + runewidth.StringWidth(text)
	m.rectAnchor.col = col
	m.setRectHead(corner{line: m.rectHead.line, col: col})
	return nil
}

// Transform adjusts the selection after an edit made outside the model,
// such as undo or an edit applied directly to the document.
func (m *Model) Transform(ch engine.Change) {
	m.goalCol = -1
	m.sel = TransformSelection(m.sel, ch.Edit).Clamp(m.doc.Len())
}
