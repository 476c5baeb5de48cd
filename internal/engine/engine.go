package engine

import (
	"io"

	"github.com/dshills/sqledit/internal/engine/buffer"
	"github.com/dshills/sqledit/internal/engine/history"
	"github.com/dshills/sqledit/internal/highlight"
)

// Re-export commonly used types for convenience.
type (
	// Range is a character range [Start, End).
	Range = buffer.Range

	// Point is a line/character position.
	Point = buffer.Point

	// Line is an entry of the buffer's line index.
	Line = buffer.Line

	// LineRange is an inclusive range of line indices.
	LineRange = buffer.LineRange

	// EditResult describes an applied buffer edit.
	EditResult = buffer.EditResult

	// Token is a classified span of a line.
	Token = highlight.Token

	// RelexResult describes the lines re-tokenized after an edit.
	RelexResult = highlight.RelexResult
)

// Change is the outcome of one edit: what the buffer changed and which
// lines the token marker re-lexed in response.
type Change struct {
	Edit  EditResult
	Relex RelexResult
}

// Document is a text buffer kept in step with its token marker and its
// undo history. Every edit goes through ApplyEdit (or Undo/Redo), which
// updates the line index, re-lexes the invalidated lines and records the
// edit.
//
// Document is not safe for concurrent use. The editor session owns it and
// serializes all calls.
type Document struct {
	buf     *buffer.Buffer
	marker  *highlight.Marker
	history *history.History

	readOnly bool

	// replaying is set while undo/redo re-applies operations so they are
	// not recorded again; replayed collects their changes.
	replaying bool
	replayed  []Change

	// Initialization
	initContent string
	tabWidth    int
	maxUndo     int
	scanner     *highlight.Scanner
}

// New creates a document with the given options. Without WithScanner the
// built-in ANSI dialect is used.
func New(opts ...Option) *Document {
	d := &Document{
		tabWidth: DefaultTabWidth,
		maxUndo:  DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.scanner == nil {
		d.scanner = highlight.ANSIDialect().Scanner()
	}

	d.buf = buffer.NewFromString(d.initContent, buffer.WithTabWidth(d.tabWidth))
	d.history = history.New(d.maxUndo)
	d.marker = highlight.NewMarker(d.scanner)
	d.relexAll()
	d.initContent = ""
	return d
}

// NewFromReader creates a document from the content of r.
func NewFromReader(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(append(opts, WithContent(string(data)))...), nil
}

// relexAll re-tokenizes the whole buffer. The buffer always satisfies
// the marker's line source contract, so this cannot fail.
func (d *Document) relexAll() {
	if err := d.marker.Reset(d.buf); err != nil {
		panic("engine: full relex failed: " + err.Error())
	}
}

// Edit Operations

// ApplyEdit replaces deleteLength characters at offset with text,
// re-lexes the affected lines and records the edit for undo.
func (d *Document) ApplyEdit(offset, deleteLength int, text string) (Change, error) {
	if d.readOnly {
		return Change{}, ErrReadOnly
	}
	res, err := d.buf.ApplyEdit(offset, deleteLength, text)
	if err != nil {
		return Change{}, err
	}
	relex, err := d.marker.Update(d.buf, res.FirstLine, res.OldLastLine, res.NewLastLine)
	if err != nil {
		// The marker and buffer disagree on the line count; recover with
		// a full relex rather than leave stale chains behind.
		d.relexAll()
		relex = RelexResult{First: 0, Last: d.buf.LineCount() - 1}
	}

	ch := Change{Edit: res, Relex: relex}
	if d.replaying {
		d.replayed = append(d.replayed, ch)
	} else if !res.IsNoOp() {
		d.history.Push(history.NewOperation(res.Offset, res.OldText, res.NewText))
	}
	return ch, nil
}

// Insert inserts text at offset.
func (d *Document) Insert(offset int, text string) (Change, error) {
	return d.ApplyEdit(offset, 0, text)
}

// Delete removes the characters in [start, end).
func (d *Document) Delete(start, end int) (Change, error) {
	if end < start {
		return Change{}, ErrRangeInvalid
	}
	return d.ApplyEdit(start, end-start, "")
}

// Replace applies an edit without recording it. It implements
// history.Editor for undo and redo.
func (d *Document) Replace(offset, deleteLength int, text string) error {
	prev := d.replaying
	d.replaying = true
	defer func() { d.replaying = prev }()
	_, err := d.ApplyEdit(offset, deleteLength, text)
	return err
}

// SetText replaces the whole content as a single undoable edit.
func (d *Document) SetText(text string) (Change, error) {
	return d.ApplyEdit(0, d.buf.Len(), text)
}

// Load replaces the whole content and clears the undo history.
func (d *Document) Load(text string) {
	d.buf = buffer.NewFromString(text, buffer.WithTabWidth(d.buf.TabWidth()))
	d.history.Clear()
	d.relexAll()
}

// Undo and Redo

// Undo reverts the last undo step and returns the changes it applied.
func (d *Document) Undo() ([]Change, error) {
	if d.readOnly {
		return nil, ErrReadOnly
	}
	d.replayed = nil
	_, err := d.history.Undo(d)
	changes := d.replayed
	d.replayed = nil
	return changes, err
}

// Redo re-applies the last undone step and returns the changes it applied.
func (d *Document) Redo() ([]Change, error) {
	if d.readOnly {
		return nil, ErrReadOnly
	}
	d.replayed = nil
	_, err := d.history.Redo(d)
	changes := d.replayed
	d.replayed = nil
	return changes, err
}

// CanUndo returns true if there is something to undo.
func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo returns true if there is something to redo.
func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

// BeginGroup starts an undo group; edits until EndGroup undo together.
func (d *Document) BeginGroup(name string) {
	d.history.BeginGroup(name)
}

// EndGroup closes the open undo group.
func (d *Document) EndGroup() {
	d.history.EndGroup()
}

// Transaction runs fn as one undo step. If fn fails, the edits it made
// are reverted and the error is returned.
func (d *Document) Transaction(name string, fn func() error) error {
	err := d.history.Transaction(name, d, fn)
	d.replayed = nil
	return err
}

// History returns the undo history.
func (d *Document) History() *history.History {
	return d.history
}

// Highlighting

// Scanner returns the scanner used by the token marker.
func (d *Document) Scanner() *highlight.Scanner {
	return d.marker.Scanner()
}

// SetScanner swaps the keyword table and dialect rules and re-lexes the
// whole document.
func (d *Document) SetScanner(s *highlight.Scanner) {
	d.marker.SetScanner(s)
	d.relexAll()
}

// Tokens returns the token chain of line. The chain is a view that is
// only valid until the next edit.
func (d *Document) Tokens(line int) []Token {
	return d.marker.Tokens(line)
}

// LineState returns the lexer state at the start of line.
func (d *Document) LineState(line int) highlight.LineState {
	return d.marker.LineState(line)
}

// Read Operations

// Text returns the full content.
func (d *Document) Text() string { return d.buf.Text() }

// Len returns the number of characters.
func (d *Document) Len() int { return d.buf.Len() }

// IsEmpty reports whether the document is empty.
func (d *Document) IsEmpty() bool { return d.buf.IsEmpty() }

// Slice returns the text in [start, end).
func (d *Document) Slice(start, end int) (string, error) { return d.buf.Slice(start, end) }

// RuneAt returns the character at offset.
func (d *Document) RuneAt(offset int) (rune, error) { return d.buf.RuneAt(offset) }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return d.buf.LineCount() }

// Line returns the index entry of line.
func (d *Document) Line(line int) (Line, error) { return d.buf.Line(line) }

// LineToOffset returns the offset of the first character of line.
func (d *Document) LineToOffset(line int) (int, error) { return d.buf.LineToOffset(line) }

// LineLength returns the length of line without its terminator.
func (d *Document) LineLength(line int) (int, error) { return d.buf.LineLength(line) }

// LineEndOffset returns the offset just past the last character of line.
func (d *Document) LineEndOffset(line int) (int, error) { return d.buf.LineEndOffset(line) }

// LineText returns the text of line.
func (d *Document) LineText(line int) (string, error) { return d.buf.LineText(line) }

// LineRunes returns a read-only view of line's characters.
func (d *Document) LineRunes(line int) ([]rune, error) { return d.buf.LineRunes(line) }

// OffsetToLine returns the line containing offset.
func (d *Document) OffsetToLine(offset int) (int, error) { return d.buf.OffsetToLine(offset) }

// OffsetToPoint converts an offset to a line/character position.
func (d *Document) OffsetToPoint(offset int) (Point, error) { return d.buf.OffsetToPoint(offset) }

// PointToOffset converts a line/character position to an offset.
func (d *Document) PointToOffset(p Point) (int, error) { return d.buf.PointToOffset(p) }

// OffsetToColumn returns the display column of offset.
func (d *Document) OffsetToColumn(offset int) (int, error) { return d.buf.OffsetToColumn(offset) }

// ColumnToOffset returns the offset drawn at display column col of line.
func (d *Document) ColumnToOffset(line, col int) (int, error) { return d.buf.ColumnToOffset(line, col) }

// LineWidth returns the display width of line.
func (d *Document) LineWidth(line int) (int, error) { return d.buf.LineWidth(line) }

// TabWidth returns the tab stop distance.
func (d *Document) TabWidth() int { return d.buf.TabWidth() }

// SetTabWidth changes the tab stop distance.
func (d *Document) SetTabWidth(width int) { d.buf.SetTabWidth(width) }

// IsReadOnly reports whether edits are rejected.
func (d *Document) IsReadOnly() bool { return d.readOnly }
