package buffer

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
)

// ErrOutOfBounds is returned when an offset, line index or range falls
// outside the buffer. Buffer operations never clamp silently.
var ErrOutOfBounds = errors.New("out of bounds")

// Terminator is the line terminator stored in the buffer.
const Terminator = '\n'

// TerminatorWidth is the number of characters a line terminator occupies.
const TerminatorWidth = 1

// Line is an entry of the line index. Start is the offset of the line's
// first character and Length excludes the terminator, so for every line
// but the last: Start + Length + TerminatorWidth == next.Start.
type Line struct {
	Start  int
	Length int
}

// End returns the offset just past the line's last character, which is
// the offset of its terminator (or the buffer end for the last line).
func (l Line) End() int {
	return l.Start + l.Length
}

// Buffer is a mutable character store with a line index.
// Offsets count characters (runes), not bytes.
//
// Buffer is not safe for concurrent use; the editor session is its
// single writer.
type Buffer struct {
	text     []rune
	lines    []Line
	tabWidth int
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lines:    []Line{{}},
		tabWidth: 4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer holding s. CRLF and CR terminators are
// normalized to LF.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.text = []rune(normalizeLineEndings(s))
	b.lines = indexLines(b.text, 0)
	return b
}

// NewFromReader creates a buffer from the full content of r.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first so a CRLF split across reads still normalizes.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewFromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// indexLines splits text into line records whose offsets start at base.
// The result always has at least one line.
func indexLines(text []rune, base int) []Line {
	var lines []Line
	start := 0
	for i, r := range text {
		if r == Terminator {
			lines = append(lines, Line{Start: base + start, Length: i - start})
			start = i + 1
		}
	}
	return append(lines, Line{Start: base + start, Length: len(text) - start})
}

func outOfBounds(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrOutOfBounds, fmt.Sprintf(format, args...))
}

// Read Operations

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.text)
}

// IsEmpty reports whether the buffer holds no characters.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Slice returns the text in [start, end).
func (b *Buffer) Slice(start, end int) (string, error) {
	if start < 0 || start > end || end > len(b.text) {
		return "", outOfBounds("slice [%d,%d) of %d", start, end, len(b.text))
	}
	return string(b.text[start:end]), nil
}

// RuneAt returns the character at offset.
func (b *Buffer) RuneAt(offset int) (rune, error) {
	if offset < 0 || offset >= len(b.text) {
		return 0, outOfBounds("offset %d of %d", offset, len(b.text))
	}
	return b.text[offset], nil
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the index entry for line.
func (b *Buffer) Line(line int) (Line, error) {
	if line < 0 || line >= len(b.lines) {
		return Line{}, outOfBounds("line %d of %d", line, len(b.lines))
	}
	return b.lines[line], nil
}

// LineToOffset returns the offset of the first character of line.
func (b *Buffer) LineToOffset(line int) (int, error) {
	l, err := b.Line(line)
	return l.Start, err
}

// LineLength returns the number of characters in line, excluding the
// terminator.
func (b *Buffer) LineLength(line int) (int, error) {
	l, err := b.Line(line)
	return l.Length, err
}

// LineEndOffset returns the offset just past the last character of line.
func (b *Buffer) LineEndOffset(line int) (int, error) {
	l, err := b.Line(line)
	return l.End(), err
}

// LineText returns the text of line without its terminator.
func (b *Buffer) LineText(line int) (string, error) {
	l, err := b.Line(line)
	if err != nil {
		return "", err
	}
	return string(b.text[l.Start:l.End()]), nil
}

// LineRunes returns a read-only view of line's characters. The view is
// only valid until the next edit.
func (b *Buffer) LineRunes(line int) ([]rune, error) {
	l, err := b.Line(line)
	if err != nil {
		return nil, err
	}
	return b.text[l.Start:l.End():l.End()], nil
}

// OffsetToLine returns the index of the line containing offset.
// offset may equal Len. A terminator belongs to the line it ends.
func (b *Buffer) OffsetToLine(offset int) (int, error) {
	if offset < 0 || offset > len(b.text) {
		return 0, outOfBounds("offset %d of %d", offset, len(b.text))
	}
	return b.lineOf(offset), nil
}

// lineOf is OffsetToLine without validation.
func (b *Buffer) lineOf(offset int) int {
	return sort.Search(len(b.lines), func(i int) bool {
		return b.lines[i].Start > offset
	}) - 1
}

// Write Operations

// ApplyEdit replaces deleteLength characters at offset with text and
// updates the line index. It requires 0 <= offset <= offset+deleteLength
// <= Len. Line entries after the edit are shifted by the length delta.
func (b *Buffer) ApplyEdit(offset, deleteLength int, text string) (EditResult, error) {
	end := offset + deleteLength
	if offset < 0 || deleteLength < 0 || end > len(b.text) {
		return EditResult{}, outOfBounds("edit [%d,%d) of %d", offset, end, len(b.text))
	}

	ins := []rune(normalizeLineEndings(text))
	first := b.lineOf(offset)
	oldLast := b.lineOf(end)
	oldText := string(b.text[offset:end])

	from := b.lines[first].Start
	oldTo := b.lines[oldLast].End()
	delta := len(ins) - deleteLength

	b.text = slices.Replace(b.text, offset, end, ins...)

	fresh := indexLines(b.text[from:oldTo+delta], from)
	b.lines = slices.Replace(b.lines, first, oldLast+1, fresh...)
	for i := first + len(fresh); i < len(b.lines); i++ {
		b.lines[i].Start += delta
	}

	return EditResult{
		Offset:      offset,
		DeletedLen:  deleteLength,
		InsertedLen: len(ins),
		OldText:     oldText,
		NewText:     string(ins),
		FirstLine:   first,
		OldLastLine: oldLast,
		NewLastLine: first + len(fresh) - 1,
	}, nil
}

// Insert inserts text at offset.
func (b *Buffer) Insert(offset int, text string) (EditResult, error) {
	return b.ApplyEdit(offset, 0, text)
}

// Delete removes the characters in [start, end).
func (b *Buffer) Delete(start, end int) (EditResult, error) {
	if end < start {
		return EditResult{}, outOfBounds("delete [%d,%d)", start, end)
	}
	return b.ApplyEdit(start, end-start, "")
}

// SetText replaces the whole content.
func (b *Buffer) SetText(s string) EditResult {
	res, _ := b.ApplyEdit(0, len(b.text), s)
	return res
}

// Buffer State

// TabWidth returns the tab stop distance used for column geometry.
func (b *Buffer) TabWidth() int {
	return b.tabWidth
}

// SetTabWidth changes the tab stop distance. Non-positive widths are
// ignored.
func (b *Buffer) SetTabWidth(width int) {
	if width > 0 {
		b.tabWidth = width
	}
}
