package buffer

import "github.com/mattn/go-runewidth"

// Display columns account for tab stops and wide characters. Column
// geometry clamps the column to the line (a column past the end of a
// line maps to the line end) but still rejects bad line indices.

// advance returns the column after r is drawn at col.
func (b *Buffer) advance(r rune, col int) int {
	if r == '\t' {
		return col + b.tabWidth - col%b.tabWidth
	}
	return col + runewidth.RuneWidth(r)
}

// OffsetToColumn returns the display column of offset within its line.
func (b *Buffer) OffsetToColumn(offset int) (int, error) {
	line, err := b.OffsetToLine(offset)
	if err != nil {
		return 0, err
	}
	col := 0
	for _, r := range b.text[b.lines[line].Start:offset] {
		col = b.advance(r, col)
	}
	return col, nil
}

// ColumnToOffset returns the offset of the character drawn at col on
// line. A column inside a tab or wide character maps to that character;
// a column past the line end maps to the line end.
func (b *Buffer) ColumnToOffset(line, col int) (int, error) {
	l, err := b.Line(line)
	if err != nil {
		return 0, err
	}
	pos := 0
	for i, r := range b.text[l.Start:l.End()] {
		next := b.advance(r, pos)
		if col < next {
			return l.Start + i, nil
		}
		pos = next
	}
	return l.End(), nil
}

// LineWidth returns the display width of line.
func (b *Buffer) LineWidth(line int) (int, error) {
	l, err := b.Line(line)
	if err != nil {
		return 0, err
	}
	col := 0
	for _, r := range b.text[l.Start:l.End()] {
		col = b.advance(r, col)
	}
	return col, nil
}
