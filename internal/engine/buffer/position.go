package buffer

import "fmt"

// Point is a line and character position. Both fields are 0-indexed;
// Char counts characters from the line start, not display columns.
type Point struct {
	Line int
	Char int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Char)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Char < other.Char:
		return -1
	case p.Char > other.Char:
		return 1
	}
	return 0
}

// OffsetToPoint converts an offset to a line and character position.
func (b *Buffer) OffsetToPoint(offset int) (Point, error) {
	line, err := b.OffsetToLine(offset)
	if err != nil {
		return Point{}, err
	}
	return Point{Line: line, Char: offset - b.lines[line].Start}, nil
}

// PointToOffset converts a line and character position to an offset.
// Char must not exceed the line length.
func (b *Buffer) PointToOffset(p Point) (int, error) {
	l, err := b.Line(p.Line)
	if err != nil {
		return 0, err
	}
	if p.Char < 0 || p.Char > l.Length {
		return 0, outOfBounds("char %d of line %d (length %d)", p.Char, p.Line, l.Length)
	}
	return l.Start + p.Char, nil
}
