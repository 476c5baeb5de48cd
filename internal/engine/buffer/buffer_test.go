package buffer

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// fataler is satisfied by *testing.T and *rapid.T.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// checkIndex verifies the line index against the raw text.
func checkIndex(t fataler, b *Buffer) {
	t.Helper()
	parts := strings.Split(b.Text(), "\n")
	if b.LineCount() != len(parts) {
		t.Fatalf("LineCount = %d, want %d", b.LineCount(), len(parts))
	}
	start := 0
	for i, p := range parts {
		l, err := b.Line(i)
		if err != nil {
			t.Fatalf("Line(%d): %v", i, err)
		}
		want := Line{Start: start, Length: len([]rune(p))}
		if l != want {
			t.Fatalf("line %d = %+v, want %+v", i, l, want)
		}
		start += want.Length + TerminatorWidth
	}
}

func TestNew(t *testing.T) {
	b := New()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if b.TabWidth() != 4 {
		t.Errorf("expected tab width 4, got %d", b.TabWidth())
	}
}

func TestNewFromStringMultiline(t *testing.T) {
	b := NewFromString("select 1\nfrom dual\n")

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}
	for i, want := range []string{"select 1", "from dual", ""} {
		got, err := b.LineText(i)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("line %d: expected %q, got %q", i, want, got)
		}
	}
	checkIndex(t, b)
}

func TestNewFromStringNormalizesLineEndings(t *testing.T) {
	b := NewFromString("a\r\nb\rc")
	if b.Text() != "a\nb\nc" {
		t.Errorf("expected LF text, got %q", b.Text())
	}
	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}
}

func TestNewFromReader(t *testing.T) {
	b, err := NewFromReader(strings.NewReader("select\r\n1"))
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "select\n1" {
		t.Errorf("unexpected text %q", b.Text())
	}
}

func TestApplyEdit(t *testing.T) {
	tests := []struct {
		name      string
		initial   string
		offset    int
		deleteLen int
		text      string
		want      string
		changed   LineRange
		oldLast   int
	}{
		{"insert in line", "select 1\nfrom t", 7, 0, "2, ", "select 2, 1\nfrom t", LineRange{0, 0}, 0},
		{"insert newline", "select 1 from t", 8, 1, "\n", "select 1\nfrom t", LineRange{0, 1}, 0},
		{"join lines", "a\nb\nc", 1, 1, "", "ab\nc", LineRange{0, 0}, 1},
		{"delete across lines", "a\nb\nc\nd", 1, 4, "", "a\nd", LineRange{0, 0}, 2},
		{"replace with lines", "x\nmid\ny", 2, 3, "1\n2\n3", "x\n1\n2\n3\ny", LineRange{1, 3}, 1},
		{"insert at end", "a", 1, 0, "\n", "a\n", LineRange{0, 1}, 0},
		{"empty buffer", "", 0, 0, "select", "select", LineRange{0, 0}, 0},
		{"at line start", "a\nb", 2, 0, "z", "a\nzb", LineRange{1, 1}, 1},
		{"crlf insert", "ab", 1, 0, "\r\n", "a\nb", LineRange{0, 1}, 0},
		{"delete all", "a\nb", 0, 3, "", "", LineRange{0, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.initial)
			res, err := b.ApplyEdit(tt.offset, tt.deleteLen, tt.text)
			if err != nil {
				t.Fatalf("ApplyEdit failed: %v", err)
			}
			if b.Text() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, b.Text())
			}
			if res.LinesChanged() != tt.changed {
				t.Errorf("expected %v, got %v", tt.changed, res.LinesChanged())
			}
			if res.OldLastLine != tt.oldLast {
				t.Errorf("expected old last line %d, got %d", tt.oldLast, res.OldLastLine)
			}
			if res.LineDelta() != b.LineCount()-strings.Count(tt.initial, "\n")-1 {
				t.Errorf("line delta %d does not match line count change", res.LineDelta())
			}
			checkIndex(t, b)
		})
	}
}

func TestApplyEditResult(t *testing.T) {
	b := NewFromString("select naïve from t")
	res, err := b.ApplyEdit(7, 5, "x")
	if err != nil {
		t.Fatal(err)
	}

	if res.OldText != "naïve" {
		t.Errorf("expected old text %q, got %q", "naïve", res.OldText)
	}
	if res.DeletedLen != 5 || res.InsertedLen != 1 {
		t.Errorf("unexpected lengths %d/%d", res.DeletedLen, res.InsertedLen)
	}
	if res.Delta() != -4 {
		t.Errorf("expected delta -4, got %d", res.Delta())
	}
	if res.NewEnd() != 8 || res.OldEnd() != 12 {
		t.Errorf("unexpected ends %d/%d", res.NewEnd(), res.OldEnd())
	}

	off, n, text := res.Inverse()
	if _, err := b.ApplyEdit(off, n, text); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "select naïve from t" {
		t.Errorf("inverse did not restore text: %q", b.Text())
	}
}

func TestApplyEditOutOfBounds(t *testing.T) {
	b := NewFromString("abc")

	tests := []struct {
		name      string
		offset    int
		deleteLen int
	}{
		{"negative offset", -1, 0},
		{"offset past end", 4, 0},
		{"delete past end", 2, 2},
		{"negative delete", 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.ApplyEdit(tt.offset, tt.deleteLen, "x")
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("expected ErrOutOfBounds, got %v", err)
			}
			if b.Text() != "abc" {
				t.Errorf("buffer modified by rejected edit: %q", b.Text())
			}
		})
	}
}

func TestQueriesOutOfBounds(t *testing.T) {
	b := NewFromString("ab\ncd")

	if _, err := b.OffsetToLine(6); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("OffsetToLine(6): expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.OffsetToLine(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("OffsetToLine(-1): expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.LineToOffset(2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("LineToOffset(2): expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.LineLength(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("LineLength(-1): expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.RuneAt(5); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("RuneAt(5): expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.Slice(3, 2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Slice(3,2): expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.PointToOffset(Point{Line: 0, Char: 3}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("PointToOffset past line end: expected ErrOutOfBounds, got %v", err)
	}
}

func TestOffsetToLine(t *testing.T) {
	b := NewFromString("ab\n\ncd")
	want := []int{0, 0, 0, 1, 2, 2, 2}
	for off, line := range want {
		got, err := b.OffsetToLine(off)
		if err != nil {
			t.Fatal(err)
		}
		if got != line {
			t.Errorf("OffsetToLine(%d) = %d, want %d", off, got, line)
		}
	}

	p, err := b.OffsetToPoint(5)
	if err != nil {
		t.Fatal(err)
	}
	if p != (Point{Line: 2, Char: 1}) {
		t.Errorf("OffsetToPoint(5) = %v", p)
	}
	off, err := b.PointToOffset(p)
	if err != nil || off != 5 {
		t.Errorf("PointToOffset(%v) = %d, %v", p, off, err)
	}
}

func TestLineRunesIsView(t *testing.T) {
	b := NewFromString("ab\ncd")
	r, err := b.LineRunes(0)
	if err != nil {
		t.Fatal(err)
	}
	if string(r) != "ab" {
		t.Errorf("expected ab, got %q", string(r))
	}
	if cap(r) != len(r) {
		t.Errorf("view capacity %d should equal its length", cap(r))
	}
}

// Offsets and lines agree after arbitrary edit sequences.
func TestOffsetLineConsistency_Property(t *testing.T) {
	alphabet := []rune("ab \n\r\tä世")
	text := rapid.Map(rapid.SliceOfN(rapid.SampledFrom(alphabet), 0, 12), func(r []rune) string { return string(r) })

	rapid.Check(t, func(t *rapid.T) {
		b := NewFromString(text.Draw(t, "initial"))
		steps := rapid.IntRange(0, 10).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			off := rapid.IntRange(0, b.Len()).Draw(t, "offset")
			del := rapid.IntRange(0, b.Len()-off).Draw(t, "delete")
			if _, err := b.ApplyEdit(off, del, text.Draw(t, "insert")); err != nil {
				t.Fatalf("ApplyEdit: %v", err)
			}
		}

		checkIndex(t, b)
		for o := 0; o <= b.Len(); o++ {
			line, err := b.OffsetToLine(o)
			if err != nil {
				t.Fatalf("OffsetToLine(%d): %v", o, err)
			}
			start, _ := b.LineToOffset(line)
			if start > o {
				t.Fatalf("line %d starts at %d after offset %d", line, start, o)
			}
			if line+1 < b.LineCount() {
				next, _ := b.LineToOffset(line + 1)
				if o >= next {
					t.Fatalf("offset %d not before next line start %d", o, next)
				}
			} else if end, _ := b.LineEndOffset(line); end != b.Len() || o > end {
				t.Fatalf("last line end %d, buffer length %d, offset %d", end, b.Len(), o)
			}
		}
	})
}
