package key

import (
	"strings"
	"unicode"
)

// Chord is one key press with its modifiers. Chords are comparable and
// used directly as map keys, so they are kept in a canonical form:
//
//   - special keys carry no rune
//   - a character typed without Ctrl, Alt or Meta carries its case in
//     the rune and never has Shift
//   - a character typed with Ctrl, Alt or Meta is lowercase, and an
//     uppercase character sets Shift instead
//
// Constructors and Parse always return canonical chords; use Normalize
// on chords built by hand.
type Chord struct {
	Key  Key
	Rune rune
	Mods Modifier
}

// NewRune creates a canonical chord for a character.
func NewRune(r rune, mods Modifier) Chord {
	return Chord{Key: KeyRune, Rune: r, Mods: mods}.Normalize()
}

// NewSpecial creates a chord for a special key.
func NewSpecial(k Key, mods Modifier) Chord {
	return Chord{Key: k, Mods: mods}
}

// Normalize returns the canonical form of c.
func (c Chord) Normalize() Chord {
	if c.Key != KeyRune {
		c.Rune = 0
		return c
	}
	if c.Mods&(ModCtrl|ModAlt|ModMeta) == 0 {
		c.Mods = c.Mods.Without(ModShift)
		return c
	}
	if unicode.IsUpper(c.Rune) {
		c.Rune = unicode.ToLower(c.Rune)
		c.Mods = c.Mods.With(ModShift)
	}
	return c
}

// IsZero reports whether c is the empty chord.
func (c Chord) IsZero() bool {
	return c == Chord{}
}

// IsPrintable reports whether c types a printable character: a rune
// without Ctrl, Alt or Meta.
func (c Chord) IsPrintable() bool {
	return c.Key == KeyRune && c.Rune != 0 &&
		c.Mods&(ModCtrl|ModAlt|ModMeta) == 0 && unicode.IsPrint(c.Rune)
}

// HasShift reports whether Shift is held.
func (c Chord) HasShift() bool {
	return c.Mods.Has(ModShift)
}

// WithShift returns c with Shift added.
func (c Chord) WithShift() Chord {
	c.Mods = c.Mods.With(ModShift)
	return c
}

// WithoutShift returns c with Shift removed.
func (c Chord) WithoutShift() Chord {
	c.Mods = c.Mods.Without(ModShift)
	return c
}

// String returns the chord in the notation Parse accepts: plain
// characters as themselves, everything else in <...> form such as
// "<C-S-Left>", "<Enter>" or "<C-s>".
func (c Chord) String() string {
	if c.Key == KeyNone {
		return "<None>"
	}
	if c.Key == KeyRune && c.Mods == ModNone {
		switch c.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		}
		return string(c.Rune)
	}

	var name string
	switch {
	case c.Key != KeyRune:
		name = c.Key.String()
	case c.Rune == ' ':
		name = "Space"
	case c.Rune == '-':
		name = "minus"
	case c.Rune == '<':
		name = "lt"
	case c.Rune == '>':
		name = "gt"
	default:
		name = string(c.Rune)
	}

	var sb strings.Builder
	sb.WriteByte('<')
	if mods := c.Mods.String(); mods != "" {
		sb.WriteString(mods)
		sb.WriteByte('-')
	}
	sb.WriteString(name)
	sb.WriteByte('>')
	return sb.String()
}
