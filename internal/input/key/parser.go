package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into a Chord.
//
// Supported formats:
//   - Single character: "a", "A", "1", "(", "+"
//   - Key names: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+Left"
//   - Angle notation: "<C-s>", "<A-f>", "<C-S-Left>", "<CR>", "<Esc>"
//   - Bare dash notation: "C-s", "C-S-Left"
//   - Character names: "<lt>", "<gt>", "<bar>", "<bslash>", "<minus>", "<plus>"
//
// An uppercase letter combined with Ctrl, Alt or Meta implies Shift, so
// "Ctrl+Shift+z" and "Ctrl+Z" parse to the same chord.
func Parse(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return NewRune(r, ModNone), nil
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseAngle(spec[1 : len(spec)-1])
	}

	if hasDashModifiers(spec) {
		return parseAngle(spec)
	}

	if strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseKey(spec, ModNone)
}

// hasDashModifiers reports whether spec is angle notation written without
// the brackets, like "C-Left" or "C-S-z": every part before the last dash
// is a one-letter modifier.
func hasDashModifiers(spec string) bool {
	i := strings.LastIndex(spec[:len(spec)-1], "-")
	if i <= 0 {
		return false
	}
	for _, p := range strings.Split(spec[:i], "-") {
		if len(p) != 1 || ModifierFromName(p) == ModNone {
			return false
		}
	}
	return true
}

// parseAngle parses the inside of angle notation like "C-s" or "CR".
func parseAngle(inner string) (Chord, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Chord{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	keyPart := parts[len(parts)-1]
	if keyPart == "" && len(parts) > 1 {
		// "<C-->" spells Ctrl and minus.
		keyPart = "-"
		parts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone || len(strings.TrimSpace(p)) != 1 {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(keyPart, mods)
}

// parseModifierStyle parses "Ctrl+S" style notation.
func parseModifierStyle(spec string) (Chord, error) {
	parts := strings.Split(spec, "+")
	keyPart := parts[len(parts)-1]
	if keyPart == "" && len(parts) > 2 {
		// "Ctrl++" spells Ctrl and plus.
		keyPart = "+"
		parts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(keyPart, mods)
}

// parseKey parses a key name or single character with known modifiers.
func parseKey(keyPart string, mods Modifier) (Chord, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Chord{}, ErrInvalidSpec
	}

	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return NewRune(r, mods), nil
	}

	lower := strings.ToLower(keyPart)
	if k, ok := keyNameMap[lower]; ok {
		return NewSpecial(k, mods), nil
	}
	if r, ok := runeNameMap[lower]; ok {
		return NewRune(r, mods), nil
	}
	return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// Normalize parses and re-formats a key specification to its canonical form.
func Normalize(spec string) (string, error) {
	c, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}
