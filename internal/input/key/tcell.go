package key

import "github.com/gdamore/tcell/v2"

// tcellKeys maps tcell's special keys. Tab, Enter, Backspace and Escape
// share codes with Ctrl+I, Ctrl+M, Ctrl+H and Ctrl+[, so this table is
// consulted before the Ctrl letter range.
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

// FromTcell converts a terminal key event to a canonical chord. It
// returns the zero chord for keys with no equivalent.
func FromTcell(ev *tcell.EventKey) Chord {
	mods := convertMods(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		return NewRune(ev.Rune(), mods)
	}
	if special, ok := tcellKeys[k]; ok {
		if k == tcell.KeyBacktab {
			mods = mods.With(ModShift)
		}
		return NewSpecial(special, mods)
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return NewRune(rune('a'+(k-tcell.KeyCtrlA)), mods.With(ModCtrl))
	}
	if k == tcell.KeyCtrlSpace {
		return NewRune(' ', mods.With(ModCtrl))
	}
	return Chord{}
}

func convertMods(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(ModMeta)
	}
	return mods
}
