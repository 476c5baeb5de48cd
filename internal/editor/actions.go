package editor

import (
	"errors"
	"fmt"

	"github.com/dshills/sqledit/internal/engine"
	"github.com/dshills/sqledit/internal/engine/cursor"
	"github.com/dshills/sqledit/internal/input/expand"
	"github.com/dshills/sqledit/internal/input/keymap"
	"github.com/dshills/sqledit/internal/log"
)

// ErrUnhandledAction is returned for a valid action the session cannot
// run, and for unknown action names.
var ErrUnhandledAction = errors.New("unhandled action")

// execute runs cmd. The caller holds the lock.
func (s *Session) execute(cmd keymap.Command) error {
	m := s.cur

	if mv, ok := movements[cmd.Action]; ok {
		mv.fn(m, mv.extend)
		return nil
	}

	switch cmd.Action {
	case keymap.ActionMatchBracket:
		s.jumpToBracket(false)
	case keymap.ActionSelectToBracket:
		s.jumpToBracket(true)
	case keymap.ActionSelectAll:
		m.SelectAll()
	case keymap.ActionToggleRectangular:
		m.ToggleRectangular()
	case keymap.ActionToggleOverwrite:
		m.SetOverwrite(!m.Overwrite())

	case keymap.ActionInsertChar:
		return m.InsertChar(cmd.Rune)
	case keymap.ActionInsertTab:
		return m.InsertTab()
	case keymap.ActionInsertBreak:
		return m.InsertBreak()
	case keymap.ActionBackspace:
		return m.Backspace()
	case keymap.ActionDelete:
		return m.Delete()
	case keymap.ActionDeleteWordBackward:
		return m.DeleteWordBackward()
	case keymap.ActionDeleteWordForward:
		return m.DeleteWordForward()
	case keymap.ActionDuplicateLine:
		return m.DuplicateLine()
	case keymap.ActionDeleteLine:
		return m.DeleteLine()
	case keymap.ActionExpand:
		return s.expand(cmd.Word, cmd.Text)

	case keymap.ActionUndo:
		return s.replay(s.doc.Undo)
	case keymap.ActionRedo:
		return s.replay(s.doc.Redo)

	default:
		return fmt.Errorf("%w: %q", ErrUnhandledAction, cmd.Action)
	}
	return nil
}

// movement is a navigation primitive and the extend flag to call it with.
type movement struct {
	fn     func(*cursor.Model, bool)
	extend bool
}

// movements maps every navigation action and its extending twin.
var movements = func() map[keymap.Action]movement {
	base := map[keymap.Action]func(*cursor.Model, bool){
		keymap.ActionNextChar:     (*cursor.Model).NextChar,
		keymap.ActionPrevChar:     (*cursor.Model).PrevChar,
		keymap.ActionNextWord:     (*cursor.Model).NextWord,
		keymap.ActionPrevWord:     (*cursor.Model).PrevWord,
		keymap.ActionNextLine:     (*cursor.Model).NextLine,
		keymap.ActionPrevLine:     (*cursor.Model).PrevLine,
		keymap.ActionLineStart:    (*cursor.Model).LineStart,
		keymap.ActionLineEnd:      (*cursor.Model).LineEnd,
		keymap.ActionDocumentHome: (*cursor.Model).DocumentHome,
		keymap.ActionDocumentEnd:  (*cursor.Model).DocumentEnd,
		keymap.ActionNextPage:     (*cursor.Model).NextPage,
		keymap.ActionPrevPage:     (*cursor.Model).PrevPage,
	}
	out := make(map[keymap.Action]movement, 2*len(base))
	for a, fn := range base {
		out[a] = movement{fn: fn}
		if twin, ok := a.ExtendTwin(); ok {
			out[twin] = movement{fn: fn, extend: true}
		}
	}
	return out
}()

// jumpToBracket moves the caret to the same side of the matching bracket
// as it was of the bracket it started next to, so a second jump returns.
func (s *Session) jumpToBracket(extend bool) {
	caret := s.cur.Caret()
	at, match, ok := s.matcher.Pair(caret)
	if !ok {
		return
	}
	target := match
	if at == caret-1 {
		target = match + 1
	}
	if extend {
		s.cur.ExtendSelection(target)
	} else {
		s.cur.MoveCaret(target)
	}
}

// expand replaces word, which ends at the caret, with text. A caret
// marker in text sets where the caret lands; otherwise it goes to the
// end of the expansion.
func (s *Session) expand(word, text string) error {
	caret := s.cur.Caret()
	start := caret - len([]rune(word))
	if start < 0 {
		return fmt.Errorf("%w: word %q longer than text before caret", engine.ErrOutOfBounds, word)
	}

	body, at := expand.SplitCaret(text)
	if at < 0 {
		at = len([]rune(body))
	}
	ch, err := s.doc.ApplyEdit(start, caret-start, body)
	if err != nil {
		return err
	}
	s.logChange("expand", ch)
	s.logger.Debug(log.CatInput, "expanded", "word", word)
	s.cur.MoveCaret(start + at)
	return nil
}

// replay runs undo or redo, moves the selection through every change
// and leaves the caret at the end of the last one.
func (s *Session) replay(step func() ([]engine.Change, error)) error {
	changes, err := step()
	if err != nil {
		return err
	}
	for _, ch := range changes {
		s.cur.Transform(ch)
		s.logChange("replay", ch)
	}
	if n := len(changes); n > 0 {
		s.cur.MoveCaret(changes[n-1].Edit.NewEnd())
	}
	return nil
}
