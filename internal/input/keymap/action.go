package keymap

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownAction is returned when a binding names an action that does
// not exist.
var ErrUnknownAction = errors.New("unknown action")

// Action names an editing command. Names are dotted, grouped by what
// the action touches.
type Action string

// Navigation actions. Each has an extending twin in the select group.
const (
	ActionNextChar     Action = "cursor.nextChar"
	ActionPrevChar     Action = "cursor.prevChar"
	ActionNextWord     Action = "cursor.nextWord"
	ActionPrevWord     Action = "cursor.prevWord"
	ActionNextLine     Action = "cursor.nextLine"
	ActionPrevLine     Action = "cursor.prevLine"
	ActionLineStart    Action = "cursor.lineStart"
	ActionLineEnd      Action = "cursor.lineEnd"
	ActionDocumentHome Action = "cursor.documentHome"
	ActionDocumentEnd  Action = "cursor.documentEnd"
	ActionNextPage     Action = "cursor.nextPage"
	ActionPrevPage     Action = "cursor.prevPage"
	ActionMatchBracket Action = "cursor.matchBracket"
)

// Selection actions.
const (
	ActionSelectNextChar     Action = "select.nextChar"
	ActionSelectPrevChar     Action = "select.prevChar"
	ActionSelectNextWord     Action = "select.nextWord"
	ActionSelectPrevWord     Action = "select.prevWord"
	ActionSelectNextLine     Action = "select.nextLine"
	ActionSelectPrevLine     Action = "select.prevLine"
	ActionSelectLineStart    Action = "select.lineStart"
	ActionSelectLineEnd      Action = "select.lineEnd"
	ActionSelectDocumentHome Action = "select.documentHome"
	ActionSelectDocumentEnd  Action = "select.documentEnd"
	ActionSelectNextPage     Action = "select.nextPage"
	ActionSelectPrevPage     Action = "select.prevPage"
	ActionSelectToBracket    Action = "select.toBracket"
	ActionSelectAll          Action = "select.all"
	ActionToggleRectangular  Action = "select.toggleRectangular"
)

// Editing actions.
const (
	ActionBackspace          Action = "edit.backspace"
	ActionDelete             Action = "edit.delete"
	ActionDeleteWordBackward Action = "edit.deleteWordBackward"
	ActionDeleteWordForward  Action = "edit.deleteWordForward"
	ActionInsertBreak        Action = "edit.insertBreak"
	ActionInsertTab          Action = "edit.insertTab"
	ActionInsertChar         Action = "edit.insertChar"
	ActionDuplicateLine      Action = "edit.duplicateLine"
	ActionDeleteLine         Action = "edit.deleteLine"
	ActionToggleOverwrite    Action = "edit.toggleOverwrite"
	ActionUndo               Action = "edit.undo"
	ActionRedo               Action = "edit.redo"
	ActionExpand             Action = "edit.expand"
)

// extendTwins maps each navigation action to its extending twin.
var extendTwins = map[Action]Action{
	ActionNextChar:     ActionSelectNextChar,
	ActionPrevChar:     ActionSelectPrevChar,
	ActionNextWord:     ActionSelectNextWord,
	ActionPrevWord:     ActionSelectPrevWord,
	ActionNextLine:     ActionSelectNextLine,
	ActionPrevLine:     ActionSelectPrevLine,
	ActionLineStart:    ActionSelectLineStart,
	ActionLineEnd:      ActionSelectLineEnd,
	ActionDocumentHome: ActionSelectDocumentHome,
	ActionDocumentEnd:  ActionSelectDocumentEnd,
	ActionNextPage:     ActionSelectNextPage,
	ActionPrevPage:     ActionSelectPrevPage,
	ActionMatchBracket: ActionSelectToBracket,
}

var known = func() map[Action]bool {
	m := make(map[Action]bool)
	for nav, ext := range extendTwins {
		m[nav] = true
		m[ext] = true
	}
	for _, a := range []Action{
		ActionSelectAll, ActionToggleRectangular,
		ActionBackspace, ActionDelete, ActionDeleteWordBackward, ActionDeleteWordForward,
		ActionInsertBreak, ActionInsertTab, ActionInsertChar,
		ActionDuplicateLine, ActionDeleteLine, ActionToggleOverwrite,
		ActionUndo, ActionRedo, ActionExpand,
	} {
		m[a] = true
	}
	return m
}()

// ExtendTwin returns the extending variant of a navigation action.
func (a Action) ExtendTwin() (Action, bool) {
	twin, ok := extendTwins[a]
	return twin, ok
}

// IsNavigation reports whether a moves the caret without editing.
func (a Action) IsNavigation() bool {
	_, ok := extendTwins[a]
	return ok
}

// IsValid reports whether a is a known action.
func (a Action) IsValid() bool {
	return known[a]
}

// ParseAction validates an action name.
func ParseAction(name string) (Action, error) {
	a := Action(name)
	if !a.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return a, nil
}

// Actions returns every known action, sorted by name.
func Actions() []Action {
	out := make([]Action, 0, len(known))
	for a := range known {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}
