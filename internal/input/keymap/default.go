package keymap

// DefaultExpandTrigger is the chord that expands the word before the
// caret. When nothing expands, Tab falls through to its normal binding.
const DefaultExpandTrigger = "Tab"

// DefaultBindings returns the built-in bindings. Navigation keys are
// bound without Shift; the Shift variants are derived when a Table is
// built.
func DefaultBindings() []Binding {
	return []Binding{
		// Movement
		{Keys: "<Left>", Action: ActionPrevChar, Description: "Move left", Category: "Movement"},
		{Keys: "<Right>", Action: ActionNextChar, Description: "Move right", Category: "Movement"},
		{Keys: "<Up>", Action: ActionPrevLine, Description: "Move up", Category: "Movement"},
		{Keys: "<Down>", Action: ActionNextLine, Description: "Move down", Category: "Movement"},
		{Keys: "<C-Left>", Action: ActionPrevWord, Description: "Move to previous word", Category: "Movement"},
		{Keys: "<C-Right>", Action: ActionNextWord, Description: "Move to next word", Category: "Movement"},
		{Keys: "<Home>", Action: ActionLineStart, Description: "Move to line start", Category: "Movement"},
		{Keys: "<End>", Action: ActionLineEnd, Description: "Move to line end", Category: "Movement"},
		{Keys: "<C-Home>", Action: ActionDocumentHome, Description: "Go to document start", Category: "Movement"},
		{Keys: "<C-End>", Action: ActionDocumentEnd, Description: "Go to document end", Category: "Movement"},
		{Keys: "<PageUp>", Action: ActionPrevPage, Description: "Page up", Category: "Movement"},
		{Keys: "<PageDown>", Action: ActionNextPage, Description: "Page down", Category: "Movement"},
		{Keys: "<C-]>", Action: ActionMatchBracket, Description: "Go to matching bracket", Category: "Movement"},

		// Selection
		{Keys: "<C-a>", Action: ActionSelectAll, Description: "Select all", Category: "Selection"},
		{Keys: "<A-r>", Action: ActionToggleRectangular, Description: "Toggle rectangular selection", Category: "Selection"},

		// Editing
		{Keys: "<BS>", Action: ActionBackspace, Description: "Delete previous character", Category: "Editing"},
		{Keys: "<S-BS>", Action: ActionBackspace, Description: "Delete previous character", Category: "Editing"},
		{Keys: "<Del>", Action: ActionDelete, Description: "Delete next character", Category: "Editing"},
		{Keys: "<C-BS>", Action: ActionDeleteWordBackward, Description: "Delete previous word", Category: "Editing"},
		{Keys: "<C-Del>", Action: ActionDeleteWordForward, Description: "Delete next word", Category: "Editing"},
		{Keys: "<Enter>", Action: ActionInsertBreak, Description: "Insert line break", Category: "Editing"},
		{Keys: "<Tab>", Action: ActionInsertTab, Description: "Insert tab", Category: "Editing"},
		{Keys: "<C-d>", Action: ActionDuplicateLine, Description: "Duplicate line", Category: "Editing"},
		{Keys: "<C-k>", Action: ActionDeleteLine, Description: "Delete line", Category: "Editing"},
		{Keys: "<Ins>", Action: ActionToggleOverwrite, Description: "Toggle overwrite", Category: "Editing"},
		{Keys: "<C-z>", Action: ActionUndo, Description: "Undo", Category: "Editing"},
		{Keys: "<C-y>", Action: ActionRedo, Description: "Redo", Category: "Editing"},
		{Keys: "<C-S-z>", Action: ActionRedo, Description: "Redo", Category: "Editing"},
	}
}
