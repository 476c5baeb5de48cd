package history

import (
	"errors"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// Entry is one undo step.
type Entry struct {
	Name      string
	Ops       OperationList
	Timestamp time.Time
}

// Info summarizes the entry.
func (e *Entry) Info() OperationInfo {
	return OperationInfo{
		Description: e.Name,
		Timestamp:   e.Timestamp,
		Delta:       e.Ops.TotalDelta(),
	}
}

// History manages undo/redo stacks for one document.
// It is not safe for concurrent use.
type History struct {
	undoStack []*Entry
	redoStack []*Entry

	// Grouping state
	grouping  bool
	groupName string
	groupOps  OperationList

	maxEntries int
}

// New creates a history keeping at most maxEntries undo steps.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records an applied operation and clears the redo stack.
// While a group is open the operation joins the group.
func (h *History) Push(op Operation) {
	if op.IsNoop() {
		return
	}
	if h.grouping {
		h.groupOps = append(h.groupOps, op)
		return
	}
	h.pushEntry(&Entry{Name: describe(op), Ops: OperationList{op}, Timestamp: op.Timestamp})
}

func (h *History) pushEntry(e *Entry) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

func describe(op Operation) string {
	switch {
	case op.IsInsert():
		return "insert"
	case op.IsDelete():
		return "delete"
	default:
		return "replace"
	}
}

// Undo reverts the last entry by applying its inverse operations through
// e, and moves it to the redo stack. An open group is closed first.
func (h *History) Undo(e Editor) (*Entry, error) {
	h.EndGroup()
	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	if err := entry.Ops.Invert().Apply(e); err != nil {
		return nil, err
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)
	return entry, nil
}

// Redo re-applies the last undone entry.
func (h *History) Redo(e Editor) (*Entry, error) {
	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	if err := entry.Ops.Apply(e); err != nil {
		return nil, err
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	return entry, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0 || (h.grouping && len(h.groupOps) > 0)
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// BeginGroup starts a group. Operations pushed until EndGroup form a
// single undo step. Nested calls are ignored.
func (h *History) BeginGroup(name string) {
	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupOps = nil
}

// EndGroup closes the open group, if any.
func (h *History) EndGroup() {
	if !h.grouping {
		return
	}
	h.grouping = false
	if len(h.groupOps) > 0 {
		h.pushEntry(&Entry{Name: h.groupName, Ops: h.groupOps, Timestamp: time.Now()})
	}
	h.groupOps = nil
}

// CancelGroup drops the open group without recording it.
// Operations already applied still affect the document.
func (h *History) CancelGroup() {
	h.grouping = false
	h.groupOps = nil
}

// IsGrouping returns true if a group is open.
func (h *History) IsGrouping() bool {
	return h.grouping
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupOps = nil
}

// PeekUndo returns info about the next undo step without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].Info(), true
}

// PeekRedo returns info about the next redo step without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].Info(), true
}

// SetMaxEntries changes the maximum number of undo steps.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	h.maxEntries = max
	if len(h.undoStack) > max {
		h.undoStack = h.undoStack[len(h.undoStack)-max:]
	}
}

// MaxEntries returns the maximum number of undo steps.
func (h *History) MaxEntries() int {
	return h.maxEntries
}
