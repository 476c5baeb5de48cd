package history

import (
	"time"
	"unicode/utf8"
)

// Operation represents a single undoable edit.
// It captures all information needed to undo or redo the edit.
type Operation struct {
	Offset  int    // where the edit was applied
	OldText string // text that was replaced (for undo)
	NewText string // text that was inserted (for redo)

	Timestamp time.Time
}

// NewOperation creates a new operation.
func NewOperation(offset int, oldText, newText string) Operation {
	return Operation{
		Offset:    offset,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// OldLen returns the number of characters the edit removed.
func (op Operation) OldLen() int {
	return utf8.RuneCountInString(op.OldText)
}

// NewLen returns the number of characters the edit inserted.
func (op Operation) NewLen() int {
	return utf8.RuneCountInString(op.NewText)
}

// IsInsert returns true if this operation is a pure insertion.
func (op Operation) IsInsert() bool {
	return op.OldText == "" && op.NewText != ""
}

// IsDelete returns true if this operation is a pure deletion.
func (op Operation) IsDelete() bool {
	return op.OldText != "" && op.NewText == ""
}

// IsReplace returns true if this operation replaces text.
func (op Operation) IsReplace() bool {
	return op.OldText != "" && op.NewText != ""
}

// IsNoop returns true if this operation makes no changes.
func (op Operation) IsNoop() bool {
	return op.OldText == "" && op.NewText == ""
}

// Delta returns the change in document length.
func (op Operation) Delta() int {
	return op.NewLen() - op.OldLen()
}

// Invert returns an operation that undoes this one.
func (op Operation) Invert() Operation {
	return Operation{
		Offset:    op.Offset,
		OldText:   op.NewText,
		NewText:   op.OldText,
		Timestamp: time.Now(),
	}
}

// Apply performs the operation through e.
func (op Operation) Apply(e Editor) error {
	return e.Replace(op.Offset, op.OldLen(), op.NewText)
}

// Editor applies raw edits without recording them in a history.
type Editor interface {
	Replace(offset, deleteLength int, text string) error
}

// OperationInfo provides read-only info about an undo entry.
// Used for displaying undo/redo history to users.
type OperationInfo struct {
	Description string    // Human-readable description
	Timestamp   time.Time // When the entry was recorded
	Delta       int       // Positive for insertions, negative for deletions
}

// OperationList is a collection of operations that are undone together.
type OperationList []Operation

// Invert returns a list of inverse operations in reverse order.
func (ops OperationList) Invert() OperationList {
	result := make(OperationList, len(ops))
	for i, op := range ops {
		result[len(ops)-1-i] = op.Invert()
	}
	return result
}

// TotalDelta returns the total change in document length.
func (ops OperationList) TotalDelta() int {
	total := 0
	for _, op := range ops {
		total += op.Delta()
	}
	return total
}

// Apply performs the operations in order, stopping at the first error.
func (ops OperationList) Apply(e Editor) error {
	for _, op := range ops {
		if err := op.Apply(e); err != nil {
			return err
		}
	}
	return nil
}
