package engine

import (
	"errors"

	"github.com/dshills/sqledit/internal/engine/buffer"
	"github.com/dshills/sqledit/internal/engine/history"
)

// Errors returned by document operations.
var (
	// ErrOutOfBounds indicates an offset or line outside the document.
	ErrOutOfBounds = buffer.ErrOutOfBounds

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrReadOnly indicates an edit was attempted on a read-only document.
	ErrReadOnly = errors.New("document is read-only")
)
