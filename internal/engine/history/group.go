package history

import (
	"errors"
	"slices"
)

// GroupScope closes a group opened with History.GroupScope.
//
//	scope := h.GroupScope("column replace")
//	defer scope.End()
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a group and returns its scope. A scope opened inside
// another group is inert and leaves closing to the outer owner.
func (h *History) GroupScope(name string) *GroupScope {
	nested := h.grouping
	h.BeginGroup(name)
	return &GroupScope{history: h, active: !nested}
}

// End records the group. Only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Cancel drops the group without recording it.
func (g *GroupScope) Cancel() {
	if g.active {
		g.history.CancelGroup()
		g.active = false
	}
}

// Transaction runs fn within a group. If fn fails, the operations it
// recorded are reverted through e and nothing is recorded, so the text
// is back where it started. Inside an outer group only fn's own
// operations are reverted.
func (h *History) Transaction(name string, e Editor, fn func() error) error {
	scope := h.GroupScope(name)
	mark := len(h.groupOps)
	err := fn()
	if err == nil {
		scope.End()
		return nil
	}

	applied := slices.Clone(h.groupOps[mark:])
	h.groupOps = h.groupOps[:mark]
	scope.Cancel()
	if rerr := applied.Invert().Apply(e); rerr != nil {
		return errors.Join(err, rerr)
	}
	return err
}
