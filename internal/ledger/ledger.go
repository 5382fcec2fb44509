// Package ledger implements the pending-sync ledger: the single piece of
// mutable state that accumulates deferred work between event-loop turns
// (spec.md §4.D). Reconciliation is its only reader.
package ledger

import "github.com/google/uuid"

// Ledger accumulates the set of syncs reconciliation needs to perform at
// the end of the current event-dispatch turn. Queue operations are
// idempotent and commutative: marking the same flag or inserting the same
// id twice has no additional effect.
type Ledger struct {
	FocusUpdate          bool
	CursorJump           bool
	FocusedEffectUpdate  bool
	AllEffectsUpdate     bool
	Redraw               map[uuid.UUID]struct{}
	Reorder              map[uuid.UUID]struct{}
}

// New returns an empty ledger ready to accumulate a turn's work.
func New() *Ledger {
	return &Ledger{
		Redraw:  make(map[uuid.UUID]struct{}),
		Reorder: make(map[uuid.UUID]struct{}),
	}
}

// QueueFocusUpdate marks that focus needs to be synced to the OS.
func (l *Ledger) QueueFocusUpdate() { l.FocusUpdate = true }

// QueueCursorJump marks that the cursor should be repositioned.
func (l *Ledger) QueueCursorJump() { l.CursorJump = true }

// QueueFocusedEffectUpdate marks that the focused-window effect set needs
// reapplying.
func (l *Ledger) QueueFocusedEffectUpdate() { l.FocusedEffectUpdate = true }

// QueueAllEffectsUpdate marks that every window's effect set needs
// reapplying (e.g. a config reload).
func (l *Ledger) QueueAllEffectsUpdate() { l.AllEffectsUpdate = true }

// QueueRedraw marks a container (and, by expansion during reconciliation,
// its window descendants) for a geometry/visibility sync.
func (l *Ledger) QueueRedraw(id uuid.UUID) { l.Redraw[id] = struct{}{} }

// QueueReorder marks a workspace's z-order as needing recomputation.
func (l *Ledger) QueueReorder(id uuid.UUID) { l.Reorder[id] = struct{}{} }

// IsEmpty reports whether the ledger has nothing for reconciliation to do.
func (l *Ledger) IsEmpty() bool {
	return !l.FocusUpdate && !l.CursorJump && !l.FocusedEffectUpdate &&
		!l.AllEffectsUpdate && len(l.Redraw) == 0 && len(l.Reorder) == 0
}

// Clear empties every field. Must be the final step of every
// reconciliation pass (spec testable property 6: "ledger clears after
// every reconciliation turn").
func (l *Ledger) Clear() {
	l.FocusUpdate = false
	l.CursorJump = false
	l.FocusedEffectUpdate = false
	l.AllEffectsUpdate = false
	l.Redraw = make(map[uuid.UUID]struct{})
	l.Reorder = make(map[uuid.UUID]struct{})
}
