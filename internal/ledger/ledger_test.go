package ledger

import (
	"testing"

	"github.com/google/uuid"
)

func TestQueueOperationsAreIdempotent(t *testing.T) {
	l := New()
	id := uuid.New()

	l.QueueRedraw(id)
	l.QueueRedraw(id)
	l.QueueFocusUpdate()
	l.QueueFocusUpdate()

	if len(l.Redraw) != 1 {
		t.Fatalf("expected redraw set of size 1, got %d", len(l.Redraw))
	}
	if !l.FocusUpdate {
		t.Fatal("expected focus update flag set")
	}
}

func TestIsEmptyOnFreshLedger(t *testing.T) {
	l := New()
	if !l.IsEmpty() {
		t.Fatal("expected fresh ledger to be empty")
	}
	l.QueueCursorJump()
	if l.IsEmpty() {
		t.Fatal("expected ledger to be non-empty after queuing cursor jump")
	}
}

func TestClearEmptiesAllFields(t *testing.T) {
	l := New()
	l.QueueFocusUpdate()
	l.QueueCursorJump()
	l.QueueFocusedEffectUpdate()
	l.QueueAllEffectsUpdate()
	l.QueueRedraw(uuid.New())
	l.QueueReorder(uuid.New())

	l.Clear()

	if !l.IsEmpty() {
		t.Fatal("expected ledger empty after Clear")
	}
}
