package tree

import (
	"testing"

	"github.com/boxwm/boxwm/internal/geom"
)

func newTestWorkspace() *Container {
	root := New(KindRoot)
	mon := NewMonitor(1, geom.NewRect(0, 0, 1920, 1080), geom.NewRect(0, 0, 1920, 1080), 1.0)
	_ = Attach(mon, root, -1)
	ws := NewWorkspace("main", "", false)
	_ = Attach(ws, mon, -1)
	return ws
}

func TestAttachAppendsAndUpdatesFocusOrder(t *testing.T) {
	ws := newTestWorkspace()
	a := NewWindow(KindTilingWindow, 100, StateTiling)
	b := NewWindow(KindTilingWindow, 101, StateTiling)

	if err := Attach(a, ws, -1); err != nil {
		t.Fatalf("attach a: %v", err)
	}
	if err := Attach(b, ws, -1); err != nil {
		t.Fatalf("attach b: %v", err)
	}

	if len(ws.Children) != 2 || ws.Children[0] != a || ws.Children[1] != b {
		t.Fatalf("unexpected children order: %+v", ws.Children)
	}
	if len(ws.FocusOrder) != 2 || ws.FocusOrder[1] != b {
		t.Fatalf("expected b appended to focus order tail, got %+v", ws.FocusOrder)
	}
}

func TestAttachRejectsAlreadyParented(t *testing.T) {
	ws := newTestWorkspace()
	a := NewWindow(KindTilingWindow, 100, StateTiling)
	if err := Attach(a, ws, -1); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := Attach(a, ws, -1); err == nil {
		t.Fatal("expected error re-attaching already-parented child")
	}
}

func TestDetachCollapsesSingleChildSplit(t *testing.T) {
	ws := newTestWorkspace()
	split := NewSplit(Horizontal)
	_ = Attach(split, ws, -1)

	a := NewWindow(KindTilingWindow, 100, StateTiling)
	b := NewWindow(KindTilingWindow, 101, StateTiling)
	_ = Attach(a, split, -1)
	_ = Attach(b, split, -1)

	if err := Detach(b); err != nil {
		t.Fatalf("detach b: %v", err)
	}

	if len(ws.Children) != 1 || ws.Children[0] != a {
		t.Fatalf("expected split collapsed to sole child a in workspace, got %+v", ws.Children)
	}
	if a.Parent != ws {
		t.Fatalf("expected a's parent reparented to workspace, got %v", a.Parent)
	}
}

func TestAttachDetachRestoresPriorState(t *testing.T) {
	ws := newTestWorkspace()
	split := NewSplit(Horizontal)
	_ = Attach(split, ws, -1)
	a := NewWindow(KindTilingWindow, 100, StateTiling)
	b := NewWindow(KindTilingWindow, 101, StateTiling)
	_ = Attach(a, split, -1)
	_ = Attach(b, split, -1)

	c := NewWindow(KindTilingWindow, 102, StateTiling)
	if err := Attach(c, split, 1); err != nil {
		t.Fatalf("attach c: %v", err)
	}
	if err := Detach(c); err != nil {
		t.Fatalf("detach c: %v", err)
	}

	if len(split.Children) != 2 || split.Children[0] != a || split.Children[1] != b {
		t.Fatalf("attach;detach did not restore prior children order: %+v", split.Children)
	}
}

func TestWrapInSplitReplacesContiguousSiblings(t *testing.T) {
	ws := newTestWorkspace()
	parent := NewSplit(Horizontal)
	_ = Attach(parent, ws, -1)

	a := NewWindow(KindTilingWindow, 100, StateTiling)
	b := NewWindow(KindTilingWindow, 101, StateTiling)
	c := NewWindow(KindTilingWindow, 102, StateTiling)
	_ = Attach(a, parent, -1)
	_ = Attach(b, parent, -1)
	_ = Attach(c, parent, -1)

	split, err := WrapInSplit([]*Container{b}, Vertical)
	if err != nil {
		t.Fatalf("wrap_in_split: %v", err)
	}

	if len(parent.Children) != 3 || parent.Children[1] != split {
		t.Fatalf("expected split to replace b in parent at its position, got %+v", parent.Children)
	}
	if len(split.Children) != 1 || split.Children[0] != b {
		t.Fatalf("expected split to contain b, got %+v", split.Children)
	}
	if b.Parent != split {
		t.Fatalf("expected b's parent to be the new split")
	}
}

func TestDescendantsPreOrder(t *testing.T) {
	ws := newTestWorkspace()
	split := NewSplit(Horizontal)
	_ = Attach(split, ws, -1)
	a := NewWindow(KindTilingWindow, 100, StateTiling)
	b := NewWindow(KindTilingWindow, 101, StateTiling)
	_ = Attach(a, split, -1)
	_ = Attach(b, split, -1)

	got := Descendants(ws)
	want := []*Container{ws, split, a, b}
	if len(got) != len(want) {
		t.Fatalf("expected %d descendants, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descendant %d mismatch: got %s want %s", i, got[i].ID, want[i].ID)
		}
	}
}

func TestDescendantFocusOrderFirstIsMostRecentlyFocused(t *testing.T) {
	ws := newTestWorkspace()
	a := NewWindow(KindTilingWindow, 100, StateTiling)
	b := NewWindow(KindTilingWindow, 101, StateTiling)
	_ = Attach(a, ws, -1)
	_ = Attach(b, ws, -1)

	// Simulate b being focused more recently by moving it to the head.
	ws.FocusOrder = []*Container{b, a}

	order := DescendantFocusOrder(ws)
	if order[1] != b {
		t.Fatalf("expected b first among leaves, got order %+v", order)
	}
}

func TestInvariantsCleanTreeHasNoViolations(t *testing.T) {
	ws := newTestWorkspace()
	split := NewSplit(Horizontal)
	_ = Attach(split, ws, -1)
	a := NewWindow(KindTilingWindow, 100, StateTiling)
	b := NewWindow(KindTilingWindow, 101, StateTiling)
	_ = Attach(a, split, -1)
	_ = Attach(b, split, -1)

	root := ws.Parent.Parent
	if v := CheckInvariants(root); len(v) != 0 {
		t.Fatalf("expected no violations, got %+v", v)
	}
}

func TestToRectPartitionsSplitByFraction(t *testing.T) {
	ws := newTestWorkspace()
	split := NewSplit(Horizontal)
	_ = Attach(split, ws, -1)
	a := NewWindow(KindTilingWindow, 100, StateTiling)
	b := NewWindow(KindTilingWindow, 101, StateTiling)
	_ = Attach(a, split, -1)
	_ = Attach(b, split, -1)

	gaps := GapConfig{InnerGap: 0}
	rectA := ToRect(a, gaps)
	rectB := ToRect(b, gaps)

	if rectA.Width() != rectB.Width() {
		t.Fatalf("expected equal halves, got %d and %d", rectA.Width(), rectB.Width())
	}
	if rectA.Right != rectB.Left {
		t.Fatalf("expected adjacent partitions with no gutter, got a.Right=%d b.Left=%d", rectA.Right, rectB.Left)
	}
}
