package planner

import (
	"testing"

	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/tree"
)

func newMonitorWorkspace() (*tree.Container, *tree.Container) {
	root := tree.New(tree.KindRoot)
	mon := tree.NewMonitor(1, geom.NewRect(0, 0, 1920, 1080), geom.NewRect(0, 0, 1920, 1080), 1.0)
	_ = tree.Attach(mon, root, -1)
	ws := tree.NewWorkspace("main", "", false)
	_ = tree.Attach(ws, mon, -1)
	return mon, ws
}

// S1 — cursor-quadrant insertion, same direction.
func TestScenarioS1SameDirectionInsertion(t *testing.T) {
	_, ws := newMonitorWorkspace()
	parent := tree.NewSplit(tree.Horizontal)
	_ = tree.Attach(parent, ws, -1)
	a := tree.NewWindow(tree.KindTilingWindow, platform.WindowHandle(1), tree.StateTiling)
	_ = tree.Attach(a, parent, -1)
	// A is the split's only child; fraction 1.0 gives it the full width, so
	// the cursor at x=1400 lies in A's right half.
	parent.Fractions[a.ID] = 1.0

	cursor := geom.Point{X: 1400, Y: 540}
	plan := Compute(tree.StateTiling, a, ws, cursor, tree.GapConfig{})

	if plan.Parent != parent {
		t.Fatalf("expected insertion into same parent, got %v", plan.Parent)
	}
	if plan.Index != 1 {
		t.Fatalf("expected index 1 (insert after), got %d", plan.Index)
	}
	if plan.SetDirection {
		t.Fatal("did not expect a direction change")
	}
}

// S2 — cursor-quadrant, perpendicular direction, single child.
func TestScenarioS2PerpendicularSingleChild(t *testing.T) {
	_, ws := newMonitorWorkspace()
	parent := tree.NewSplit(tree.Horizontal)
	_ = tree.Attach(parent, ws, -1)
	a := tree.NewWindow(tree.KindTilingWindow, platform.WindowHandle(1), tree.StateTiling)
	_ = tree.Attach(a, parent, -1)
	parent.Fractions[a.ID] = 1.0

	cursor := geom.Point{X: 960, Y: 800}
	plan := Compute(tree.StateTiling, a, ws, cursor, tree.GapConfig{})

	if !plan.SetDirection || plan.Direction != tree.Vertical {
		t.Fatalf("expected direction switched to Vertical, got %+v", plan)
	}
	if plan.Parent != parent {
		t.Fatalf("expected same parent repurposed, got %v", plan.Parent)
	}
	if plan.Index != 1 {
		t.Fatalf("expected insert at index 1 (bottom half), got %d", plan.Index)
	}
}

// S3 — cursor-quadrant, perpendicular direction, multi-child: wraps focused
// in a new split.
func TestScenarioS3PerpendicularMultiChildWraps(t *testing.T) {
	_, ws := newMonitorWorkspace()
	parent := tree.NewSplit(tree.Horizontal)
	_ = tree.Attach(parent, ws, -1)
	a := tree.NewWindow(tree.KindTilingWindow, platform.WindowHandle(1), tree.StateTiling)
	b := tree.NewWindow(tree.KindTilingWindow, platform.WindowHandle(2), tree.StateTiling)
	c := tree.NewWindow(tree.KindTilingWindow, platform.WindowHandle(3), tree.StateTiling)
	_ = tree.Attach(a, parent, -1)
	_ = tree.Attach(b, parent, -1)
	_ = tree.Attach(c, parent, -1)
	// Equal thirds; b occupies the middle third.
	parent.Fractions[a.ID] = 1.0 / 3
	parent.Fractions[b.ID] = 1.0 / 3
	parent.Fractions[c.ID] = 1.0 / 3

	cursor := geom.Point{X: 960, Y: 1000} // bottom of b
	plan := Compute(tree.StateTiling, b, ws, cursor, tree.GapConfig{})

	if len(plan.WrapChildren) != 1 || plan.WrapChildren[0] != b {
		t.Fatalf("expected b to be wrapped, got %+v", plan.WrapChildren)
	}
	if plan.Direction != tree.Vertical {
		t.Fatalf("expected new split direction Vertical, got %v", plan.Direction)
	}
	if plan.Index != 1 {
		t.Fatalf("expected d inserted after b at index 1, got %d", plan.Index)
	}
}

func TestNonTilingAppendsToWorkspace(t *testing.T) {
	_, ws := newMonitorWorkspace()
	plan := Compute(tree.StateFloating, nil, ws, geom.Point{}, tree.GapConfig{})
	if plan.Parent != ws || plan.Index != len(ws.Children) {
		t.Fatalf("expected append to workspace, got %+v", plan)
	}
}
