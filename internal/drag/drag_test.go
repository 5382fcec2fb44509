package drag

import (
	"testing"

	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/tree"
)

type fakeAdapter struct {
	platform.Adapter
	windowAt platform.WindowHandle
}

func (f *fakeAdapter) WindowFromPoint(p geom.Point) (platform.WindowHandle, bool) {
	return f.windowAt, f.windowAt != 0
}

func (f *fakeAdapter) RootAncestor(w platform.WindowHandle) platform.WindowHandle {
	return w
}

// S4 — drag floats a tiling window.
func TestScenarioS4DragFloatsTilingWindow(t *testing.T) {
	root := tree.New(tree.KindRoot)
	mon := tree.NewMonitor(1, geom.NewRect(0, 0, 1920, 1080), geom.NewRect(0, 0, 1920, 1080), 1.0)
	_ = tree.Attach(mon, root, -1)
	ws := tree.NewWorkspace("main", "", false)
	_ = tree.Attach(ws, mon, -1)
	a := tree.NewWindow(tree.KindTilingWindow, platform.WindowHandle(42), tree.StateTiling)
	_ = tree.Attach(a, ws, -1)

	adapter := &fakeAdapter{windowAt: 42}
	var c Controller

	startPoint := geom.Point{X: 500, Y: 500}
	result, ok := c.Start(adapter, root, startPoint, tree.GapConfig{})
	if !ok {
		t.Fatal("expected drag to start")
	}
	if !result.NeedsFloat {
		t.Fatal("expected a tiling window to require a float transition")
	}
	if !c.Active() {
		t.Fatal("expected controller to be active after Start")
	}

	step, ok := c.Step(geom.Point{X: 520, Y: 510})
	if !ok {
		t.Fatal("expected Step to succeed while dragging")
	}
	if step.Delta.X != 20 || step.Delta.Y != 10 {
		t.Fatalf("expected delta (20, 10), got (%d, %d)", step.Delta.X, step.Delta.Y)
	}

	c.End()
	if c.Active() {
		t.Fatal("expected controller inactive after End")
	}
}
