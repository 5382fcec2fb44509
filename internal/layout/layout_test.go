package layout

import (
	"testing"

	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/tree"
)

func threeWaySplit(t *testing.T) (*tree.Container, []*tree.Container) {
	t.Helper()
	root := tree.New(tree.KindRoot)
	mon := tree.NewMonitor(1, geom.NewRect(0, 0, 1920, 1080), geom.NewRect(0, 0, 1920, 1080), 1.0)
	_ = tree.Attach(mon, root, -1)
	ws := tree.NewWorkspace("main", "", false)
	_ = tree.Attach(ws, mon, -1)

	split := tree.NewSplit(tree.Horizontal)
	_ = tree.Attach(split, ws, -1)

	var children []*tree.Container
	for i := 0; i < 3; i++ {
		w := tree.NewWindow(tree.KindTilingWindow, platform.WindowHandle(100+i), tree.StateTiling)
		_ = tree.Attach(w, split, -1)
		children = append(children, w)
	}
	return split, children
}

func TestResizeGrowsTargetAndShrinksSiblingsProportionally(t *testing.T) {
	split, children := threeWaySplit(t)
	span := 1920

	before := make(map[string]float64)
	for _, c := range children {
		before[c.ID.String()] = split.Fraction(c)
	}

	if err := Resize(split, children[0], tree.Horizontal, 192, span); err != nil {
		t.Fatalf("resize: %v", err)
	}

	got := split.Fraction(children[0])
	want := before[children[0].ID.String()] + 192.0/float64(span)
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected child fraction %g, got %g", want, got)
	}

	var sum float64
	for _, c := range children {
		sum += split.Fraction(c)
	}
	if diff := sum - 1.0; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("expected fractions to still sum to 1.0, got %g", sum)
	}
}

func TestResizeRejectsWhenSiblingWouldFallBelowFloor(t *testing.T) {
	split, children := threeWaySplit(t)
	if err := Resize(split, children[0], tree.Horizontal, 1800, 1920); err != ErrBelowFloor {
		t.Fatalf("expected ErrBelowFloor, got %v", err)
	}
}

func TestResizeRejectsPerpendicularAxis(t *testing.T) {
	split, children := threeWaySplit(t)
	if err := Resize(split, children[0], tree.Vertical, 100, 1920); err == nil {
		t.Fatal("expected error resizing along perpendicular axis")
	}
}
