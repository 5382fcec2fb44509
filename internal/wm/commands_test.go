package wm

import (
	"testing"

	"github.com/boxwm/boxwm/internal/events"
	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/reconcile"
	"github.com/boxwm/boxwm/internal/tree"
)

// fakeAdapter implements just enough of platform.Adapter for command tests;
// embedding the nil interface panics if an unstubbed method is called,
// which is the point (it surfaces untested platform dependencies).
type fakeAdapter struct {
	platform.Adapter
	foreground platform.WindowHandle
	cursor     geom.Point
	framed     map[platform.WindowHandle]geom.Rect
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{framed: map[platform.WindowHandle]geom.Rect{}}
}

func (f *fakeAdapter) MousePosition() geom.Point { return f.cursor }
func (f *fakeAdapter) ForegroundWindow() platform.WindowHandle { return f.foreground }
func (f *fakeAdapter) DesktopWindow() platform.WindowHandle    { return 0 }
func (f *fakeAdapter) SetForeground(h platform.WindowHandle) error {
	f.foreground = h
	return nil
}
func (f *fakeAdapter) SetPosition(h platform.WindowHandle, state platform.PositionState, rect geom.Rect, z platform.ZOrderTarget, visible bool, hide platform.HideMethod, pendingDPI bool) error {
	return nil
}
func (f *fakeAdapter) SetZOrder(h platform.WindowHandle, z platform.ZOrderTarget) error { return nil }
func (f *fakeAdapter) SetBorderColor(h platform.WindowHandle, c *geom.Color) error      { return nil }
func (f *fakeAdapter) SetCornerStyle(h platform.WindowHandle, s platform.CornerStyle) error {
	return nil
}
func (f *fakeAdapter) SetTitleBarVisibility(h platform.WindowHandle, v bool) error { return nil }
func (f *fakeAdapter) SetTransparency(h platform.WindowHandle, o geom.Opacity) error { return nil }
func (f *fakeAdapter) MarkFullscreen(h platform.WindowHandle, fs bool) error         { return nil }
func (f *fakeAdapter) SetTaskbarVisibility(h platform.WindowHandle, v bool) error    { return nil }
func (f *fakeAdapter) FramePosition(h platform.WindowHandle) (geom.Rect, bool) {
	r, ok := f.framed[h]
	return r, ok
}
func (f *fakeAdapter) SetCursorPos(x, y int) {}

func newTestState() (*State, *tree.Container) {
	p := newFakeAdapter()
	s := New(p, events.NopSink{}, reconcile.Config{})
	mon := tree.NewMonitor(1, geom.NewRect(0, 0, 1920, 1080), geom.NewRect(0, 0, 1920, 1080), 1.0)
	_ = tree.Attach(mon, s.Root, -1)
	ws := tree.NewWorkspace("main", "", false)
	_ = tree.Attach(ws, mon, -1)
	mon.ActiveWorkspace = ws
	return s, ws
}

func TestManageWindowAttachesTilingWindowAndFocusesIt(t *testing.T) {
	s, ws := newTestState()

	win, err := s.ManageWindow(platform.Window{Handle: 10, Title: "a"}, tree.StateTiling)
	if err != nil {
		t.Fatalf("ManageWindow: %v", err)
	}
	if win.Parent != ws {
		t.Fatalf("expected window attached to workspace, parent = %v", win.Parent)
	}
	if s.Focused != win {
		t.Fatalf("expected new window to be focused")
	}
	if s.Ledger.IsEmpty() {
		t.Fatal("expected ledger to have pending work after manage")
	}
}

func TestManageWindowNonTilingGetsFloatingPlacement(t *testing.T) {
	s, _ := newTestState()

	win, err := s.ManageWindow(platform.Window{Handle: 11}, tree.StateFloating)
	if err != nil {
		t.Fatalf("ManageWindow: %v", err)
	}
	if win.Kind != tree.KindNonTilingWindow {
		t.Fatalf("expected NonTilingWindow kind, got %v", win.Kind)
	}
	if win.FloatingPlacement == (geom.Rect{}) {
		t.Fatal("expected a non-zero default floating placement")
	}
}

func TestUnmanageWindowReassignsFocusToSurvivor(t *testing.T) {
	s, _ := newTestState()

	a, err := s.ManageWindow(platform.Window{Handle: 1}, tree.StateTiling)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.ManageWindow(platform.Window{Handle: 2}, tree.StateTiling)
	if err != nil {
		t.Fatal(err)
	}
	s.SetFocus(b)

	if err := s.UnmanageWindow(b.Handle); err != nil {
		t.Fatalf("UnmanageWindow: %v", err)
	}
	if s.Focused != a {
		t.Fatalf("expected focus to fall back to surviving window, got %v", s.Focused)
	}
	if b.Parent != nil {
		t.Fatal("expected unmanaged window to be detached")
	}
}

func TestWindowRuleFloatsMatchingProcess(t *testing.T) {
	s, _ := newTestState()
	s.Rules = []WindowRule{
		{
			On:         RuleTriggerManage,
			Conditions: []Condition{{Field: MatchProcessName, Op: OpEquals, Value: "calculator.exe"}},
			Actions:    Action{Float: true},
		},
	}

	win, err := s.ManageWindow(platform.Window{Handle: 20, ProcessName: "calculator.exe"}, tree.StateTiling)
	if err != nil {
		t.Fatal(err)
	}
	if win.Kind != tree.KindNonTilingWindow || win.State != tree.StateFloating {
		t.Fatalf("expected rule to float the window, got kind=%v state=%v", win.Kind, win.State)
	}
}
