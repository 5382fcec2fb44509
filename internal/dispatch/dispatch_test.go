package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/boxwm/boxwm/internal/events"
	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/reconcile"
	"github.com/boxwm/boxwm/internal/tree"
	"github.com/boxwm/boxwm/internal/wm"
)

type fakeAdapter struct {
	platform.Adapter
	ch          chan platform.Event
	resizable   bool
	setPosCalls int
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{ch: make(chan platform.Event, 4), resizable: true}
}

func (f *fakeAdapter) Events() <-chan platform.Event                 { return f.ch }
func (f *fakeAdapter) IsResizable(h platform.WindowHandle) bool       { return f.resizable }
func (f *fakeAdapter) MousePosition() geom.Point                     { return geom.Point{} }
func (f *fakeAdapter) ForegroundWindow() platform.WindowHandle       { return 0 }
func (f *fakeAdapter) DesktopWindow() platform.WindowHandle          { return 0 }
func (f *fakeAdapter) SetForeground(h platform.WindowHandle) error   { return nil }
func (f *fakeAdapter) SetZOrder(platform.WindowHandle, platform.ZOrderTarget) error { return nil }
func (f *fakeAdapter) SetBorderColor(platform.WindowHandle, *geom.Color) error      { return nil }
func (f *fakeAdapter) SetCornerStyle(platform.WindowHandle, platform.CornerStyle) error {
	return nil
}
func (f *fakeAdapter) SetTitleBarVisibility(platform.WindowHandle, bool) error { return nil }
func (f *fakeAdapter) SetTransparency(platform.WindowHandle, geom.Opacity) error { return nil }
func (f *fakeAdapter) MarkFullscreen(platform.WindowHandle, bool) error          { return nil }
func (f *fakeAdapter) SetTaskbarVisibility(platform.WindowHandle, bool) error    { return nil }
func (f *fakeAdapter) FramePosition(platform.WindowHandle) (geom.Rect, bool)     { return geom.Rect{}, false }
func (f *fakeAdapter) SetCursorPos(int, int)                                    {}
func (f *fakeAdapter) SetPosition(platform.WindowHandle, platform.PositionState, geom.Rect, platform.ZOrderTarget, bool, platform.HideMethod, bool) error {
	f.setPosCalls++
	return nil
}

func newTestState(p *fakeAdapter) *wm.State {
	s := wm.New(p, events.NopSink{}, reconcile.Config{})
	mon := tree.NewMonitor(1, geom.NewRect(0, 0, 1920, 1080), geom.NewRect(0, 0, 1920, 1080), 1.0)
	_ = tree.Attach(mon, s.Root, -1)
	ws := tree.NewWorkspace("main", "", false)
	_ = tree.Attach(ws, mon, -1)
	mon.ActiveWorkspace = ws
	return s
}

func TestLoopManagesWindowAndReconciles(t *testing.T) {
	p := newFakeAdapter()
	s := newTestState(p)
	loop := NewLoop(s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	p.ch <- platform.Event{Kind: platform.EventWindowCreated, Window: 42}

	deadline := time.After(time.Second)
	for {
		if len(tree.WindowDescendants(s.Root)) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for window to be managed")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	<-done

	if p.setPosCalls == 0 {
		t.Fatal("expected reconciliation to have applied at least one position update")
	}
}

func TestLoopIgnoresEventsWhilePaused(t *testing.T) {
	p := newFakeAdapter()
	s := newTestState(p)
	s.Paused = true
	loop := NewLoop(s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	p.ch <- platform.Event{Kind: platform.EventWindowCreated, Window: 99}
	time.Sleep(20 * time.Millisecond)

	if len(tree.WindowDescendants(s.Root)) != 0 {
		t.Fatal("expected paused loop to ignore window-created events")
	}
}
