// Package drag implements the Alt+LButton drag controller (spec.md §4.H):
// floats a tiling window on capture, streams cursor deltas to its
// position while the button is held, and releases on button up.
package drag

import (
	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/tree"
)

// State is the drag controller's state machine.
type State int

const (
	None State = iota
	Dragging
)

// Controller holds the drag state across mouse-move events. It only
// queries the platform (to resolve the window under the cursor) and never
// moves a window itself; Step returns the delta the caller applies to the
// window's position.
type Controller struct {
	state     State
	windowID  *tree.Container
	lastPoint geom.Point
}

// Active reports whether a drag is in progress, which suppresses
// focus-follows-cursor for the event's whole duration (spec §4.I,
// supplemented by original_source/handle_mouse_move.rs).
func (c *Controller) Active() bool { return c.state == Dragging }

// Window returns the container currently being dragged, or nil.
func (c *Controller) Window() *tree.Container { return c.windowID }

// StartResult is returned by Start.
type StartResult struct {
	Window           *tree.Container
	NeedsFloat       bool
	CurrentRect      geom.Rect
}

// Start handles a mouse-move event with Alt held and the left button
// pressed while state == None. It resolves the window under the cursor
// via the platform adapter and, if found, transitions to Dragging.
// Whether the caller must issue an update_window_state(Floating) command
// first is reported via NeedsFloat.
func (c *Controller) Start(p platform.Adapter, root *tree.Container, point geom.Point, gaps tree.GapConfig) (StartResult, bool) {
	handle, ok := p.WindowFromPoint(point)
	if !ok {
		return StartResult{}, false
	}
	rootHandle := p.RootAncestor(handle)

	win := findByHandle(root, rootHandle)
	if win == nil {
		return StartResult{}, false
	}

	c.state = Dragging
	c.windowID = win
	c.lastPoint = point

	return StartResult{
		Window:      win,
		NeedsFloat:  win.State == tree.StateTiling,
		CurrentRect: tree.ToRect(win, gaps),
	}, true
}

// StepResult is returned by Step: the window being dragged and the delta
// since the last recorded point. The caller issues
// set_window_position(window, current_pos + Delta).
type StepResult struct {
	Window *tree.Container
	Delta  geom.Point
}

// Step handles a subsequent mouse-move while the left button is held and
// state == Dragging. It computes the delta from the last recorded point,
// advances that point to current, and consumes the event (spec:
// focus-follows-cursor is suppressed while dragging).
func (c *Controller) Step(current geom.Point) (StepResult, bool) {
	if c.state != Dragging {
		return StepResult{}, false
	}
	delta := geom.Point{X: current.X - c.lastPoint.X, Y: current.Y - c.lastPoint.Y}
	c.lastPoint = current
	return StepResult{Window: c.windowID, Delta: delta}, true
}

// End transitions to None on any mouse-move where the left button is no
// longer held.
func (c *Controller) End() {
	c.state = None
	c.windowID = nil
}

func findByHandle(node *tree.Container, h platform.WindowHandle) *tree.Container {
	for _, d := range tree.Descendants(node) {
		if d.Kind.IsWindow() && d.Handle == h {
			return d
		}
	}
	return nil
}
