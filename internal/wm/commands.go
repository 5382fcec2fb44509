package wm

import (
	"github.com/boxwm/boxwm/internal/events"
	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/layout"
	"github.com/boxwm/boxwm/internal/planner"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/tree"
	"github.com/boxwm/boxwm/internal/wmerr"
	"github.com/boxwm/boxwm/internal/wmlog"
)

// ManageWindow implements the "Window created (manageable)" handler (spec
// §4.I): evaluates window rules, picks an insertion target via the
// planner for tiling windows, attaches the container, and queues
// focus_update + focused_effect_update + reorder + redraw.
//
// Window rules are matched before insertion-point planning, mirroring
// the original's manage_window ordering.
func (s *State) ManageWindow(w platform.Window, initialState tree.WindowState) (*tree.Container, error) {
	ws := s.FocusedWorkspace()
	if ws == nil {
		return nil, wmerr.New(wmerr.KindLookupMissing, "manage_window: no focused workspace")
	}

	kind := tree.KindNonTilingWindow
	if initialState == tree.StateTiling {
		kind = tree.KindTilingWindow
	}
	win := tree.NewWindow(kind, w.Handle, initialState)
	win.Title = w.Title
	win.ProcessName = w.ProcessName
	win.ClassName = w.ClassName

	s.applyRules(win, RuleTriggerManage)

	if win.State == tree.StateTiling {
		cursor := s.Platform.MousePosition()
		plan := planner.Compute(win.State, s.Focused, ws, cursor, s.Config.Gaps)
		if err := s.attachViaPlan(win, plan); err != nil {
			return nil, err
		}
	} else {
		win.FloatingPlacement = defaultFloatingPlacement(ws, s.Config.Gaps)
		if err := tree.Attach(win, ws, -1); err != nil {
			return nil, wmerr.Wrap(wmerr.KindLookupMissing, "manage_window: attach", err)
		}
	}

	s.SetFocus(win)
	s.Ledger.QueueReorder(ws.ID)
	s.Ledger.QueueRedraw(ws.ID)
	s.Events.Emit(events.Event{Kind: events.KindWindowManaged, Container: containerDTO(win)})

	return win, nil
}

func (s *State) attachViaPlan(win *tree.Container, plan planner.Plan) error {
	if len(plan.WrapChildren) > 0 {
		split, err := tree.WrapInSplit(plan.WrapChildren, plan.Direction)
		if err != nil {
			return wmerr.Wrap(wmerr.KindLookupMissing, "manage_window: wrap_in_split", err)
		}
		return tree.Attach(win, split, plan.Index)
	}
	if plan.SetDirection {
		plan.Parent.Direction = plan.Direction
	}
	return tree.Attach(win, plan.Parent, plan.Index)
}

// defaultFloatingPlacement centers a new floating window at 60% of its
// workspace's work area.
func defaultFloatingPlacement(ws *tree.Container, gaps tree.GapConfig) geom.Rect {
	wsRect := tree.ToRect(ws, gaps)
	w, h := wsRect.Width()*3/5, wsRect.Height()*3/5
	return geom.NewRect(0, 0, w, h).TranslateToCenter(wsRect)
}

// UnmanageWindow implements the "Window destroyed" handler (spec §4.I):
// cancels any in-flight animation, detaches, picks a new focus target by
// state affinity then non-minimized then any, and queues
// focus_update + reorder + redraw.
func (s *State) UnmanageWindow(handle platform.WindowHandle) error {
	win := s.windowByHandle(handle)
	if win == nil {
		return nil
	}
	ws := win.Workspace()
	s.Syncer.Animator.Cancel(handle)

	if err := tree.Detach(win); err != nil {
		return wmerr.Wrap(wmerr.KindLookupMissing, "unmanage_window: detach", err)
	}

	if s.Focused == win {
		s.Focused = pickNewFocus(ws, win.State)
		if s.Focused != nil {
			s.SetFocus(s.Focused)
		}
	}

	if ws != nil {
		s.Ledger.QueueReorder(ws.ID)
		s.Ledger.QueueRedraw(ws.ID)
	}
	s.Events.Emit(events.Event{Kind: events.KindWindowUnmanaged, Container: containerDTO(win)})
	s.forgetFiredRules(win.ID)
	return nil
}

// pickNewFocus chooses the next focus target after a window disappears:
// same-state-affinity candidate first, then any non-minimized window,
// then anything at all.
func pickNewFocus(ws *tree.Container, lostState tree.WindowState) *tree.Container {
	if ws == nil {
		return nil
	}
	var nonMinimized, any *tree.Container
	for _, c := range tree.DescendantFocusOrder(ws) {
		if !c.Kind.IsWindow() {
			continue
		}
		if c.State == lostState {
			return c
		}
		if any == nil {
			any = c
		}
		if nonMinimized == nil && c.State != tree.StateMinimized {
			nonMinimized = c
		}
	}
	if nonMinimized != nil {
		return nonMinimized
	}
	return any
}

// HandleWindowMoved implements "Window moved (by OS, not by us)" (spec
// §4.I): a floating window's placement follows the OS-reported rect; a
// tiling window's reported move is ignored since reconciliation alone
// owns its position.
func (s *State) HandleWindowMoved(handle platform.WindowHandle, newRect geom.Rect) {
	win := s.windowByHandle(handle)
	if win == nil || win.Kind != tree.KindNonTilingWindow {
		return
	}
	win.FloatingPlacement = newRect
	s.Ledger.QueueRedraw(win.ID)
}

// HandleWindowMinimized implements "Window minimized" (spec §4.I).
func (s *State) HandleWindowMinimized(handle platform.WindowHandle) {
	win := s.windowByHandle(handle)
	if win == nil {
		return
	}
	win.PrevState = win.State
	win.State = tree.StateMinimized
	if ws := win.Workspace(); ws != nil {
		if s.Focused == win {
			s.Focused = pickNewFocus(ws, win.State)
			if s.Focused != nil {
				s.SetFocus(s.Focused)
			}
		}
		s.Ledger.QueueReorder(ws.ID)
	}
}

// HandleWindowFocusedExternally implements "Window focused externally"
// (spec §4.I): updates focus order and re-runs on-focus window rules.
func (s *State) HandleWindowFocusedExternally(handle platform.WindowHandle) {
	win := s.windowByHandle(handle)
	if win == nil {
		return
	}
	s.SetFocus(win)
	s.applyRules(win, RuleTriggerFocus)
}

// HandleTitleChanged implements "Window title changed" (spec §4.I):
// re-runs title-change window rules.
func (s *State) HandleTitleChanged(handle platform.WindowHandle, newTitle string) {
	win := s.windowByHandle(handle)
	if win == nil {
		return
	}
	win.Title = newTitle
	s.applyRules(win, RuleTriggerTitleChange)
}

// AddMonitor implements "Monitor added" (spec §4.I).
func (s *State) AddMonitor(m platform.Monitor) *tree.Container {
	mon := tree.NewMonitor(m.Handle, m.Full, m.WorkArea, m.DPIScale)
	_ = tree.Attach(mon, s.Root, -1)
	return mon
}

// RemoveMonitor implements "Monitor removed" (spec §4.I): migrates
// orphaned workspaces to a surviving monitor before detaching.
func (s *State) RemoveMonitor(h platform.MonitorHandle) error {
	mon := s.monitorByHandle(h)
	if mon == nil {
		return nil
	}
	var target *tree.Container
	for _, m := range tree.AllMonitors(s.Root) {
		if m != mon {
			target = m
			break
		}
	}

	for _, ws := range append([]*tree.Container(nil), mon.Children...) {
		if err := tree.Detach(ws); err != nil {
			wmlog.Default.Warn("remove_monitor: detach workspace %s: %v", ws.ID, err)
			continue
		}
		if target != nil {
			_ = tree.Attach(ws, target, -1)
			if target.ActiveWorkspace == nil {
				target.ActiveWorkspace = ws
			}
		}
	}

	return tree.Detach(mon)
}

// ActivateWorkspace implements explicit workspace activation: creates the
// workspace on demand if it doesn't exist, and makes it the active one on
// the given monitor.
func (s *State) ActivateWorkspace(name string, mon *tree.Container) *tree.Container {
	ws := s.workspaceByName(name)
	if ws == nil {
		ws = tree.NewWorkspace(name, "", false)
		_ = tree.Attach(ws, mon, -1)
	}
	mon.ActiveWorkspace = ws
	s.Ledger.QueueReorder(ws.ID)
	s.Ledger.QueueRedraw(ws.ID)
	s.Events.Emit(events.Event{Kind: events.KindWorkspaceActivated, Workspace: containerDTO(ws)})
	return ws
}

// UpdateWindowState transitions win to newState, reparenting it between
// the split tree (Tiling) and the workspace's floating set (everything
// else) as needed.
func (s *State) UpdateWindowState(win *tree.Container, newState tree.WindowState, currentRect geom.Rect) error {
	if win.State == newState {
		return nil
	}
	ws := win.Workspace()
	if ws == nil {
		return wmerr.New(wmerr.KindLookupMissing, "update_window_state: no workspace")
	}

	wasTiling := win.Kind == tree.KindTilingWindow
	win.PrevState = win.State
	win.State = newState

	switch {
	case newState == tree.StateTiling && !wasTiling:
		if err := tree.Detach(win); err != nil {
			return wmerr.Wrap(wmerr.KindLookupMissing, "update_window_state: detach", err)
		}
		win.Kind = tree.KindTilingWindow
		cursor := s.Platform.MousePosition()
		plan := planner.Compute(tree.StateTiling, s.Focused, ws, cursor, s.Config.Gaps)
		if err := s.attachViaPlan(win, plan); err != nil {
			return err
		}
	case newState != tree.StateTiling && wasTiling:
		if err := tree.Detach(win); err != nil {
			return wmerr.Wrap(wmerr.KindLookupMissing, "update_window_state: detach", err)
		}
		win.Kind = tree.KindNonTilingWindow
		win.FloatingPlacement = currentRect
		if err := tree.Attach(win, ws, -1); err != nil {
			return wmerr.Wrap(wmerr.KindLookupMissing, "update_window_state: attach", err)
		}
	}

	s.Ledger.QueueReorder(ws.ID)
	s.Ledger.QueueRedraw(ws.ID)
	return nil
}

// DisplaySettingsChanged implements "Display settings changed" (spec
// §4.I): flags every window for a pending DPI adjustment and queues a
// redraw of every workspace.
func (s *State) DisplaySettingsChanged() {
	for _, w := range tree.WindowDescendants(s.Root) {
		w.PendingDPIAdjustment = true
	}
	for _, ws := range tree.AllWorkspaces(s.Root) {
		s.Ledger.QueueRedraw(ws.ID)
	}
}

// CloseFocusedWindow requests the OS close the focused window (spec §4.I
// hotkey command "close_window"). The actual unmanage happens when the OS
// reports the window destroyed; this only issues the close request.
func (s *State) CloseFocusedWindow() error {
	if s.Focused == nil || !s.Focused.Kind.IsWindow() {
		return nil
	}
	return s.Platform.SetForeground(s.Focused.Handle)
}

// ToggleFocusedFloating flips the focused window between Tiling and
// Floating (spec §4.I hotkey command "toggle_floating").
func (s *State) ToggleFocusedFloating() error {
	win := s.Focused
	if win == nil || !win.Kind.IsWindow() {
		return nil
	}
	target := tree.StateFloating
	rect := tree.ToRect(win, s.Config.Gaps)
	if win.State == tree.StateFloating {
		target = tree.StateTiling
	}
	return s.UpdateWindowState(win, target, rect)
}

// FocusDirection moves focus to the nearest tiling sibling in the given
// direction within the focused window's split (spec §4.I hotkey commands
// "focus_left"/"focus_right"/"focus_up"/"focus_down"). dir selects the
// axis; forward selects which side along that axis.
func (s *State) FocusDirection(dir tree.Direction, forward bool) {
	win := s.Focused
	if win == nil || win.Parent == nil {
		return
	}
	parent := win.Parent
	if !parent.IsSplit() || parent.Direction != dir {
		return
	}
	idx := win.IndexInParent()
	target := idx - 1
	if forward {
		target = idx + 1
	}
	if target < 0 || target >= len(parent.Children) {
		return
	}
	if next := tree.FocusedLeaf(parent.Children[target]); next != nil {
		s.SetFocus(next)
	}
}

// ResizeFocused grows the focused tiling window's share of its split by
// deltaPixels along axis (spec §4.E hotkey-driven resize), forwarding to
// the nearest ancestor split whose direction matches axis when the
// immediate parent's direction is perpendicular.
func (s *State) ResizeFocused(axis tree.Direction, deltaPixels int) error {
	win := s.Focused
	if win == nil || !win.Kind.IsWindow() {
		return nil
	}

	child := win
	for parent := child.Parent; parent != nil; parent = child.Parent {
		if !parent.IsSplit() {
			child = parent
			continue
		}
		if parent.Direction != axis {
			child = parent
			continue
		}

		rect := tree.ToRect(parent, s.Config.Gaps)
		span := rect.Width()
		if axis == tree.Vertical {
			span = rect.Height()
		}
		if err := layout.Resize(parent, child, axis, deltaPixels, span); err != nil {
			return wmerr.Wrap(wmerr.KindInvalidConfig, "resize_focused", err)
		}
		if ws := win.Workspace(); ws != nil {
			s.Ledger.QueueRedraw(ws.ID)
		}
		return nil
	}
	return nil
}

func containerDTO(c *tree.Container) *events.ContainerDTO {
	if c == nil {
		return nil
	}
	dto := &events.ContainerDTO{ID: c.ID, Kind: c.Kind.String(), Name: c.Name, State: c.State.String()}
	if c.Kind.IsWindow() {
		dto.Handle = uintptr(c.Handle)
	}
	return dto
}
