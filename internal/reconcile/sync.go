// Package reconcile implements the platform sync pass (spec.md §4.G): the
// reconciliation that projects tree state onto the OS at the end of every
// event turn whose pending-sync ledger is non-empty, plus the async
// animation task system (spec.md §5) it launches windows' position writes
// through.
package reconcile

import (
	"time"

	"github.com/boxwm/boxwm/internal/events"
	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/ledger"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/tree"
	"github.com/boxwm/boxwm/internal/wmlog"
)

// Syncer runs reconciliation passes. It carries state that must persist
// across turns: the animation task map and which window was previously
// the target of focused-window effects.
type Syncer struct {
	Platform platform.Adapter
	Events   events.Sink
	Log      *wmlog.Logger

	Animator *Animator

	prevEffectsFocused *tree.Container
}

// NewSyncer builds a Syncer ready to run reconciliation passes.
func NewSyncer(p platform.Adapter, sink events.Sink) *Syncer {
	return &Syncer{
		Platform: p,
		Events:   sink,
		Log:      wmlog.Default,
		Animator: NewAnimator(),
	}
}

// Run executes one reconciliation pass against root, given the currently
// focused container (nil if none) and cfg. It clears ledger before
// returning, per spec property 6.
func (s *Syncer) Run(root *tree.Container, l *ledger.Ledger, focused *tree.Container, cfg Config) {
	defer l.Clear()

	globalOrder := tree.DescendantFocusOrder(root)
	positionOf := make(map[*tree.Container]int, len(globalOrder))
	for i, c := range globalOrder {
		positionOf[c] = i
	}

	// Step 1: focus sync.
	if l.FocusUpdate {
		s.syncFocus(focused)
	}

	// Step 2: compute bring-to-front set, per-workspace anchor.
	workspaceAnchor := map[*tree.Container]*tree.Container{}
	touchedWorkspaces := map[*tree.Container]struct{}{}
	for id := range l.Reorder {
		if ws := tree.FindByID(root, id); ws != nil {
			touchedWorkspaces[ws] = struct{}{}
		}
	}
	if l.FocusUpdate && focused != nil {
		if ws := focused.Workspace(); ws != nil {
			touchedWorkspaces[ws] = struct{}{}
		}
	}

	bringToFront := map[*tree.Container]struct{}{}
	for ws := range touchedWorkspaces {
		anchor := topWindowInFocusOrder(ws)
		if anchor == nil {
			continue
		}
		workspaceAnchor[ws] = anchor
		for _, w := range tree.WindowDescendants(ws) {
			if (w.State == tree.StateTiling || w.State == tree.StateFloating) && w.State == anchor.State {
				bringToFront[w] = struct{}{}
			}
		}
	}

	// Step 3: compute windows to update = expand(redraw) ∪ bring-to-front,
	// deduplicated, sorted ascending by global focus-order position.
	toUpdate := map[*tree.Container]struct{}{}
	for id := range l.Redraw {
		if c := tree.FindByID(root, id); c != nil {
			for _, w := range tree.WindowDescendants(c) {
				toUpdate[w] = struct{}{}
			}
		}
	}
	for w := range bringToFront {
		toUpdate[w] = struct{}{}
	}

	ordered := make([]*tree.Container, 0, len(toUpdate))
	for w := range toUpdate {
		ordered = append(ordered, w)
	}
	sortByPosition(ordered, positionOf)

	batch := NewBatch()

	// Step 4: iterate in reverse so z-order inserts land focused-on-top.
	for i := len(ordered) - 1; i >= 0; i-- {
		w := ordered[i]
		ws := w.Workspace()
		_, inBringToFront := bringToFront[w]
		anchor := workspaceAnchor[ws]

		z := s.zOrderTarget(w, inBringToFront, anchor)

		onlyReordered := !containerInRedrawExpansion(l, root, w)
		if onlyReordered {
			if err := s.Platform.SetZOrder(w.Handle, z); err != nil {
				s.Log.Warn("set_z_order %v: %v", w.Handle, err)
			}
			continue
		}

		displayed := ws != nil && ws.IsDisplayed()
		w.DisplayStateVal = nextDisplayState(w.DisplayStateVal, displayed)
		isVisible := w.DisplayStateVal.IsVisible()

		finalRect := tree.ToRect(w, cfg.Gaps).ApplyDelta(w.BorderDelta, monitorScale(w))

		s.applyPosition(batch, w, finalRect, z, isVisible, cfg)

		if fullscreenTransition(w.PrevState, w.State, w.FullscreenMaximized) {
			if err := s.Platform.MarkFullscreen(w.Handle, w.State == tree.StateFullscreen); err != nil {
				s.Log.Warn("mark_fullscreen %v: %v", w.Handle, err)
			}
		}

		if cfg.HideMethod == platform.HideMethodCloak && !cfg.ShowAllInTaskbar &&
			(w.DisplayStateVal == tree.DisplayShowing || w.DisplayStateVal == tree.DisplayHiding) {
			if err := s.Platform.SetTaskbarVisibility(w.Handle, isVisible); err != nil {
				s.Log.Warn("set_taskbar_visibility %v: %v", w.Handle, err)
			}
		}
	}

	go func() {
		if err := batch.Wait(); err != nil {
			s.Log.Warn("animation batch: %v", err)
		}
	}()

	// Step 5: cursor jump.
	if l.CursorJump && cfg.CursorJump.Enabled {
		s.jumpCursor(focused, cfg)
	}

	// Step 6: effects.
	if l.FocusedEffectUpdate || l.AllEffectsUpdate {
		s.applyEffects(root, focused, l.AllEffectsUpdate, cfg)
	}

	// Step 7: clear is handled by the deferred l.Clear() above.
}

func (s *Syncer) syncFocus(focused *tree.Container) {
	handle := s.Platform.DesktopWindow()
	if focused != nil && focused.Kind.IsWindow() {
		handle = focused.Handle
	}
	if s.Platform.ForegroundWindow() != handle {
		if err := s.Platform.SetForeground(handle); err != nil {
			s.Log.Warn("set_foreground %v: %v", handle, err)
		}
	}
	s.Events.Emit(events.Event{Kind: events.KindFocusChanged, Container: serialize(focused)})
}

func (s *Syncer) zOrderTarget(w *tree.Container, inBringToFront bool, anchor *tree.Container) platform.ZOrderTarget {
	if (w.State == tree.StateFloating && w.FloatingShownOnTop) ||
		(w.State == tree.StateFullscreen && w.FullscreenShownOnTop) {
		return platform.ZTopMost()
	}
	if inBringToFront {
		if anchor != nil && w == anchor {
			return platform.ZNormal()
		}
		if anchor != nil {
			return platform.ZAfter(anchor.Handle)
		}
	}
	return platform.ZNormal()
}

func (s *Syncer) applyPosition(batch *Batch, w *tree.Container, rect geom.Rect, z platform.ZOrderTarget, visible bool, cfg Config) {
	state := toPositionState(w.State)
	if cfg.Animations.Enabled && visible {
		start := rect
		if framed, ok := s.Platform.FramePosition(w.Handle); ok {
			start = framed
		}
		batch.Launch(s.Animator, w.Handle, start, rect, cfg.Animations, func(r geom.Rect) error {
			return s.Platform.SetPosition(w.Handle, state, r, z, visible, cfg.HideMethod, w.PendingDPIAdjustment)
		})
		return
	}
	if err := s.Platform.SetPosition(w.Handle, state, rect, z, visible, cfg.HideMethod, w.PendingDPIAdjustment); err != nil {
		s.Log.Warn("set_position %v: %v", w.Handle, err)
	}
}

func (s *Syncer) jumpCursor(focused *tree.Container, cfg Config) {
	if focused == nil {
		return
	}
	switch cfg.CursorJump.Trigger {
	case TriggerWindowFocus:
		rect := tree.ToRect(focused, cfg.Gaps)
		c := rect.Center()
		s.Platform.SetCursorPos(c.X, c.Y)
	case TriggerMonitorFocus:
		mon := focused.Monitor()
		if mon == nil {
			return
		}
		cursor := s.Platform.MousePosition()
		onTarget := mon.MonitorWorkArea.ContainsPoint(cursor)
		if onTarget {
			return
		}
		c := mon.MonitorWorkArea.Center()
		s.Platform.SetCursorPos(c.X, c.Y)
	}
}

func (s *Syncer) applyEffects(root *tree.Container, focused *tree.Container, all bool, cfg Config) {
	if focused != nil {
		s.applyEffectConfig(focused, cfg.FocusedEffects)
		go s.reapplyBorderAfterRace(focused, cfg.FocusedEffects)
	}

	if all {
		for _, w := range tree.WindowDescendants(root) {
			if w != focused {
				s.applyEffectConfig(w, cfg.OtherEffects)
			}
		}
	} else if s.prevEffectsFocused != nil && s.prevEffectsFocused != focused {
		s.applyEffectConfig(s.prevEffectsFocused, cfg.OtherEffects)
	}

	s.prevEffectsFocused = focused
}

func (s *Syncer) applyEffectConfig(w *tree.Container, e EffectConfig) {
	if !w.Kind.IsWindow() {
		return
	}
	if e.BorderEnabled {
		if err := s.Platform.SetBorderColor(w.Handle, e.BorderColor); err != nil {
			s.Log.Warn("set_border_color %v: %v", w.Handle, err)
		}
	}
	if e.HideTitleBarEnabled {
		if err := s.Platform.SetTitleBarVisibility(w.Handle, false); err != nil {
			s.Log.Warn("set_title_bar_visibility %v: %v", w.Handle, err)
		}
	}
	if e.CornerStyleEnabled {
		if err := s.Platform.SetCornerStyle(w.Handle, e.CornerStyle); err != nil {
			s.Log.Warn("set_corner_style %v: %v", w.Handle, err)
		}
	}
	if e.TransparencyEnabled {
		if err := s.Platform.SetTransparency(w.Handle, e.Opacity.Clamp()); err != nil {
			s.Log.Warn("set_transparency %v: %v", w.Handle, err)
		}
	}
}

// reapplyBorderAfterRace re-issues the border color 50ms later to win a
// known OS race where the compositor overrides the color during a state
// change (spec §4.G step 6).
func (s *Syncer) reapplyBorderAfterRace(w *tree.Container, e EffectConfig) {
	if !e.BorderEnabled {
		return
	}
	time.Sleep(50 * time.Millisecond)
	if err := s.Platform.SetBorderColor(w.Handle, e.BorderColor); err != nil {
		s.Log.Warn("set_border_color (re-apply) %v: %v", w.Handle, err)
	}
}

func topWindowInFocusOrder(ws *tree.Container) *tree.Container {
	for _, c := range tree.DescendantFocusOrder(ws) {
		if c.Kind.IsWindow() {
			return c
		}
	}
	return nil
}

func nextDisplayState(cur tree.DisplayState, workspaceDisplayed bool) tree.DisplayState {
	switch {
	case (cur == tree.DisplayHidden || cur == tree.DisplayHiding) && workspaceDisplayed:
		return tree.DisplayShowing
	case (cur == tree.DisplayShown || cur == tree.DisplayShowing) && !workspaceDisplayed:
		return tree.DisplayHiding
	default:
		return cur
	}
}

// fullscreenTransition reports whether entering or leaving StateFullscreen
// between prev and cur should issue mark_fullscreen. Entering fullscreen
// with maximized set does not count: the window is already occupying its
// monitor via the maximize path, so no further platform call is needed.
func fullscreenTransition(prev, cur tree.WindowState, maximized bool) bool {
	if cur == tree.StateFullscreen {
		return !maximized
	}
	return prev == tree.StateFullscreen && cur != tree.StateFullscreen
}

func toPositionState(s tree.WindowState) platform.PositionState {
	switch s {
	case tree.StateTiling:
		return platform.PositionTiling
	case tree.StateFloating:
		return platform.PositionFloating
	case tree.StateFullscreen:
		return platform.PositionFullscreen
	default:
		return platform.PositionMinimized
	}
}

func monitorScale(w *tree.Container) float64 {
	if mon := w.Monitor(); mon != nil && mon.DPIScale > 0 {
		return mon.DPIScale
	}
	return 1
}

func containerInRedrawExpansion(l *ledger.Ledger, root *tree.Container, w *tree.Container) bool {
	for id := range l.Redraw {
		c := tree.FindByID(root, id)
		if c == nil {
			continue
		}
		for _, d := range tree.WindowDescendants(c) {
			if d == w {
				return true
			}
		}
	}
	return false
}

func sortByPosition(list []*tree.Container, pos map[*tree.Container]int) {
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && pos[list[j-1]] > pos[list[j]]; j-- {
			list[j-1], list[j] = list[j], list[j-1]
		}
	}
}

func serialize(c *tree.Container) *events.ContainerDTO {
	if c == nil {
		return nil
	}
	dto := &events.ContainerDTO{ID: c.ID, Kind: c.Kind.String(), Name: c.Name, State: c.State.String()}
	if c.Kind.IsWindow() {
		dto.Handle = uintptr(c.Handle)
	}
	return dto
}
