// Package wm wires the core together: State is the single top-level
// object every command operates on (spec.md §9's "global mutable state...
// passed explicitly into every command; no ambient references"), mirrored
// on the shape of the Rust original's wm_state.rs (monitors, focused
// container, pending animations, config, event sender).
package wm

import (
	"github.com/google/uuid"

	"github.com/boxwm/boxwm/internal/drag"
	"github.com/boxwm/boxwm/internal/events"
	"github.com/boxwm/boxwm/internal/ledger"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/reconcile"
	"github.com/boxwm/boxwm/internal/tree"
)

// State is the WM's entire mutable state: the container tree (rooted at
// Root, which owns every Monitor), the currently focused container, the
// pending-sync ledger, the active config, and the handles to the platform
// adapter / reconciler / drag controller every command threads through.
type State struct {
	Root     *tree.Container
	Focused  *tree.Container
	Ledger   *ledger.Ledger
	Config   reconcile.Config
	Platform platform.Adapter
	Syncer   *reconcile.Syncer
	Events   events.Sink
	Drag     drag.Controller
	Rules    []WindowRule

	Paused bool

	rulesFired map[ruleFireKey]bool
}

// New builds a State with an empty tree and a fresh ledger. Call
// AddMonitor for each monitor the platform reports before dispatching
// events.
func New(p platform.Adapter, sink events.Sink, cfg reconcile.Config) *State {
	return &State{
		Root:     tree.New(tree.KindRoot),
		Ledger:   ledger.New(),
		Config:   cfg,
		Platform: p,
		Syncer:   reconcile.NewSyncer(p, sink),
		Events:   sink,
	}
}

// FocusedWorkspace returns the workspace owning the focused container, or
// the first workspace of the first monitor as a fallback.
func (s *State) FocusedWorkspace() *tree.Container {
	if s.Focused != nil {
		if ws := s.Focused.Workspace(); ws != nil {
			return ws
		}
	}
	for _, mon := range tree.AllMonitors(s.Root) {
		if mon.ActiveWorkspace != nil {
			return mon.ActiveWorkspace
		}
	}
	return nil
}

// SetFocus updates the focus-order chain from the given container up to
// the root, and queues a focus_update + focused_effect_update (spec
// §4.I "Window focused externally").
func (s *State) SetFocus(c *tree.Container) {
	if c == nil {
		return
	}
	s.Focused = c
	bubbleFocusOrder(c)
	s.Ledger.QueueFocusUpdate()
	s.Ledger.QueueFocusedEffectUpdate()
}

// bubbleFocusOrder moves c (and each of its ancestors) to the head of its
// parent's focus-order list, all the way to the root, so the first entry
// of every list is its most-recently-focused child.
func bubbleFocusOrder(c *tree.Container) {
	for node := c; node.Parent != nil; node = node.Parent {
		moveToFocusOrderHead(node.Parent, node)
	}
}

func moveToFocusOrderHead(parent, child *tree.Container) {
	idx := -1
	for i, f := range parent.FocusOrder {
		if f == child {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return
	}
	copy(parent.FocusOrder[1:idx+1], parent.FocusOrder[:idx])
	parent.FocusOrder[0] = child
}

// RunReconciliationIfNeeded runs the platform sync pass iff the ledger has
// accumulated work this turn (spec §4.I step 3).
func (s *State) RunReconciliationIfNeeded() {
	if s.Ledger.IsEmpty() {
		return
	}
	s.Syncer.Run(s.Root, s.Ledger, s.Focused, s.Config)
}

// workspaceByName finds a workspace by config name across every monitor.
func (s *State) workspaceByName(name string) *tree.Container {
	for _, ws := range tree.AllWorkspaces(s.Root) {
		if ws.Name == name {
			return ws
		}
	}
	return nil
}

// monitorByHandle finds a monitor container by its native handle.
func (s *State) monitorByHandle(h platform.MonitorHandle) *tree.Container {
	for _, mon := range tree.AllMonitors(s.Root) {
		if mon.MonitorHandle == h {
			return mon
		}
	}
	return nil
}

// windowByHandle finds a window container by its native handle, anywhere
// in the tree.
func (s *State) windowByHandle(h platform.WindowHandle) *tree.Container {
	for _, w := range tree.WindowDescendants(s.Root) {
		if w.Handle == h {
			return w
		}
	}
	return nil
}

// windowByID finds a window container by its stable identity.
func (s *State) windowByID(id uuid.UUID) *tree.Container {
	return tree.FindByID(s.Root, id)
}
