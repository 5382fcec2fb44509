// Package tree implements the container scene graph: the typed node graph
// root -> monitor -> workspace -> (split | window), its invariants, and the
// mutation primitives every command in internal/wm builds on.
//
// Parent references are weak: a child's Parent pointer is a lookup
// convenience, never an ownership edge. Ownership flows strictly downward
// through Children, which is what makes the tree acyclic by construction.
package tree

import (
	"github.com/google/uuid"

	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/platform"
)

// Kind tags which variant of container a node is. Commands dispatch on
// Kind at their boundary rather than on a type assertion.
type Kind int

const (
	KindRoot Kind = iota
	KindMonitor
	KindWorkspace
	KindSplit
	KindTilingWindow
	KindNonTilingWindow
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindMonitor:
		return "Monitor"
	case KindWorkspace:
		return "Workspace"
	case KindSplit:
		return "Split"
	case KindTilingWindow:
		return "TilingWindow"
	case KindNonTilingWindow:
		return "NonTilingWindow"
	default:
		return "Unknown"
	}
}

// IsWindow reports whether k is one of the two window kinds.
func (k Kind) IsWindow() bool { return k == KindTilingWindow || k == KindNonTilingWindow }

// Direction is a split's tiling axis.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) Perpendicular() Direction {
	if d == Horizontal {
		return Vertical
	}
	return Horizontal
}

// WindowState is the window state machine described in spec §3.
type WindowState int

const (
	StateTiling WindowState = iota
	StateFloating
	StateFullscreen
	StateMinimized
)

func (s WindowState) String() string {
	switch s {
	case StateTiling:
		return "Tiling"
	case StateFloating:
		return "Floating"
	case StateFullscreen:
		return "Fullscreen"
	case StateMinimized:
		return "Minimized"
	default:
		return "Unknown"
	}
}

// DisplayState debounces OS visibility transitions (spec §4.G step 4).
type DisplayState int

const (
	DisplayHidden DisplayState = iota
	DisplayHiding
	DisplayShowing
	DisplayShown
)

// IsVisible matches spec §4.G: is_visible = display_state in {Showing, Shown}.
func (d DisplayState) IsVisible() bool { return d == DisplayShowing || d == DisplayShown }

// MinFractionEpsilon is the floor a split child's size fraction may not
// fall below (spec invariant 4, and the resize-reject floor in §4.E).
const MinFractionEpsilon = 0.02

// FractionSumEpsilon is the tolerance for invariant 4 (fractions sum to 1).
const FractionSumEpsilon = 1e-6

// Container is the single node type for every variant in the tree. Fields
// not relevant to a node's Kind are left zero-valued; accessor methods
// below guard against misuse (e.g. Fractions on a non-Split node).
type Container struct {
	ID     uuid.UUID
	Kind   Kind
	Parent *Container

	Children   []*Container
	FocusOrder []*Container

	// Monitor fields.
	MonitorHandle   platform.MonitorHandle
	MonitorRect     geom.Rect
	MonitorWorkArea geom.Rect
	DPIScale        float64
	ActiveWorkspace *Container

	// Workspace fields.
	Name        string
	DisplayName string
	KeepAlive   bool

	// Split fields.
	Direction Direction
	Fractions map[uuid.UUID]float64

	// Window fields (TilingWindow and NonTilingWindow).
	Handle                platform.WindowHandle
	State                 WindowState
	PrevState             WindowState
	FloatingCentered      bool
	FloatingShownOnTop    bool
	FullscreenMaximized   bool
	FullscreenShownOnTop  bool
	DisplayStateVal       DisplayState
	FloatingPlacement     geom.Rect
	BorderDelta           geom.Delta
	PendingDPIAdjustment  bool
	Title                 string
	ProcessName           string
	ClassName             string
}

// New creates a bare container of the given kind with a fresh identity.
func New(kind Kind) *Container {
	return &Container{ID: uuid.New(), Kind: kind}
}

// NewMonitor creates a root-owned monitor node.
func NewMonitor(handle platform.MonitorHandle, full, workArea geom.Rect, dpiScale float64) *Container {
	c := New(KindMonitor)
	c.MonitorHandle = handle
	c.MonitorRect = full
	c.MonitorWorkArea = workArea
	c.DPIScale = dpiScale
	return c
}

// NewWorkspace creates a monitor-owned workspace node.
func NewWorkspace(name, displayName string, keepAlive bool) *Container {
	c := New(KindWorkspace)
	c.Name = name
	c.DisplayName = displayName
	c.KeepAlive = keepAlive
	return c
}

// NewSplit creates a split node with no children yet.
func NewSplit(direction Direction) *Container {
	c := New(KindSplit)
	c.Direction = direction
	c.Fractions = make(map[uuid.UUID]float64)
	return c
}

// NewWindow creates a window node. kind must be KindTilingWindow or
// KindNonTilingWindow.
func NewWindow(kind Kind, handle platform.WindowHandle, state WindowState) *Container {
	c := New(kind)
	c.Handle = handle
	c.State = state
	c.PrevState = state
	c.DisplayStateVal = DisplayHidden
	return c
}

// IsSplit reports whether c is a Split node.
func (c *Container) IsSplit() bool { return c.Kind == KindSplit }

// IsWindow reports whether c is a TilingWindow or NonTilingWindow node.
func (c *Container) IsWindow() bool { return c.Kind.IsWindow() }

// Monitor walks up from c to find its owning Monitor, or nil if c is
// unattached or is the root.
func (c *Container) Monitor() *Container {
	for n := c; n != nil; n = n.Parent {
		if n.Kind == KindMonitor {
			return n
		}
	}
	return nil
}

// Workspace walks up from c to find its owning Workspace, or nil.
func (c *Container) Workspace() *Container {
	for n := c; n != nil; n = n.Parent {
		if n.Kind == KindWorkspace {
			return n
		}
	}
	return nil
}

// IndexInParent returns c's position in its parent's Children list, or -1.
func (c *Container) IndexInParent() int {
	if c.Parent == nil {
		return -1
	}
	for i, ch := range c.Parent.Children {
		if ch == c {
			return i
		}
	}
	return -1
}

// IsDisplayed reports whether c (a Workspace) is the active workspace of
// its owning monitor.
func (c *Container) IsDisplayed() bool {
	mon := c.Monitor()
	return mon != nil && mon.ActiveWorkspace == c
}

// Fraction returns the split fraction assigned to child, or 0 if c is not
// a split or child is not one of its children.
func (c *Container) Fraction(child *Container) float64 {
	if !c.IsSplit() || c.Fractions == nil {
		return 0
	}
	return c.Fractions[child.ID]
}
