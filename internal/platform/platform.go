// Package platform defines the OS boundary the rest of boxwm is built
// against: opaque handles, the query/command surface the core issues calls
// through, and the event stream it consumes. No implementation lives here
// (spec treats OS shims as an external collaborator); this package is the
// interface contract plus the small value types both sides agree on.
package platform

import "github.com/boxwm/boxwm/internal/geom"

// WindowHandle is an opaque OS window identity. The zero value never
// refers to a real window.
type WindowHandle uintptr

// MonitorHandle is an opaque OS monitor identity.
type MonitorHandle uintptr

// IsZero reports whether h is the zero handle.
func (h WindowHandle) IsZero() bool { return h == 0 }

// IsZero reports whether h is the zero handle.
func (h MonitorHandle) IsZero() bool { return h == 0 }

// ZOrderTarget is where set_z_order should place a window.
type ZOrderTarget struct {
	// Kind selects which of the fields below applies.
	Kind ZOrderKind
	// After is the anchor handle when Kind == ZOrderAfterWindow.
	After WindowHandle
}

type ZOrderKind int

const (
	ZOrderNormal ZOrderKind = iota
	ZOrderTopMost
	ZOrderAfterWindow
)

func ZNormal() ZOrderTarget   { return ZOrderTarget{Kind: ZOrderNormal} }
func ZTopMost() ZOrderTarget  { return ZOrderTarget{Kind: ZOrderTopMost} }
func ZAfter(h WindowHandle) ZOrderTarget {
	return ZOrderTarget{Kind: ZOrderAfterWindow, After: h}
}

// HideMethod selects how a hidden window is made invisible.
type HideMethod int

const (
	HideMethodHide HideMethod = iota
	HideMethodCloak
)

// CornerStyle selects a window's corner rendering, where the OS supports it.
type CornerStyle int

const (
	CornerDefault CornerStyle = iota
	CornerSquare
	CornerRounded
	CornerSmallRounded
)

// Monitor is a snapshot of one OS monitor's attributes.
type Monitor struct {
	Handle   MonitorHandle
	Full     geom.Rect
	WorkArea geom.Rect
	DPIScale float64
}

// Window is a snapshot of one OS window's attributes, as reported by
// ManageableWindows or an event payload.
type Window struct {
	Handle      WindowHandle
	Title       string
	ProcessName string
	ClassName   string
}

// PositionState is the subset of container state set_position needs, kept
// separate from internal/tree so this package stays dependency-light.
type PositionState int

const (
	PositionTiling PositionState = iota
	PositionFloating
	PositionFullscreen
	PositionMinimized
)

// EventKind tags the variant of a platform Event.
type EventKind int

const (
	EventWindowCreated EventKind = iota
	EventWindowDestroyed
	EventWindowMoved
	EventWindowMinimized
	EventWindowFocused
	EventWindowTitleChanged
	EventMouseMove
	EventHotkeyPressed
	EventMonitorChanged
	EventDisplayChanged
)

// Event is the tagged union the platform event stream yields. Only the
// fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	Window WindowHandle
	Rect   geom.Rect
	Title  string

	MousePoint  geom.Point
	MouseIsDown bool

	HotkeyBinding string
}

// Adapter is the full OS boundary the core requires (spec §6 "External
// Interfaces"). Implementations live outside this module's core packages;
// boxwm's core only ever depends on this interface.
type Adapter interface {
	ForegroundWindow() WindowHandle
	DesktopWindow() WindowHandle

	// SortedMonitors returns monitors left-to-right, top-to-bottom by
	// top-left corner.
	SortedMonitors() []Monitor
	NearestMonitor(w WindowHandle) MonitorHandle

	ManageableWindows() []Window
	WindowFromPoint(p geom.Point) (WindowHandle, bool)
	RootAncestor(w WindowHandle) WindowHandle

	MousePosition() geom.Point
	SetCursorPos(x, y int)

	IsAltDown() bool
	IsLButtonDown() bool

	SetForeground(h WindowHandle) error
	SetPosition(h WindowHandle, state PositionState, rect geom.Rect, z ZOrderTarget, visible bool, hide HideMethod, pendingDPI bool) error
	SetZOrder(h WindowHandle, target ZOrderTarget) error

	SetBorderColor(h WindowHandle, color *geom.Color) error
	SetCornerStyle(h WindowHandle, style CornerStyle) error
	SetTitleBarVisibility(h WindowHandle, visible bool) error
	SetTransparency(h WindowHandle, opacity geom.Opacity) error
	MarkFullscreen(h WindowHandle, fullscreen bool) error
	SetTaskbarVisibility(h WindowHandle, visible bool) error

	// FramePosition returns the OS-reported actual window frame, used as
	// the animation start rect.
	FramePosition(h WindowHandle) (geom.Rect, bool)

	IsMinimized(h WindowHandle) bool
	IsFullscreen(h WindowHandle, monitorRect geom.Rect) bool
	IsResizable(h WindowHandle) bool
	HasDPIDifference(monitor MonitorHandle, w WindowHandle) bool

	// Events returns the channel the event dispatcher drains one event
	// from per turn. Closed when the platform source shuts down.
	Events() <-chan Event
}

// NewAdapter is the OS-specific constructor hook: a platform build (a
// Win32/X11/Wayland shim living outside this module's core, per spec.md §1's
// "rendering a compositor" / "drawing chrome pixels" non-goals) sets this in
// an init() func guarded by its own build tag. cmd/boxwm calls it at startup
// and fails fast if no platform build registered one.
var NewAdapter func() (Adapter, error)
