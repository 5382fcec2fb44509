// Package geom implements the geometry primitives every other package in
// boxwm builds on: rectangles, points, length values carrying a unit tag,
// and the small set of pure operations the tiling engine and reconciler
// need (delta application, centering, clamping, overlap tests).
package geom

import "fmt"

// Point is a 2D coordinate in screen pixels.
type Point struct {
	X, Y int
}

// Rect is a rectangle with inclusive-left, exclusive-right semantics:
// a point p is inside r iff Left <= p.X < Right && Top <= p.Y < Bottom.
type Rect struct {
	Left, Top, Right, Bottom int
}

// NewRect builds a rect from origin + size.
func NewRect(x, y, width, height int) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// HasOverlapX reports whether the two rects' horizontal spans intersect.
func (r Rect) HasOverlapX(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right
}

// HasOverlapY reports whether the two rects' vertical spans intersect.
func (r Rect) HasOverlapY(o Rect) bool {
	return r.Top < o.Bottom && o.Top < r.Bottom
}

// Delta is a rectangle offset: each field shifts the corresponding edge
// outward (positive) or inward (negative). Used both for outer/inner gaps
// and for per-window border deltas.
type Delta struct {
	Left, Top, Right, Bottom int
}

// ApplyDelta returns a new rect with each side offset by delta, optionally
// scaled (e.g. by a monitor's DPI scale factor).
func (r Rect) ApplyDelta(d Delta, scale float64) Rect {
	return Rect{
		Left:   r.Left - scaleInt(d.Left, scale),
		Top:    r.Top - scaleInt(d.Top, scale),
		Right:  r.Right + scaleInt(d.Right, scale),
		Bottom: r.Bottom + scaleInt(d.Bottom, scale),
	}
}

func scaleInt(v int, scale float64) int {
	if scale == 0 {
		scale = 1
	}
	return int(float64(v) * scale)
}

// TranslateToCenter returns a copy of r centered inside outer, preserving
// r's width/height.
func (r Rect) TranslateToCenter(outer Rect) Rect {
	w, h := r.Width(), r.Height()
	cx, cy := outer.Center().X, outer.Center().Y
	x, y := cx-w/2, cy-h/2
	return NewRect(x, y, w, h)
}

// ClampSize caps r's dimensions to maxW/maxH, keeping the rect centered on
// its original center.
func (r Rect) ClampSize(maxW, maxH int) Rect {
	w, h := r.Width(), r.Height()
	if w > maxW {
		w = maxW
	}
	if h > maxH {
		h = maxH
	}
	c := r.Center()
	return NewRect(c.X-w/2, c.Y-h/2, w, h)
}

// Inset shrinks r by d on each side (the opposite of ApplyDelta): used for
// outer/inner gaps, where a positive value always reduces the usable area.
func (r Rect) Inset(d Delta) Rect {
	return Rect{Left: r.Left + d.Left, Top: r.Top + d.Top, Right: r.Right - d.Right, Bottom: r.Bottom - d.Bottom}
}

// Translate shifts the rect by (dx, dy) without changing its size.
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Unit tags a Length as resolved in pixels or as a percentage of some
// reference length (e.g. a split's span, or a monitor's work-area side).
type Unit int

const (
	UnitPixels Unit = iota
	UnitPercent
)

// Length is a dimension that may be expressed in pixels or as a percentage
// of a reference length (config gap values use this).
type Length struct {
	Value float64
	Unit  Unit
}

// Px constructs a pixel-valued Length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPixels} }

// Pct constructs a percent-valued Length (0-100 scale).
func Pct(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

// Resolve converts the length to pixels given a reference length (used
// when Unit == UnitPercent).
func (l Length) Resolve(reference int) int {
	switch l.Unit {
	case UnitPercent:
		return int(l.Value / 100 * float64(reference))
	default:
		return int(l.Value)
	}
}

func (l Length) String() string {
	switch l.Unit {
	case UnitPercent:
		return fmt.Sprintf("%g%%", l.Value)
	default:
		return fmt.Sprintf("%gpx", l.Value)
	}
}

// Color is an RGB color used for border/effect styling. Alpha is carried
// separately as Opacity since most effect toggles treat it independently.
type Color struct {
	R, G, B uint8
}

// Opacity is a window transparency level in [0, 1].
type Opacity float64

const (
	OpaqueFull  Opacity = 1.0
	OpaqueNone  Opacity = 0.0
)

// Clamp returns o clamped to [0, 1].
func (o Opacity) Clamp() Opacity {
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}
