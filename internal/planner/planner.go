// Package planner implements the dynamic insertion planner (spec.md §4.F):
// given a new window's intended state, the currently focused container,
// and the cursor position, it decides where in the tree the window lands.
package planner

import (
	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/tree"
)

// Plan is the planner's output: attach newChild to Parent at Index. If
// SetDirection is true, Parent's direction must first be set to Direction (the
// single-child-repurpose case); if WrapChildren is non-empty, the caller
// must first call tree.WrapInSplit(WrapChildren, Direction) and use its
// return value as Parent before attaching.
type Plan struct {
	Parent       *tree.Container
	Index        int
	SetDirection bool
	Direction    tree.Direction
	WrapChildren []*tree.Container
}

// Gaps supplies the geometry projection planner needs to test whether the
// cursor is over the focused window's rect.
type Gaps = tree.GapConfig

// Compute implements the full algorithm from spec §4.F.
//
//  1. Non-tiling windows always land at the end of the focused workspace.
//  2. If the cursor is over the focused tiling window's rect, the cursor
//     quadrant relative to its center picks a direction and side; how that
//     combines with the parent split's direction determines whether the
//     window joins the existing split, flips a single-child parent's
//     direction, or gets wrapped in a brand new split with its sibling.
//  3. Otherwise, the nearest tiling sibling in descendant-focus-order
//     becomes the anchor and the new window is inserted as its sibling.
//  4. Final fallback: append to the focused workspace.
func Compute(windowState tree.WindowState, focused *tree.Container, focusedWorkspace *tree.Container, cursor geom.Point, gaps Gaps) Plan {
	if windowState != tree.StateTiling {
		return Plan{Parent: focusedWorkspace, Index: len(focusedWorkspace.Children)}
	}

	if focused != nil && focused.Kind == tree.KindTilingWindow {
		rect := tree.ToRect(focused, gaps)
		if rect.ContainsPoint(cursor) {
			return planOverFocused(focused, rect, cursor)
		}
	}

	if anchor := nearestTilingSibling(focused, focusedWorkspace); anchor != nil {
		return planAfterAnchor(anchor)
	}

	return Plan{Parent: focusedWorkspace, Index: len(focusedWorkspace.Children)}
}

func planOverFocused(focused *tree.Container, rect geom.Rect, cursor geom.Point) Plan {
	center := rect.Center()
	width, height := rect.Width(), rect.Height()
	var dx, dy float64
	if width > 0 {
		dx = float64(cursor.X-center.X) / float64(width)
	}
	if height > 0 {
		dy = float64(cursor.Y-center.Y) / float64(height)
	}

	absDx, absDy := dx, dy
	if absDx < 0 {
		absDx = -absDx
	}
	if absDy < 0 {
		absDy = -absDy
	}

	// Tie-break: prefer Horizontal when |dx| == |dy| (includes the
	// dx == dy == 0 center case, which additionally prefers insert-after
	// per spec §9 open-question resolution).
	desiredDirection := tree.Vertical
	if absDx >= absDy {
		desiredDirection = tree.Horizontal
	}

	var insertAfter bool
	if desiredDirection == tree.Horizontal {
		insertAfter = dx > 0 || (dx == 0 && dy == 0)
	} else {
		insertAfter = dy > 0
	}

	parent := focused.Parent
	focusedIndex := focused.IndexInParent()

	if parent.IsSplit() && parent.Direction == desiredDirection {
		idx := focusedIndex
		if insertAfter {
			idx++
		}
		return Plan{Parent: parent, Index: idx}
	}

	if len(parent.Children) == 1 {
		idx := 0
		if insertAfter {
			idx = 1
		}
		return Plan{Parent: parent, Index: idx, SetDirection: true, Direction: desiredDirection}
	}

	idx := 0
	if insertAfter {
		idx = 1
	}
	return Plan{
		Parent:       nil, // caller must wrap first, see WrapChildren
		Index:        idx,
		Direction:    desiredDirection,
		WrapChildren: []*tree.Container{focused},
	}
}

// nearestTilingSibling finds the anchor window used when the cursor isn't
// over the focused window: the first tiling window in the focused
// workspace's descendant-focus-order, which is focused itself when focused
// is a tiling window. focused is not otherwise consulted.
func nearestTilingSibling(focused, workspace *tree.Container) *tree.Container {
	for _, c := range tree.DescendantFocusOrder(workspace) {
		if c.Kind == tree.KindTilingWindow {
			return c
		}
	}
	_ = focused
	return nil
}

func planAfterAnchor(anchor *tree.Container) Plan {
	parent := anchor.Parent
	if parent == nil {
		return Plan{}
	}
	return Plan{Parent: parent, Index: anchor.IndexInParent() + 1}
}
