// Package layout implements the tiling layout engine: given a split and
// its children, where each child's rect lands, and how a resize gesture
// redistributes size fractions among siblings (spec.md §4.E).
//
// The teacher's internal/layout/tiling.go computes a flat grid of N equal
// panes directly from screen dimensions; boxwm's tree is a nested split
// hierarchy instead, so partitioning here delegates to tree.ToRect and
// this package owns only the resize-fraction math tree.ToRect doesn't need.
package layout

import (
	"fmt"

	"github.com/boxwm/boxwm/internal/tree"
)

// ErrBelowFloor is returned by Resize when applying delta would push any
// sibling's fraction below tree.MinFractionEpsilon.
var ErrBelowFloor = fmt.Errorf("layout: resize would push a sibling below the minimum fraction floor")

// Resize grows child k's fraction by delta/span along split's direction,
// shrinking every sibling proportionally. If split's direction is
// perpendicular to axis, the caller should forward the request to
// split.Parent instead (spec §4.E); Resize itself only handles the
// same-axis case and returns an error otherwise.
func Resize(split *tree.Container, child *tree.Container, axis tree.Direction, deltaPixels int, span int) error {
	if !split.IsSplit() {
		return fmt.Errorf("layout: resize: node is not a split")
	}
	if split.Direction != axis {
		return fmt.Errorf("layout: resize: axis %v is perpendicular to split direction %v", axis, split.Direction)
	}
	if span <= 0 {
		return fmt.Errorf("layout: resize: non-positive span %d", span)
	}

	n := len(split.Children)
	if n < 2 {
		return nil
	}

	deltaFraction := float64(deltaPixels) / float64(span)

	childFraction := split.Fraction(child)
	newChildFraction := childFraction + deltaFraction

	var siblingTotal float64
	for _, c := range split.Children {
		if c == child {
			continue
		}
		siblingTotal += split.Fraction(c)
	}
	if siblingTotal <= 0 {
		return ErrBelowFloor
	}

	shrinkTotal := deltaFraction
	newFractions := make(map[*tree.Container]float64, n)
	newFractions[child] = newChildFraction
	for _, c := range split.Children {
		if c == child {
			continue
		}
		f := split.Fraction(c)
		proportional := f / siblingTotal * shrinkTotal
		newF := f - proportional
		if newF < tree.MinFractionEpsilon {
			return ErrBelowFloor
		}
		newFractions[c] = newF
	}
	if newChildFraction < tree.MinFractionEpsilon {
		return ErrBelowFloor
	}

	for c, f := range newFractions {
		split.Fractions[c.ID] = f
	}
	return nil
}
