package tree

import "github.com/boxwm/boxwm/internal/geom"

// GapConfig carries the subset of the gaps config section (spec.md §6)
// that geometry projection needs. wm.State builds this from the loaded
// config each time it changes; tree itself stays config-agnostic.
type GapConfig struct {
	InnerGap             int
	OuterGap             geom.Delta
	SingleWindowOuterGap *geom.Delta
}

// ToRect projects node's geometry (spec §4.C). Workspaces and splits need
// gaps; tiling windows take their partition of the parent's rect, and
// non-tiling windows carry their own placement.
func ToRect(node *Container, gaps GapConfig) geom.Rect {
	switch node.Kind {
	case KindMonitor:
		return node.MonitorWorkArea

	case KindWorkspace:
		mon := node.Monitor()
		if mon == nil {
			return geom.Rect{}
		}
		outer := gaps.OuterGap
		if gaps.SingleWindowOuterGap != nil && countVisibleTilingWindows(node) == 1 {
			outer = *gaps.SingleWindowOuterGap
		}
		return mon.MonitorWorkArea.Inset(outer)

	case KindSplit:
		parentRect := parentRectFor(node, gaps)
		return partitionRectFor(node, parentRect, gaps)

	case KindTilingWindow:
		if node.Parent == nil {
			return geom.Rect{}
		}
		parentRect := ToRect(node.Parent, gaps)
		return partitionRectFor(node, parentRect, gaps)

	case KindNonTilingWindow:
		if node.State == StateFullscreen {
			if mon := node.Monitor(); mon != nil {
				return mon.MonitorRect
			}
		}
		return node.FloatingPlacement

	default:
		return geom.Rect{}
	}
}

// parentRectFor returns the rect the given node's parent occupies: either
// the parent split's own partitioned rect, or its workspace's rect.
func parentRectFor(node *Container, gaps GapConfig) geom.Rect {
	if node.Parent == nil {
		return geom.Rect{}
	}
	return ToRect(node.Parent, gaps)
}

// partitionRectFor returns the sub-rect that node occupies inside
// parentRect, computed via its parent split's direction and fractions.
func partitionRectFor(node *Container, parentRect geom.Rect, gaps GapConfig) geom.Rect {
	split := node.Parent
	if split == nil || !split.IsSplit() {
		return parentRect
	}
	idx := node.IndexInParent()
	if idx < 0 {
		return geom.Rect{}
	}

	n := len(split.Children)
	gutter := gaps.InnerGap
	totalGutter := gutter * (n - 1)

	if split.Direction == Horizontal {
		span := parentRect.Width() - totalGutter
		x := parentRect.Left
		for i := 0; i < idx; i++ {
			w := fractionSpan(split, split.Children[i], span)
			x += w + gutter
		}
		w := fractionSpan(split, node, span)
		return geom.NewRect(x, parentRect.Top, w, parentRect.Height())
	}

	span := parentRect.Height() - totalGutter
	y := parentRect.Top
	for i := 0; i < idx; i++ {
		h := fractionSpan(split, split.Children[i], span)
		y += h + gutter
	}
	h := fractionSpan(split, node, span)
	return geom.NewRect(parentRect.Left, y, parentRect.Width(), h)
}

func fractionSpan(split, child *Container, span int) int {
	return int(split.Fraction(child) * float64(span))
}

func countVisibleTilingWindows(workspace *Container) int {
	count := 0
	for _, d := range Descendants(workspace) {
		if d.Kind == KindTilingWindow {
			count++
		}
	}
	return count
}
