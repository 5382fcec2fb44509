package tree

import (
	"fmt"
)

// Attach appends (or inserts at index) child under parent. Fails if child
// already has a parent. An index outside [0, len(parent.Children)],
// including a negative one, appends.
// The child is always appended to the tail of parent's focus order.
func Attach(child, parent *Container, index int) error {
	if child.Parent != nil {
		return fmt.Errorf("tree: attach: child %s already has a parent", child.ID)
	}
	if index < 0 || index > len(parent.Children) {
		index = len(parent.Children)
	}

	children := make([]*Container, 0, len(parent.Children)+1)
	children = append(children, parent.Children[:index]...)
	children = append(children, child)
	children = append(children, parent.Children[index:]...)
	parent.Children = children

	parent.FocusOrder = append(parent.FocusOrder, child)
	child.Parent = parent

	if parent.IsSplit() {
		rebalanceFractionsForInsert(parent, child)
	}
	return nil
}

// rebalanceFractionsForInsert gives the newly inserted child an equal
// share of the space, shrinking existing siblings proportionally.
func rebalanceFractionsForInsert(split, newChild *Container) {
	n := len(split.Children)
	if n <= 1 {
		split.Fractions[newChild.ID] = 1.0
		return
	}
	newFraction := 1.0 / float64(n)
	remaining := 1.0 - newFraction
	var priorTotal float64
	for _, c := range split.Children {
		if c == newChild {
			continue
		}
		priorTotal += split.Fractions[c.ID]
	}
	if priorTotal <= 0 {
		// No prior fractions recorded (e.g. split just created): spread
		// remaining space evenly.
		share := remaining / float64(n-1)
		for _, c := range split.Children {
			if c == newChild {
				continue
			}
			split.Fractions[c.ID] = share
		}
	} else {
		for _, c := range split.Children {
			if c == newChild {
				continue
			}
			split.Fractions[c.ID] = split.Fractions[c.ID] / priorTotal * remaining
		}
	}
	split.Fractions[newChild.ID] = newFraction
}

// Detach removes node from its parent. If the parent is a split that would
// be left with a single child, the split collapses: it is replaced in its
// own parent by its sole remaining child, preserving the grandparent's
// focus-order position for that slot.
func Detach(node *Container) error {
	parent := node.Parent
	if parent == nil {
		return fmt.Errorf("tree: detach: node %s has no parent", node.ID)
	}

	idx := node.IndexInParent()
	if idx < 0 {
		return fmt.Errorf("tree: detach: node %s not found in parent's children", node.ID)
	}

	parent.Children = removeAt(parent.Children, idx)
	parent.FocusOrder = removeValue(parent.FocusOrder, node)
	if parent.IsSplit() {
		delete(parent.Fractions, node.ID)
		redistributeAfterRemoval(parent)
	}
	node.Parent = nil

	if parent.IsSplit() && len(parent.Children) == 1 {
		collapseSplit(parent)
	}
	return nil
}

// redistributeAfterRemoval renormalizes a split's remaining fractions to
// sum to 1.0 after a child was removed.
func redistributeAfterRemoval(split *Container) {
	var total float64
	for _, c := range split.Children {
		total += split.Fractions[c.ID]
	}
	if total <= 0 {
		if len(split.Children) > 0 {
			share := 1.0 / float64(len(split.Children))
			for _, c := range split.Children {
				split.Fractions[c.ID] = share
			}
		}
		return
	}
	for _, c := range split.Children {
		split.Fractions[c.ID] = split.Fractions[c.ID] / total
	}
}

// collapseSplit replaces a single-child split with its sole child in the
// split's own parent, preserving the grandparent's focus-order slot.
func collapseSplit(split *Container) {
	grandparent := split.Parent
	if grandparent == nil {
		return
	}
	sole := split.Children[0]

	idx := split.IndexInParent()
	grandparent.Children[idx] = sole

	focusIdx := -1
	for i, c := range grandparent.FocusOrder {
		if c == split {
			focusIdx = i
			break
		}
	}
	if focusIdx >= 0 {
		grandparent.FocusOrder[focusIdx] = sole
	}

	if grandparent.IsSplit() {
		grandparent.Fractions[sole.ID] = grandparent.Fractions[split.ID]
		delete(grandparent.Fractions, split.ID)
	}

	sole.Parent = grandparent
	split.Parent = nil
	split.Children = nil
	split.FocusOrder = nil
}

// WrapInSplit creates a new split with direction dir containing children
// (which must be contiguous siblings sharing the same parent), replacing
// them in the parent at the position of the first child.
func WrapInSplit(children []*Container, dir Direction) (*Container, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("tree: wrap_in_split: no children given")
	}
	parent := children[0].Parent
	if parent == nil {
		return nil, fmt.Errorf("tree: wrap_in_split: child has no parent")
	}
	startIdx := children[0].IndexInParent()
	for i, c := range children {
		if c.Parent != parent {
			return nil, fmt.Errorf("tree: wrap_in_split: children do not share a parent")
		}
		if c.IndexInParent() != startIdx+i {
			return nil, fmt.Errorf("tree: wrap_in_split: children are not contiguous")
		}
	}

	split := NewSplit(dir)

	var parentFraction float64
	if parent.IsSplit() {
		for _, c := range children {
			parentFraction += parent.Fractions[c.ID]
		}
	}

	newChildren := make([]*Container, 0, len(parent.Children)-len(children)+1)
	newChildren = append(newChildren, parent.Children[:startIdx]...)
	newChildren = append(newChildren, split)
	newChildren = append(newChildren, parent.Children[startIdx+len(children):]...)

	share := 1.0 / float64(len(children))
	for i, c := range children {
		replaceInFocusOrder(parent, c, split, i == 0)
		if parent.IsSplit() {
			delete(parent.Fractions, c.ID)
		}
		c.Parent = split
		split.Children = append(split.Children, c)
		split.FocusOrder = append(split.FocusOrder, c)
		split.Fractions[c.ID] = share
	}
	parent.Children = newChildren
	if parent.IsSplit() {
		parent.Fractions[split.ID] = parentFraction
	}
	split.Parent = parent

	return split, nil
}

// replaceInFocusOrder swaps old for new in parent's focus order. Only the
// first occurrence among a group of wrapped siblings inserts the split;
// subsequent ones just drop their own entry, since the split now
// represents the whole group at that focus-order slot.
func replaceInFocusOrder(parent, old, replacement *Container, insertReplacement bool) {
	for i, c := range parent.FocusOrder {
		if c == old {
			if insertReplacement {
				parent.FocusOrder[i] = replacement
			} else {
				parent.FocusOrder = removeAt(parent.FocusOrder, i)
			}
			return
		}
	}
}

func removeAt(list []*Container, idx int) []*Container {
	out := make([]*Container, 0, len(list)-1)
	out = append(out, list[:idx]...)
	out = append(out, list[idx+1:]...)
	return out
}

func removeValue(list []*Container, v *Container) []*Container {
	out := make([]*Container, 0, len(list))
	for _, c := range list {
		if c != v {
			out = append(out, c)
		}
	}
	return out
}

// Descendants returns a pre-order traversal of node (node itself first).
func Descendants(node *Container) []*Container {
	out := []*Container{node}
	for _, c := range node.Children {
		out = append(out, Descendants(c)...)
	}
	return out
}

// DescendantFocusOrder walks the tree following focus-order links at each
// branch point. The first returned leaf is the most-recently-focused one.
func DescendantFocusOrder(node *Container) []*Container {
	if len(node.Children) == 0 {
		return []*Container{node}
	}
	out := []*Container{node}
	for _, c := range node.FocusOrder {
		out = append(out, DescendantFocusOrder(c)...)
	}
	return out
}

// FocusedLeaf returns the most-recently-focused leaf reachable from node,
// i.e. the first childless element of DescendantFocusOrder(node).
func FocusedLeaf(node *Container) *Container {
	order := DescendantFocusOrder(node)
	for _, c := range order {
		if len(c.Children) == 0 {
			return c
		}
	}
	return nil
}
