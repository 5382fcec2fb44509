package tree

import (
	"fmt"

	"github.com/boxwm/boxwm/internal/platform"
)

// Violation describes a single invariant failure found by CheckInvariants.
type Violation struct {
	Rule    int
	Message string
}

func (v Violation) Error() string { return fmt.Sprintf("tree invariant %d: %s", v.Rule, v.Message) }

// CheckInvariants walks the tree rooted at root and reports every
// violation of spec.md §3's numbered invariants. Intended for debug builds
// and tests, not the hot command path (spec §7: "unrecoverable
// tree-invariant violation detected in debug: abort").
func CheckInvariants(root *Container) []Violation {
	var violations []Violation
	seenHandles := map[platform.WindowHandle]bool{}

	var walk func(node *Container)
	walk = func(node *Container) {
		if node.IsSplit() {
			if len(node.Children) < 2 {
				violations = append(violations, Violation{3, fmt.Sprintf("split %s has %d children, want >= 2", node.ID, len(node.Children))})
			}
			var sum float64
			for _, c := range node.Children {
				f := node.Fractions[c.ID]
				if f < MinFractionEpsilon {
					violations = append(violations, Violation{4, fmt.Sprintf("split %s child %s fraction %g below floor", node.ID, c.ID, f)})
				}
				sum += f
			}
			if len(node.Children) > 0 {
				diff := sum - 1.0
				if diff < 0 {
					diff = -diff
				}
				if diff > FractionSumEpsilon {
					violations = append(violations, Violation{4, fmt.Sprintf("split %s fractions sum to %g, want 1.0", node.ID, sum)})
				}
			}
		}

		if !samePermutation(node.Children, node.FocusOrder) {
			violations = append(violations, Violation{2, fmt.Sprintf("node %s children/focus-order mismatch", node.ID)})
		}

		if node.Kind.IsWindow() {
			if seenHandles[node.Handle] {
				violations = append(violations, Violation{6, fmt.Sprintf("handle %v appears in more than one window container", node.Handle)})
			}
			seenHandles[node.Handle] = true

			isInSplitOrDirect := node.Parent != nil && (node.Parent.IsSplit() || node.Parent.Kind == KindWorkspace)
			wantTiling := node.Kind == KindTilingWindow
			if wantTiling != (node.State == StateTiling && isInSplitOrDirect && node.Kind == KindTilingWindow) {
				// Only check the forward direction precisely: a
				// TilingWindow kind must report Tiling state.
				if node.Kind == KindTilingWindow && node.State != StateTiling {
					violations = append(violations, Violation{7, fmt.Sprintf("tiling window %s has non-Tiling state %s", node.ID, node.State)})
				}
			}
		}

		if node.Kind == KindWorkspace {
			if node.Parent == nil || node.Parent.Kind != KindMonitor {
				violations = append(violations, Violation{5, fmt.Sprintf("workspace %s does not belong to exactly one monitor", node.ID)})
			}
		}

		for _, c := range node.Children {
			if c.Parent != node {
				violations = append(violations, Violation{1, fmt.Sprintf("node %s parent pointer does not match actual parent", c.ID)})
			}
			walk(c)
		}
	}
	walk(root)
	return violations
}

func samePermutation(a, b []*Container) bool {
	if len(a) != len(b) {
		return false
	}
	counts := map[*Container]int{}
	for _, c := range a {
		counts[c]++
	}
	for _, c := range b {
		counts[c]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}
