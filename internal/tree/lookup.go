package tree

import "github.com/google/uuid"

// FindByID searches the subtree rooted at node for a container with the
// given id, or returns nil if none is found.
func FindByID(node *Container, id uuid.UUID) *Container {
	if node.ID == id {
		return node
	}
	for _, c := range node.Children {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// AllMonitors returns every Monitor container under root.
func AllMonitors(root *Container) []*Container {
	var out []*Container
	for _, c := range root.Children {
		if c.Kind == KindMonitor {
			out = append(out, c)
		}
	}
	return out
}

// AllWorkspaces returns every Workspace container under root, across all
// monitors.
func AllWorkspaces(root *Container) []*Container {
	var out []*Container
	for _, mon := range AllMonitors(root) {
		for _, c := range mon.Children {
			if c.Kind == KindWorkspace {
				out = append(out, c)
			}
		}
	}
	return out
}

// WindowDescendants returns every window-kind descendant of node
// (including node itself if it is a window).
func WindowDescendants(node *Container) []*Container {
	var out []*Container
	for _, c := range Descendants(node) {
		if c.Kind.IsWindow() {
			out = append(out, c)
		}
	}
	return out
}
