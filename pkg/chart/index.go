package chart

// =============================================================================
// Child Index - Parent-Pointer Adjacency
// =============================================================================

// Index is a children-by-parent adjacency view over a flat node list. It is
// built once per layout pass so tree traversal never has to re-filter the
// full list per node.
//
// Child and root order follows input order, which keeps every downstream
// layout deterministic.
type Index struct {
	byID     map[string]Node
	children map[string][]string
	roots    []string
}

// BuildIndex constructs the adjacency index for the given working set.
// A node whose ParentID is empty, or references an id outside the working
// set (a dangling manager reference), is a root.
func BuildIndex(nodes []Node) *Index {
	idx := &Index{
		byID:     make(map[string]Node, len(nodes)),
		children: make(map[string][]string),
	}
	for _, n := range nodes {
		idx.byID[n.ID] = n
	}
	for _, n := range nodes {
		if n.ParentID == "" {
			idx.roots = append(idx.roots, n.ID)
			continue
		}
		if _, ok := idx.byID[n.ParentID]; !ok {
			// Dangling reference: treat as root, never as an error.
			idx.roots = append(idx.roots, n.ID)
			continue
		}
		idx.children[n.ParentID] = append(idx.children[n.ParentID], n.ID)
	}
	return idx
}

// Roots returns the root node ids in input order. Empty for fully-cyclic
// data, which callers must handle with a non-recursive fallback.
func (idx *Index) Roots() []string { return idx.roots }

// Children returns the child ids of a node in input order.
func (idx *Index) Children(id string) []string { return idx.children[id] }

// Node returns the node with the given id, if present.
func (idx *Index) Node(id string) (Node, bool) {
	n, ok := idx.byID[id]
	return n, ok
}

// Len returns the number of indexed nodes.
func (idx *Index) Len() int { return len(idx.byID) }

// =============================================================================
// Group Visibility
// =============================================================================

// VisibleNodes resolves group display modes into the effective working set
// handed to the layout engine and renderers:
//
//   - collapsed: members are removed and one synthetic group node (no parent)
//     stands in for the whole cluster
//   - leads-only: members outside the visible subset are removed in place
//   - expanded: no positional effect
//
// Connections may reference the synthetic group node ids.
func VisibleNodes(s *Snapshot) []Node {
	hidden := make(map[string]struct{})
	var synthetic []Node

	for _, g := range s.Groups {
		switch g.DisplayMode {
		case DisplayCollapsed:
			for _, id := range g.MemberIDs {
				hidden[id] = struct{}{}
			}
			synthetic = append(synthetic, Node{
				ID:   g.GroupNodeID(),
				Name: g.Name,
			})
		case DisplayLeadsOnly:
			for _, id := range g.MemberIDs {
				if !g.VisibleMember(id) {
					hidden[id] = struct{}{}
				}
			}
		}
	}

	out := make([]Node, 0, len(s.Nodes)+len(synthetic))
	for _, n := range s.Nodes {
		if _, hide := hidden[n.ID]; hide {
			continue
		}
		out = append(out, n)
	}
	return append(out, synthetic...)
}
