// Package chart defines the data model for org-chart snapshots: positionable
// nodes with optional manager references, groups, persisted positions,
// manual connections and the saved row hierarchy.
//
// The engine packages (layout, hierarchy, canvas, connections, viewport) are
// handed a Snapshot and emit patches; they hold no authoritative long-lived
// state of their own. Persistence of snapshots and patches belongs to the
// caller (see pkg/store).
package chart

import (
	"github.com/matzehuels/orgcanvas/pkg/geometry"
)

// =============================================================================
// Constants
// =============================================================================

// Group display modes.
const (
	DisplayExpanded  = "expanded"   // members visible, boundary box rendered
	DisplayCollapsed = "collapsed"  // members hidden behind one synthetic node
	DisplayLeadsOnly = "leads-only" // only VisibleIDs rendered, in place
)

// Connection line types.
const (
	LineSolid  = "solid"
	LineDashed = "dashed"
	LineDotted = "dotted"
)

// Connection arrow-head directions.
const (
	ArrowNone    = "none"
	ArrowForward = "forward"
	ArrowBoth    = "both"
)

// GroupNodePrefix namespaces synthetic node ids that stand in for collapsed
// groups, so they can never collide with resource ids.
const GroupNodePrefix = "group:"

// =============================================================================
// Node - Positionable Resource
// =============================================================================

// Node is a positionable diagram element backed by a resource record.
//
// ParentID is the resource's manager reference. An empty ParentID, or one that
// does not resolve to another node in the same working set, makes the node a
// root. Category and Title are rendering metadata only; the layout engine
// never consults them.
type Node struct {
	ID       string `json:"id" bson:"id"`
	ParentID string `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Title    string `json:"title,omitempty" bson:"title,omitempty"`
	Category string `json:"category,omitempty" bson:"category,omitempty"`
}

// DisplayLabel returns the name if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// =============================================================================
// Group - Named Cluster
// =============================================================================

// Group is a named cluster of node ids with a display mode.
//
// A collapsed group hides all member nodes and substitutes one synthetic
// group node (id GroupNodeID()). Leads-only hides members outside VisibleIDs
// in place. Expanded affects only boundary-box rendering, never positions.
// Membership exclusivity (a node in at most one group) is enforced at the
// edit-UI boundary, not here.
type Group struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name,omitempty" bson:"name,omitempty"`
	MemberIDs   []string `json:"member_ids" bson:"member_ids"`
	DisplayMode string   `json:"display_mode,omitempty" bson:"display_mode,omitempty"`
	LeadID      string   `json:"lead_id,omitempty" bson:"lead_id,omitempty"`
	VisibleIDs  []string `json:"visible_ids,omitempty" bson:"visible_ids,omitempty"`
	Color       string   `json:"color,omitempty" bson:"color,omitempty"`
}

// GroupNodeID returns the id of the synthetic node that stands in for the
// group while it is collapsed.
func (g Group) GroupNodeID() string { return GroupNodePrefix + g.ID }

// IsCollapsed reports whether the group currently renders as a single node.
func (g Group) IsCollapsed() bool { return g.DisplayMode == DisplayCollapsed }

// VisibleMember reports whether id should render while the group is in
// leads-only mode.
func (g Group) VisibleMember(id string) bool {
	if g.DisplayMode != DisplayLeadsOnly {
		return true
	}
	if id == g.LeadID {
		return true
	}
	for _, v := range g.VisibleIDs {
		if v == id {
			return true
		}
	}
	return false
}

// =============================================================================
// Position & Bounds
// =============================================================================

// Position is a persisted top-left coordinate for a node or group node.
// Stored positions always take precedence over computed defaults.
type Position struct {
	ID string  `json:"id" bson:"id"`
	X  float64 `json:"x" bson:"x"`
	Y  float64 `json:"y" bson:"y"`
}

// Point returns the position as a geometry point.
func (p Position) Point() geometry.Point { return geometry.Point{X: p.X, Y: p.Y} }

// =============================================================================
// Connection - Manual Edge
// =============================================================================

// Connection is a manual connector line between two nodes or group nodes,
// independent of the reporting tree. At most one connection may exist per
// unordered endpoint pair; pkg/connections enforces this.
//
// Anchors may be empty, in which case the optimal pair is computed at draw
// time from the endpoints' current positions.
type Connection struct {
	ID         string        `json:"id" bson:"id"`
	FromID     string        `json:"from_id" bson:"from_id"`
	ToID       string        `json:"to_id" bson:"to_id"`
	FromAnchor geometry.Side `json:"from_anchor,omitempty" bson:"from_anchor,omitempty"`
	ToAnchor   geometry.Side `json:"to_anchor,omitempty" bson:"to_anchor,omitempty"`
	LineType   string        `json:"line_type,omitempty" bson:"line_type,omitempty"`
	ArrowHead  string        `json:"arrow_head,omitempty" bson:"arrow_head,omitempty"`
	Label      string        `json:"label,omitempty" bson:"label,omitempty"`
	Color      string        `json:"color,omitempty" bson:"color,omitempty"`
}

// SamePair reports whether the connection links the given endpoints,
// in either direction.
func (c Connection) SamePair(fromID, toID string) bool {
	return (c.FromID == fromID && c.ToID == toID) ||
		(c.FromID == toID && c.ToID == fromID)
}

// =============================================================================
// SavedHierarchy - Row-Grouped Positional Memory
// =============================================================================

// Row is one visual tier of the saved hierarchy, ordered left to right.
type Row struct {
	ItemIDs []string `json:"item_ids" bson:"item_ids"`
}

// SavedHierarchy is the user's preferred visual arrangement: an ordered list
// of rows captured from freeform positions. It is consumed only by
// auto-arrange replay and never influences the parent-pointer tree layout.
type SavedHierarchy struct {
	Rows    []Row  `json:"rows" bson:"rows"`
	SavedAt string `json:"saved_at,omitempty" bson:"saved_at,omitempty"`
}

// Empty reports whether no hierarchy has been captured.
func (h SavedHierarchy) Empty() bool { return len(h.Rows) == 0 }

// Contains reports whether id appears in any row.
func (h SavedHierarchy) Contains(id string) bool {
	for _, row := range h.Rows {
		for _, item := range row.ItemIDs {
			if item == id {
				return true
			}
		}
	}
	return false
}

// =============================================================================
// Snapshot - Complete Persisted State
// =============================================================================

// Snapshot is the complete persisted state of one chart. It is the unit of
// exchange between the engine, the stores and the HTTP API.
type Snapshot struct {
	Name        string         `json:"name,omitempty" bson:"name,omitempty"`
	Nodes       []Node         `json:"nodes" bson:"nodes"`
	Groups      []Group        `json:"groups,omitempty" bson:"groups,omitempty"`
	Positions   []Position     `json:"positions,omitempty" bson:"positions,omitempty"`
	Connections []Connection   `json:"connections,omitempty" bson:"connections,omitempty"`
	Hierarchy   SavedHierarchy `json:"hierarchy,omitempty" bson:"hierarchy,omitempty"`
}

// Node returns the node with the given id, if present.
func (s *Snapshot) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// PositionMap converts the stored position list to a lookup map.
func (s *Snapshot) PositionMap() map[string]geometry.Point {
	m := make(map[string]geometry.Point, len(s.Positions))
	for _, p := range s.Positions {
		m[p.ID] = p.Point()
	}
	return m
}

// SetPositions replaces the stored position list from a lookup map,
// sorted by id for deterministic serialization.
func (s *Snapshot) SetPositions(m map[string]geometry.Point) {
	s.Positions = PositionList(m)
}

// UpsertPosition inserts or replaces the stored position for one id.
func (s *Snapshot) UpsertPosition(p Position) {
	for i := range s.Positions {
		if s.Positions[i].ID == p.ID {
			s.Positions[i] = p
			return
		}
	}
	s.Positions = append(s.Positions, p)
}

// =============================================================================
// Patches - Engine Output
// =============================================================================

// PositionPatch upserts one or many positions. Emitted on drag commit and
// after auto-arrange.
type PositionPatch struct {
	Upserts []Position `json:"upserts" bson:"upserts"`
}

// Connection patch operations.
const (
	PatchAdd    = "add"
	PatchUpdate = "update"
	PatchRemove = "remove"
)

// ConnectionPatch describes one connection mutation.
type ConnectionPatch struct {
	Op         string     `json:"op" bson:"op"`
	Connection Connection `json:"connection" bson:"connection"`
}

// HierarchyPatch replaces the saved hierarchy.
type HierarchyPatch struct {
	Hierarchy SavedHierarchy `json:"hierarchy" bson:"hierarchy"`
}
