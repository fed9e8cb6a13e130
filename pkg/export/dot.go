package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/orgcanvas/pkg/chart"
)

// DOTOptions configures the reporting diagram.
type DOTOptions struct {
	// Detailed includes titles and categories in node labels.
	// When false, only the name is shown.
	Detailed bool
}

// ToDOT converts a snapshot's reporting tree to Graphviz DOT format. Solid
// edges follow parent links; manual connections appear as dashed edges so
// the dotted-line relationships stay distinguishable from the hierarchy.
// Canvas positions are ignored: Graphviz does the layout.
func ToDOT(s *chart.Snapshot, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph orgchart {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	visible := chart.VisibleNodes(s)
	idx := chart.BuildIndex(visible)

	for _, n := range visible {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, fmtNodeLabel(n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, n := range visible {
		if n.ParentID == "" {
			continue
		}
		if _, ok := idx.Node(n.ParentID); !ok {
			// Dangling parent: the node is a root, no edge to draw.
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", n.ParentID, n.ID)
	}

	if len(s.Connections) > 0 {
		buf.WriteString("\n")
	}
	for _, c := range s.Connections {
		if _, ok := idx.Node(c.FromID); !ok {
			continue
		}
		if _, ok := idx.Node(c.ToID); !ok {
			continue
		}
		attrs := []string{"style=dashed", "constraint=false"}
		if c.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", c.Label))
		}
		if c.ArrowHead == chart.ArrowNone {
			attrs = append(attrs, "dir=none")
		} else if c.ArrowHead == chart.ArrowBoth {
			attrs = append(attrs, "dir=both")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.FromID, c.ToID, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeLabel(n chart.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}
	parts := []string{label}
	if n.Title != "" {
		parts = append(parts, n.Title)
	}
	if n.Category != "" {
		parts = append(parts, n.Category)
	}
	return strings.Join(parts, "\n")
}
