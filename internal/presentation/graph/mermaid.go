package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tessera/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	// Highlight marks nodes touched by the last operation.
	Highlight []domain.Coord
	// Cursor marks the node currently selected by an editor.
	Cursor *domain.Coord
}

// GenerateMermaid produces a Mermaid flowchart from a diagram snapshot.
// It applies semantic styling:
// - Engaged: [Rectangle] labelled with the descriptor
// - Single: ((Circle)) labelled with the coordinate
// Cardinal neighbors are linked; links that touch a Single node are dotted.
// It also applies overlay styles (Highlight/Cursor) if provided.
func GenerateMermaid(snap domain.Snapshot, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	idx := snap.Index()
	for _, node := range snap.Nodes {
		id := MermaidID(node.Coord)
		if node.State == domain.StateEngaged {
			label := strings.ReplaceAll(node.Descriptor, "\"", "'")
			fmt.Fprintf(&sb, "    %s[\"%s\"]\n", id, label)
		} else {
			fmt.Fprintf(&sb, "    %s((\"%d,%d\"))\n", id, node.X, node.Y)
		}
	}

	// Each link is emitted once, from its southern or western end.
	for _, node := range snap.Nodes {
		for _, d := range []domain.Direction{domain.North, domain.East} {
			other, ok := idx[node.Coord.Step(d, 1)]
			if !ok {
				continue
			}
			link := "-.-"
			if node.State == domain.StateEngaged && other.State == domain.StateEngaged {
				link = "---"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", MermaidID(node.Coord), link, MermaidID(other.Coord))
		}
	}

	sb.WriteString("\n    classDef engaged fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef single fill:#fff,stroke:#9e9e9e,stroke-dasharray:3 3,color:#616161;\n")
	for _, node := range snap.Nodes {
		fmt.Fprintf(&sb, "    class %s %s;\n", MermaidID(node.Coord), node.State)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef changed fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef cursor fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.Coord]bool)
		for _, c := range overlay.Highlight {
			if _, ok := idx[c]; !ok || seen[c] {
				continue
			}
			seen[c] = true
			fmt.Fprintf(&sb, "    class %s changed;\n", MermaidID(c))
		}
		if overlay.Cursor != nil {
			if _, ok := idx[*overlay.Cursor]; ok {
				fmt.Fprintf(&sb, "    class %s cursor;\n", MermaidID(*overlay.Cursor))
			}
		}
	}

	return sb.String()
}

// MermaidID returns a Mermaid-safe identifier for c, such as n_2_m1 for (2,-1).
func MermaidID(c domain.Coord) string {
	return "n_" + signed(c.X) + "_" + signed(c.Y)
}

func signed(v int) string {
	if v < 0 {
		return fmt.Sprintf("m%d", -v)
	}
	return fmt.Sprintf("%d", v)
}
