package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without options the style follows the terminal background.
func NewRenderer(opts ...glamour.TermRendererOption) (func(string) (string, error), error) {
	if len(opts) == 0 {
		opts = []glamour.TermRendererOption{glamour.WithAutoStyle()}
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Summary describes a snapshot as a markdown document.
func Summary(snap domain.Snapshot) string {
	var sb strings.Builder

	name := snap.Name
	if name == "" {
		name = "Diagram"
	}
	fmt.Fprintf(&sb, "## %s\n\n", name)

	b := snap.Bound
	sb.WriteString("| Engaged | Single | North | East | South | West |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d | %d | %d |\n\n", snap.Engaged, snap.Single, b.North, b.East, b.South, b.West)

	if snap.Engaged == 0 {
		sb.WriteString("_No shapes placed yet._\n")
		return sb.String()
	}

	sb.WriteString("| Node | Shape |\n")
	sb.WriteString("|---|---|\n")
	for _, n := range snap.Nodes {
		if n.State != domain.StateEngaged {
			continue
		}
		fmt.Fprintf(&sb, "| %s | `%s` |\n", n.Coord, strings.ReplaceAll(n.Descriptor, "|", "\\|"))
	}
	return sb.String()
}

// RenderSummary renders Summary(snap) with render.
func RenderSummary(snap domain.Snapshot, render func(string) (string, error)) (string, error) {
	return render(Summary(snap))
}
