package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/tessera/internal/presentation/graph"
	"github.com/aretw0/tessera/pkg/domain"
)

func snapshot(nodes ...domain.Node) domain.Snapshot {
	return domain.NewSnapshot("test", nodes, domain.Bound{})
}

func engaged(x, y int, desc string) domain.Node {
	return domain.Node{Coord: domain.Coord{X: x, Y: y}, State: domain.StateEngaged, Descriptor: desc}
}

func single(x, y int) domain.Node {
	return domain.Node{Coord: domain.Coord{X: x, Y: y}, State: domain.StateSingle}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		snap     domain.Snapshot
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Node Shapes",
			snap: snapshot(engaged(0, 0, "box"), single(0, 1)),
			contains: []string{
				"n_0_0[\"box\"]",
				"n_0_1((\"0,1\"))",
				"class n_0_0 engaged;",
				"class n_0_1 single;",
			},
		},
		{
			name: "Negative Coordinates",
			snap: snapshot(single(-1, -2)),
			contains: []string{
				"n_m1_m2((\"-1,-2\"))",
			},
		},
		{
			name: "Links",
			snap: snapshot(engaged(0, 0, "a"), engaged(1, 0, "b"), single(0, 1)),
			contains: []string{
				"n_0_0 --- n_1_0",
				"n_0_0 -.- n_0_1",
			},
			excludes: []string{
				"n_1_0 --- n_0_0",
				"n_1_0 -.- n_0_1",
			},
		},
		{
			name: "Descriptor Escaping",
			snap: snapshot(engaged(0, 0, `say "hi"`)),
			contains: []string{
				`n_0_0["say 'hi'"]`,
			},
		},
		{
			name: "Overlay",
			snap: snapshot(engaged(0, 0, "a"), single(1, 0)),
			overlay: &graph.GraphOverlay{
				Highlight: []domain.Coord{{X: 1, Y: 0}, {X: 1, Y: 0}, {X: 9, Y: 9}},
				Cursor:    &domain.Coord{},
			},
			contains: []string{
				"class n_1_0 changed;",
				"class n_0_0 cursor;",
			},
			excludes: []string{
				"n_9_9",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.snap, tt.overlay)
			if !strings.HasPrefix(got, "graph TD\n") {
				t.Errorf("missing header:\n%v", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, bad)
				}
			}
			if n := strings.Count(got, "class n_1_0 changed;"); n > 1 {
				t.Errorf("highlight emitted %d times", n)
			}
		})
	}
}
