package ports

import (
	"context"
)

// DiagramStore holds live diagrams by ID.
// Diagrams are kept in memory only; the store exists so multi-diagram hosts
// (HTTP, MCP) can look them up.
type DiagramStore interface {
	// Save registers the diagram under the given ID, replacing any previous one.
	Save(ctx context.Context, id string, diagram Diagram) error

	// Load retrieves the diagram for the given ID.
	// Returns domain.ErrDiagramNotFound if the diagram does not exist.
	Load(ctx context.Context, id string) (Diagram, error)

	// Delete removes the diagram for the given ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of every stored diagram.
	List(ctx context.Context) ([]string, error)
}
