package ports

import (
	"context"

	"github.com/aretw0/tessera/pkg/domain"
)

// DiagramService is the multi-diagram API driving adapters (HTTP, MCP) call.
// Implementations serialize access per diagram ID; see pkg/session.
type DiagramService interface {
	// LoadOrCreate returns the diagram, creating it with a single attachment point if needed.
	LoadOrCreate(ctx context.Context, id string) (domain.Snapshot, error)

	// Engage places descriptor at (x, y), creating the diagram if needed.
	Engage(ctx context.Context, id string, x, y int, descriptor string) (domain.ChangeSet, error)

	// Remove removes the Engaged node at (x, y).
	// Returns domain.ErrDiagramNotFound if the diagram does not exist.
	Remove(ctx context.Context, id string, x, y int) (domain.ChangeSet, error)

	// Snapshot returns the diagram contents.
	// Returns domain.ErrDiagramNotFound if the diagram does not exist.
	Snapshot(ctx context.Context, id string) (domain.Snapshot, error)

	// Delete drops the diagram.
	Delete(ctx context.Context, id string) error

	// List returns every diagram ID.
	List(ctx context.Context) ([]string, error)
}
