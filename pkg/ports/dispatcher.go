package ports

import "github.com/aretw0/tessera/pkg/domain"

// Dispatcher is the entry point a UI uses to mutate a diagram.
// Both calls are synchronous and run to completion.
type Dispatcher interface {
	// RequestEngage places a shape on the Single node at (x, y).
	RequestEngage(x, y int, descriptor string) (domain.ChangeSet, error)

	// RequestRemove removes the Engaged node at (x, y) and its orphaned attachment points.
	RequestRemove(x, y int) (domain.ChangeSet, error)
}

// Diagram is a Dispatcher that can describe its current contents.
type Diagram interface {
	Dispatcher
	Snapshot() domain.Snapshot
}
