package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/ports"
)

// Store implements ports.DiagramStore in memory.
// Safe for concurrent use. The diagrams themselves are not copied: callers
// serialize access to each diagram (see pkg/session).
type Store struct {
	data map[string]ports.Diagram
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]ports.Diagram),
	}
}

// Save registers the diagram under id.
func (s *Store) Save(ctx context.Context, id string, diagram ports.Diagram) error {
	if diagram == nil {
		return fmt.Errorf("memory store: nil diagram for %q", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = diagram
	return nil
}

// Load retrieves the diagram registered under id.
func (s *Store) Load(ctx context.Context, id string) (ports.Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDiagramNotFound, id)
	}
	return d, nil
}

// Delete removes the diagram. Unknown IDs are a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
