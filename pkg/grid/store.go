package grid

import (
	"github.com/aretw0/tessera/pkg/domain"
)

// Store is the coordinate grid. It exclusively owns every Node it holds.
type Store struct {
	cells map[domain.Coord]*domain.Node
	list  []*domain.Node
}

// NewStore creates an empty grid.
func NewStore() *Store {
	return &Store{
		cells: make(map[domain.Coord]*domain.Node),
	}
}

// Get returns the node at c.
func (s *Store) Get(c domain.Coord) (*domain.Node, bool) {
	n, ok := s.cells[c]
	return n, ok
}

// Put stores n at its coordinate and appends it to the sequential list.
// It returns false without touching the grid if the coordinate is occupied.
func (s *Store) Put(n *domain.Node) bool {
	if _, taken := s.cells[n.Coord]; taken {
		return false
	}
	n.Index = len(s.list)
	s.list = append(s.list, n)
	s.cells[n.Coord] = n
	return true
}

// Delete removes the node at c and returns it. Absent coordinates are a no-op.
func (s *Store) Delete(c domain.Coord) (*domain.Node, bool) {
	n, ok := s.cells[c]
	if !ok {
		return nil, false
	}
	delete(s.cells, c)

	last := len(s.list) - 1
	if n.Index != last {
		moved := s.list[last]
		s.list[n.Index] = moved
		moved.Index = n.Index
	}
	s.list[last] = nil
	s.list = s.list[:last]
	n.Index = -1
	return n, true
}

// All returns the live sequential list. Callers must not modify it.
func (s *Store) All() []*domain.Node {
	return s.list
}

// Len returns the number of live nodes.
func (s *Store) Len() int {
	return len(s.list)
}

// Values returns copies of every live node in list order.
func (s *Store) Values() []domain.Node {
	out := make([]domain.Node, len(s.list))
	for i, n := range s.list {
		out[i] = *n
	}
	return out
}

// Reset drops every node.
func (s *Store) Reset() {
	clear(s.cells)
	clear(s.list)
	s.list = s.list[:0]
}
