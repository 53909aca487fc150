package grid_test

import (
	"math/rand"
	"testing"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func single(x, y int) *domain.Node {
	return &domain.Node{Coord: domain.Coord{X: x, Y: y}, State: domain.StateSingle}
}

func assertIndexIntegrity(t *testing.T, s *grid.Store) {
	t.Helper()
	for i, n := range s.All() {
		require.NotNil(t, n, "list has a hole at %d", i)
		assert.Equal(t, i, n.Index, "node %v has stale index", n.Coord)
		got, ok := s.Get(n.Coord)
		require.True(t, ok)
		assert.Same(t, n, got)
	}
}

func TestStore_PutGet(t *testing.T) {
	s := grid.NewStore()

	require.True(t, s.Put(single(0, 0)))
	require.True(t, s.Put(single(-3, 7)))

	n, ok := s.Get(domain.Coord{X: -3, Y: 7})
	require.True(t, ok)
	assert.Equal(t, 1, n.Index)

	_, ok = s.Get(domain.Coord{X: 100, Y: -100})
	assert.False(t, ok, "out of range lookups are just misses")
	assert.Equal(t, 2, s.Len())
}

func TestStore_PutOccupiedIsNoop(t *testing.T) {
	s := grid.NewStore()
	original := &domain.Node{Coord: domain.Coord{X: 1, Y: 1}, State: domain.StateEngaged, Descriptor: "box"}
	require.True(t, s.Put(original))

	assert.False(t, s.Put(single(1, 1)))

	got, _ := s.Get(domain.Coord{X: 1, Y: 1})
	assert.Same(t, original, got)
	assert.Equal(t, "box", got.Descriptor)
	assert.Equal(t, 1, s.Len())
}

func TestStore_DeleteSwapsLast(t *testing.T) {
	s := grid.NewStore()
	for i := 0; i < 4; i++ {
		s.Put(single(i, 0))
	}

	removed, ok := s.Delete(domain.Coord{X: 1, Y: 0})
	require.True(t, ok)
	assert.Equal(t, -1, removed.Index)

	// The last node (3,0) now fills slot 1.
	assert.Equal(t, domain.Coord{X: 3, Y: 0}, s.All()[1].Coord)
	assertIndexIntegrity(t, s)

	_, ok = s.Delete(domain.Coord{X: 1, Y: 0})
	assert.False(t, ok, "second delete is a no-op")
	assert.Equal(t, 3, s.Len())
}

func TestStore_DeleteLast(t *testing.T) {
	s := grid.NewStore()
	s.Put(single(0, 0))
	s.Put(single(0, 1))

	_, ok := s.Delete(domain.Coord{X: 0, Y: 1})
	require.True(t, ok)
	assert.Equal(t, 1, s.Len())
	assertIndexIntegrity(t, s)
}

func TestStore_RandomOperationsKeepIndices(t *testing.T) {
	s := grid.NewStore()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		c := domain.Coord{X: rng.Intn(11) - 5, Y: rng.Intn(11) - 5}
		if rng.Intn(3) == 0 {
			s.Delete(c)
		} else {
			s.Put(&domain.Node{Coord: c, State: domain.StateSingle})
		}
	}
	assertIndexIntegrity(t, s)
	assert.Len(t, s.Values(), s.Len())
}

func TestStore_Reset(t *testing.T) {
	s := grid.NewStore()
	s.Put(single(0, 0))
	s.Reset()

	assert.Zero(t, s.Len())
	_, ok := s.Get(domain.Coord{})
	assert.False(t, ok)
	assert.True(t, s.Put(single(0, 0)))
}
