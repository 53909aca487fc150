package runtime_test

import (
	"math/rand"
	"testing"

	"github.com/aretw0/tessera/internal/runtime"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove_RecreatesNextToEngagedNeighbor(t *testing.T) {
	m := seeded(t)
	engage(t, m, 0, 0, "shapeA")
	engage(t, m, 1, 0, "shapeB")

	cs := remove(t, m, 1, 0)

	for _, c := range []domain.Coord{at(2, 0), at(1, 1), at(1, -1)} {
		_, ok := m.Node(c)
		assert.False(t, ok, "%v should be removed", c)
		assert.True(t, cs.RemovedAt(c))
	}

	origin, ok := m.Node(domain.Origin)
	require.True(t, ok)
	assert.Equal(t, domain.StateEngaged, origin.State, "engaged neighbors are never candidates")

	// (1,0) borders the engaged origin, so an attachment point comes back.
	n, ok := m.Node(at(1, 0))
	require.True(t, ok)
	assert.Equal(t, domain.StateSingle, n.State)
	assert.Empty(t, n.Descriptor)
	assert.True(t, cs.CreatedAt(at(1, 0)))

	assert.Equal(t, 5, m.Len())
	assert.Equal(t, domain.Bound{North: 1, East: 1, South: 1, West: 1}, m.Bound())
}

func TestRemove_RejectsSingleNode(t *testing.T) {
	m := seeded(t)
	before := m.Snapshot()

	_, err := m.Remove(domain.Origin)
	assert.ErrorIs(t, err, domain.ErrRemovalOnSingleNode)
	assert.Equal(t, before, m.Snapshot())

	engage(t, m, 0, 0, "a")
	before = m.Snapshot()
	_, err = m.Remove(at(0, 1))
	assert.ErrorIs(t, err, domain.ErrRemovalOnSingleNode)
	assert.Equal(t, before, m.Snapshot())
}

func TestRemove_RejectsAbsentNode(t *testing.T) {
	m := seeded(t)
	_, err := m.Remove(at(40, -40))
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	assert.Equal(t, 1, m.Len())
}

func TestRemove_LastShapeKeepsEntryPoint(t *testing.T) {
	rec := newRecorder()
	m := seeded(t, runtime.WithRenderer(rec))
	engage(t, m, 0, 0, "a")
	rec.reset()

	cs := remove(t, m, 0, 0)

	require.Equal(t, 1, m.Len(), "grid must never be left empty")
	n, ok := m.Node(domain.Origin)
	require.True(t, ok)
	assert.Equal(t, domain.StateSingle, n.State)
	assert.Equal(t, domain.Bound{}, m.Bound())
	assert.Len(t, cs.Removed, 5)
	assert.Equal(t, "remove (0,0)", rec.calls[4], "the engaged node is removed after its neighbors")
	assert.Equal(t, "create (0,0) @120,120", rec.calls[5], "replacement is positioned before bounds shrink")
}

func TestRemove_LeafShrinksBack(t *testing.T) {
	m := seeded(t)
	engage(t, m, 0, 0, "a")
	engage(t, m, 0, 1, "b")
	require.Equal(t, 2, m.Bound().North)

	remove(t, m, 0, 1)

	assert.ElementsMatch(t, []domain.Coord{at(0, 0), at(0, 1), at(1, 0), at(0, -1), at(-1, 0)}, coords(m))
	assert.Equal(t, domain.Bound{North: 1, East: 1, South: 1, West: 1}, m.Bound())
}

func TestRemove_DiagonalGateway(t *testing.T) {
	build := func(t *testing.T, policy domain.RemovalPolicy) *runtime.Model {
		m := seeded(t, runtime.WithRemovalPolicy(policy))
		engage(t, m, 0, 0, "a")
		engage(t, m, 1, 0, "b")
		engage(t, m, 1, 1, "c")
		return m
	}

	t.Run("Gateway Policy", func(t *testing.T) {
		m := build(t, domain.PolicyGateway)
		remove(t, m, 0, 0)

		// (0,1) flanks the engaged (1,1), so it survives.
		_, ok := m.Node(at(0, 1))
		assert.True(t, ok)
		_, ok = m.Node(at(0, -1))
		assert.False(t, ok)
		_, ok = m.Node(at(-1, 0))
		assert.False(t, ok)

		n, ok := m.Node(domain.Origin)
		require.True(t, ok)
		assert.Equal(t, domain.StateSingle, n.State)
		assert.Equal(t, 0, m.Bound().West)
	})

	t.Run("Direct Policy", func(t *testing.T) {
		m := build(t, domain.PolicyDirect)
		remove(t, m, 0, 0)

		_, ok := m.Node(at(0, 1))
		assert.False(t, ok, "direct policy ignores diagonal gateways")
	})
}

func TestRemove_TwoStepGateway(t *testing.T) {
	m := seeded(t)
	// Walk around (1,0) so that (2,0) is engaged while (1,1) and (1,-1) are not.
	for _, c := range []domain.Coord{at(0, 0), at(0, -1), at(0, -2), at(1, -2), at(2, -2), at(2, -1), at(2, 0)} {
		engage(t, m, c.X, c.Y, "path")
	}

	cs := remove(t, m, 0, 0)

	n, ok := m.Node(at(1, 0))
	require.True(t, ok, "(1,0) is the only way into (2,0) from the origin side")
	assert.Equal(t, domain.StateSingle, n.State)
	assert.False(t, cs.RemovedAt(at(1, 0)))
	assert.True(t, cs.RemovedAt(at(0, 1)))
	assert.True(t, cs.RemovedAt(at(-1, 0)))

	origin, ok := m.Node(domain.Origin)
	require.True(t, ok, "origin borders the engaged (0,-1)")
	assert.Equal(t, domain.StateSingle, origin.State)
}

func TestRemove_IsolatedLeafLeavesNoReplacement(t *testing.T) {
	m := seeded(t)
	engage(t, m, 0, 0, "a")
	engage(t, m, 1, 0, "b")
	engage(t, m, 2, 0, "c")
	remove(t, m, 1, 0)

	// Every neighbor of the origin is Single now, but (1,0) still leads to (2,0).
	cs := remove(t, m, 0, 0)

	_, ok := m.Node(domain.Origin)
	assert.False(t, ok, "no attachment point is needed where the isolated shape was")
	assert.False(t, cs.RemovedAt(at(1, 0)))
	assert.ElementsMatch(t, []domain.Coord{at(1, 0), at(2, 0), at(3, 0), at(2, 1), at(2, -1)}, coords(m))
	assert.Equal(t, domain.Bound{North: 1, East: 3, South: 1, West: 0}, m.Bound())
}

func TestRemove_EmptyGridRecreatesAtRemovedCoordinate(t *testing.T) {
	m := seeded(t)
	engage(t, m, 0, 0, "a")
	engage(t, m, 1, 0, "b")
	remove(t, m, 0, 0)

	remove(t, m, 1, 0)

	require.Equal(t, 1, m.Len())
	n, ok := m.Node(at(1, 0))
	require.True(t, ok)
	assert.Equal(t, domain.StateSingle, n.State)
	assert.Equal(t, domain.Bound{East: 1}, m.Bound())
}

func TestRemove_ThenReengage(t *testing.T) {
	m := seeded(t)
	engage(t, m, 0, 0, "a")
	engage(t, m, 1, 0, "b")
	remove(t, m, 1, 0)

	cs := engage(t, m, 1, 0, "b2")
	assert.Len(t, cs.Created, 3)
	assert.Equal(t, domain.Bound{North: 1, East: 2, South: 1, West: 1}, m.Bound())
}

// TestModel_RandomWalk drives the model with random valid operations and
// checks the structural invariants after every step.
func TestModel_RandomWalk(t *testing.T) {
	for _, policy := range []domain.RemovalPolicy{domain.PolicyGateway, domain.PolicyDirect} {
		t.Run(string(policy), func(t *testing.T) {
			m := seeded(t, runtime.WithRemovalPolicy(policy))
			rng := rand.New(rand.NewSource(7))

			for step := 0; step < 500; step++ {
				nodes := m.Nodes()
				require.NotEmpty(t, nodes, "grid emptied at step %d", step)
				pick := nodes[rng.Intn(len(nodes))]

				snapshotBefore := m.Snapshot()
				if pick.State == domain.StateSingle {
					cs, err := m.Engage(pick.Coord, "s")
					require.NoError(t, err)
					for _, d := range domain.Directions {
						_, ok := m.Node(pick.Coord.Step(d, 1))
						require.True(t, ok, "fan-out incomplete around %v", pick.Coord)
					}
					for _, dir := range cs.Expanded {
						assert.Equal(t, snapshotBefore.Bound.Get(dir)+1, cs.Bound.Get(dir), "bounds grow by exactly one")
					}
				} else {
					_, err := m.Remove(pick.Coord)
					require.NoError(t, err)
					if policy == domain.PolicyGateway {
						assertGatewaysSurvive(t, snapshotBefore, m, pick.Coord)
					}
				}
				require.NoError(t, m.Verify(), "step %d", step)
			}
		})
	}
}

// assertGatewaysSurvive checks that every Single neighbor of the removed node
// that was two steps or diagonally adjacent to a surviving Engaged node is still present.
func assertGatewaysSurvive(t *testing.T, before domain.Snapshot, m *runtime.Model, removed domain.Coord) {
	t.Helper()
	idx := before.Index()
	engagedNow := func(c domain.Coord) bool {
		n, ok := m.Node(c)
		return ok && n.State == domain.StateEngaged
	}

	for _, d := range domain.Directions {
		nb, ok := idx[removed.Step(d, 1)]
		if !ok || nb.State != domain.StateSingle {
			continue
		}
		flanks := removed.Flanks(d)
		if engagedNow(removed.Step(d, 2)) || engagedNow(flanks[0]) || engagedNow(flanks[1]) {
			_, still := m.Node(nb.Coord)
			assert.True(t, still, "gateway %v was removed", nb.Coord)
		}
	}
}
