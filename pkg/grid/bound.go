package grid

import (
	"github.com/aretw0/tessera/pkg/domain"
)

// ExpandFunc is invoked once per unit of expansion.
type ExpandFunc func(dir domain.Direction)

// Tracker maintains the extent of the occupied region.
// Bounds only grow through Expand; RecomputeFromNodes is the only way to shrink them.
type Tracker struct {
	bound    domain.Bound
	onExpand ExpandFunc
}

// NewTracker creates a tracker with all extents at zero.
// onExpand may be nil.
func NewTracker(onExpand ExpandFunc) *Tracker {
	return &Tracker{onExpand: onExpand}
}

// Bound returns the current extent.
func (t *Tracker) Bound() domain.Bound {
	return t.bound
}

// Expand grows the extent in dir by amount, notifying the callback once per unit.
// Non-positive amounts are ignored.
func (t *Tracker) Expand(dir domain.Direction, amount int) {
	for i := 0; i < amount; i++ {
		switch dir {
		case domain.North:
			t.bound.North++
		case domain.East:
			t.bound.East++
		case domain.South:
			t.bound.South++
		case domain.West:
			t.bound.West++
		default:
			return
		}
		if t.onExpand != nil {
			t.onExpand(dir)
		}
	}
}

// Cover expands the extent just enough to include c and returns the
// directions that grew, one entry per unit.
func (t *Tracker) Cover(c domain.Coord) []domain.Direction {
	var grown []domain.Direction
	for _, d := range domain.Directions {
		excess := domain.Reach(c, d) - t.bound.Get(d)
		if excess <= 0 {
			continue
		}
		t.Expand(d, excess)
		for i := 0; i < excess; i++ {
			grown = append(grown, d)
		}
	}
	return grown
}

// RecomputeFromNodes resets the extent from a full scan of nodes.
// It does not notify the expansion callback.
func (t *Tracker) RecomputeFromNodes(nodes []*domain.Node) {
	var b domain.Bound
	for _, n := range nodes {
		b.North = max(b.North, domain.Reach(n.Coord, domain.North))
		b.East = max(b.East, domain.Reach(n.Coord, domain.East))
		b.South = max(b.South, domain.Reach(n.Coord, domain.South))
		b.West = max(b.West, domain.Reach(n.Coord, domain.West))
	}
	t.bound = b
}

// Reset zeroes the extent.
func (t *Tracker) Reset() {
	t.bound = domain.Bound{}
}
