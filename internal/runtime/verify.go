package runtime

import (
	"fmt"

	"github.com/aretw0/tessera/pkg/grid"
)

// Verify checks the structural invariants of the grid: every live node sits
// at its own list index and coordinate, and the bound equals a fresh scan.
func (m *Model) Verify() error {
	for i, n := range m.store.All() {
		if n == nil {
			return fmt.Errorf("sequential list has a hole at %d", i)
		}
		if n.Index != i {
			return fmt.Errorf("node %v stores index %d but sits at %d", n.Coord, n.Index, i)
		}
		if got, ok := m.store.Get(n.Coord); !ok || got != n {
			return fmt.Errorf("node %v is not reachable by coordinate", n.Coord)
		}
		if n.IsEngaged() != (n.Descriptor != "") {
			return fmt.Errorf("node %v has state %s with descriptor %q", n.Coord, n.State, n.Descriptor)
		}
	}

	scan := grid.NewTracker(nil)
	scan.RecomputeFromNodes(m.store.All())
	if scan.Bound() != m.tracker.Bound() {
		return fmt.Errorf("bound %+v does not match live extent %+v", m.tracker.Bound(), scan.Bound())
	}
	return nil
}
