package runtime

import (
	"github.com/aretw0/tessera/pkg/domain"
)

// removalPlan is the outcome of classifying the neighborhood of an Engaged
// node that is about to be removed.
type removalPlan struct {
	// dead lists the coordinates to delete; the removed node itself is last.
	dead []domain.Coord
	// singles counts cardinal neighbors that exist and are not Engaged.
	singles int
	// gateways counts Single neighbors kept because they still lead somewhere.
	gateways int
}

// classify decides which nodes around c die with it. It only reads the grid.
//
// A Single cardinal neighbor in direction D survives when the node two steps
// away in D is Engaged, or when either diagonal flanking D is Engaged.
// Engaged neighbors are never candidates and absent ones are skipped.
func (m *Model) classify(c domain.Coord) removalPlan {
	var plan removalPlan

	for _, d := range domain.Directions {
		nb, ok := m.store.Get(c.Step(d, 1))
		if !ok || nb.IsEngaged() {
			continue
		}
		plan.singles++

		if m.policy != domain.PolicyDirect && m.isGateway(c, d) {
			plan.gateways++
			continue
		}
		plan.dead = append(plan.dead, nb.Coord)
	}

	plan.dead = append(plan.dead, c)
	return plan
}

// isGateway reports whether the neighbor of c in direction d still gives
// access to Engaged content once c is gone.
func (m *Model) isGateway(c domain.Coord, d domain.Direction) bool {
	if m.engagedAt(c.Step(d, 2)) {
		return true
	}
	for _, f := range c.Flanks(d) {
		if m.engagedAt(f) {
			return true
		}
	}
	return false
}

func (m *Model) engagedAt(c domain.Coord) bool {
	n, ok := m.store.Get(c)
	return ok && n.IsEngaged()
}
