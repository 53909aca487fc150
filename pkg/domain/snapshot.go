package domain

import "sort"

// Snapshot is a read-only view of a diagram, ordered top row first and
// west to east inside a row.
type Snapshot struct {
	Name    string `json:"name,omitempty"`
	Nodes   []Node `json:"nodes"`
	Bound   Bound  `json:"bound"`
	Engaged int    `json:"engaged"`
	Single  int    `json:"single"`
}

// NewSnapshot builds an ordered snapshot from an unordered node list.
func NewSnapshot(name string, nodes []Node, bound Bound) Snapshot {
	ordered := make([]Node, len(nodes))
	copy(ordered, nodes)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Y != ordered[j].Y {
			return ordered[i].Y > ordered[j].Y
		}
		return ordered[i].X < ordered[j].X
	})

	snap := Snapshot{Name: name, Nodes: ordered, Bound: bound}
	for _, n := range ordered {
		if n.State == StateEngaged {
			snap.Engaged++
		} else {
			snap.Single++
		}
	}
	return snap
}

// Lookup returns the node at c, if present.
func (s Snapshot) Lookup(c Coord) (Node, bool) {
	for _, n := range s.Nodes {
		if n.Coord == c {
			return n, true
		}
	}
	return Node{}, false
}

// Index returns the snapshot nodes keyed by coordinate.
func (s Snapshot) Index() map[Coord]Node {
	idx := make(map[Coord]Node, len(s.Nodes))
	for _, n := range s.Nodes {
		idx[n.Coord] = n
	}
	return idx
}
