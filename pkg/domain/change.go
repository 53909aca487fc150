package domain

// ChangeSet describes what one Engage or Remove did to the grid, in the
// order it happened, so a renderer can replay it.
type ChangeSet struct {
	Created  []Node      `json:"created,omitempty"`
	Engaged  []Node      `json:"engaged,omitempty"`
	Removed  []Node      `json:"removed,omitempty"`
	Expanded []Direction `json:"expanded,omitempty"`
	Bound    Bound       `json:"bound"`
}

// IsEmpty reports whether the operation changed nothing.
func (c ChangeSet) IsEmpty() bool {
	return len(c.Created) == 0 && len(c.Engaged) == 0 && len(c.Removed) == 0 && len(c.Expanded) == 0
}

// CreatedAt reports whether a node was created at coord.
func (c ChangeSet) CreatedAt(coord Coord) bool {
	return containsCoord(c.Created, coord)
}

// RemovedAt reports whether the node at coord was removed.
func (c ChangeSet) RemovedAt(coord Coord) bool {
	return containsCoord(c.Removed, coord)
}

func containsCoord(nodes []Node, coord Coord) bool {
	for _, n := range nodes {
		if n.Coord == coord {
			return true
		}
	}
	return false
}
