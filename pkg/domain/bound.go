package domain

// Bound is the extent of the occupied region measured from the origin.
// Every field is non-negative: South and West hold the magnitude of the
// southward and westward reach.
type Bound struct {
	North int `json:"north"`
	East  int `json:"east"`
	South int `json:"south"`
	West  int `json:"west"`
}

// Get returns the extent in direction d.
func (b Bound) Get(d Direction) int {
	switch d {
	case North:
		return b.North
	case East:
		return b.East
	case South:
		return b.South
	case West:
		return b.West
	}
	return 0
}

// Reach returns how far c extends in direction d, or 0 when c lies on the
// other side of the origin.
func Reach(c Coord, d Direction) int {
	var v int
	switch d {
	case North:
		v = c.Y
	case East:
		v = c.X
	case South:
		v = -c.Y
	case West:
		v = -c.X
	}
	if v < 0 {
		return 0
	}
	return v
}

// Contains reports whether c lies inside the bound.
func (b Bound) Contains(c Coord) bool {
	for _, d := range Directions {
		if Reach(c, d) > b.Get(d) {
			return false
		}
	}
	return true
}

// Width is the number of columns spanned by the bound.
func (b Bound) Width() int {
	return b.West + b.East + 1
}

// Height is the number of rows spanned by the bound.
func (b Bound) Height() int {
	return b.North + b.South + 1
}
