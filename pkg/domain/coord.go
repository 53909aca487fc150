package domain

import "fmt"

// Coord is a position on the diagram grid. North is +Y, East is +X.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is the first attachment point of every diagram.
var Origin = Coord{}

// Add returns the coordinate offset by o.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Step returns the coordinate n units away in direction d.
func (c Coord) Step(d Direction, n int) Coord {
	off := d.Offset()
	return Coord{X: c.X + off.X*n, Y: c.Y + off.Y*n}
}

// Flanks returns the two diagonal neighbors of c that sit on either side of
// the cardinal neighbor in direction d. For North these are (x-1,y+1) and (x+1,y+1).
func (c Coord) Flanks(d Direction) [2]Coord {
	ahead := c.Step(d, 1)
	off := d.Offset()
	// Perpendicular of (dx,dy) is (dy,dx) for the axis-aligned unit vectors.
	side := Coord{X: off.Y, Y: off.X}
	return [2]Coord{
		{X: ahead.X - side.X, Y: ahead.Y - side.Y},
		{X: ahead.X + side.X, Y: ahead.Y + side.Y},
	}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction represents a cardinal direction.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the cardinal directions in fan-out order.
var Directions = [4]Direction{North, East, South, West}

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// Offset returns the unit vector for the direction.
func (d Direction) Offset() Coord {
	switch d {
	case North:
		return Coord{Y: 1}
	case East:
		return Coord{X: 1}
	case South:
		return Coord{Y: -1}
	case West:
		return Coord{X: -1}
	default:
		return Coord{}
	}
}

// ParseDirection maps a name ("north", "n", ...) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "north", "n", "up":
		return North, nil
	case "east", "e", "right":
		return East, nil
	case "south", "s", "down":
		return South, nil
	case "west", "w", "left":
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// MarshalText lets directions appear by name in JSON payloads.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
