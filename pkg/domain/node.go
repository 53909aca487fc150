package domain

// NodeState is the lifecycle state of a node.
type NodeState string

const (
	// StateSingle is an empty attachment point where a shape may be placed.
	StateSingle NodeState = "single"
	// StateEngaged is a node holding a shape descriptor.
	StateEngaged NodeState = "engaged"
)

// Node is a single cell of the diagram grid.
type Node struct {
	Coord

	// Index is the node's position in the grid's sequential list.
	Index int `json:"-"`

	State NodeState `json:"state"`

	// Descriptor is the opaque shape outline. Empty unless State is StateEngaged.
	Descriptor string `json:"descriptor,omitempty"`
}

// IsEngaged reports whether the node holds a shape.
func (n *Node) IsEngaged() bool {
	return n != nil && n.State == StateEngaged
}

// IsSingle reports whether the node is an empty attachment point.
func (n *Node) IsSingle() bool {
	return n != nil && n.State == StateSingle
}

// Pixel is a display position computed from grid coordinates and bounds.
type Pixel struct {
	X int `json:"x"`
	Y int `json:"y"`
}
