package domain

import "errors"

// ErrOccupiedCoordinate is reported when a node is created where one already exists.
// Engage fan-out treats this as a silent no-op.
var ErrOccupiedCoordinate = errors.New("coordinate already occupied")

// ErrDetachedCoordinate is returned when a node would be created away from the
// grid: off the origin on an empty grid, or with no cardinal neighbor otherwise.
var ErrDetachedCoordinate = errors.New("coordinate not attached to the grid")

// ErrInvalidTransition is returned when Engage targets an absent or already Engaged node.
var ErrInvalidTransition = errors.New("invalid node transition")

// ErrRemovalOnSingleNode is returned when Remove targets a Single node.
var ErrRemovalOnSingleNode = errors.New("cannot remove a single node")

// ErrNodeNotFound is returned when Remove targets an empty coordinate.
var ErrNodeNotFound = errors.New("node not found")

// ErrDiagramNotFound is returned when a diagram ID cannot be found in the store.
var ErrDiagramNotFound = errors.New("diagram not found")
