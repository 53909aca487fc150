/*
Package domain contains the core domain models of the Tessera diagram grid.

It defines the entities shared by the grid store, the lifecycle model and
every adapter. This package is kept pure and free of external dependencies
like I/O or rendering, following Hexagonal Architecture principles.

# Key Entities

  - Coord: An integer grid coordinate, used as the grid key.
  - Direction: One of the four cardinal directions (North, East, South, West).
  - Node: An attachment point (Single) or a placed shape (Engaged).
  - Bound: The four-directional extent of the occupied region.
  - ChangeSet: What a single Engage or Remove did to the grid.
  - Snapshot: A read-only, ordered view of a diagram for presentation.
*/
package domain
