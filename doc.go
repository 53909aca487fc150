/*
Package tessera is a grid lifecycle engine for building diagrams out of shapes
placed on a sparse integer grid.

Every cell of the grid is either empty, a Single node (an attachment point
where a shape may be placed) or an Engaged node (a cell holding a shape).
Placing a shape on a Single node engages it and creates Single nodes in the
four cardinal directions, so the diagram always offers somewhere to grow.
Removing a shape deletes the attachment points that no longer lead anywhere
while keeping the ones that still give access to other shapes.

# Concept

The engine owns the grid and its bounding extent. Hosts observe it through a
ports.Renderer, which receives bound expansions, node creations, engagements
and removals in the exact order they happen, with pixel positions already
computed from the current bound. Hosts drive it through ports.Dispatcher.
This Hexagonal Architecture lets the same engine back a terminal editor, an
HTTP service or an MCP agent tool.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/tessera"
	)

	func main() {
		eng := tessera.New()

		if _, err := eng.RequestEngage(0, 0, "box"); err != nil {
			log.Fatal(err)
		}
		if _, err := eng.RequestEngage(1, 0, "circle"); err != nil {
			log.Fatal(err)
		}

		cs, err := eng.RequestRemove(1, 0)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("removed", len(cs.Removed), "nodes")
		fmt.Printf("bound: %+v\n", eng.Bound())
	}
*/
package tessera
