package tessera_test

import (
	"fmt"
	"log"

	"github.com/aretw0/tessera"
)

// ExampleNew shows the engage and remove cycle on a fresh diagram.
func ExampleNew() {
	eng := tessera.New()

	if _, err := eng.RequestEngage(0, 0, "box"); err != nil {
		log.Fatal(err)
	}
	if _, err := eng.RequestEngage(1, 0, "circle"); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("after engage: %d nodes, bound %+v\n", len(eng.Nodes()), eng.Bound())

	// (1,0) borders the box at the origin, so it comes back as an attachment point.
	cs, err := eng.RequestRemove(1, 0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("removed %d, created %d\n", len(cs.Removed), len(cs.Created))
	fmt.Printf("after remove: %d nodes, bound %+v\n", len(eng.Nodes()), eng.Bound())
	// Output:
	// after engage: 8 nodes, bound {North:1 East:2 South:1 West:1}
	// removed 4, created 1
	// after remove: 5 nodes, bound {North:1 East:1 South:1 West:1}
}
