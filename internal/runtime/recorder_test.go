package runtime_test

import (
	"fmt"

	"github.com/aretw0/tessera/pkg/domain"
)

// recorder captures renderer notifications as readable strings.
type recorder struct {
	calls     []string
	positions map[domain.Coord]domain.Pixel
}

func newRecorder() *recorder {
	return &recorder{positions: make(map[domain.Coord]domain.Pixel)}
}

func (r *recorder) OnBoundExpanded(dir domain.Direction) {
	r.calls = append(r.calls, "expand "+dir.String())
}

func (r *recorder) OnNodeCreated(n domain.Node, pos domain.Pixel) {
	r.positions[n.Coord] = pos
	r.calls = append(r.calls, fmt.Sprintf("create %v @%d,%d", n.Coord, pos.X, pos.Y))
}

func (r *recorder) OnNodeEngaged(n domain.Node, descriptor string, pos domain.Pixel) {
	r.positions[n.Coord] = pos
	r.calls = append(r.calls, fmt.Sprintf("engage %v %s", n.Coord, descriptor))
}

func (r *recorder) OnNodeRemoved(n domain.Node) {
	delete(r.positions, n.Coord)
	r.calls = append(r.calls, fmt.Sprintf("remove %v", n.Coord))
}

func (r *recorder) reset() {
	r.calls = nil
}
