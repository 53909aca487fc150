package ports

import "github.com/aretw0/tessera/pkg/domain"

// Renderer reflects grid changes on a drawing surface.
// Calls are fire-and-forget notifications issued synchronously while the
// model mutates state; implementations must not call back into the model.
type Renderer interface {
	// OnBoundExpanded is called once per unit of expansion, before the
	// position of the node that caused it is computed.
	OnBoundExpanded(dir domain.Direction)

	// OnNodeCreated is called when a Single node appears.
	OnNodeCreated(node domain.Node, pos domain.Pixel)

	// OnNodeEngaged is called when a Single node receives a shape.
	OnNodeEngaged(node domain.Node, descriptor string, pos domain.Pixel)

	// OnNodeRemoved is called for every node deleted by a removal.
	OnNodeRemoved(node domain.Node)
}

// NopRenderer ignores every notification.
type NopRenderer struct{}

func (NopRenderer) OnBoundExpanded(domain.Direction)                {}
func (NopRenderer) OnNodeCreated(domain.Node, domain.Pixel)         {}
func (NopRenderer) OnNodeEngaged(domain.Node, string, domain.Pixel) {}
func (NopRenderer) OnNodeRemoved(domain.Node)                       {}

// MultiRenderer fans every notification out to several renderers in order.
type MultiRenderer []Renderer

func (m MultiRenderer) OnBoundExpanded(dir domain.Direction) {
	for _, r := range m {
		r.OnBoundExpanded(dir)
	}
}

func (m MultiRenderer) OnNodeCreated(node domain.Node, pos domain.Pixel) {
	for _, r := range m {
		r.OnNodeCreated(node, pos)
	}
}

func (m MultiRenderer) OnNodeEngaged(node domain.Node, descriptor string, pos domain.Pixel) {
	for _, r := range m {
		r.OnNodeEngaged(node, descriptor, pos)
	}
}

func (m MultiRenderer) OnNodeRemoved(node domain.Node) {
	for _, r := range m {
		r.OnNodeRemoved(node)
	}
}
