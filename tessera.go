package tessera

import (
	"log/slog"

	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/internal/runtime"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/ports"
)

// Engine is the high-level entry point for the Tessera library.
// It owns one diagram grid and implements ports.Diagram.
//
// Engine is not safe for concurrent use; see pkg/session for a locking wrapper.
type Engine struct {
	model     *runtime.Model
	renderers []ports.Renderer
	hooks     domain.LifecycleHooks
	layout    *domain.Layout
	policy    domain.RemovalPolicy
	logger    *slog.Logger
	Name      string
}

var _ ports.Diagram = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithName labels the diagram in logs, events and snapshots.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRenderer adds a renderer. Repeating the option fans notifications out
// to every renderer in registration order.
func WithRenderer(r ports.Renderer) Option {
	return func(e *Engine) {
		if r != nil {
			e.renderers = append(e.renderers, r)
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLayout overrides the cell size and origin used for pixel positions.
func WithLayout(l domain.Layout) Option {
	return func(e *Engine) {
		e.layout = &l
	}
}

// WithRemovalPolicy selects how orphaned attachment points are cleaned up.
// The default is domain.PolicyGateway.
func WithRemovalPolicy(p domain.RemovalPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// New creates an engine whose grid holds a single attachment point at the origin.
func New(opts ...Option) *Engine {
	eng := &Engine{policy: domain.PolicyGateway}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("diagram", eng.Name)
	}

	modelOpts := []runtime.ModelOption{
		runtime.WithName(eng.Name),
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithRemovalPolicy(eng.policy),
	}
	switch len(eng.renderers) {
	case 0:
	case 1:
		modelOpts = append(modelOpts, runtime.WithRenderer(eng.renderers[0]))
	default:
		modelOpts = append(modelOpts, runtime.WithRenderer(ports.MultiRenderer(eng.renderers)))
	}
	if eng.layout != nil {
		modelOpts = append(modelOpts, runtime.WithLayout(*eng.layout))
	}

	eng.model = runtime.NewModel(modelOpts...)
	_, _, _ = eng.model.Create(domain.Origin)
	return eng
}

// Engage places descriptor on the Single node at c and grows the grid around it.
func (e *Engine) Engage(c domain.Coord, descriptor string) (domain.ChangeSet, error) {
	return e.model.Engage(c, descriptor)
}

// Remove deletes the Engaged node at c together with its orphaned neighbors.
func (e *Engine) Remove(c domain.Coord) (domain.ChangeSet, error) {
	return e.model.Remove(c)
}

// RequestEngage implements ports.Dispatcher.
func (e *Engine) RequestEngage(x, y int, descriptor string) (domain.ChangeSet, error) {
	return e.Engage(domain.Coord{X: x, Y: y}, descriptor)
}

// RequestRemove implements ports.Dispatcher.
func (e *Engine) RequestRemove(x, y int) (domain.ChangeSet, error) {
	return e.Remove(domain.Coord{X: x, Y: y})
}

// Node returns the node at c.
func (e *Engine) Node(c domain.Coord) (domain.Node, bool) {
	return e.model.Node(c)
}

// Nodes returns every live node in sequential list order.
func (e *Engine) Nodes() []domain.Node {
	return e.model.Nodes()
}

// Bound returns the current grid extent.
func (e *Engine) Bound() domain.Bound {
	return e.model.Bound()
}

// Position returns the pixel position of the node at c under the current bound.
func (e *Engine) Position(c domain.Coord) (domain.Pixel, bool) {
	return e.model.Position(c)
}

// Layout returns the active pixel layout.
func (e *Engine) Layout() domain.Layout {
	return e.model.Layout()
}

// Snapshot returns an ordered copy of the grid.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.model.Snapshot()
}

// Reset clears the diagram and places a fresh attachment point at the origin.
// The returned change set lists the removed nodes followed by the new origin.
func (e *Engine) Reset() domain.ChangeSet {
	cs := e.model.Reset()
	if origin, created, _ := e.model.Create(domain.Origin); created {
		cs.Created = append(cs.Created, origin)
	}
	cs.Bound = e.model.Bound()
	return cs
}
