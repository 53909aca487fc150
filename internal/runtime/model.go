package runtime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/grid"
	"github.com/aretw0/tessera/pkg/ports"
)

// Model is the grid lifecycle state machine.
type Model struct {
	name     string
	store    *grid.Store
	tracker  *grid.Tracker
	layout   domain.Layout
	renderer ports.Renderer
	hooks    domain.LifecycleHooks
	policy   domain.RemovalPolicy
	logger   *slog.Logger
	now      func() time.Time

	// pending collects the effects of the operation in progress.
	pending *domain.ChangeSet
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithName labels the model in logs and events.
func WithName(name string) ModelOption {
	return func(m *Model) {
		m.name = name
	}
}

// WithRenderer sets the renderer notified of every change.
func WithRenderer(r ports.Renderer) ModelOption {
	return func(m *Model) {
		if r != nil {
			m.renderer = r
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ModelOption {
	return func(m *Model) {
		m.hooks = hooks
	}
}

// WithLayout sets the pixel layout used for renderer positions.
func WithLayout(l domain.Layout) ModelOption {
	return func(m *Model) {
		m.layout = l
	}
}

// WithRemovalPolicy selects the orphan cleanup policy.
func WithRemovalPolicy(p domain.RemovalPolicy) ModelOption {
	return func(m *Model) {
		m.policy = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// NewModel creates a model with an empty grid. Call Create(domain.Origin)
// to place the first attachment point.
func NewModel(opts ...ModelOption) *Model {
	m := &Model{
		store:    grid.NewStore(),
		layout:   domain.DefaultLayout(),
		renderer: ports.NopRenderer{},
		policy:   domain.PolicyGateway,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.tracker = grid.NewTracker(m.onExpand)
	return m
}

func (m *Model) onExpand(dir domain.Direction) {
	if m.pending != nil {
		m.pending.Expanded = append(m.pending.Expanded, dir)
	}
	m.renderer.OnBoundExpanded(dir)
}

// Create places a Single node at c. If c is occupied nothing changes and
// the existing node is returned with created == false. On an empty grid c
// must be the origin; otherwise c must be a cardinal neighbor of a live node,
// so the bound grows by at most one unit.
func (m *Model) Create(c domain.Coord) (node domain.Node, created bool, err error) {
	if existing, ok := m.store.Get(c); ok {
		return *existing, false, nil
	}
	if !m.attached(c) {
		return domain.Node{}, false, fmt.Errorf("%w: %v", domain.ErrDetachedCoordinate, c)
	}
	node, created = m.place(c)
	return node, created, nil
}

func (m *Model) attached(c domain.Coord) bool {
	if m.store.Len() == 0 {
		return c == domain.Origin
	}
	for _, d := range domain.Directions {
		if _, ok := m.store.Get(c.Step(d, 1)); ok {
			return true
		}
	}
	return false
}

// place inserts a Single node at c without the attachment check. Engage
// fan-out and Remove recreation already satisfy it or are exempt.
func (m *Model) place(c domain.Coord) (domain.Node, bool) {
	if existing, ok := m.store.Get(c); ok {
		return *existing, false
	}

	n := &domain.Node{Coord: c, State: domain.StateSingle}
	m.store.Put(n)

	// The bound must cover c before its position is computed.
	before := m.tracker.Bound()
	if grown := m.tracker.Cover(c); len(grown) > 0 {
		m.emitBound(before)
	}

	pos := m.layout.Position(c, m.tracker.Bound())
	m.renderer.OnNodeCreated(*n, pos)
	if m.pending != nil {
		m.pending.Created = append(m.pending.Created, *n)
	}
	if m.hooks.OnNodeCreated != nil {
		m.hooks.OnNodeCreated(m.nodeEvent(domain.EventNodeCreated, *n, pos))
	}

	m.logger.Debug("node created", "diagram", m.name, "coord", c, "pos_x", pos.X, "pos_y", pos.Y)
	return *n, true
}

// Engage places descriptor on the Single node at c and creates its four
// cardinal neighbors where they are missing.
func (m *Model) Engage(c domain.Coord, descriptor string) (domain.ChangeSet, error) {
	n, ok := m.store.Get(c)
	switch {
	case !ok:
		return m.reject("engage", c, fmt.Errorf("%w: no node at %v", domain.ErrInvalidTransition, c))
	case n.State == domain.StateEngaged:
		return m.reject("engage", c, fmt.Errorf("%w: node at %v is already engaged", domain.ErrInvalidTransition, c))
	case descriptor == "":
		return m.reject("engage", c, fmt.Errorf("%w: empty descriptor for %v", domain.ErrInvalidTransition, c))
	}

	m.begin()
	defer m.end()

	n.State = domain.StateEngaged
	n.Descriptor = descriptor

	pos := m.layout.Position(c, m.tracker.Bound())
	m.renderer.OnNodeEngaged(*n, descriptor, pos)
	m.pending.Engaged = append(m.pending.Engaged, *n)
	if m.hooks.OnNodeEngaged != nil {
		m.hooks.OnNodeEngaged(m.nodeEvent(domain.EventNodeEngaged, *n, pos))
	}
	m.logger.Debug("node engaged", "diagram", m.name, "coord", c, "descriptor", descriptor)

	for _, d := range domain.Directions {
		m.place(c.Step(d, 1))
	}

	return m.result(), nil
}

// Remove deletes the Engaged node at c and every Single neighbor that no
// longer leads anywhere. See cleanup.go for the classification rules.
func (m *Model) Remove(c domain.Coord) (domain.ChangeSet, error) {
	n, ok := m.store.Get(c)
	switch {
	case !ok:
		return m.reject("remove", c, fmt.Errorf("%w: %v", domain.ErrNodeNotFound, c))
	case n.State != domain.StateEngaged:
		return m.reject("remove", c, fmt.Errorf("%w: %v", domain.ErrRemovalOnSingleNode, c))
	}

	m.begin()
	defer m.end()

	// Classify everything before touching the grid.
	plan := m.classify(c)

	for _, dc := range plan.dead {
		removed, ok := m.store.Delete(dc)
		if !ok {
			continue
		}
		m.renderer.OnNodeRemoved(*removed)
		m.pending.Removed = append(m.pending.Removed, *removed)
		if m.hooks.OnNodeRemoved != nil {
			m.hooks.OnNodeRemoved(m.nodeEvent(domain.EventNodeRemoved, *removed, domain.Pixel{}))
		}
	}

	if plan.singles < len(domain.Directions) || m.store.Len() == 0 {
		m.place(c)
	}

	before := m.tracker.Bound()
	m.tracker.RecomputeFromNodes(m.store.All())
	if m.tracker.Bound() != before {
		m.emitBound(before)
	}

	m.logger.Debug("node removed",
		"diagram", m.name,
		"coord", c,
		"removed", len(m.pending.Removed),
		"kept_gateways", plan.gateways,
	)
	return m.result(), nil
}

// Node returns a copy of the node at c.
func (m *Model) Node(c domain.Coord) (domain.Node, bool) {
	n, ok := m.store.Get(c)
	if !ok {
		return domain.Node{}, false
	}
	return *n, true
}

// Nodes returns copies of every live node in sequential list order.
func (m *Model) Nodes() []domain.Node {
	return m.store.Values()
}

// Len returns the number of live nodes.
func (m *Model) Len() int {
	return m.store.Len()
}

// Bound returns the current extent.
func (m *Model) Bound() domain.Bound {
	return m.tracker.Bound()
}

// Position returns the display position of the node at c under the current bound.
func (m *Model) Position(c domain.Coord) (domain.Pixel, bool) {
	if _, ok := m.store.Get(c); !ok {
		return domain.Pixel{}, false
	}
	return m.layout.Position(c, m.tracker.Bound()), true
}

// Layout returns the pixel layout.
func (m *Model) Layout() domain.Layout {
	return m.layout
}

// Policy returns the active removal policy.
func (m *Model) Policy() domain.RemovalPolicy {
	return m.policy
}

// Name returns the model label.
func (m *Model) Name() string {
	return m.name
}

// Snapshot returns an ordered read-only view of the grid.
func (m *Model) Snapshot() domain.Snapshot {
	return domain.NewSnapshot(m.name, m.store.Values(), m.tracker.Bound())
}

// Reset removes every node, notifying the renderer, and leaves the grid empty.
func (m *Model) Reset() domain.ChangeSet {
	m.begin()
	defer m.end()

	before := m.tracker.Bound()
	for _, n := range m.store.Values() {
		m.renderer.OnNodeRemoved(n)
		m.pending.Removed = append(m.pending.Removed, n)
	}
	m.store.Reset()
	m.tracker.Reset()
	if before != (domain.Bound{}) {
		m.emitBound(before)
	}
	return m.result()
}

func (m *Model) begin() {
	m.pending = &domain.ChangeSet{}
}

func (m *Model) end() {
	m.pending = nil
}

func (m *Model) result() domain.ChangeSet {
	cs := *m.pending
	cs.Bound = m.tracker.Bound()
	return cs
}

func (m *Model) reject(op string, c domain.Coord, err error) (domain.ChangeSet, error) {
	m.logger.Warn("request rejected", "diagram", m.name, "op", op, "coord", c, "err", err)
	if m.hooks.OnRejected != nil {
		m.hooks.OnRejected(&domain.RejectEvent{
			EventBase: m.base(domain.EventRejected),
			Op:        op,
			Coord:     c,
			Err:       err,
		})
	}
	return domain.ChangeSet{Bound: m.tracker.Bound()}, err
}

func (m *Model) emitBound(before domain.Bound) {
	if m.hooks.OnBoundChanged == nil {
		return
	}
	m.hooks.OnBoundChanged(&domain.BoundEvent{
		EventBase: m.base(domain.EventBoundChanged),
		Old:       before,
		New:       m.tracker.Bound(),
	})
}

func (m *Model) nodeEvent(t domain.EventType, n domain.Node, pos domain.Pixel) *domain.NodeEvent {
	return &domain.NodeEvent{
		EventBase: m.base(t),
		Node:      n,
		Position:  pos,
	}
}

func (m *Model) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: m.now(),
		Type:      t,
		Diagram:   m.name,
	}
}
