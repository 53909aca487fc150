package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/aretw0/tessera/pkg/session"

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// Factory builds a fresh diagram for a new ID.
type Factory func(id string) ports.Diagram

// Listener observes the contents of a diagram after every change. It runs
// while the diagram lock is held, so successive calls for one ID are ordered.
type Listener func(id string, snap domain.Snapshot)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates diagram access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store   ports.DiagramStore
	factory Factory

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker    ports.DistributedLocker // Optional distributed locker
	lockTTL   time.Duration
	listeners []Listener
	logger    *slog.Logger
	tracer    trace.Tracer
}

var _ ports.DiagramService = (*Manager)(nil)

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithListener registers a callback notified after every successful change.
func WithListener(l Listener) Option {
	return func(m *Manager) {
		if l != nil {
			m.listeners = append(m.listeners, l)
		}
	}
}

// WithLockTTL sets the TTL passed to the distributed locker.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Manager) {
		if tp != nil {
			m.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewManager creates a Manager that keeps diagrams in store and builds
// missing ones with factory.
func NewManager(store ports.DiagramStore, factory Factory, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		factory: factory,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// WithLock executes fn while holding the lock for the diagram ID.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"diagram", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Update loads the diagram, creating it first when create is set, and runs
// fn on it under the diagram lock.
func (m *Manager) Update(ctx context.Context, id string, create bool, fn func(ports.Diagram) error) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		d, err := m.loadLocked(ctx, id, create)
		if err != nil {
			return err
		}
		return fn(d)
	})
}

// LoadOrCreate makes sure a diagram exists for id and returns its snapshot.
func (m *Manager) LoadOrCreate(ctx context.Context, id string) (domain.Snapshot, error) {
	ctx, span := m.start(ctx, "session.LoadOrCreate", id)
	defer span.End()

	var snap domain.Snapshot
	err := m.Update(ctx, id, true, func(d ports.Diagram) error {
		snap = d.Snapshot()
		return nil
	})
	return snap, m.finish(span, err)
}

// Engage places descriptor at (x, y) on the diagram. An unknown diagram is
// built from the factory and stored only if the engage succeeds.
func (m *Manager) Engage(ctx context.Context, id string, x, y int, descriptor string) (domain.ChangeSet, error) {
	ctx, span := m.start(ctx, "session.Engage", id,
		attribute.Int("x", x),
		attribute.Int("y", y),
		attribute.String("descriptor", descriptor),
	)
	defer span.End()

	var cs domain.ChangeSet
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		d, err := m.store.Load(ctx, id)
		fresh := errors.Is(err, domain.ErrDiagramNotFound)
		switch {
		case fresh:
			if d, err = m.build(id); err != nil {
				return err
			}
		case err != nil:
			return err
		}

		if cs, err = d.RequestEngage(x, y, descriptor); err != nil {
			return err
		}
		if fresh {
			if err := m.save(ctx, id, d); err != nil {
				return err
			}
		}
		m.notify(id, d)
		return nil
	})
	span.SetAttributes(attribute.Int("created", len(cs.Created)))
	return cs, m.finish(span, err)
}

// Remove removes the Engaged node at (x, y) from an existing diagram.
func (m *Manager) Remove(ctx context.Context, id string, x, y int) (domain.ChangeSet, error) {
	ctx, span := m.start(ctx, "session.Remove", id,
		attribute.Int("x", x),
		attribute.Int("y", y),
	)
	defer span.End()

	var cs domain.ChangeSet
	err := m.Update(ctx, id, false, func(d ports.Diagram) error {
		var err error
		cs, err = d.RequestRemove(x, y)
		if err == nil {
			m.notify(id, d)
		}
		return err
	})
	span.SetAttributes(attribute.Int("removed", len(cs.Removed)))
	return cs, m.finish(span, err)
}

// Snapshot returns the current contents of an existing diagram.
func (m *Manager) Snapshot(ctx context.Context, id string) (domain.Snapshot, error) {
	ctx, span := m.start(ctx, "session.Snapshot", id)
	defer span.End()

	var snap domain.Snapshot
	err := m.Update(ctx, id, false, func(d ports.Diagram) error {
		snap = d.Snapshot()
		return nil
	})
	return snap, m.finish(span, err)
}

// Delete drops the diagram from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	ctx, span := m.start(ctx, "session.Delete", id)
	defer span.End()

	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
	return m.finish(span, err)
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying diagram store.
func (m *Manager) Store() ports.DiagramStore {
	return m.store
}

func (m *Manager) loadLocked(ctx context.Context, id string, create bool) (ports.Diagram, error) {
	d, err := m.store.Load(ctx, id)
	if err == nil {
		return d, nil
	}
	if !create || !errors.Is(err, domain.ErrDiagramNotFound) {
		return nil, err
	}
	if d, err = m.build(id); err != nil {
		return nil, err
	}
	if err := m.save(ctx, id, d); err != nil {
		return nil, err
	}
	m.notify(id, d)
	return d, nil
}

func (m *Manager) build(id string) (ports.Diagram, error) {
	if m.factory == nil {
		return nil, fmt.Errorf("no factory configured: %w", domain.ErrDiagramNotFound)
	}
	return m.factory(id), nil
}

func (m *Manager) save(ctx context.Context, id string, d ports.Diagram) error {
	if err := m.store.Save(ctx, id, d); err != nil {
		return fmt.Errorf("failed to initialize diagram: %w", err)
	}
	m.logger.Debug("diagram created", "diagram", id)
	return nil
}

func (m *Manager) notify(id string, d ports.Diagram) {
	if len(m.listeners) == 0 {
		return
	}
	snap := d.Snapshot()
	for _, l := range m.listeners {
		l(id, snap)
	}
}

func (m *Manager) start(ctx context.Context, name, id string, extra ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs := append([]attribute.KeyValue{attribute.String("diagram.id", id)}, extra...)
	return m.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (m *Manager) finish(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
