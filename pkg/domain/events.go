package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeCreated  EventType = "node_created"
	EventNodeEngaged  EventType = "node_engaged"
	EventNodeRemoved  EventType = "node_removed"
	EventBoundChanged EventType = "bound_changed"
	EventRejected     EventType = "rejected"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Diagram   string    `json:"diagram,omitempty"`
}

// NodeEvent reports a node entering, changing or leaving the grid.
type NodeEvent struct {
	EventBase
	Node     Node  `json:"node"`
	Position Pixel `json:"position"`
}

// BoundEvent reports a change of the diagram extent.
type BoundEvent struct {
	EventBase
	Old Bound `json:"old"`
	New Bound `json:"new"`
}

// RejectEvent reports a request refused because of a precondition violation.
type RejectEvent struct {
	EventBase
	Op    string `json:"op"`
	Coord Coord  `json:"coord"`
	Err   error  `json:"-"`
}

// LifecycleHooks defines callbacks for grid observability.
// All hooks are optional and run synchronously inside the operation.
type LifecycleHooks struct {
	OnNodeCreated  func(*NodeEvent)
	OnNodeEngaged  func(*NodeEvent)
	OnNodeRemoved  func(*NodeEvent)
	OnBoundChanged func(*BoundEvent)
	OnRejected     func(*RejectEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnNodeCreated:  chain(h.OnNodeCreated, other.OnNodeCreated),
		OnNodeEngaged:  chain(h.OnNodeEngaged, other.OnNodeEngaged),
		OnNodeRemoved:  chain(h.OnNodeRemoved, other.OnNodeRemoved),
		OnBoundChanged: chain(h.OnBoundChanged, other.OnBoundChanged),
		OnRejected:     chain(h.OnRejected, other.OnRejected),
	}
}

func chain[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
