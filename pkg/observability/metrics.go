package observability

import (
	"fmt"
	"net/http"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors for diagram activity.
type Metrics struct {
	gatherer prometheus.Gatherer

	Created  *prometheus.CounterVec
	Engaged  *prometheus.CounterVec
	Removed  *prometheus.CounterVec
	Rejected *prometheus.CounterVec
	Bound    *prometheus.GaugeVec
}

// NewMetrics registers the collectors against reg, defaulting to the global
// Prometheus registry when nil. Registering twice on the same registry
// reuses the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	created, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tessera_nodes_created_total",
		Help: "Single nodes created, labeled by diagram.",
	}, []string{"diagram"}), "tessera_nodes_created_total")
	if err != nil {
		return nil, err
	}
	engaged, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tessera_nodes_engaged_total",
		Help: "Nodes that received a shape, labeled by diagram.",
	}, []string{"diagram"}), "tessera_nodes_engaged_total")
	if err != nil {
		return nil, err
	}
	removed, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tessera_nodes_removed_total",
		Help: "Nodes deleted by removals, labeled by diagram and final state.",
	}, []string{"diagram", "state"}), "tessera_nodes_removed_total")
	if err != nil {
		return nil, err
	}
	rejected, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tessera_requests_rejected_total",
		Help: "Requests refused because of a precondition violation, labeled by diagram and operation.",
	}, []string{"diagram", "op"}), "tessera_requests_rejected_total")
	if err != nil {
		return nil, err
	}
	bound, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tessera_bound_cells",
		Help: "Current extent of the diagram from the origin, labeled by diagram and direction.",
	}, []string{"diagram", "direction"}), "tessera_bound_cells")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		gatherer: gatherer,
		Created:  created,
		Engaged:  engaged,
		Removed:  removed,
		Rejected: rejected,
		Bound:    bound,
	}, nil
}

// Hooks returns lifecycle hooks that record every event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeCreated: func(e *domain.NodeEvent) {
			m.Created.WithLabelValues(e.Diagram).Inc()
		},
		OnNodeEngaged: func(e *domain.NodeEvent) {
			m.Engaged.WithLabelValues(e.Diagram).Inc()
		},
		OnNodeRemoved: func(e *domain.NodeEvent) {
			m.Removed.WithLabelValues(e.Diagram, string(e.Node.State)).Inc()
		},
		OnBoundChanged: func(e *domain.BoundEvent) {
			m.SetBound(e.Diagram, e.New)
		},
		OnRejected: func(e *domain.RejectEvent) {
			m.Rejected.WithLabelValues(e.Diagram, e.Op).Inc()
		},
	}
}

// SetBound publishes b as the current extent of diagram.
func (m *Metrics) SetBound(diagram string, b domain.Bound) {
	for _, d := range domain.Directions {
		m.Bound.WithLabelValues(diagram, d.String()).Set(float64(b.Get(d)))
	}
}

// Forget drops every series of diagram, typically after it is deleted.
func (m *Metrics) Forget(diagram string) {
	labels := prometheus.Labels{"diagram": diagram}
	m.Created.DeletePartialMatch(labels)
	m.Engaged.DeletePartialMatch(labels)
	m.Removed.DeletePartialMatch(labels)
	m.Rejected.DeletePartialMatch(labels)
	m.Bound.DeletePartialMatch(labels)
}

// Handler exposes a ready-to-use /metrics handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C, name string) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
			var zero C
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero C
		return zero, err
	}
	return c, nil
}
