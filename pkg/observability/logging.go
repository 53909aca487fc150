package observability

import (
	"log/slog"

	"github.com/aretw0/tessera/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one structured record per event.
// Node events are logged at Debug, bound changes at Info and rejections at Warn.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	node := func(e *domain.NodeEvent) {
		logger.Debug(string(e.Type),
			"diagram", e.Diagram,
			"x", e.Node.X,
			"y", e.Node.Y,
			"state", e.Node.State,
			"descriptor", e.Node.Descriptor,
		)
	}
	return domain.LifecycleHooks{
		OnNodeCreated: node,
		OnNodeEngaged: node,
		OnNodeRemoved: node,
		OnBoundChanged: func(e *domain.BoundEvent) {
			logger.Info(string(e.Type),
				"diagram", e.Diagram,
				"north", e.New.North,
				"east", e.New.East,
				"south", e.New.South,
				"west", e.New.West,
			)
		},
		OnRejected: func(e *domain.RejectEvent) {
			logger.Warn(string(e.Type),
				"diagram", e.Diagram,
				"op", e.Op,
				"coord", e.Coord.String(),
				"err", e.Err,
			)
		},
	}
}
