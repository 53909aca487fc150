package cli

import (
	"log/slog"
	"sort"

	"github.com/aretw0/tessera"
	"github.com/aretw0/tessera/internal/config"
	"github.com/aretw0/tessera/internal/presentation/tui"
	"github.com/aretw0/tessera/pkg/observability"
	"github.com/aretw0/tessera/pkg/ports"
)

// NewEngine initializes a Tessera engine with standard CLI conventions.
func NewEngine(cfg *config.Config, logger *slog.Logger, debug bool, renderers ...ports.Renderer) *tessera.Engine {
	engineOpts := []tessera.Option{
		tessera.WithLogger(logger),
		tessera.WithLayout(cfg.Layout),
		tessera.WithRemovalPolicy(cfg.RemovalPolicy()),
	}

	// Debug mode narrates every lifecycle event.
	if debug {
		engineOpts = append(engineOpts, tessera.WithLifecycleHooks(observability.LogHooks(logger)))
	}

	for _, r := range renderers {
		engineOpts = append(engineOpts, tessera.WithRenderer(r))
	}

	return tessera.New(engineOpts...)
}

// Palette lists the configured descriptors sorted by name.
func Palette(cfg *config.Config) []tui.Shape {
	shapes := make([]tui.Shape, 0, len(cfg.Descriptors))
	for name, d := range cfg.Descriptors {
		shapes = append(shapes, tui.Shape{Name: name, Descriptor: d})
	}
	sort.Slice(shapes, func(i, j int) bool { return shapes[i].Name < shapes[j].Name })
	return shapes
}
