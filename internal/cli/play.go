package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/tessera/internal/config"
	"github.com/aretw0/tessera/internal/presentation/tui"
	"github.com/aretw0/tessera/internal/scenario"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// PlayOptions contains all the configuration for the play command.
type PlayOptions struct {
	Config *config.Config
	Logger *slog.Logger
	Debug  bool

	// Script is replayed before the prompt opens. Empty means none.
	Script string

	// Color enables ANSI styling, usually when stdout is a terminal.
	Color bool

	In  io.Reader
	Out io.Writer
}

// Play replays the optional script and then hands the engine to a REPL.
func Play(ctx context.Context, opts PlayOptions) error {
	engine := NewEngine(opts.Config, opts.Logger, opts.Debug)

	profile := termenv.Ascii
	style := glamour.WithStandardStyle("notty")
	if opts.Color {
		profile = termenv.ColorProfile()
		style = glamour.WithAutoStyle()
	}
	render, err := tui.NewRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return err
	}

	tui.PrintBanner(opts.Out, profile)

	if opts.Script != "" {
		script, err := scenario.Load(opts.Script)
		if err != nil {
			return err
		}
		results, err := script.Run(engine, opts.Config.Descriptor)
		for _, res := range results {
			outcome := "ok"
			if res.Err != nil {
				outcome = res.Err.Error()
			}
			printSystemMessage(opts.Out, "step %d %s: %s", res.Index, res.Step, outcome)
		}
		if err != nil {
			return fmt.Errorf("script %s: %w", opts.Script, err)
		}
		opts.Logger.Info("Script replayed", "script", opts.Script, "steps", len(results))
	}

	repl := NewREPL(engine,
		WithIO(opts.In, opts.Out),
		WithResolver(opts.Config.Descriptor),
		WithProfile(profile),
		WithMarkdown(render),
		WithLogger(opts.Logger),
	)
	fmt.Fprint(opts.Out, tui.RenderGrid(engine.Snapshot(), profile))
	return repl.Run(ctx)
}
