package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/tessera"
	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/internal/presentation/tui"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/muesli/termenv"
)

// ErrUsage is returned for malformed commands.
var ErrUsage = errors.New("usage")

const helpText = `Commands:
  engage <x> <y> <shape>   place a shape (palette name or raw outline)
  remove <x> <y>           remove the shape at x,y
  show                     draw the grid
  summary                  describe the diagram
  bound                    print the grid extent
  nodes                    list every node
  reset                    start over from a single attachment point
  help                     this text
  quit                     leave`

// REPL reads commands line by line and applies them to an engine.
type REPL struct {
	engine  *tessera.Engine
	in      io.Reader
	out     io.Writer
	resolve func(string) string
	profile termenv.Profile
	render  func(string) (string, error)
	logger  *slog.Logger
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the command source and output sink.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.in = in
		r.out = out
	}
}

// WithResolver maps shape names to descriptors.
func WithResolver(resolve func(string) string) Option {
	return func(r *REPL) {
		r.resolve = resolve
	}
}

// WithProfile sets the color profile used to draw the grid.
func WithProfile(p termenv.Profile) Option {
	return func(r *REPL) {
		r.profile = p
	}
}

// WithMarkdown renders the summary command through render.
func WithMarkdown(render func(string) (string, error)) Option {
	return func(r *REPL) {
		r.render = render
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *REPL) {
		r.logger = logger
	}
}

// NewREPL creates a REPL over engine. Defaults are stdin, stdout, plain text
// and identity shape names.
func NewREPL(engine *tessera.Engine, opts ...Option) *REPL {
	r := &REPL{
		engine:  engine,
		in:      os.Stdin,
		out:     os.Stdout,
		resolve: func(s string) string { return s },
		profile: termenv.Ascii,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes commands until quit, end of input or ctx cancellation.
// Command errors are printed and do not stop the loop.
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(NewInterruptibleReader(r.in, ctx.Done()))
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return handleExecutionError(scanner.Err())
		}

		quit, err := r.Exec(scanner.Text())
		if err != nil {
			r.logger.Debug("command failed", "line", scanner.Text(), "err", err)
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		if quit {
			printSystemMessage(r.out, "Bye!")
			return nil
		}
	}
}

// Exec runs one command line and reports whether the REPL should stop.
func (r *REPL) Exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "q", "quit", "exit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(r.out, helpText)
	case "engage", "e":
		if len(args) < 3 {
			return false, fmt.Errorf("%w: engage <x> <y> <shape>", ErrUsage)
		}
		x, y, err := parseCoord(args[0], args[1])
		if err != nil {
			return false, err
		}
		cs, err := r.engine.RequestEngage(x, y, r.resolve(strings.Join(args[2:], " ")))
		if err != nil {
			return false, err
		}
		printSystemMessage(r.out, "engaged %s: %d created, expanded %s", domain.Coord{X: x, Y: y}, len(cs.Created), directions(cs.Expanded))
		r.show()
	case "remove", "r":
		if len(args) != 2 {
			return false, fmt.Errorf("%w: remove <x> <y>", ErrUsage)
		}
		x, y, err := parseCoord(args[0], args[1])
		if err != nil {
			return false, err
		}
		cs, err := r.engine.RequestRemove(x, y)
		if err != nil {
			return false, err
		}
		printSystemMessage(r.out, "removed %d, created %d", len(cs.Removed), len(cs.Created))
		r.show()
	case "show", "s":
		r.show()
	case "summary":
		md := tui.Summary(r.engine.Snapshot())
		if r.render != nil {
			out, err := r.render(md)
			if err != nil {
				return false, err
			}
			md = out
		}
		fmt.Fprint(r.out, md)
	case "bound", "b":
		b := r.engine.Bound()
		fmt.Fprintf(r.out, "north=%d east=%d south=%d west=%d\n", b.North, b.East, b.South, b.West)
	case "nodes", "n":
		for _, n := range r.engine.Snapshot().Nodes {
			if n.State == domain.StateEngaged {
				fmt.Fprintf(r.out, "%s %s %s\n", n.Coord, n.State, n.Descriptor)
			} else {
				fmt.Fprintf(r.out, "%s %s\n", n.Coord, n.State)
			}
		}
	case "reset":
		cs := r.engine.Reset()
		printSystemMessage(r.out, "reset, %d removed", len(cs.Removed))
		r.show()
	default:
		return false, fmt.Errorf("%w: unknown command %q, try help", ErrUsage, cmd)
	}
	return false, nil
}

func (r *REPL) show() {
	fmt.Fprint(r.out, tui.RenderGrid(r.engine.Snapshot(), r.profile))
}

func parseCoord(xs, ys string) (int, int, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: x must be an integer, got %q", ErrUsage, xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: y must be an integer, got %q", ErrUsage, ys)
	}
	return x, y, nil
}

func directions(ds []domain.Direction) string {
	if len(ds) == 0 {
		return "nothing"
	}
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.String()
	}
	return strings.Join(names, " ")
}
