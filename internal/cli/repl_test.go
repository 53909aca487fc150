package cli_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/tessera"
	"github.com/aretw0/tessera/internal/cli"
	"github.com/aretw0/tessera/internal/config"
	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newREPL(t *testing.T, input string) (*cli.REPL, *tessera.Engine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	eng := tessera.New()
	cfg := config.Default()
	r := cli.NewREPL(eng, cli.WithIO(strings.NewReader(input), &out), cli.WithResolver(cfg.Descriptor))
	return r, eng, &out
}

func TestREPL_Run(t *testing.T) {
	r, eng, out := newREPL(t, "engage 0 0 box\nbound\nremove 0 0\nquit\nengage 1 0 box\n")
	require.NoError(t, r.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, ">>> engaged (0,0): 4 created, expanded north east south west")
	assert.Contains(t, text, ". + .\n+ # +\n. + .\n")
	assert.Contains(t, text, "north=1 east=1 south=1 west=1")
	assert.Contains(t, text, ">>> removed 5, created 1")
	assert.Contains(t, text, ">>> Bye!")

	// Commands after quit are not read.
	assert.Len(t, eng.Nodes(), 1)
}

func TestREPL_ResolvesPalette(t *testing.T) {
	r, eng, _ := newREPL(t, "")
	_, err := r.Exec("engage 0 0 box")
	require.NoError(t, err)
	node, _ := eng.Node(domain.Origin)
	assert.Equal(t, config.Default().Descriptors["box"], node.Descriptor)

	_, err = r.Exec("e 1 0 M0,0 L1,1")
	require.NoError(t, err)
	node, _ = eng.Node(domain.Coord{X: 1, Y: 0})
	assert.Equal(t, "M0,0 L1,1", node.Descriptor)
}

func TestREPL_Errors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"engage 0", cli.ErrUsage},
		{"engage a 0 box", cli.ErrUsage},
		{"remove 0 b", cli.ErrUsage},
		{"fly 1 2", cli.ErrUsage},
		{"remove 0 0", domain.ErrRemovalOnSingleNode},
		{"remove 3 3", domain.ErrNodeNotFound},
		{"engage 3 3 box", domain.ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r, _, _ := newREPL(t, "")
			quit, err := r.Exec(tt.line)
			assert.False(t, quit)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestREPL_ErrorsDoNotStopLoop(t *testing.T) {
	r, eng, out := newREPL(t, "remove 0 0\nengage 0 0 box\n")
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "error: "+domain.ErrRemovalOnSingleNode.Error())
	assert.Equal(t, 1, eng.Snapshot().Engaged)
}

func TestREPL_Listing(t *testing.T) {
	r, _, out := newREPL(t, "")
	_, err := r.Exec("engage 0 0 circle")
	require.NoError(t, err)
	out.Reset()

	_, err = r.Exec("nodes")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "(0,1) single", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "(0,0) engaged M0.5,0"))

	out.Reset()
	_, err = r.Exec("summary")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "| 1 | 4 | 1 | 1 | 1 | 1 |")

	out.Reset()
	_, err = r.Exec("reset")
	require.NoError(t, err)
	assert.Contains(t, out.String(), ">>> reset, 5 removed")
	assert.True(t, strings.HasSuffix(out.String(), "+\n"))

	out.Reset()
	_, err = r.Exec("help")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "engage <x> <y> <shape>")
}

func TestREPL_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, _, _ := newREPL(t, "engage 0 0 box\n")
	assert.NoError(t, r.Run(ctx))
}

func TestREPL_CancelWakesBlockedRead(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	r := cli.NewREPL(tessera.New(), cli.WithIO(pr, &out))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	// Nothing is ever written, so Run sits in a blocking read.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestPlay_Script(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "demo.yaml")
	require.NoError(t, os.WriteFile(script, []byte("steps:\n  - engage: {x: 0, y: 0, shape: box}\n"), 0644))

	var out bytes.Buffer
	err := cli.Play(context.Background(), cli.PlayOptions{
		Config: config.Default(),
		Logger: logging.NewNop(),
		Script: script,
		In:     strings.NewReader("nodes\n"),
		Out:    &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), ">>> step 1 engage 0,0 box: ok")
	assert.Contains(t, out.String(), "(0,0) engaged")
}

func TestPlay_ScriptFailure(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(script, []byte("steps:\n  - remove: {x: 0, y: 0}\n"), 0644))

	err := cli.Play(context.Background(), cli.PlayOptions{
		Config: config.Default(),
		Logger: logging.NewNop(),
		Script: script,
		In:     strings.NewReader(""),
		Out:    &bytes.Buffer{},
	})
	assert.Error(t, err)
}

func TestPalette(t *testing.T) {
	shapes := cli.Palette(config.Default())
	require.Len(t, shapes, 3)
	assert.Equal(t, "box", shapes[0].Name)
	assert.Equal(t, "diamond", shapes[2].Name)
}

func TestNewEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Policy = "direct"
	cfg.Layout.OriginX = 7
	eng := cli.NewEngine(cfg, logging.NewNop(), true)
	assert.Equal(t, 7, eng.Layout().OriginX)

	pos, ok := eng.Position(domain.Origin)
	require.True(t, ok)
	assert.Equal(t, 7, pos.X)
}
