package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/tessera"
	"github.com/aretw0/tessera/internal/presentation/tui"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGrid(t *testing.T) {
	eng := tessera.New()
	assert.Equal(t, "+\n", tui.RenderGrid(eng.Snapshot(), termenv.Ascii))

	_, err := eng.Engage(domain.Origin, "box")
	require.NoError(t, err)
	_, err = eng.Engage(domain.Coord{X: 1, Y: 0}, "box")
	require.NoError(t, err)

	want := strings.Join([]string{
		". + + .",
		"+ # # +",
		". + + .",
		"",
	}, "\n")
	assert.Equal(t, want, tui.RenderGrid(eng.Snapshot(), termenv.Ascii))
}

func TestRenderGrid_Colored(t *testing.T) {
	eng := tessera.New()
	out := tui.RenderGrid(eng.Snapshot(), termenv.TrueColor)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "+")
}

func TestSummary(t *testing.T) {
	eng := tessera.New(tessera.WithName("plan"))
	assert.Contains(t, tui.Summary(eng.Snapshot()), "_No shapes placed yet._")

	_, err := eng.Engage(domain.Origin, "a|b")
	require.NoError(t, err)

	md := tui.Summary(eng.Snapshot())
	assert.Contains(t, md, "## plan")
	assert.Contains(t, md, "| 1 | 4 | 1 | 1 | 1 | 1 |")
	assert.Contains(t, md, "| (0,0) | `a\\|b` |")
}

func TestRenderSummary(t *testing.T) {
	render, err := tui.NewRenderer(glamourNoTTY()...)
	require.NoError(t, err)

	eng := tessera.New(tessera.WithName("plan"))
	_, err = eng.Engage(domain.Origin, "box")
	require.NoError(t, err)

	out, err := tui.RenderSummary(eng.Snapshot(), render)
	require.NoError(t, err)
	assert.Contains(t, out, "plan")
	assert.Contains(t, out, "box")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, termenv.Ascii)
	assert.Contains(t, buf.String(), "|_|\\___||___/___/\\___|_|  \\__,_|")
	assert.NotContains(t, buf.String(), "\x1b[")
}
