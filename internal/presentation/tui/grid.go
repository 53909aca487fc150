package tui

import (
	"strings"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/muesli/termenv"
)

// Grid glyphs.
const (
	GlyphEngaged = '#'
	GlyphSingle  = '+'
	GlyphEmpty   = '.'
)

// RenderGrid draws the snapshot bound as rows of glyphs, north row first.
// Colors follow p; termenv.Ascii yields plain text.
func RenderGrid(snap domain.Snapshot, p termenv.Profile) string {
	idx := snap.Index()
	b := snap.Bound

	engaged := p.String(string(GlyphEngaged)).Foreground(p.Color("#22c55e")).Bold().String()
	single := p.String(string(GlyphSingle)).Foreground(p.Color("#60a5fa")).String()
	empty := p.String(string(GlyphEmpty)).Faint().String()

	var sb strings.Builder
	for y := b.North; y >= -b.South; y-- {
		for x := -b.West; x <= b.East; x++ {
			if x > -b.West {
				sb.WriteByte(' ')
			}
			n, ok := idx[domain.Coord{X: x, Y: y}]
			switch {
			case !ok:
				sb.WriteString(empty)
			case n.State == domain.StateEngaged:
				sb.WriteString(engaged)
			default:
				sb.WriteString(single)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
