package tui

import (
	"sync"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/ports"
	"github.com/gdamore/tcell/v2"
)

// Terminal cell size of one grid node.
const (
	CellCols = 4
	CellRows = 2
)

var (
	styleSingle  = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	styleEngaged = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleCursor  = tcell.StyleDefault.Reverse(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Canvas mirrors the grid on a tcell screen. It receives renderer
// notifications while the model mutates and paints on Draw.
type Canvas struct {
	mu       sync.Mutex
	screen   tcell.Screen
	nodes    map[domain.Coord]domain.Node
	expanded int
}

var _ ports.Renderer = (*Canvas)(nil)

// NewCanvas creates a canvas drawing on screen. The screen must be initialized.
func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{
		screen: screen,
		nodes:  make(map[domain.Coord]domain.Node),
	}
}

func (c *Canvas) OnBoundExpanded(domain.Direction) {
	c.mu.Lock()
	c.expanded++
	c.mu.Unlock()
}

func (c *Canvas) OnNodeCreated(node domain.Node, _ domain.Pixel) {
	c.mu.Lock()
	c.nodes[node.Coord] = node
	c.mu.Unlock()
}

func (c *Canvas) OnNodeEngaged(node domain.Node, descriptor string, _ domain.Pixel) {
	c.mu.Lock()
	node.Descriptor = descriptor
	node.State = domain.StateEngaged
	c.nodes[node.Coord] = node
	c.mu.Unlock()
}

func (c *Canvas) OnNodeRemoved(node domain.Node) {
	c.mu.Lock()
	delete(c.nodes, node.Coord)
	c.mu.Unlock()
}

// Expansions returns how many unit expansions were reported.
func (c *Canvas) Expansions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded
}

// Len returns the number of nodes the canvas knows about.
func (c *Canvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.nodes)
}

// Draw paints every node, highlights cursor and writes status on the last row.
func (c *Canvas) Draw(cursor domain.Coord, status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.screen.Clear()
	b := c.extent(cursor)
	for coord, n := range c.nodes {
		col, row := c.cell(coord, b)
		glyph, style := " + ", styleSingle
		if n.State == domain.StateEngaged {
			glyph, style = "["+string(firstRune(n.Descriptor))+"]", styleEngaged
		}
		if coord == cursor {
			style = styleCursor
		}
		c.put(col, row, glyph, style)
	}
	if _, ok := c.nodes[cursor]; !ok {
		col, row := c.cell(cursor, b)
		c.put(col, row, " . ", styleCursor)
	}

	_, h := c.screen.Size()
	c.put(0, h-1, status, styleStatus)
	c.screen.Show()
}

// extent is the bound of the known nodes, stretched to include cursor.
func (c *Canvas) extent(cursor domain.Coord) domain.Bound {
	var b domain.Bound
	grow := func(p domain.Coord) {
		for _, d := range domain.Directions {
			if r := domain.Reach(p, d); r > b.Get(d) {
				switch d {
				case domain.North:
					b.North = r
				case domain.East:
					b.East = r
				case domain.South:
					b.South = r
				case domain.West:
					b.West = r
				}
			}
		}
	}
	for coord := range c.nodes {
		grow(coord)
	}
	grow(cursor)
	return b
}

func (c *Canvas) cell(coord domain.Coord, b domain.Bound) (col, row int) {
	return (coord.X + b.West) * CellCols, (b.North - coord.Y) * CellRows
}

func (c *Canvas) put(col, row int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		c.screen.SetContent(col+i, row, r, nil, style)
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '?'
}
