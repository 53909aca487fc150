package tui

import (
	"fmt"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/ports"
	"github.com/gdamore/tcell/v2"
)

// Shape is a named descriptor offered by the editor palette.
type Shape struct {
	Name       string
	Descriptor string
}

// Editor is an interactive cursor editor over a diagram.
//
// Arrows move the cursor, Enter or Space places the current shape, x or
// Delete removes the shape under the cursor, Tab cycles the palette and
// q or Esc quits.
type Editor struct {
	screen  tcell.Screen
	canvas  *Canvas
	diagram ports.Diagram
	shapes  []Shape
	shape   int
	cursor  domain.Coord
	status  string
}

// NewEditor binds an editor to a diagram whose renderer is canvas.
func NewEditor(screen tcell.Screen, canvas *Canvas, diagram ports.Diagram, shapes []Shape) *Editor {
	if len(shapes) == 0 {
		shapes = []Shape{{Name: "box", Descriptor: "box"}}
	}
	return &Editor{
		screen:  screen,
		canvas:  canvas,
		diagram: diagram,
		shapes:  shapes,
		status:  "arrows move, enter places, x removes, tab cycles shapes, q quits",
	}
}

// Cursor returns the cell under the cursor.
func (e *Editor) Cursor() domain.Coord {
	return e.cursor
}

// Shape returns the palette entry that Enter places.
func (e *Editor) Shape() Shape {
	return e.shapes[e.shape]
}

// Status returns the last status line.
func (e *Editor) Status() string {
	return e.status
}

// Draw repaints the canvas with the cursor and status line.
func (e *Editor) Draw() {
	e.canvas.Draw(e.cursor, fmt.Sprintf("%s [%s] %s", e.cursor, e.Shape().Name, e.status))
}

// HandleKey applies one key press and reports whether the editor should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		e.move(domain.North)
	case tcell.KeyDown:
		e.move(domain.South)
	case tcell.KeyLeft:
		e.move(domain.West)
	case tcell.KeyRight:
		e.move(domain.East)
	case tcell.KeyEnter:
		e.engage()
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		e.remove()
	case tcell.KeyTab:
		e.shape = (e.shape + 1) % len(e.shapes)
		e.status = "shape " + e.Shape().Name
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			e.engage()
		case 'x':
			e.remove()
		}
	}
	return false
}

// Run draws and handles events until the user quits or the screen closes.
func (e *Editor) Run() {
	for {
		e.Draw()
		switch ev := e.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			e.screen.Sync()
		case *tcell.EventKey:
			if e.HandleKey(ev) {
				return
			}
		}
	}
}

func (e *Editor) move(d domain.Direction) {
	e.cursor = e.cursor.Step(d, 1)
	e.status = ""
}

func (e *Editor) engage() {
	shape := e.Shape()
	cs, err := e.diagram.RequestEngage(e.cursor.X, e.cursor.Y, shape.Descriptor)
	if err != nil {
		e.status = err.Error()
		return
	}
	e.status = fmt.Sprintf("placed %s, %d new attachment points", shape.Name, len(cs.Created))
}

func (e *Editor) remove() {
	cs, err := e.diagram.RequestRemove(e.cursor.X, e.cursor.Y)
	if err != nil {
		e.status = err.Error()
		return
	}
	e.status = fmt.Sprintf("removed %d nodes", len(cs.Removed))
}
