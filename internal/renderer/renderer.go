package renderer

import (
	"math"

	"github.com/dshills/pianoroll/internal/grid"
	"github.com/dshills/pianoroll/internal/note"
	"github.com/dshills/pianoroll/internal/renderer/backend"
	"github.com/dshills/pianoroll/internal/renderer/statusline"
	"github.com/dshills/pianoroll/internal/renderer/viewport"
	"github.com/dshills/pianoroll/internal/tool"
)

// DefaultBarLength is the number of grid units per bar line.
const DefaultBarLength = 4

// Frame is everything one render needs.
type Frame struct {
	Notes     []note.Note
	Selected  note.Set
	Selection tool.SelectionState
	Grid      grid.Quantizer
}

// Renderer draws frames onto a backend. The last screen row is the status
// line; the rest is the roll.
type Renderer struct {
	backend  backend.Backend
	viewport *viewport.Viewport
	status   *statusline.StatusLine

	barLength int
}

// New creates a renderer sized to the backend.
func New(b backend.Backend, vp *viewport.Viewport) *Renderer {
	r := &Renderer{
		backend:   b,
		viewport:  vp,
		status:    statusline.New(),
		barLength: DefaultBarLength,
	}
	r.Resize(b.Size())
	return r
}

// StatusLine returns the status line model.
func (r *Renderer) StatusLine() *statusline.StatusLine {
	return r.status
}

// Viewport returns the viewport.
func (r *Renderer) Viewport() *viewport.Viewport {
	return r.viewport
}

// Resize adapts the roll area to a new screen size.
func (r *Renderer) Resize(width, height int) {
	r.viewport.Resize(width, height-1)
}

// Render draws f and flushes it.
func (r *Renderer) Render(f Frame) {
	r.backend.Clear()

	width, height := r.backend.Size()
	rows := height - 1

	r.drawGrid(f.Grid, width, rows)
	for _, n := range f.Notes {
		r.drawNote(n, f.Selected.Has(n.ID))
	}
	if f.Selection.Visible {
		r.drawSelection(f.Selection)
	}

	r.status.SetGrid(f.Grid.String())
	r.status.SetCounts(len(f.Notes), len(f.Selected))
	if rows >= 0 {
		r.status.Render(r.backend, rows, width)
	}

	r.backend.Show()
}

// drawGrid marks every column that contains a grid line. Every barLength-th
// line is a bar.
func (r *Renderer) drawGrid(q grid.Quantizer, width, rows int) {
	unit := q.UnitX()
	if unit <= 0 {
		return
	}

	for col := 0; col < width; col++ {
		x0, x1 := r.viewport.ColumnPixels(col)
		k := math.Ceil(x0 / unit)
		if k*unit >= x1 {
			continue
		}

		cell := backend.Cell{Rune: '·', Style: backend.StyleGrid}
		if int(k)%r.barLength == 0 {
			cell = backend.Cell{Rune: '│', Style: backend.StyleBar}
		}
		for row := 0; row < rows; row++ {
			r.backend.SetCell(col, row, cell)
		}
	}
}

func (r *Renderer) drawNote(n note.Note, selected bool) {
	c0, r0, c1, r1, ok := r.viewport.Span(n.Bounds)
	if !ok {
		return
	}

	body, edge := backend.StyleNote, backend.StyleNoteEdge
	if selected {
		body, edge = backend.StyleSelected, backend.StyleSelected
	}

	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			cell := backend.Cell{Rune: ' ', Style: body}
			switch {
			case c1-c0 == 1:
				cell = backend.Cell{Rune: '■', Style: edge}
			case col == c0:
				cell = backend.Cell{Rune: '[', Style: edge}
			case col == c1-1:
				cell = backend.Cell{Rune: ']', Style: edge}
			}
			r.backend.SetCell(col, row, cell)
		}
	}
}

// drawSelection outlines the selection rectangle with box-drawing runes.
func (r *Renderer) drawSelection(s tool.SelectionState) {
	c0, r0, c1, r1, ok := r.viewport.Span(s.Rect)
	if !ok {
		return
	}
	right, bottom := c1-1, r1-1

	set := func(col, row int, ch rune) {
		r.backend.SetCell(col, row, backend.Cell{Rune: ch, Style: backend.StyleMarquee})
	}
	for col := c0; col <= right; col++ {
		set(col, r0, '─')
		set(col, bottom, '─')
	}
	for row := r0; row <= bottom; row++ {
		set(c0, row, '│')
		set(right, row, '│')
	}
	set(c0, r0, '┌')
	set(right, r0, '┐')
	set(c0, bottom, '└')
	set(right, bottom, '┘')
}
