package tool

import (
	"github.com/dshills/pianoroll/internal/drag"
	"github.com/dshills/pianoroll/internal/geom"
	"github.com/dshills/pianoroll/internal/grid"
	"github.com/dshills/pianoroll/internal/logging"
	"github.com/dshills/pianoroll/internal/note"
)

// noteDrag is the per-gesture state of a pencil drag. The zero value means
// no drag is in progress.
type noteDrag struct {
	active bool
	id     note.ID

	// origin is the note's bounds at pointer-down.
	origin geom.Rect

	// offset is the pointer's position relative to origin's top-left corner
	// at pointer-down.
	offset geom.Point

	// region is decided at pointer-down and never recomputed.
	region drag.Region

	// last is the most recently emitted bounds.
	last geom.Rect
}

// Pencil creates notes and resizes or moves one note per drag.
type Pencil struct {
	q         grid.Quantizer
	container Container
	listener  Listener
	cursor    CursorSink
	edgeCap   float64
	log       *logging.Logger

	drag noteDrag

	lastCursor Cursor
	hasCursor  bool
}

// NewPencil creates a pencil tool.
func NewPencil(q grid.Quantizer, c Container, l Listener, opts ...Option) *Pencil {
	o := buildOptions("pencil", opts)
	if o.edgeCap <= 0 {
		o.edgeCap = drag.DefaultEdgeCap
	}
	return &Pencil{
		q:         q,
		container: c,
		listener:  l,
		cursor:    o.cursor,
		edgeCap:   o.edgeCap,
		log:       o.logger,
	}
}

// SetQuantizer replaces the grid. It must not be called mid-drag.
func (p *Pencil) SetQuantizer(q grid.Quantizer) {
	p.q = q
}

// Dragging reports whether a note drag is in progress.
func (p *Pencil) Dragging() bool {
	return p.drag.active
}

// DragRegion returns the region captured for the current drag.
func (p *Pencil) DragRegion() (drag.Region, bool) {
	return p.drag.region, p.drag.active
}

// OnMouseDown creates a note on empty canvas or starts dragging the note
// under the pointer.
func (p *Pencil) OnMouseDown(ev Event) {
	p.drag = noteDrag{}

	if ev.OnBackground() {
		at := p.q.FloorPoint(p.container.GlobalToLocal(ev.StageX, ev.StageY))
		placement := note.Placement{X: at.X, Y: at.Y, Width: p.q.UnitX()}
		p.log.Debug("create at (%g, %g)", placement.X, placement.Y)
		p.listener.OnCreateNote(placement)
		return
	}

	target := *ev.Target
	p.drag = noteDrag{
		active: true,
		id:     target.ID,
		origin: target.Bounds,
		offset: geom.Point{X: ev.LocalX, Y: ev.LocalY},
		region: drag.ClassifyWithCap(ev.LocalX, target.Bounds.Width, p.edgeCap),
		last:   target.Bounds,
	}
	p.log.WithField("note", target.ID).Debug("drag %s", p.drag.region)
}

// OnMouseMove updates the dragged note, or refreshes hover feedback when no
// drag is in progress.
func (p *Pencil) OnMouseMove(ev Event) {
	if !p.drag.active {
		p.hover(ev)
		return
	}

	local := p.container.GlobalToLocal(ev.StageX, ev.StageY)
	bounds := p.dragBounds(local)
	if bounds == p.drag.last {
		return
	}
	p.drag.last = bounds
	p.listener.OnResizeNote(p.drag.id, bounds)
}

// OnMouseUp ends the drag.
func (p *Pencil) OnMouseUp(Event) {
	if p.drag.active {
		p.log.WithField("note", p.drag.id).Debug("drag done")
	}
	p.drag = noteDrag{}
}

// dragBounds computes the dragged note's bounds for a pointer at local.
// Widths are not clamped; the listener decides what to do with them.
func (p *Pencil) dragBounds(local geom.Point) geom.Rect {
	b := p.drag.origin
	switch p.drag.region {
	case drag.LeftEdge:
		qx := p.q.RoundX(local.X)
		b.Width = p.drag.origin.Width + p.drag.origin.X - qx
		b.X = qx
	case drag.RightEdge:
		qx := p.q.RoundX(local.X)
		b.Width = qx - p.drag.origin.X
	default:
		b.X = p.q.RoundX(local.X - p.drag.offset.X)
		b.Y = p.q.RoundY(local.Y - p.drag.offset.Y)
	}
	return b
}

// hover updates the cursor for whatever note is under the pointer. It only
// touches the cursor.
func (p *Pencil) hover(ev Event) {
	if p.cursor == nil {
		return
	}

	local := p.container.GlobalToLocal(ev.StageX, ev.StageY)
	c := CursorDefault
	if n, ok := p.container.NoteAt(local); ok {
		switch drag.ClassifyWithCap(local.X-n.Bounds.X, n.Bounds.Width, p.edgeCap) {
		case drag.LeftEdge, drag.RightEdge:
			c = CursorResize
		default:
			c = CursorMove
		}
	}

	if p.hasCursor && c == p.lastCursor {
		return
	}
	p.lastCursor, p.hasCursor = c, true
	p.cursor.SetCursor(c)
}

// ResetHover forgets the last reported cursor so the next hover reports
// again.
func (p *Pencil) ResetHover() {
	p.hasCursor = false
}
