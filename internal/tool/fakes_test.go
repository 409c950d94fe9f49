package tool

import (
	"github.com/dshills/pianoroll/internal/geom"
	"github.com/dshills/pianoroll/internal/grid"
	"github.com/dshills/pianoroll/internal/note"
)

type resizeCall struct {
	id     note.ID
	bounds geom.Rect
}

type moveCall struct {
	ids   []note.ID
	delta geom.Point
}

type clickCall struct {
	ids []note.ID
	ev  Event
}

// recorder is a Listener that records every intent.
type recorder struct {
	notes []note.Note

	creates []note.Placement
	resizes []resizeCall
	moves   []moveCall
	selects [][]note.ID
	clicks  []clickCall
}

func (r *recorder) OnCreateNote(p note.Placement) { r.creates = append(r.creates, p) }

func (r *recorder) OnResizeNote(id note.ID, b geom.Rect) {
	r.resizes = append(r.resizes, resizeCall{id, b})
}

func (r *recorder) OnMoveNotes(ids []note.ID, d geom.Point) {
	r.moves = append(r.moves, moveCall{ids, d})
}

func (r *recorder) OnSelectNotes(ids []note.ID) { r.selects = append(r.selects, ids) }

func (r *recorder) OnClickNotes(ids []note.ID, ev Event) {
	r.clicks = append(r.clicks, clickCall{ids, ev})
}

func (r *recorder) Notes() []note.Note { return r.notes }

func (r *recorder) intents() int {
	return len(r.creates) + len(r.resizes) + len(r.moves) + len(r.selects) + len(r.clicks)
}

// stage is a Container whose local space is the stage shifted by origin.
type stage struct {
	origin geom.Point
	notes  func() []note.Note
}

func (s *stage) GlobalToLocal(x, y float64) geom.Point {
	return geom.Point{X: x - s.origin.X, Y: y - s.origin.Y}
}

func (s *stage) NoteAt(p geom.Point) (note.Note, bool) {
	ns := s.notes()
	for i := len(ns) - 1; i >= 0; i-- {
		if ns[i].Bounds.Hit(p) {
			return ns[i], true
		}
	}
	return note.Note{}, false
}

type cursorLog struct {
	set []Cursor
}

func (c *cursorLog) SetCursor(cur Cursor) { c.set = append(c.set, cur) }

var testGrid = grid.MustNew(10, 12)

func newRecorder(notes ...note.Note) (*recorder, *stage) {
	r := &recorder{notes: notes}
	return r, &stage{notes: r.Notes}
}

func mkNote(id string, x, y, w, h float64) note.Note {
	return note.Note{ID: note.ID(id), Bounds: geom.Rect{X: x, Y: y, Width: w, Height: h}}
}

// at builds a background event at stage coordinates.
func at(x, y float64) Event {
	return Event{StageX: x, StageY: y, LocalX: x, LocalY: y}
}

// on builds an event targeting n at stage coordinates (no container offset).
func on(n note.Note, x, y float64) Event {
	return Event{
		StageX: x,
		StageY: y,
		LocalX: x - n.Bounds.X,
		LocalY: y - n.Bounds.Y,
		Target: &n,
	}
}
