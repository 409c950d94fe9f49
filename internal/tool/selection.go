package tool

import (
	"github.com/dshills/pianoroll/internal/geom"
	"github.com/dshills/pianoroll/internal/grid"
	"github.com/dshills/pianoroll/internal/logging"
	"github.com/dshills/pianoroll/internal/note"
)

// SelectionState is a snapshot of the selection rectangle.
type SelectionState struct {
	// Rect is the marquee or committed selection bounds.
	Rect geom.Rect
	// Fixed is true once the marquee has been committed.
	Fixed bool
	// Visible is true once the rectangle has been drawn.
	Visible bool
	// Selected are the notes captured when the rectangle was fixed.
	Selected []note.ID
}

// Empty reports whether there is no committed selection.
func (s SelectionState) Empty() bool {
	return !s.Fixed
}

// selectionGesture is the per-gesture state of the selection tool. The zero
// value means no pointer is held.
type selectionGesture struct {
	active bool

	// start is the pointer-down point in local coordinates.
	start geom.Point

	// offset is start relative to the rectangle origin at pointer-down.
	offset geom.Point

	// inside is true when the gesture began inside a fixed selection.
	inside bool

	// moved is true once the gesture produced a non-zero snapped delta.
	moved bool
}

// Selection draws marquees and drags or clicks fixed selections.
type Selection struct {
	q         grid.Quantizer
	container Container
	listener  Listener
	log       *logging.Logger

	rect     geom.Rect
	fixed    bool
	visible  bool
	selected []note.ID

	gesture selectionGesture
}

// NewSelection creates a selection tool.
func NewSelection(q grid.Quantizer, c Container, l Listener, opts ...Option) *Selection {
	o := buildOptions("selection", opts)
	return &Selection{
		q:         q,
		container: c,
		listener:  l,
		log:       o.logger,
	}
}

// SetQuantizer replaces the grid. It must not be called mid-gesture.
func (s *Selection) SetQuantizer(q grid.Quantizer) {
	s.q = q
}

// State returns a snapshot of the selection.
func (s *Selection) State() SelectionState {
	var sel []note.ID
	if len(s.selected) > 0 {
		sel = append([]note.ID(nil), s.selected...)
	}
	return SelectionState{
		Rect:     s.rect,
		Fixed:    s.fixed,
		Visible:  s.visible,
		Selected: sel,
	}
}

// Active reports whether a gesture is in progress.
func (s *Selection) Active() bool {
	return s.gesture.active
}

// Clear drops any selection and notifies the listener if one existed.
func (s *Selection) Clear() {
	s.reset(s.rect.Origin(), s.fixed)
	s.gesture = selectionGesture{}
}

// OnMouseDown starts a gesture. Pressing outside the fixed selection
// discards it, tells the listener nothing is selected, and anchors a new
// marquee at the pointer.
func (s *Selection) OnMouseDown(ev Event) {
	p := s.container.GlobalToLocal(ev.StageX, ev.StageY)

	inside := s.fixed && s.rect.Contains(p)
	if !inside {
		s.reset(p, true)
	}

	s.gesture = selectionGesture{
		active: true,
		start:  p,
		offset: p.Sub(s.rect.Origin()),
		inside: inside,
	}
}

// OnMouseMove grows the marquee, or drags the fixed selection.
func (s *Selection) OnMouseMove(ev Event) {
	if !s.gesture.active {
		return
	}

	p := s.container.GlobalToLocal(ev.StageX, ev.StageY)
	s.visible = true

	if s.fixed {
		s.dragSelection(p)
		return
	}
	s.rect = s.marquee(s.gesture.start, p)
}

// OnMouseUp fixes an unfixed rectangle and selects what it contains, or
// forwards a click on the fixed selection. A press with no drag fixes the
// zero-size rectangle at the press point.
func (s *Selection) OnMouseUp(ev Event) {
	if !s.gesture.active {
		return
	}
	g := s.gesture
	s.gesture = selectionGesture{}

	switch {
	case !s.fixed:
		s.commit()
	case s.fixed && g.inside && !g.moved:
		s.log.Debug("click through on %d notes", len(s.selected))
		s.listener.OnClickNotes(s.State().Selected, ev)
	}
}

// reset returns to the empty state anchored at p.
func (s *Selection) reset(p geom.Point, notify bool) {
	s.rect = geom.Rect{X: p.X, Y: p.Y}
	s.fixed = false
	s.visible = false
	s.selected = nil
	if notify {
		s.listener.OnSelectNotes(nil)
	}
}

// dragSelection moves the fixed rectangle and its notes so the rectangle
// origin follows the pointer minus the grab offset, snapped to the grid.
func (s *Selection) dragSelection(p geom.Point) {
	target := s.q.SnapPoint(p.Sub(s.gesture.offset))
	delta := target.Sub(s.rect.Origin())
	if delta.IsZero() {
		return
	}

	s.gesture.moved = true
	if len(s.selected) > 0 {
		s.listener.OnMoveNotes(s.State().Selected, delta)
	}
	s.rect = s.rect.MoveTo(target)
}

// marquee returns the snapped rectangle spanning a and b. Each corner is
// snapped on its own, and an axis that collapses takes one grid unit.
func (s *Selection) marquee(a, b geom.Point) geom.Rect {
	r := geom.RectFromPoints(a, b)

	x0, y0 := s.q.RoundX(r.X), s.q.RoundY(r.Y)
	x1, y1 := s.q.RoundX(r.Right()), s.q.RoundY(r.Bottom())

	w, h := x1-x0, y1-y0
	if w == 0 {
		w = s.q.UnitX()
	}
	if h == 0 {
		h = s.q.UnitY()
	}
	return geom.Rect{X: x0, Y: y0, Width: w, Height: h}
}

// commit fixes the marquee and selects every note whose top-left corner
// lies inside it.
func (s *Selection) commit() {
	s.fixed = true

	var ids []note.ID
	for _, n := range s.listener.Notes() {
		if s.rect.Contains(n.Position()) {
			ids = append(ids, n.ID)
		}
	}
	s.selected = ids

	s.log.Debug("selected %d notes in %+v", len(ids), s.rect)
	s.listener.OnSelectNotes(s.State().Selected)
}
