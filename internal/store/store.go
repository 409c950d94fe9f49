// Package store holds the notes being edited and applies the intents the
// interaction tools emit.
//
// Store implements tool.Listener. Every mutation bumps a generation counter
// and keeps a spatial index in step, so hover and hit-testing never scan
// the whole roll.
package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/pianoroll/internal/geom"
	"github.com/dshills/pianoroll/internal/grid"
	"github.com/dshills/pianoroll/internal/logging"
	"github.com/dshills/pianoroll/internal/note"
	"github.com/dshills/pianoroll/internal/spatial"
	"github.com/dshills/pianoroll/internal/tool"
)

// ClickHook is called when the selection tool forwards a click.
type ClickHook func(ids []note.ID, ev tool.Event)

// SelectHook is called after the selection changes.
type SelectHook func(ids []note.ID)

// Store is an in-memory note store. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	q        grid.Quantizer
	notes    []note.Note
	byID     map[note.ID]int
	selected note.Set

	generation uint64
	index      *spatial.Index

	observers []observerEntry
	nextObs   uint64

	onClick  ClickHook
	onSelect SelectHook

	newID func() note.ID
	log   *logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		s.log = logging.OrNop(l).WithComponent("store")
	}
}

// WithClickHook registers a hook for click-through on selections.
func WithClickHook(h ClickHook) Option {
	return func(s *Store) {
		s.onClick = h
	}
}

// WithSelectHook registers a hook for selection changes.
func WithSelectHook(h SelectHook) Option {
	return func(s *Store) {
		s.onSelect = h
	}
}

// WithIDGenerator replaces the uuid generator. Used by tests.
func WithIDGenerator(gen func() note.ID) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New creates an empty store on grid q.
func New(q grid.Quantizer, opts ...Option) *Store {
	s := &Store{
		q:        q,
		byID:     make(map[note.ID]int),
		selected: note.NewSet(),
		index:    spatial.New(q.UnitY()),
		newID:    func() note.ID { return note.ID(uuid.NewString()) },
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetQuantizer changes the grid used for new notes and width clamping.
func (s *Store) SetQuantizer(q grid.Quantizer) {
	s.mu.Lock()
	s.q = q
	s.mu.Unlock()
	s.index.SetRowHeight(q.UnitY())
}

// Quantizer returns the current grid.
func (s *Store) Quantizer() grid.Quantizer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.q
}

// Generation returns the mutation counter.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Get returns the note with the given ID.
func (s *Store) Get(id note.ID) (note.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return note.Note{}, false
	}
	return s.notes[i], true
}

// Notes returns a copy of every note in paint order.
func (s *Store) Notes() []note.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]note.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Selected returns the selected IDs, sorted.
func (s *Store) Selected() []note.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected.Slice()
}

// IsSelected reports whether id is selected.
func (s *Store) IsSelected(id note.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected.Has(id)
}

// NoteAt returns the topmost note whose bounds hit p.
func (s *Store) NoteAt(p geom.Point) (note.Note, bool) {
	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	if s.index.Stale(gen) {
		s.mu.RLock()
		s.index.Rebuild(s.generation, s.notes)
		s.mu.RUnlock()
	}
	return s.index.NoteAt(p)
}

// Add inserts a note with explicit bounds and returns its ID.
func (s *Store) Add(bounds geom.Rect) note.ID {
	s.mu.Lock()
	n := note.Note{ID: s.newID(), Bounds: bounds}
	s.insertLocked(n)
	gen := s.generation
	s.mu.Unlock()

	s.notify(Change{Type: ChangeCreate, IDs: []note.ID{n.ID}, Generation: gen})
	return n.ID
}

// Delete removes the given notes. Unknown IDs are ignored.
func (s *Store) Delete(ids []note.ID) int {
	s.mu.Lock()
	var removed []note.ID
	for _, id := range ids {
		i, ok := s.byID[id]
		if !ok {
			continue
		}
		s.notes = append(s.notes[:i], s.notes[i+1:]...)
		delete(s.byID, id)
		delete(s.selected, id)
		removed = append(removed, id)
		s.reindexFromLocked(i)
	}
	if len(removed) == 0 {
		s.mu.Unlock()
		return 0
	}
	s.generation++
	for _, id := range removed {
		s.index.Remove(s.generation, id)
	}
	gen := s.generation
	s.mu.Unlock()

	s.log.Debug("deleted %d notes", len(removed))
	s.notify(Change{Type: ChangeDelete, IDs: removed, Generation: gen})
	return len(removed)
}

// OnCreateNote adds a note one grid row tall at the requested placement.
func (s *Store) OnCreateNote(p note.Placement) {
	s.mu.Lock()
	w := p.Width
	if w < s.q.UnitX() {
		w = s.q.UnitX()
	}
	n := note.Note{
		ID:     s.newID(),
		Bounds: geom.Rect{X: p.X, Y: p.Y, Width: w, Height: s.q.UnitY()},
	}
	s.insertLocked(n)
	gen := s.generation
	s.mu.Unlock()

	s.log.WithField("note", n.ID).Debug("create %+v", n.Bounds)
	s.notify(Change{Type: ChangeCreate, IDs: []note.ID{n.ID}, Generation: gen})
}

// OnResizeNote applies new bounds to a note. Widths below one grid unit are
// clamped; a shrinking left edge stops one unit short of the right edge.
func (s *Store) OnResizeNote(id note.ID, bounds geom.Rect) {
	s.mu.Lock()
	i, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		s.log.WithField("note", id).Warn("resize of unknown note")
		return
	}

	cur := s.notes[i].Bounds
	b := clampWidth(cur, bounds, s.q.UnitX())
	if b == cur {
		s.mu.Unlock()
		return
	}
	s.notes[i].Bounds = b
	s.generation++
	s.index.Upsert(s.generation, s.notes[i])
	gen := s.generation
	s.mu.Unlock()

	s.log.WithField("note", id).Debug("resize %+v", b)
	s.notify(Change{Type: ChangeResize, IDs: []note.ID{id}, Generation: gen})
}

// OnMoveNotes translates every listed note by delta.
func (s *Store) OnMoveNotes(ids []note.ID, delta geom.Point) {
	if delta.IsZero() {
		return
	}

	s.mu.Lock()
	var moved []note.ID
	for _, id := range ids {
		i, ok := s.byID[id]
		if !ok {
			continue
		}
		s.notes[i].Bounds = s.notes[i].Bounds.Translate(delta)
		moved = append(moved, id)
	}
	if len(moved) == 0 {
		s.mu.Unlock()
		return
	}
	s.generation++
	for _, id := range moved {
		s.index.Upsert(s.generation, s.notes[s.byID[id]])
	}
	gen := s.generation
	s.mu.Unlock()

	s.log.Debug("move %d notes by %v", len(moved), delta)
	s.notify(Change{Type: ChangeMove, IDs: moved, Generation: gen})
}

// OnSelectNotes replaces the selection. An empty ids clears it.
func (s *Store) OnSelectNotes(ids []note.ID) {
	s.mu.Lock()
	sel := note.NewSet()
	for _, id := range ids {
		if _, ok := s.byID[id]; ok {
			sel[id] = struct{}{}
		}
	}
	s.selected = sel
	gen := s.generation
	hook := s.onSelect
	s.mu.Unlock()

	out := sel.Slice()
	s.log.Debug("select %d notes", len(out))
	s.notify(Change{Type: ChangeSelect, IDs: out, Generation: gen})
	if hook != nil {
		hook(out)
	}
}

// OnClickNotes forwards a click-through to the click hook.
func (s *Store) OnClickNotes(ids []note.ID, ev tool.Event) {
	s.mu.RLock()
	hook := s.onClick
	gen := s.generation
	s.mu.RUnlock()

	s.log.Debug("click on %d notes", len(ids))
	s.notify(Change{Type: ChangeClick, IDs: ids, Generation: gen})
	if hook != nil {
		hook(ids, ev)
	}
}

func (s *Store) insertLocked(n note.Note) {
	s.byID[n.ID] = len(s.notes)
	s.notes = append(s.notes, n)
	s.generation++
	s.index.Upsert(s.generation, n)
}

func (s *Store) reindexFromLocked(from int) {
	for i := from; i < len(s.notes); i++ {
		s.byID[s.notes[i].ID] = i
	}
}

// clampWidth keeps a resized note at least one unit wide. Pure moves keep
// their width untouched.
func clampWidth(cur, b geom.Rect, unit float64) geom.Rect {
	if b.Width == cur.Width || b.Width >= unit {
		return b
	}
	if b.X != cur.X {
		right := b.X + b.Width
		b.X = right - unit
	}
	b.Width = unit
	return b
}
