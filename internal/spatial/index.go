// Package spatial answers "which note is under this point" without scanning
// every note.
//
// Notes are bucketed by pitch row. Within a row they are kept sorted by start
// time alongside a running maximum of end times, so a point query is a
// binary search followed by a short backward walk over the notes that can
// still overlap the point. The index is keyed by the note store's generation
// counter so callers can tell when it is stale.
package spatial

import (
	"math"
	"sort"
	"sync"

	"github.com/dshills/pianoroll/internal/geom"
	"github.com/dshills/pianoroll/internal/note"
)

// Index is a point-query index over note rectangles.
// It is safe for concurrent use.
type Index struct {
	mu sync.RWMutex

	rowHeight  float64
	rows       map[int]*row
	entries    map[note.ID]entry
	seq        uint64
	generation uint64
}

type entry struct {
	bounds geom.Rect
	seq    uint64
	rowLo  int
	rowHi  int
}

type item struct {
	id    note.ID
	start float64
	end   float64
	seq   uint64
}

// row holds the notes overlapping one pitch row, sorted by (start, seq).
// maxEnd[i] is the largest end among items[0..i].
type row struct {
	items  []item
	maxEnd []float64
}

// New creates an index bucketed by rows of the given height. Non-positive
// heights fall back to 1.
func New(rowHeight float64) *Index {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	return &Index{
		rowHeight: rowHeight,
		rows:      make(map[int]*row),
		entries:   make(map[note.ID]entry),
	}
}

// Generation returns the store generation the index was last synced to.
func (x *Index) Generation() uint64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.generation
}

// Stale reports whether the index lags behind generation gen.
func (x *Index) Stale(gen uint64) bool {
	return x.Generation() != gen
}

// Len returns the number of indexed notes.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Rebuild replaces the contents with notes, in paint order, and records gen.
// It is a no-op when the index is already at gen.
func (x *Index) Rebuild(gen uint64, notes []note.Note) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if gen == x.generation && len(x.entries) > 0 {
		return
	}

	x.rows = make(map[int]*row)
	x.entries = make(map[note.ID]entry, len(notes))
	x.seq = 0
	for _, n := range notes {
		x.insertLocked(n, 0)
	}
	x.generation = gen
}

// SetRowHeight changes the bucket height and re-buckets every note.
func (x *Index) SetRowHeight(h float64) {
	if h <= 0 {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if h == x.rowHeight {
		return
	}
	x.rowHeight = h

	old := x.entries
	x.rows = make(map[int]*row)
	x.entries = make(map[note.ID]entry, len(old))

	ordered := make([]note.Note, 0, len(old))
	seqs := make(map[note.ID]uint64, len(old))
	for id, e := range old {
		ordered = append(ordered, note.Note{ID: id, Bounds: e.bounds})
		seqs[id] = e.seq
	}
	sort.Slice(ordered, func(i, j int) bool { return seqs[ordered[i].ID] < seqs[ordered[j].ID] })
	for _, n := range ordered {
		x.insertLocked(n, seqs[n.ID])
	}
}

// Upsert inserts or updates a note and records gen. An updated note keeps
// its paint order.
func (x *Index) Upsert(gen uint64, n note.Note) {
	x.mu.Lock()
	defer x.mu.Unlock()

	var seq uint64
	if e, ok := x.entries[n.ID]; ok {
		seq = e.seq
		x.removeLocked(n.ID, e)
	}
	x.insertLocked(n, seq)
	x.generation = gen
}

// Remove deletes a note and records gen.
func (x *Index) Remove(gen uint64, id note.ID) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if e, ok := x.entries[id]; ok {
		x.removeLocked(id, e)
	}
	x.generation = gen
}

// NoteAt returns the topmost note whose bounds contain p.
func (x *Index) NoteAt(p geom.Point) (note.Note, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	r, ok := x.rows[x.rowOf(p.Y)]
	if !ok {
		return note.Note{}, false
	}

	// Last item starting at or before p.X.
	i := sort.Search(len(r.items), func(i int) bool { return r.items[i].start > p.X }) - 1

	var (
		best  note.Note
		found bool
		top   uint64
	)
	for j := i; j >= 0 && r.maxEnd[j] > p.X; j-- {
		it := r.items[j]
		if p.X >= it.end {
			continue
		}
		e := x.entries[it.id]
		if !e.bounds.Hit(p) {
			continue
		}
		if !found || e.seq > top {
			best = note.Note{ID: it.id, Bounds: e.bounds}
			top = e.seq
			found = true
		}
	}
	return best, found
}

func (x *Index) rowOf(y float64) int {
	return int(math.Floor(y / x.rowHeight))
}

// insertLocked adds n. A zero seq assigns the next paint position.
func (x *Index) insertLocked(n note.Note, seq uint64) {
	if seq == 0 {
		x.seq++
		seq = x.seq
	}

	b := n.Bounds
	e := entry{bounds: b, seq: seq}
	if b.IsEmpty() {
		// Tracked so updates keep paint order, but never bucketed: empty
		// rectangles are never hit.
		e.rowLo, e.rowHi = 0, -1
		x.entries[n.ID] = e
		return
	}

	e.rowLo = x.rowOf(b.Y)
	e.rowHi = int(math.Ceil(b.Bottom()/x.rowHeight)) - 1
	if e.rowHi < e.rowLo {
		e.rowHi = e.rowLo
	}
	x.entries[n.ID] = e

	it := item{id: n.ID, start: b.X, end: b.Right(), seq: seq}
	for ri := e.rowLo; ri <= e.rowHi; ri++ {
		r := x.rows[ri]
		if r == nil {
			r = &row{}
			x.rows[ri] = r
		}
		r.insert(it)
	}
}

func (x *Index) removeLocked(id note.ID, e entry) {
	delete(x.entries, id)
	for ri := e.rowLo; ri <= e.rowHi; ri++ {
		r := x.rows[ri]
		if r == nil {
			continue
		}
		r.remove(id, e.bounds.X, e.seq)
		if len(r.items) == 0 {
			delete(x.rows, ri)
		}
	}
}

func (r *row) insert(it item) {
	pos := sort.Search(len(r.items), func(i int) bool {
		o := r.items[i]
		return o.start > it.start || (o.start == it.start && o.seq > it.seq)
	})
	r.items = append(r.items, item{})
	copy(r.items[pos+1:], r.items[pos:])
	r.items[pos] = it
	r.maxEnd = append(r.maxEnd, 0)
	r.recompute(pos)
}

func (r *row) remove(id note.ID, start float64, seq uint64) {
	pos := sort.Search(len(r.items), func(i int) bool {
		o := r.items[i]
		return o.start > start || (o.start == start && o.seq >= seq)
	})
	for ; pos < len(r.items); pos++ {
		if r.items[pos].id == id {
			break
		}
	}
	if pos == len(r.items) {
		return
	}
	r.items = append(r.items[:pos], r.items[pos+1:]...)
	r.maxEnd = r.maxEnd[:len(r.items)]
	r.recompute(pos)
}

// recompute refreshes maxEnd from index from onward.
func (r *row) recompute(from int) {
	for i := from; i < len(r.items); i++ {
		end := r.items[i].end
		if i > 0 && r.maxEnd[i-1] > end {
			end = r.maxEnd[i-1]
		}
		r.maxEnd[i] = end
	}
}
