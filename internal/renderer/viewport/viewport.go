// Package viewport maps terminal cells onto the roll's pixel space.
//
// The roll is measured in pixels: X is time, Y is pitch. Each terminal cell
// covers CellWidth by CellHeight pixels. Stage coordinates are pixels
// relative to the top-left of the terminal; local coordinates add the scroll
// offset so they address the whole roll.
package viewport

import (
	"math"
	"sync"

	"github.com/dshills/pianoroll/internal/geom"
)

// MaxScroll is the furthest the window can scroll on either axis, in cells.
const MaxScroll = 1 << 16

// Viewport is the visible window of the roll. It is safe for concurrent
// use.
type Viewport struct {
	mu sync.RWMutex

	cellW, cellH float64

	// First visible column and row of the roll, in cells.
	leftCol, topRow int

	// Size in screen cells.
	width, height int
}

// New creates a viewport with the given cell size in pixels. Non-positive
// sizes fall back to 1.
func New(cellW, cellH float64) *Viewport {
	v := &Viewport{width: 1, height: 1}
	v.SetCellSize(cellW, cellH)
	return v
}

// SetCellSize changes how many pixels one cell covers.
func (v *Viewport) SetCellSize(cellW, cellH float64) {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	v.mu.Lock()
	v.cellW, v.cellH = cellW, cellH
	v.mu.Unlock()
}

// CellSize returns the pixel size of one cell.
func (v *Viewport) CellSize() (w, h float64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cellW, v.cellH
}

// Resize updates the visible size in cells, clamped to at least 1.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// Size returns the visible size in cells.
func (v *Viewport) Size() (width, height int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width, v.height
}

// Scroll moves the window by whole cells, keeping each offset within
// [0, MaxScroll].
func (v *Viewport) Scroll(dCol, dRow int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.leftCol = geom.Clamp(v.leftCol+dCol, 0, MaxScroll)
	v.topRow = geom.Clamp(v.topRow+dRow, 0, MaxScroll)
}

// Offset returns the first visible column and row.
func (v *Viewport) Offset() (col, row int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.leftCol, v.topRow
}

// CellToStage returns the stage point at the center of screen cell
// (col, row).
func (v *Viewport) CellToStage(col, row int) geom.Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return geom.Pt((float64(col)+0.5)*v.cellW, (float64(row)+0.5)*v.cellH)
}

// StageToLocal converts a stage point into roll coordinates.
func (v *Viewport) StageToLocal(x, y float64) geom.Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return geom.Pt(x+float64(v.leftCol)*v.cellW, y+float64(v.topRow)*v.cellH)
}

// LocalToCell returns the screen cell holding roll point p. The result may
// lie outside the visible area.
func (v *Viewport) LocalToCell(p geom.Point) (col, row int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	col = int(math.Floor(p.X/v.cellW)) - v.leftCol
	row = int(math.Floor(p.Y/v.cellH)) - v.topRow
	return col, row
}

// Span returns the half-open range of screen cells a roll rectangle
// covers, clipped to the visible area. ok is false when nothing is visible.
func (v *Viewport) Span(r geom.Rect) (c0, r0, c1, r1 int, ok bool) {
	r = r.Normalize()

	v.mu.RLock()
	defer v.mu.RUnlock()

	lo, hi := r.Origin(), r.Max()
	c0 = int(math.Floor(lo.X/v.cellW)) - v.leftCol
	r0 = int(math.Floor(lo.Y/v.cellH)) - v.topRow
	c1 = int(math.Ceil(hi.X/v.cellW)) - v.leftCol
	r1 = int(math.Ceil(hi.Y/v.cellH)) - v.topRow

	// A zero-size rectangle still occupies its cell.
	if c1 <= c0 {
		c1 = c0 + 1
	}
	if r1 <= r0 {
		r1 = r0 + 1
	}

	c0, c1 = geom.Clamp(c0, 0, v.width), geom.Clamp(c1, 0, v.width)
	r0, r1 = geom.Clamp(r0, 0, v.height), geom.Clamp(r1, 0, v.height)
	return c0, r0, c1, r1, c0 < c1 && r0 < r1
}

// ColumnPixels returns the roll pixel range [x0, x1) of screen column col.
func (v *Viewport) ColumnPixels(col int) (x0, x1 float64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	x0 = float64(col+v.leftCol) * v.cellW
	return x0, x0 + v.cellW
}
