package app

import (
	"github.com/dshills/pianoroll/internal/geom"
	"github.com/dshills/pianoroll/internal/note"
	"github.com/dshills/pianoroll/internal/renderer/backend"
	"github.com/dshills/pianoroll/internal/renderer/viewport"
	"github.com/dshills/pianoroll/internal/store"
	"github.com/dshills/pianoroll/internal/tool"
)

// canvas is the tools' view of the roll: the viewport for coordinates and
// the store's index for hit-testing.
type canvas struct {
	vp    *viewport.Viewport
	notes *store.Store
}

func (c canvas) GlobalToLocal(stageX, stageY float64) geom.Point {
	return c.vp.StageToLocal(stageX, stageY)
}

func (c canvas) NoteAt(p geom.Point) (note.Note, bool) {
	return c.notes.NoteAt(p)
}

// toolEvent maps a pointer cell to a tool event, targeting the topmost note
// under the cell's center.
func (c canvas) toolEvent(pe backend.PointerEvent) tool.Event {
	stage := c.vp.CellToStage(pe.X, pe.Y)
	local := c.vp.StageToLocal(stage.X, stage.Y)

	ev := tool.Event{
		StageX: stage.X,
		StageY: stage.Y,
		LocalX: local.X,
		LocalY: local.Y,
	}
	if n, ok := c.notes.NoteAt(local); ok {
		ev.Target = &n
		ev.LocalX -= n.Bounds.X
		ev.LocalY -= n.Bounds.Y
	}
	return ev
}
