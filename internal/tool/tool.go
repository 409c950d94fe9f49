package tool

import (
	"github.com/dshills/pianoroll/internal/geom"
	"github.com/dshills/pianoroll/internal/grid"
	"github.com/dshills/pianoroll/internal/logging"
	"github.com/dshills/pianoroll/internal/note"
)

// Event is a pointer event already mapped into the editor's coordinate
// spaces.
type Event struct {
	// StageX and StageY are host coordinates; tools convert them with
	// Container.GlobalToLocal.
	StageX float64
	StageY float64

	// LocalX and LocalY are relative to Target's top-left corner, or to the
	// container when Target is nil.
	LocalX float64
	LocalY float64

	// Target is the note under the pointer, or nil for the background.
	Target *note.Note
}

// OnBackground reports whether the event targets empty canvas.
func (e Event) OnBackground() bool {
	return e.Target == nil
}

// Listener receives the intents tools produce. It owns the notes.
type Listener interface {
	OnCreateNote(p note.Placement)
	OnResizeNote(id note.ID, bounds geom.Rect)
	OnMoveNotes(ids []note.ID, delta geom.Point)
	OnSelectNotes(ids []note.ID)
	OnClickNotes(ids []note.ID, ev Event)

	// Notes returns every note, used for selection containment.
	Notes() []note.Note
}

// Container maps host coordinates into container-local space and hit-tests
// notes.
type Container interface {
	GlobalToLocal(stageX, stageY float64) geom.Point
	NoteAt(p geom.Point) (note.Note, bool)
}

// Cursor is the pointer affordance shown while hovering.
type Cursor uint8

const (
	// CursorDefault is shown over empty canvas.
	CursorDefault Cursor = iota
	// CursorResize is shown over a note edge.
	CursorResize
	// CursorMove is shown over a note body.
	CursorMove
)

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	switch c {
	case CursorResize:
		return "resize"
	case CursorMove:
		return "move"
	default:
		return "default"
	}
}

// CursorSink displays the hover affordance.
type CursorSink interface {
	SetCursor(c Cursor)
}

// Tool consumes one pointer stream.
type Tool interface {
	OnMouseDown(ev Event)
	OnMouseMove(ev Event)
	OnMouseUp(ev Event)
}

// Configurable is implemented by tools whose grid settings can change
// between gestures.
type Configurable interface {
	SetQuantizer(q grid.Quantizer)
}

type options struct {
	logger  *logging.Logger
	cursor  CursorSink
	edgeCap float64
}

// Option configures a tool.
type Option func(*options)

// WithLogger sets the logger used for gesture tracing.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCursorSink enables hover feedback on the pencil.
func WithCursorSink(s CursorSink) Option {
	return func(o *options) {
		o.cursor = s
	}
}

// WithEdgeCap overrides the widest edge zone used to classify a grab.
func WithEdgeCap(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.edgeCap = px
		}
	}
}

func buildOptions(component string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrNop(o.logger).WithComponent(component)
	return o
}
