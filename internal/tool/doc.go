// Package tool turns pointer events into note editing intents.
//
// A host translates raw pointer input into Event values and feeds them to
// the active Tool. Tools never mutate notes themselves; they compute intents
// and hand them to a Listener, which owns the note collection and any
// clamping or rejection policy.
//
// # Tools
//
// Pencil creates notes on empty canvas and resizes or moves a note when the
// pointer goes down on it. The part of the note that was grabbed (left edge,
// right edge, or center) is decided once at pointer-down and holds for the
// whole drag, so a resize never flips direction as the note changes shape
// under the pointer:
//
//	p := tool.NewPencil(q, container, listener, tool.WithCursorSink(view))
//	p.OnMouseDown(ev)
//	p.OnMouseMove(ev) // emits OnResizeNote
//	p.OnMouseUp(ev)
//
// Selection draws a marquee. On release the marquee becomes a fixed
// selection; dragging inside it moves every selected note, and pressing and
// releasing inside it without moving forwards a click to the listener.
//
// # Switching
//
// Switcher holds one tool per Kind and routes each gesture to the tool that
// saw its pointer-down, so a mode change mid-drag takes effect on the next
// gesture.
//
// # Thread Safety
//
// Tools are driven from a single event loop and are not safe for concurrent
// use.
package tool
