package app

import (
	"strconv"

	"github.com/dshills/pianoroll/internal/renderer/backend"
	"github.com/dshills/pianoroll/internal/renderer/statusline"
	"github.com/dshills/pianoroll/internal/tool"
)

// handleEvent dispatches one backend event. It returns ErrQuit to stop the
// loop.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventMouse:
		app.handleMouse(ev)
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventResize:
		app.renderer.Resize(ev.Width, ev.Height)
		app.dirty = true
	case backend.EventFocus:
		if !ev.Focused {
			app.cancelGesture()
		}
	case backend.EventInterrupt:
		return app.handleInterrupt(ev.Data)
	}
	return nil
}

func (app *Application) handleMouse(ev backend.Event) {
	pe, ok := app.pointer.Track(ev)
	if !ok {
		return
	}

	_, rows := app.viewport.Size()
	if pe.Phase == backend.PointerDown && pe.Y >= rows {
		// Status row. Forget the press so the release is not seen as a gesture.
		app.pointer.Reset()
		return
	}

	te := app.canvas.toolEvent(pe)
	switch pe.Phase {
	case backend.PointerDown:
		app.pendingHover = nil
		app.switcher.OnMouseDown(te)
	case backend.PointerMove:
		if pe.Held || app.hover == nil {
			app.switcher.OnMouseMove(te)
			break
		}
		app.pendingHover = &te
		app.hover(func() {
			app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: hoverFlush{}})
		})
	case backend.PointerUp:
		app.switcher.OnMouseUp(te)
	}
	app.dirty = true
}

func (app *Application) handleKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyEscape:
		if app.switcher.InGesture() {
			app.cancelGesture()
		} else {
			app.switcher.Selection().Clear()
		}
	case backend.KeyDelete, backend.KeyBackspace:
		app.deleteSelected()
	case backend.KeyUp:
		app.scroll(0, -1)
	case backend.KeyDown:
		app.scroll(0, 1)
	case backend.KeyLeft:
		app.scroll(-1, 0)
	case backend.KeyRight:
		app.scroll(1, 0)
	case backend.KeyRune:
		return app.handleRune(ev.Rune)
	default:
		return nil
	}
	app.dirty = true
	return nil
}

func (app *Application) handleRune(r rune) error {
	switch r {
	case 'q':
		return ErrQuit
	case 'p':
		app.setMode(tool.KindPencil)
	case 's':
		app.setMode(tool.KindSelection)
	case 'x':
		app.deleteSelected()
	default:
		return nil
	}
	app.dirty = true
	return nil
}

func (app *Application) setMode(k tool.Kind) {
	if app.switcher.SetKind(k) {
		app.log.Debug("mode %s", k)
		app.renderer.StatusLine().ClearMessage()
	}
}

func (app *Application) scroll(dCol, dRow int) {
	if app.switcher.InGesture() {
		return
	}
	app.viewport.Scroll(dCol, dRow)
}

func (app *Application) deleteSelected() {
	if app.switcher.InGesture() {
		return
	}
	ids := app.store.Selected()
	if len(ids) == 0 {
		return
	}
	n := app.store.Delete(ids)
	app.switcher.Selection().Clear()
	app.renderer.StatusLine().SetMessage(pluralNotes(n)+" deleted", statusline.MessageInfo)
}

// cancelGesture finishes any gesture in flight, e.g. when the terminal loses
// focus and the release will never arrive.
func (app *Application) cancelGesture() {
	app.pendingHover = nil
	app.switcher.Cancel()
	app.pointer.Reset()
	app.dirty = true
}

func (app *Application) handleInterrupt(data any) error {
	switch d := data.(type) {
	case hoverFlush:
		if ev := app.pendingHover; ev != nil && !app.switcher.InGesture() {
			app.pendingHover = nil
			app.switcher.OnMouseMove(*ev)
		}
	case configReload:
		return app.applyConfig(d.cfg)
	case reloadFailed:
		return NewOperationError("reload", app.opts.ConfigPath, d.err)
	case quitRequest:
		return ErrQuit
	}
	return nil
}

func pluralNotes(n int) string {
	if n == 1 {
		return "1 note"
	}
	return strconv.Itoa(n) + " notes"
}
