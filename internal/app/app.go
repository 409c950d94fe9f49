// Package app wires the piano roll together: configuration, note store,
// interaction tools, optional Lua hooks and the terminal event loop.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"

	"github.com/dshills/pianoroll/internal/config"
	"github.com/dshills/pianoroll/internal/logging"
	"github.com/dshills/pianoroll/internal/note"
	"github.com/dshills/pianoroll/internal/renderer"
	"github.com/dshills/pianoroll/internal/renderer/backend"
	"github.com/dshills/pianoroll/internal/renderer/statusline"
	"github.com/dshills/pianoroll/internal/renderer/viewport"
	"github.com/dshills/pianoroll/internal/script"
	"github.com/dshills/pianoroll/internal/store"
	"github.com/dshills/pianoroll/internal/tool"
)

// Options configures the application.
type Options struct {
	// Config is the starting configuration. Nil means config.Default().
	Config *config.Config

	// ConfigPath is watched for live reload when non-empty.
	ConfigPath string

	// Backend is the display. Required by Run.
	Backend backend.Backend

	// Logger receives lifecycle and gesture logs.
	Logger *logging.Logger

	// Script runs selection hooks. Optional.
	Script *script.Engine

	// Overrides is applied to every reloaded config so command-line
	// settings keep precedence over the file.
	Overrides func(cfg *config.Config)
}

// Application is the central coordinator for the editor.
//
// Everything except the config watcher and the hover debouncer runs on the
// event loop goroutine. Those two post interrupts to the backend instead of
// touching state directly.
type Application struct {
	mu  sync.Mutex
	cfg *config.Config
	log *logging.Logger

	backend  backend.Backend
	viewport *viewport.Viewport
	renderer *renderer.Renderer
	canvas   canvas

	store    *store.Store
	switcher *tool.Switcher
	pointer  backend.PointerTracker

	script  *script.Engine
	watcher *config.Watcher

	hover        func(f func())
	pendingHover *tool.Event

	dirty   bool
	running atomic.Bool
	done    chan struct{}

	opts Options
}

// interrupt payloads
type (
	hoverFlush   struct{}
	configReload struct{ cfg *config.Config }
	reloadFailed struct{ err error }
	quitRequest  struct{}
)

// New creates an Application. It does not touch the terminal.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	q, err := cfg.Quantizer()
	if err != nil {
		return nil, &InitError{Component: "grid", Err: err}
	}

	app := &Application{
		cfg:     cfg.Clone(),
		log:     logging.OrNop(opts.Logger).WithComponent("app"),
		backend: opts.Backend,
		script:  opts.Script,
		opts:    opts,
	}

	app.store = store.New(q,
		store.WithLogger(opts.Logger),
		store.WithClickHook(app.onClickHook),
		store.WithSelectHook(app.onSelectHook),
	)
	app.store.Subscribe(func(store.Change) { app.dirty = true })

	app.viewport = viewport.New(cfg.View.CellWidth, cfg.View.CellHeight)
	app.canvas = canvas{vp: app.viewport, notes: app.store}

	toolOpts := []tool.Option{
		tool.WithLogger(opts.Logger),
		tool.WithEdgeCap(cfg.Tool.EdgeCap),
	}
	pencil := tool.NewPencil(q, app.canvas, app.store, append(toolOpts, tool.WithCursorSink(app))...)
	selection := tool.NewSelection(q, app.canvas, app.store, toolOpts...)
	app.switcher = tool.NewSwitcher(pencil, selection, opts.Logger)
	app.switcher.SetKind(cfg.Mode())

	app.setHoverDelay(cfg.HoverDebounce())

	if opts.Backend != nil {
		app.renderer = renderer.New(opts.Backend, app.viewport)
		app.renderer.StatusLine().SetMode(app.switcher.Kind().String())
	}

	return app, nil
}

// Store returns the note store.
func (app *Application) Store() *store.Store {
	return app.store
}

// Switcher returns the tool switcher.
func (app *Application) Switcher() *tool.Switcher {
	return app.switcher
}

// Config returns a copy of the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg.Clone()
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run starts the event loop and blocks until quit or ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	app.done = make(chan struct{})

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()
	app.renderer.Resize(app.backend.Size())

	if app.opts.ConfigPath != "" {
		if err := app.startWatcher(ctx); err != nil {
			app.log.Warn("config watch disabled: %v", err)
		} else {
			defer app.watcher.Close()
		}
	}

	defer close(app.done)
	go func() {
		select {
		case <-ctx.Done():
			app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitRequest{}})
		case <-app.done:
		}
	}()

	app.log.Info("started in %s mode on %s", app.switcher.Kind(), app.store.Quantizer())
	app.render()

	for {
		ev := app.backend.PollEvent()
		err := app.handleEvent(ev)
		if errors.Is(err, ErrQuit) {
			app.log.Info("quit")
			return nil
		}
		if err != nil {
			app.log.Warn("%v", err)
			app.renderer.StatusLine().SetMessage(err.Error(), statusline.MessageError)
			app.dirty = true
		}
		if app.dirty {
			app.render()
		}
	}
}

func (app *Application) startWatcher(ctx context.Context) error {
	w, err := config.NewWatcher(app.opts.ConfigPath, func(cfg *config.Config) {
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: configReload{cfg: cfg}})
	},
		config.WithWatcherLogger(app.opts.Logger),
		config.WithErrorHandler(func(err error) {
			app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: reloadFailed{err: err}})
		}),
	)
	if err != nil {
		return err
	}
	app.watcher = w
	w.Start(ctx)
	return nil
}

// SetCursor shows the pencil's hover affordance in the status line.
func (app *Application) SetCursor(c tool.Cursor) {
	if app.renderer == nil {
		return
	}
	app.renderer.StatusLine().SetCursor(c.String())
	app.dirty = true
}

func (app *Application) render() {
	if app.renderer == nil {
		return
	}
	app.dirty = false
	app.renderer.StatusLine().SetMode(app.switcher.Kind().String())
	app.renderer.Render(renderer.Frame{
		Notes:     app.store.Notes(),
		Selected:  note.NewSet(app.store.Selected()...),
		Selection: app.switcher.Selection().State(),
		Grid:      app.store.Quantizer(),
	})
}

// applyConfig swaps in a reloaded config. Grid changes wait for the current
// gesture to end. The active tool is left alone.
func (app *Application) applyConfig(cfg *config.Config) error {
	cfg = cfg.Clone()
	if app.opts.Overrides != nil {
		app.opts.Overrides(cfg)
	}
	q, err := cfg.Quantizer()
	if err != nil {
		return NewOperationError("reload", "config", err)
	}

	app.mu.Lock()
	prev := app.cfg
	app.cfg = cfg
	app.mu.Unlock()

	if old, err := prev.Quantizer(); err == nil && !old.Equal(q) {
		app.log.Info("grid %s -> %s", old, q)
	}

	app.switcher.SetQuantizer(q)
	app.store.SetQuantizer(q)
	app.viewport.SetCellSize(cfg.View.CellWidth, cfg.View.CellHeight)
	app.setHoverDelay(cfg.HoverDebounce())
	if cfg.Logging.Level != "" {
		app.log.SetLevel(logging.ParseLevel(cfg.Logging.Level))
	}

	app.log.Debug("config applied")
	app.renderer.StatusLine().SetMessage("config reloaded", statusline.MessageInfo)
	app.dirty = true
	return nil
}

func (app *Application) setHoverDelay(d time.Duration) {
	if d <= 0 {
		app.hover = nil
		return
	}
	app.hover = debounce.New(d)
}

func (app *Application) onClickHook(ids []note.ID, ev tool.Event) {
	if app.script == nil {
		return
	}
	p := app.canvas.GlobalToLocal(ev.StageX, ev.StageY)
	msg, err := app.script.OnClick(ids, p.X, p.Y)
	app.scriptResult(script.HookClick, msg, err)
}

func (app *Application) onSelectHook(ids []note.ID) {
	if app.script == nil {
		return
	}
	msg, err := app.script.OnSelect(ids)
	app.scriptResult(script.HookSelect, msg, err)
}

func (app *Application) scriptResult(hook, msg string, err error) {
	if app.renderer == nil {
		return
	}
	status := app.renderer.StatusLine()
	switch {
	case err != nil:
		status.SetMessage(NewOperationError("script", hook, err).Error(), statusline.MessageError)
	case msg != "":
		status.SetMessage(msg, statusline.MessageInfo)
	default:
		return
	}
	app.dirty = true
}
