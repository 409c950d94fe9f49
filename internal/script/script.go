// Package script runs user Lua hooks for selection events.
//
// A script may define any of these globals:
//
//	on_click(ids, x, y)  -- click-through on a fixed selection
//	on_select(ids)       -- selection replaced; ids may be empty
//
// ids is a Lua array of note ID strings. A hook may return a string, which
// the host shows in its status line. Scripts run with only the base, table,
// string and math libraries and can call log(msg) to write to the editor
// log.
package script

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pianoroll/internal/logging"
	"github.com/dshills/pianoroll/internal/note"
)

// DefaultTimeout bounds a single hook call.
const DefaultTimeout = 250 * time.Millisecond

// Hook names.
const (
	HookClick  = "on_click"
	HookSelect = "on_select"
)

var (
	// ErrNoScript is returned by Load when no script path is configured.
	ErrNoScript = errors.New("no script configured")

	// ErrClosed is returned when calling into a closed engine.
	ErrClosed = errors.New("script engine is closed")

	// ErrTimeout is returned when a hook runs past its deadline.
	ErrTimeout = errors.New("script timed out")
)

// ScriptError wraps a failure inside a Lua hook.
type ScriptError struct {
	Hook string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Hook, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Engine owns one Lua state. Calls are serialized.
type Engine struct {
	mu sync.Mutex

	L       *lua.LState
	path    string
	timeout time.Duration
	log     *logging.Logger
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger behind the log builtin.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// Load creates an engine and runs the script at path once to define its
// hooks.
func Load(path string, opts ...Option) (*Engine, error) {
	if path == "" {
		return nil, ErrNoScript
	}

	e := &Engine{
		path:    path,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logging.OrNop(e.log).WithComponent("script").WithField("file", path)

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(e.L)
	e.L.SetGlobal("log", e.L.NewFunction(e.luaLog))

	if err := e.run("load", func() error { return e.L.DoFile(path) }); err != nil {
		e.L.Close()
		return nil, err
	}

	e.log.Info("loaded (click=%v select=%v)", e.HasHook(HookClick), e.HasHook(HookSelect))
	return e, nil
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Path returns the script file.
func (e *Engine) Path() string {
	return e.path
}

// HasHook reports whether the script defines the named hook.
func (e *Engine) HasHook(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	return e.L.GetGlobal(name).Type() == lua.LTFunction
}

// OnClick calls on_click. It returns the hook's message, if any. A missing
// hook is not an error.
func (e *Engine) OnClick(ids []note.ID, x, y float64) (string, error) {
	return e.call(HookClick, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{idTable(L, ids), lua.LNumber(x), lua.LNumber(y)}
	})
}

// OnSelect calls on_select. It returns the hook's message, if any.
func (e *Engine) OnSelect(ids []note.ID) (string, error) {
	return e.call(HookSelect, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{idTable(L, ids)}
	})
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}

func (e *Engine) call(hook string, args func(L *lua.LState) []lua.LValue) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return "", ErrClosed
	}

	fn := e.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return "", nil
	}

	var msg string
	err := e.runLocked(hook, func() error {
		top := e.L.GetTop()
		defer e.L.SetTop(top)
		if err := e.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args(e.L)...); err != nil {
			return err
		}
		if ret := e.L.Get(-1); ret.Type() == lua.LTString {
			msg = ret.String()
		}
		return nil
	})
	return msg, err
}

func (e *Engine) run(hook string, fn func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runLocked(hook, fn)
}

// runLocked executes fn under the engine deadline and converts panics and
// Lua errors into ScriptError.
func (e *Engine) runLocked(hook string, fn func() error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = &ScriptError{Hook: hook, Err: fmt.Errorf("lua panic: %v", r)}
		}
	}()

	if callErr := fn(); callErr != nil {
		if ctx.Err() != nil {
			callErr = ErrTimeout
		}
		e.log.Warn("%s failed: %v", hook, callErr)
		return &ScriptError{Hook: hook, Err: callErr}
	}
	return nil
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("%s", L.CheckString(1))
	return 0
}

func idTable(L *lua.LState, ids []note.ID) *lua.LTable {
	t := L.CreateTable(len(ids), 0)
	for i, id := range ids {
		t.RawSetInt(i+1, lua.LString(id))
	}
	return t
}
