package tool

import (
	"fmt"
	"strings"

	"github.com/dshills/pianoroll/internal/grid"
	"github.com/dshills/pianoroll/internal/logging"
)

// Kind selects which tool handles pointer input.
type Kind uint8

const (
	// KindPencil creates, resizes and moves single notes.
	KindPencil Kind = iota
	// KindSelection selects and drags groups of notes.
	KindSelection

	kindCount
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPencil:
		return "pencil"
	case KindSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// ParseKind parses a tool name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "pencil", "draw", "":
		return KindPencil, nil
	case "selection", "select":
		return KindSelection, nil
	default:
		return KindPencil, fmt.Errorf("unknown tool %q", s)
	}
}

// Switcher routes pointer events to the tool for the current Kind.
//
// A gesture stays with the tool that received its pointer-down. Mode
// changes and grid changes requested mid-gesture are applied when the
// gesture ends.
type Switcher struct {
	tools   [kindCount]Tool
	current Kind

	// gesture is the tool holding the pointer, or nil.
	gesture Tool
	last    Event

	pendingGrid *grid.Quantizer
	log         *logging.Logger
}

// NewSwitcher creates a switcher over the given tools, starting in pencil
// mode.
func NewSwitcher(pencil *Pencil, selection *Selection, l *logging.Logger) *Switcher {
	s := &Switcher{
		current: KindPencil,
		log:     logging.OrNop(l).WithComponent("tools"),
	}
	s.tools[KindPencil] = pencil
	s.tools[KindSelection] = selection
	return s
}

// Kind returns the current mode.
func (s *Switcher) Kind() Kind {
	return s.current
}

// Tool returns the tool registered for k.
func (s *Switcher) Tool(k Kind) Tool {
	if k >= kindCount {
		return nil
	}
	return s.tools[k]
}

// Pencil returns the pencil tool.
func (s *Switcher) Pencil() *Pencil {
	p, _ := s.tools[KindPencil].(*Pencil)
	return p
}

// Selection returns the selection tool.
func (s *Switcher) Selection() *Selection {
	sel, _ := s.tools[KindSelection].(*Selection)
	return sel
}

// SetKind changes the mode. It returns false for unknown kinds.
func (s *Switcher) SetKind(k Kind) bool {
	if k >= kindCount {
		return false
	}
	if k != s.current {
		s.log.Info("mode %s -> %s", s.current, k)
		if p := s.Pencil(); p != nil {
			p.ResetHover()
		}
	}
	s.current = k
	return true
}

// InGesture reports whether a pointer is held.
func (s *Switcher) InGesture() bool {
	return s.gesture != nil
}

// SetQuantizer swaps the grid on every configurable tool, deferring the
// swap until the current gesture ends.
func (s *Switcher) SetQuantizer(q grid.Quantizer) {
	if s.gesture != nil {
		s.pendingGrid = &q
		return
	}
	s.applyGrid(q)
}

// OnMouseDown starts a gesture on the current tool.
func (s *Switcher) OnMouseDown(ev Event) {
	if s.gesture != nil {
		// The previous gesture never saw its pointer-up.
		s.finish(s.last)
	}
	s.gesture = s.tools[s.current]
	s.last = ev
	s.gesture.OnMouseDown(ev)
}

// OnMouseMove forwards to the gesture's tool, or to the current tool for
// hover handling.
func (s *Switcher) OnMouseMove(ev Event) {
	if s.gesture != nil {
		s.last = ev
		s.gesture.OnMouseMove(ev)
		return
	}
	s.tools[s.current].OnMouseMove(ev)
}

// OnMouseUp ends the gesture. A pointer-up with no gesture is ignored.
func (s *Switcher) OnMouseUp(ev Event) {
	if s.gesture == nil {
		return
	}
	s.finish(ev)
}

// Cancel ends the current gesture as if the pointer had been released where
// it was last seen.
func (s *Switcher) Cancel() {
	if s.gesture == nil {
		return
	}
	s.log.Debug("gesture cancelled")
	s.finish(s.last)
}

func (s *Switcher) finish(ev Event) {
	t := s.gesture
	s.gesture = nil
	t.OnMouseUp(ev)

	if s.pendingGrid != nil {
		q := *s.pendingGrid
		s.pendingGrid = nil
		s.applyGrid(q)
	}
}

func (s *Switcher) applyGrid(q grid.Quantizer) {
	for _, t := range s.tools {
		if c, ok := t.(Configurable); ok {
			c.SetQuantizer(q)
		}
	}
	s.log.Info("grid set to %s", q)
}
