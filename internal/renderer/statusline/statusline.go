// Package statusline renders the bottom line of the roll: the active tool,
// the grid, the hover affordance and the last message.
package statusline

import (
	"fmt"
	"strings"

	"github.com/dshills/pianoroll/internal/renderer/backend"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine holds what the bottom line shows.
type StatusLine struct {
	mode     string
	grid     string
	cursor   string
	notes    int
	selected int

	message     string
	messageType MessageType
}

// New creates an empty status line.
func New() *StatusLine {
	return &StatusLine{mode: "pencil", cursor: "default"}
}

// SetMode updates the displayed tool.
func (s *StatusLine) SetMode(mode string) { s.mode = mode }

// SetGrid updates the displayed grid.
func (s *StatusLine) SetGrid(grid string) { s.grid = grid }

// SetCursor updates the displayed hover affordance.
func (s *StatusLine) SetCursor(cursor string) { s.cursor = cursor }

// SetCounts updates the note and selection counts.
func (s *StatusLine) SetCounts(notes, selected int) {
	s.notes, s.selected = notes, selected
}

// SetMessage shows a message until the next one.
func (s *StatusLine) SetMessage(msg string, typ MessageType) {
	s.message, s.messageType = msg, typ
}

// ClearMessage removes the message.
func (s *StatusLine) ClearMessage() {
	s.message, s.messageType = "", MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Cursor returns the displayed hover affordance.
func (s *StatusLine) Cursor() string {
	return s.cursor
}

// String returns the text of the line, without padding.
func (s *StatusLine) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, " %s | %s | %s | %d notes", strings.ToUpper(s.mode), s.grid, s.cursor, s.notes)
	if s.selected > 0 {
		fmt.Fprintf(&b, " (%d selected)", s.selected)
	}
	if s.message != "" {
		b.WriteString(" | ")
		switch s.messageType {
		case MessageWarning:
			b.WriteString("warning: ")
		case MessageError:
			b.WriteString("error: ")
		}
		b.WriteString(s.message)
	}
	return b.String()
}

// Render draws the line on row y, padded to width.
func (s *StatusLine) Render(b backend.Backend, y, width int) {
	x := 0
	for _, r := range s.String() {
		if x >= width {
			return
		}
		b.SetCell(x, y, backend.Cell{Rune: r, Style: backend.StyleStatus})
		x++
	}
	for ; x < width; x++ {
		b.SetCell(x, y, backend.Cell{Rune: ' ', Style: backend.StyleStatus})
	}
}
