// Package backend abstracts the terminal the piano roll draws into and reads
// pointer and key input from.
package backend

// Style names what a cell depicts. Backends map each style to colors.
type Style uint8

const (
	StyleDefault Style = iota
	StyleGrid
	StyleBar
	StyleNote
	StyleNoteEdge
	StyleSelected
	StyleMarquee
	StyleStatus
)

// Cell is one character position.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a blank default cell.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventFocus
	EventInterrupt
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventResize:
		return "resize"
	case EventFocus:
		return "focus"
	case EventInterrupt:
		return "interrupt"
	default:
		return "none"
	}
}

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields. Buttons is the full set held at the time of the
	// event, as terminals report it.
	MouseX, MouseY int
	Buttons        ButtonMask

	// Resize event fields
	Width, Height int

	// Focus event fields
	Focused bool

	// Data is the payload of an interrupt posted with PostEvent.
	Data any
}

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// ButtonMask is the set of mouse buttons held down.
type ButtonMask int

const (
	ButtonNone    ButtonMask = 0
	ButtonPrimary ButtonMask = 1 << iota
	ButtonSecondary
	ButtonMiddle
	WheelUp
	WheelDown
)

// Has returns true if every button in b is held.
func (m ButtonMask) Has(b ButtonMask) bool {
	return b != 0 && m&b == b
}

// Backend is a character grid with an input queue.
type Backend interface {
	// Init prepares the display and enables mouse reporting.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	// Size returns the grid dimensions.
	Size() (width, height int)

	// SetCell sets a single cell. Positions outside the grid are ignored.
	SetCell(x, y int, cell Cell)

	// Clear blanks the whole grid.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// PollEvent blocks until the next event.
	PollEvent() Event

	// PostEvent queues a synthetic event. It never blocks.
	PostEvent(event Event)
}

// SetString writes s starting at (x, y) and returns the column after it.
func SetString(b Backend, x, y int, s string, style Style) int {
	for _, r := range s {
		b.SetCell(x, y, Cell{Rune: r, Style: style})
		x++
	}
	return x
}

// NullBackend is an in-memory backend for tests.
type NullBackend struct {
	width, height int
	cells         [][]Cell
	events        chan Event
	shown         int
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
	b.allocate()
	return b
}

func (b *NullBackend) allocate() {
	b.cells = make([][]Cell, b.height)
	for y := range b.cells {
		b.cells[y] = make([]Cell, b.width)
		for x := range b.cells[y] {
			b.cells[y][x] = EmptyCell()
		}
	}
}

func (b *NullBackend) Init() error { return nil }
func (b *NullBackend) Shutdown()   {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

// GetCell returns the cell at (x, y), or an empty cell outside the grid.
func (b *NullBackend) GetCell(x, y int) Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return EmptyCell()
}

// Row returns the runes of row y as a string.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	rs := make([]rune, b.width)
	for x, c := range b.cells[y] {
		rs[x] = c.Rune
	}
	return string(rs)
}

func (b *NullBackend) Clear() {
	b.allocate()
}

func (b *NullBackend) Show() {
	b.shown++
}

// ShowCount returns how many times Show was called.
func (b *NullBackend) ShowCount() int {
	return b.shown
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Resize changes the grid size and queues a resize event.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
