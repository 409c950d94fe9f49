package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(20, 4)

	cell := Cell{Rune: 'X', Style: StyleNote}
	b.SetCell(3, 2, cell)

	if got := b.GetCell(3, 2); got != cell {
		t.Errorf("GetCell(3, 2) = %+v, want %+v", got, cell)
	}

	b.SetCell(-1, 0, cell)
	b.SetCell(20, 0, cell)
	if got := b.GetCell(-1, 0); got != EmptyCell() {
		t.Errorf("out of bounds GetCell = %+v", got)
	}
}

func TestNullBackendClearAndRow(t *testing.T) {
	b := NewNullBackend(5, 2)
	end := SetString(b, 1, 0, "abc", StyleStatus)

	if end != 4 {
		t.Errorf("SetString() = %d, want 4", end)
	}
	if got := b.Row(0); got != " abc " {
		t.Errorf("Row(0) = %q", got)
	}
	if b.GetCell(2, 0).Style != StyleStatus {
		t.Error("SetString lost style")
	}

	b.Clear()
	if got := b.Row(0); got != "     " {
		t.Errorf("Row(0) after Clear = %q", got)
	}
	if b.Row(9) != "" {
		t.Error("Row outside grid not empty")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(10, 10)

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'q'})
	b.Resize(30, 8)

	if ev := b.PollEvent(); ev.Type != EventKey || ev.Rune != 'q' {
		t.Errorf("first event = %+v", ev)
	}
	if ev := b.PollEvent(); ev.Type != EventResize || ev.Width != 30 || ev.Height != 8 {
		t.Errorf("second event = %+v", ev)
	}
	if w, h := b.Size(); w != 30 || h != 8 {
		t.Errorf("Size() = %d, %d", w, h)
	}

	b.Show()
	b.Show()
	if b.ShowCount() != 2 {
		t.Errorf("ShowCount() = %d", b.ShowCount())
	}
}

func TestConvertMouseEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventMouse(7, 3, tcell.ButtonPrimary|tcell.WheelUp, tcell.ModShift))

	if ev.Type != EventMouse || ev.MouseX != 7 || ev.MouseY != 3 {
		t.Fatalf("event = %+v", ev)
	}
	if !ev.Buttons.Has(ButtonPrimary) || !ev.Buttons.Has(WheelUp) || ev.Buttons.Has(ButtonSecondary) {
		t.Errorf("buttons = %b", ev.Buttons)
	}
	if !ev.Mod.Has(ModShift) {
		t.Errorf("mod = %b, want shift", ev.Mod)
	}
}

func TestConvertKeyEvents(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		key  Key
		r    rune
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), KeyRune, 'p'},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), KeyEscape, 0},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), KeyDelete, 0},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), KeyCtrlC, 0},
		{"unmapped", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), KeyNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := convertEvent(tt.ev)
			if ev.Type != EventKey || ev.Key != tt.key {
				t.Errorf("event = %+v, want key %d", ev, tt.key)
			}
			if tt.key == KeyRune && ev.Rune != tt.r {
				t.Errorf("rune = %q, want %q", ev.Rune, tt.r)
			}
		})
	}
}

func TestConvertOtherEvents(t *testing.T) {
	if ev := convertEvent(tcell.NewEventResize(80, 24)); ev.Type != EventResize || ev.Width != 80 || ev.Height != 24 {
		t.Errorf("resize = %+v", ev)
	}
	if ev := convertEvent(tcell.NewEventFocus(false)); ev.Type != EventFocus || ev.Focused {
		t.Errorf("focus = %+v", ev)
	}
	if ev := convertEvent(tcell.NewEventInterrupt("hover")); ev.Type != EventInterrupt || ev.Data != "hover" {
		t.Errorf("interrupt = %+v", ev)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	for k := KeyRune; k <= KeyCtrlC; k++ {
		if got := convertKey(convertToTcellKey(k)); got != k {
			t.Errorf("round trip of key %d = %d", k, got)
		}
	}
	for _, m := range []ModMask{ModShift, ModCtrl, ModAlt, ModMeta, ModShift | ModAlt} {
		if got := convertMod(convertToTcellMod(m)); got != m {
			t.Errorf("round trip of mod %b = %b", m, got)
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if EventInterrupt.String() != "interrupt" || EventType(99).String() != "none" {
		t.Error("unexpected event type names")
	}
}
