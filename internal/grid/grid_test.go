package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/dshills/pianoroll/internal/geom"
)

func TestNewRejectsInvalidUnits(t *testing.T) {
	tests := []struct {
		name         string
		unitX, unitY float64
	}{
		{"zero x", 0, 12},
		{"zero y", 10, 0},
		{"negative x", -1, 12},
		{"nan", math.NaN(), 12},
		{"inf", 10, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.unitX, tt.unitY)
			if !errors.Is(err, ErrInvalidUnit) {
				t.Errorf("New(%v, %v) error = %v, want ErrInvalidUnit", tt.unitX, tt.unitY, err)
			}
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew(0, 0) did not panic")
		}
	}()
	MustNew(0, 0)
}

func TestFloor(t *testing.T) {
	q := MustNew(10, 12)

	tests := []struct {
		v     float64
		wantX float64
		wantY float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{23, 20, 12},
		{-1, -10, -12},
		{30, 30, 24},
		{29.999, 20, 24},
	}

	for _, tt := range tests {
		if got := q.FloorX(tt.v); got != tt.wantX {
			t.Errorf("FloorX(%v) = %v, want %v", tt.v, got, tt.wantX)
		}
		if got := q.FloorY(tt.v); got != tt.wantY {
			t.Errorf("FloorY(%v) = %v, want %v", tt.v, got, tt.wantY)
		}
	}
}

func TestRound(t *testing.T) {
	q := MustNew(10, 12)

	tests := []struct {
		v     float64
		wantX float64
		wantY float64
	}{
		{0, 0, 0},
		{4.9, 0, 0},
		{5, 10, 0},
		{6, 10, 12},
		{130, 130, 132},
		{-4, 0, 0},
		{-6, -10, -12},
	}

	for _, tt := range tests {
		if got := q.RoundX(tt.v); got != tt.wantX {
			t.Errorf("RoundX(%v) = %v, want %v", tt.v, got, tt.wantX)
		}
		if got := q.RoundY(tt.v); got != tt.wantY {
			t.Errorf("RoundY(%v) = %v, want %v", tt.v, got, tt.wantY)
		}
	}
}

func TestRoundIsIdempotent(t *testing.T) {
	q := MustNew(10, 12)
	for v := -100.0; v <= 100.0; v += 0.7 {
		once := q.RoundX(v)
		if twice := q.RoundX(once); twice != once {
			t.Fatalf("RoundX(RoundX(%v)) = %v, want %v", v, twice, once)
		}
		onceY := q.RoundY(v)
		if twice := q.RoundY(onceY); twice != onceY {
			t.Fatalf("RoundY(RoundY(%v)) = %v, want %v", v, twice, onceY)
		}
	}
}

func TestFloorIsMonotonic(t *testing.T) {
	q := MustNew(10, 12)
	prev := q.FloorX(-100)
	for v := -100.0; v <= 100.0; v += 0.3 {
		cur := q.FloorX(v)
		if cur < prev {
			t.Fatalf("FloorX(%v) = %v decreased from %v", v, cur, prev)
		}
		prev = cur
	}
}

func TestPointHelpers(t *testing.T) {
	q := MustNew(10, 12)

	if got := q.FloorPoint(geom.Pt(23, 5)); got != geom.Pt(20, 0) {
		t.Errorf("FloorPoint = %v, want (20, 0)", got)
	}
	if got := q.SnapPoint(geom.Pt(16, 19)); got != geom.Pt(20, 24) {
		t.Errorf("SnapPoint = %v, want (20, 24)", got)
	}
}

func TestUnitsAndEqual(t *testing.T) {
	q := MustNew(10, 12)
	if q.UnitX() != 10 || q.UnitY() != 12 {
		t.Errorf("units = %v, %v", q.UnitX(), q.UnitY())
	}
	if !q.Equal(MustNew(10, 12)) || q.Equal(MustNew(10, 10)) {
		t.Error("Equal mismatch")
	}
	if q.String() != "grid(10x12)" {
		t.Errorf("String() = %q", q.String())
	}
}
