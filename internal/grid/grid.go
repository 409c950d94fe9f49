// Package grid quantizes container-local coordinates to the musical grid.
//
// The X axis is time and the Y axis is pitch. Each axis has a fixed step
// size (the grid unit). Floor operations place new notes exactly on a grid
// line; round operations snap drag feedback to the nearer line.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/dshills/pianoroll/internal/geom"
)

// ErrInvalidUnit is returned when a grid unit is not a positive finite number.
var ErrInvalidUnit = errors.New("grid unit must be positive")

// Quantizer snaps coordinates to a grid of UnitX by UnitY cells.
// The zero value is not usable; construct with New.
type Quantizer struct {
	unitX float64
	unitY float64
}

// New creates a quantizer. Both units must be positive and finite.
func New(unitX, unitY float64) (Quantizer, error) {
	if !validUnit(unitX) {
		return Quantizer{}, fmt.Errorf("unitX %v: %w", unitX, ErrInvalidUnit)
	}
	if !validUnit(unitY) {
		return Quantizer{}, fmt.Errorf("unitY %v: %w", unitY, ErrInvalidUnit)
	}
	return Quantizer{unitX: unitX, unitY: unitY}, nil
}

// MustNew is like New but panics on invalid units.
func MustNew(unitX, unitY float64) Quantizer {
	q, err := New(unitX, unitY)
	if err != nil {
		panic(err)
	}
	return q
}

func validUnit(u float64) bool {
	return u > 0 && !math.IsInf(u, 0) && !math.IsNaN(u)
}

// UnitX returns the time-axis step.
func (q Quantizer) UnitX() float64 { return q.unitX }

// UnitY returns the pitch-axis step.
func (q Quantizer) UnitY() float64 { return q.unitY }

// FloorX maps v to the start of its containing time cell.
func (q Quantizer) FloorX(v float64) float64 {
	return floorTo(v, q.unitX)
}

// FloorY maps v to the start of its containing pitch row.
func (q Quantizer) FloorY(v float64) float64 {
	return floorTo(v, q.unitY)
}

// RoundX maps v to the nearest time grid line.
func (q Quantizer) RoundX(v float64) float64 {
	return roundTo(v, q.unitX)
}

// RoundY maps v to the nearest pitch grid line.
func (q Quantizer) RoundY(v float64) float64 {
	return roundTo(v, q.unitY)
}

// FloorPoint floors both axes.
func (q Quantizer) FloorPoint(p geom.Point) geom.Point {
	return geom.Pt(q.FloorX(p.X), q.FloorY(p.Y))
}

// SnapPoint rounds both axes.
func (q Quantizer) SnapPoint(p geom.Point) geom.Point {
	return geom.Pt(q.RoundX(p.X), q.RoundY(p.Y))
}

// Equal reports whether two quantizers use the same units.
func (q Quantizer) Equal(other Quantizer) bool {
	return q.unitX == other.unitX && q.unitY == other.unitY
}

// String implements fmt.Stringer.
func (q Quantizer) String() string {
	return fmt.Sprintf("grid(%gx%g)", q.unitX, q.unitY)
}

func floorTo(v, unit float64) float64 {
	return math.Floor(v/unit) * unit
}

func roundTo(v, unit float64) float64 {
	return math.Round(v/unit) * unit
}
