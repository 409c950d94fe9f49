// Package drag classifies where on a note a pointer-down landed.
//
// The region decides what a drag does: the left and right edges resize the
// note from that side and the center moves it. Edge zones shrink on narrow
// notes so they never meet in the middle, and are capped on wide notes so
// grabbing an edge stays easy.
package drag

import "math"

// DefaultEdgeCap is the widest an edge zone gets, in pixels.
const DefaultEdgeCap = 8.0

// Region identifies the part of a note under the pointer.
type Region uint8

const (
	// Center moves the note.
	Center Region = iota
	// LeftEdge resizes the note keeping its right edge fixed.
	LeftEdge
	// RightEdge resizes the note keeping its left edge fixed.
	RightEdge
)

// String returns a string representation of the region.
func (r Region) String() string {
	switch r {
	case LeftEdge:
		return "left-edge"
	case RightEdge:
		return "right-edge"
	case Center:
		return "center"
	default:
		return "unknown"
	}
}

// IsEdge reports whether the region resizes rather than moves.
func (r Region) IsEdge() bool {
	return r == LeftEdge || r == RightEdge
}

// EdgeSize returns the edge zone width for a note of the given width.
func EdgeSize(width, edgeCap float64) float64 {
	return math.Min(width/3, edgeCap)
}

// Classify returns the region for a pointer offset measured from the left
// of a note of the given width, using DefaultEdgeCap.
func Classify(offset, width float64) Region {
	return ClassifyWithCap(offset, width, DefaultEdgeCap)
}

// ClassifyWithCap is Classify with an explicit edge cap. The left edge is
// tested first, so it wins when both zones overlap.
func ClassifyWithCap(offset, width, edgeCap float64) Region {
	edge := EdgeSize(width, edgeCap)
	if offset <= edge {
		return LeftEdge
	}
	if width-offset <= edge {
		return RightEdge
	}
	return Center
}
