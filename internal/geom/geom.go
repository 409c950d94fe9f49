// Package geom provides the small amount of planar geometry shared by the
// piano roll: points, axis-aligned rectangles, and numeric helpers.
//
// Coordinates are container-local pixels. X grows to the right (time) and Y
// grows downward (pitch rows).
package geom

import "golang.org/x/exp/constraints"

// Number is any real numeric type usable as a coordinate.
type Number interface {
	constraints.Integer | constraints.Float
}

// Abs returns the absolute value of v.
func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp[T Number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Point is a location in container-local space.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsZero reports whether both components are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Rect is an axis-aligned rectangle. Width and Height may be zero or
// negative; callers that need a well-formed rectangle use Normalize.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFromPoints returns the rectangle spanning a and b regardless of the
// direction the span was drawn in.
func RectFromPoints(a, b Point) Rect {
	return Rect{X: a.X, Y: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}.Normalize()
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Max returns the corner opposite the origin.
func (r Rect) Max() Point {
	return Point{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Right returns X + Width.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns Y + Height.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Normalize flips negative extents so Width and Height are non-negative.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
	}
	r.Width, r.Height = Abs(r.Width), Abs(r.Height)
	return r
}

// MoveTo returns r with its origin at p and the same size.
func (r Rect) MoveTo(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	return r.MoveTo(r.Origin().Add(d))
}

// Contains reports whether p lies inside r, edges included. A zero-size
// rectangle contains only its origin.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Hit reports whether p lies inside r using half-open bounds, so adjacent
// rectangles never both claim a point. Empty rectangles are never hit.
func (r Rect) Hit(p Point) bool {
	if r.IsEmpty() {
		return false
	}
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}
