package graphics

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Offset represents a 2D point or vector in logical units.
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of o and other.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the component-wise difference o - other.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Size represents width and height dimensions in logical units.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle expressed as origin and size, the way
// host view frames are.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFromSize returns a rect at the origin with the given size.
func RectFromSize(size Size) Rect {
	return Rect{Width: size.Width, Height: size.Height}
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Offset {
	return Offset{X: r.X, Y: r.Y}
}

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{X: r.X + r.Width*0.5, Y: r.Y + r.Height*0.5}
}

// WithY returns a copy of r moved vertically to y.
func (r Rect) WithY(y float64) Rect {
	r.Y = y
	return r
}

// SameSize reports whether r and other have approximately equal sizes.
func (r Rect) SameSize(other Rect) bool {
	return floatEqual(r.Width, other.Width) && floatEqual(r.Height, other.Height)
}

// ApproxEqual reports whether r and other are equal within epsilon.
func (r Rect) ApproxEqual(other Rect) bool {
	return floatEqual(r.X, other.X) && floatEqual(r.Y, other.Y) && r.SameSize(other)
}

// LerpRect linearly interpolates every component between a and b.
func LerpRect(a, b Rect, t float64) Rect {
	return Rect{
		X:      a.X + (b.X-a.X)*t,
		Y:      a.Y + (b.Y-a.Y)*t,
		Width:  a.Width + (b.Width-a.Width)*t,
		Height: a.Height + (b.Height-a.Height)*t,
	}
}

// EdgeInsets represents insets from each edge, used for safe areas and
// scroll content insets.
type EdgeInsets struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// floatEqual returns true if two float64 values are approximately equal.
func floatEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}
