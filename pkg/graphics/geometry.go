// Package graphics holds the color and geometry primitives shared by the
// face renderers.
package graphics

import "math"

// Offset is a point or displacement in view-box units.
type Offset struct {
	X, Y float64
}

// Add returns o translated by d.
func (o Offset) Add(d Offset) Offset {
	return Offset{X: o.X + d.X, Y: o.Y + d.Y}
}

// Scale returns o with both coordinates multiplied by s.
func (o Offset) Scale(s float64) Offset {
	return Offset{X: o.X * s, Y: o.Y * s}
}

// RotateAround rotates o clockwise by deg degrees around center, in a
// y-down coordinate system (the same convention as an SVG rotate()).
func (o Offset) RotateAround(center Offset, deg float64) Offset {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := o.X-center.X, o.Y-center.Y
	return Offset{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// Size is a width and height.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromCenter returns a rect of the given size centered on c.
func RectFromCenter(c Offset, width, height float64) Rect {
	return Rect{
		Left:   c.X - width/2,
		Top:    c.Y - height/2,
		Right:  c.X + width/2,
		Bottom: c.Y + height/2,
	}
}

// Width returns the rect width.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the rect height.
func (r Rect) Height() float64 { return r.Bottom - r.Top }
