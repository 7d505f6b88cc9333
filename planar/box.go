package planar

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Box is an oriented rectangle in the plane, fully described by its center,
// heading and full dimensions. Length runs along the heading, width across it.
type Box struct {
	Center  r2.Point
	Heading float64
	Length  float64
	Width   float64
}

// NewBox instantiates a new Box.
func NewBox(center r2.Point, heading, length, width float64) Box {
	return Box{Center: center, Heading: heading, Length: length, Width: width}
}

// String returns a human readable string that represents the box.
func (b Box) String() string {
	return fmt.Sprintf("Type: Box | Position: X:%.2f, Y:%.2f | Heading: %.3f | Dims: L:%.2f, W:%.2f",
		b.Center.X, b.Center.Y, b.Heading, b.Length, b.Width)
}

// Shift translates the box by v.
func (b *Box) Shift(v r2.Point) {
	b.Center = b.Center.Add(v)
}

// LongitudinalExtend grows the box length by extension, keeping the center.
func (b *Box) LongitudinalExtend(extension float64) {
	b.Length += extension
}

// LateralExtend grows the box width by extension, keeping the center.
func (b *Box) LateralExtend(extension float64) {
	b.Width += extension
}

// Corners returns the four corners in counter-clockwise order, starting from
// the front-left corner (front along the heading, left across it).
func (b Box) Corners() []r2.Point {
	sin, cos := math.Sincos(b.Heading)
	dx := r2.Point{X: cos * b.Length / 2, Y: sin * b.Length / 2}
	dy := r2.Point{X: -sin * b.Width / 2, Y: cos * b.Width / 2}
	return []r2.Point{
		b.Center.Add(dx).Add(dy),
		b.Center.Sub(dx).Add(dy),
		b.Center.Sub(dx).Sub(dy),
		b.Center.Add(dx).Sub(dy),
	}
}

// DistanceTo returns the Euclidean distance from p to the box boundary, or 0
// when p lies inside the box.
func (b Box) DistanceTo(p r2.Point) float64 {
	q := Rotate(p.Sub(b.Center), -b.Heading)
	dx := math.Abs(q.X) - b.Length/2
	dy := math.Abs(q.Y) - b.Width/2
	if dx <= 0 && dy <= 0 {
		return 0
	}
	return math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
}
