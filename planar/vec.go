// Package planar provides the small amount of 2D geometry the open-space
// planner needs: frame transforms, cross products, angle helpers and oriented
// bounding boxes, all over r2.Point.
package planar

import (
	"math"

	"github.com/golang/geo/r2"
)

// Rotate returns p rotated by theta radians about the origin.
func Rotate(p r2.Point, theta float64) r2.Point {
	sin, cos := math.Sincos(theta)
	return r2.Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

// ToFrame expresses the world-frame point p in the local frame fixed by
// origin and heading: translate to the origin, then rotate by -heading.
func ToFrame(p, origin r2.Point, heading float64) r2.Point {
	return Rotate(p.Sub(origin), -heading)
}

// FromFrame is the inverse of ToFrame, mapping a local-frame point back to
// the world frame.
func FromFrame(p, origin r2.Point, heading float64) r2.Point {
	return Rotate(p, heading).Add(origin)
}

// CrossProd returns the cross product of the vectors (p2-p1) and (p3-p1).
// Positive when the turn p1 -> p2 -> p3 is counter-clockwise.
func CrossProd(p1, p2, p3 r2.Point) float64 {
	return p2.Sub(p1).Cross(p3.Sub(p1))
}

// Angle returns the heading of the vector p.
func Angle(p r2.Point) float64 {
	return math.Atan2(p.Y, p.X)
}

// NormalizeAngle wraps theta to [-pi, pi).
func NormalizeAngle(theta float64) float64 {
	a := math.Mod(theta+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
