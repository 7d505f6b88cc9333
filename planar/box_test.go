package planar

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestBoxCorners(t *testing.T) {
	b := NewBox(r2.Point{X: 1, Y: 2}, 0, 4, 2)
	corners := b.Corners()
	test.That(t, len(corners), test.ShouldEqual, 4)
	// front-left first, counter-clockwise
	test.That(t, corners[0], test.ShouldResemble, r2.Point{X: 3, Y: 3})
	test.That(t, corners[1], test.ShouldResemble, r2.Point{X: -1, Y: 3})
	test.That(t, corners[2], test.ShouldResemble, r2.Point{X: -1, Y: 1})
	test.That(t, corners[3], test.ShouldResemble, r2.Point{X: 3, Y: 1})

	// counter-clockwise winding has positive signed area
	area := 0.0
	for i := range corners {
		j := (i + 1) % len(corners)
		area += corners[i].X*corners[j].Y - corners[j].X*corners[i].Y
	}
	test.That(t, area, test.ShouldBeGreaterThan, 0)
}

func TestBoxCornersRotated(t *testing.T) {
	b := NewBox(r2.Point{}, math.Pi/2, 4, 2)
	corners := b.Corners()
	test.That(t, corners[0].X, test.ShouldAlmostEqual, -1, 1e-12)
	test.That(t, corners[0].Y, test.ShouldAlmostEqual, 2, 1e-12)
}

func TestBoxDistanceTo(t *testing.T) {
	b := NewBox(r2.Point{}, 0, 4, 2)
	test.That(t, b.DistanceTo(r2.Point{X: 1, Y: 0.5}), test.ShouldEqual, 0)
	test.That(t, b.DistanceTo(r2.Point{X: 5, Y: 0}), test.ShouldAlmostEqual, 3, 1e-12)
	test.That(t, b.DistanceTo(r2.Point{X: 0, Y: -4}), test.ShouldAlmostEqual, 3, 1e-12)
	test.That(t, b.DistanceTo(r2.Point{X: 5, Y: 5}), test.ShouldAlmostEqual, math.Hypot(3, 4), 1e-12)
}

func TestBoxExtend(t *testing.T) {
	b := NewBox(r2.Point{}, 0, 4, 2)
	b.LongitudinalExtend(1)
	b.LateralExtend(0.5)
	test.That(t, b.Length, test.ShouldEqual, 5)
	test.That(t, b.Width, test.ShouldEqual, 2.5)
	b.Shift(r2.Point{X: -1, Y: 2})
	test.That(t, b.Center, test.ShouldResemble, r2.Point{X: -1, Y: 2})
}
