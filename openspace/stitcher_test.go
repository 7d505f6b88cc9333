package openspace

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

// straightSamples builds samples along a straight lane on the x axis with
// the given road width, one sample per unit of arc length.
func straightSamples(n int, width float64) *boundarySamples {
	samples := &boundarySamples{}
	for i := 0; i < n; i++ {
		s := float64(i)
		samples.center = append(samples.center, r2.Point{X: s, Y: 0})
		samples.left = append(samples.left, r2.Point{X: s, Y: width})
		samples.right = append(samples.right, r2.Point{X: s, Y: -width})
		samples.s = append(samples.s, s)
		samples.leftWidth = append(samples.leftWidth, width)
		samples.rightWidth = append(samples.rightWidth, width)
	}
	return samples
}

func rightSpotCorners() (spotCorners, r2.Point, float64) {
	// spot below the lane: left-top (4,-4), right-top (7,-4), depth 6
	origin := r2.Point{X: 4, Y: -4}
	heading := 0.0
	return spotCorners{
		leftTop:   r2.Point{X: 0, Y: 0},
		leftDown:  r2.Point{X: 0, Y: -6},
		rightDown: r2.Point{X: 3, Y: -6},
		rightTop:  r2.Point{X: 3, Y: 0},
	}, origin, heading
}

func TestStitchSpotOnRightClosedLoop(t *testing.T) {
	samples := straightSamples(11, 4)
	corners, origin, heading := rightSpotCorners()

	boundary, err := stitchBoundary(samples, corners, origin, heading, -4, 4, 7)
	test.That(t, err, test.ShouldBeNil)

	// the loop is closed: first point equals last
	test.That(t, boundary.loop[0], test.ShouldResemble, boundary.loop[len(boundary.loop)-1])

	// every segment is non-degenerate
	for _, seg := range boundary.segments {
		test.That(t, len(seg), test.ShouldBeGreaterThanOrEqualTo, 2)
	}

	// stitch indices: sample just before left-top s (index 3) and just after
	// right-top s (index 8); segment count is pre-run + 5 + post-run +
	// reversed opposite side
	n := len(samples.s)
	test.That(t, len(boundary.segments), test.ShouldEqual, 3+5+(n-1-8)+(n-1))

	// the spot's three inner edges appear in order
	test.That(t, boundary.segments[4], test.ShouldResemble, []r2.Point{corners.leftTop, corners.leftDown})
	test.That(t, boundary.segments[5], test.ShouldResemble, []r2.Point{corners.leftDown, corners.rightDown})
	test.That(t, boundary.segments[6], test.ShouldResemble, []r2.Point{corners.rightDown, corners.rightTop})
}

func TestStitchReshapesChosenSide(t *testing.T) {
	// road width 4 but the spot sits at |l| = 2: the stitched lane boundary
	// must be pulled in to 2
	samples := straightSamples(11, 4)
	corners, origin, heading := rightSpotCorners()
	origin.Y = -2

	boundary, err := stitchBoundary(samples, corners, origin, heading, -2, 4, 7)
	test.That(t, err, test.ShouldBeNil)

	// first loop point is the reshaped right boundary at s=0: world (0,-2),
	// ROI frame (-4, 0)
	test.That(t, boundary.loop[0].X, test.ShouldAlmostEqual, -4, 1e-9)
	test.That(t, boundary.loop[0].Y, test.ShouldAlmostEqual, 0, 1e-9)

	// the opposite (left) side keeps its full road width
	last := boundary.segments[len(boundary.segments)-1]
	test.That(t, last[len(last)-1].Y, test.ShouldAlmostEqual, 4+2, 1e-9)
}

func TestStitchSpotOnLeftClosedLoop(t *testing.T) {
	samples := straightSamples(11, 4)
	// spot above the lane, opening downward toward it; viewed with the
	// opening upward, left-top is at world (7,4) and the frame x axis runs
	// toward negative world x
	origin := r2.Point{X: 7, Y: 4}
	heading := math.Pi
	corners := spotCorners{
		leftTop:   r2.Point{X: 0, Y: 0},
		leftDown:  r2.Point{X: 0, Y: -6},
		rightDown: r2.Point{X: 3, Y: -6},
		rightTop:  r2.Point{X: 3, Y: 0},
	}

	boundary, err := stitchBoundary(samples, corners, origin, heading, 4, 7, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, boundary.loop[0], test.ShouldResemble, boundary.loop[len(boundary.loop)-1])
	for _, seg := range boundary.segments {
		test.That(t, len(seg), test.ShouldBeGreaterThanOrEqualTo, 2)
	}
}

func TestStitchTooFewSamples(t *testing.T) {
	samples := straightSamples(1, 4)
	corners, origin, heading := rightSpotCorners()
	_, err := stitchBoundary(samples, corners, origin, heading, -4, 4, 7)
	test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)
}

func TestStitchSpotBeyondWindow(t *testing.T) {
	samples := straightSamples(11, 4)
	corners, origin, heading := rightSpotCorners()
	// right-top projects past the last sample
	_, err := stitchBoundary(samples, corners, origin, heading, -4, 4, 20)
	test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)
}

func TestStitchThenFuseProperties(t *testing.T) {
	samples := straightSamples(11, 4)
	corners, origin, heading := rightSpotCorners()
	boundary, err := stitchBoundary(samples, corners, origin, heading, -4, 4, 7)
	test.That(t, err, test.ShouldBeNil)

	before := len(boundary.segments)
	fused, err := fuseSegments(boundary.segments)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(fused), test.ShouldBeLessThanOrEqualTo, before)
	for _, seg := range fused {
		test.That(t, len(seg), test.ShouldBeGreaterThanOrEqualTo, 2)
	}
}
