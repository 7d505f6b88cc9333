package openspace

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/driveplan/openspace/hdmap"
	"github.com/driveplan/openspace/planar"
)

// boundarySamples holds the adaptively sampled lane geometry over the ROI
// window: the center point, both offset boundary points, arc length and road
// widths of every emitted sample, all in the world frame.
type boundarySamples struct {
	center     []r2.Point
	left       []r2.Point
	right      []r2.Point
	s          []float64
	leftWidth  []float64
	rightWidth []float64
}

// sampleBoundaries walks the path over [startS, endS]. Samples whose heading
// change since the last emitted sample stays below minAngle are skipped by
// one step, keeping straight stretches sparse; both window endpoints are
// always emitted.
func sampleBoundaries(path *hdmap.Path, startS, endS, minAngle, step float64) *boundarySamples {
	samples := &boundarySamples{}
	_, lastHeading := path.SmoothPoint(startS)
	s := startS
	for {
		center, heading := path.SmoothPoint(s)
		if math.Abs(planar.NormalizeAngle(heading-lastHeading)) < minAngle && s != startS && s != endS {
			s = math.Min(s+step, endS)
			lastHeading = heading
			continue
		}
		leftWidth := path.RoadLeftWidth(s)
		rightWidth := path.RoadRightWidth(s)
		sin, cos := math.Sincos(heading)
		// left is +90deg off heading, right is -90deg
		left := center.Add(r2.Point{X: -sin * leftWidth, Y: cos * leftWidth})
		right := center.Add(r2.Point{X: sin * rightWidth, Y: -cos * rightWidth})

		samples.center = append(samples.center, center)
		samples.left = append(samples.left, left)
		samples.right = append(samples.right, right)
		samples.s = append(samples.s, s)
		samples.leftWidth = append(samples.leftWidth, leftWidth)
		samples.rightWidth = append(samples.rightWidth, rightWidth)

		if s == endS {
			break
		}
		s = math.Min(s+step, endS)
		lastHeading = heading
	}
	return samples
}
