package openspace

import (
	"sort"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/driveplan/openspace/planar"
)

// roiBoundary is the stitched free-space boundary in the ROI frame: a closed
// loop of points (first point repeated at the end) and the same loop as an
// ordered list of line segments for the fuser and vertex loader.
type roiBoundary struct {
	loop     []r2.Point
	segments [][]r2.Point
}

// stitchBoundary splices the sampled lane boundary with the four spot corners
// into one closed loop. Which lane side is reshaped and stitched, and the
// loop traversal direction, branch on the sign of averageL: negative means
// the spot sits right of the lane centerline.
func stitchBoundary(
	samples *boundarySamples,
	corners spotCorners,
	origin r2.Point,
	originHeading float64,
	averageL, leftTopS, rightTopS float64,
) (*roiBoundary, error) {
	n := len(samples.s)
	if n < 2 {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "only %d boundary samples in ROI window", n)
	}

	if averageL < 0 {
		return stitchSpotOnRight(samples, corners, origin, originHeading, averageL, leftTopS, rightTopS)
	}
	return stitchSpotOnLeft(samples, corners, origin, originHeading, averageL, leftTopS, rightTopS)
}

func stitchSpotOnRight(
	samples *boundarySamples,
	corners spotCorners,
	origin r2.Point,
	originHeading float64,
	averageL, leftTopS, rightTopS float64,
) (*roiBoundary, error) {
	n := len(samples.s)

	// Reshape the right boundary so its offset magnitude is |averageL|
	// instead of the full road width; the spot may be narrower than the
	// shoulder.
	right := reshapeBoundary(samples.right, samples.center, samples.rightWidth, -averageL)
	right = toFrameAll(right, origin, originHeading)
	left := toFrameAll(samples.left, origin, originHeading)

	// Stitch indices: the sample just before the left-top projection and the
	// sample just after the right-top projection.
	leftIdx := sort.SearchFloat64s(samples.s, leftTopS)
	if leftIdx > 0 {
		leftIdx--
	}
	rightIdx := sort.Search(n, func(k int) bool { return samples.s[k] > rightTopS })
	if leftIdx >= n || rightIdx >= n {
		return nil, errors.Wrap(ErrDegenerateGeometry, "parking spot stitch point outside sampling window")
	}

	loop := make([]r2.Point, 0, 2*n+5)
	loop = append(loop, right[:leftIdx]...)
	loop = append(loop, corners.leftTop, corners.leftDown, corners.rightDown, corners.rightTop)
	loop = append(loop, right[rightIdx:]...)
	for i := n - 1; i >= 0; i-- {
		loop = append(loop, left[i])
	}
	// reinsert the initial point to form a closed loop
	loop = append(loop, right[0])

	segments := make([][]r2.Point, 0, 2*n+5)
	for i := 0; i < leftIdx; i++ {
		segments = append(segments, []r2.Point{right[i], right[i+1]})
	}
	segments = append(segments,
		[]r2.Point{right[leftIdx], corners.leftTop},
		[]r2.Point{corners.leftTop, corners.leftDown},
		[]r2.Point{corners.leftDown, corners.rightDown},
		[]r2.Point{corners.rightDown, corners.rightTop},
		[]r2.Point{corners.rightTop, right[rightIdx]},
	)
	for i := rightIdx; i < n-1; i++ {
		segments = append(segments, []r2.Point{right[i], right[i+1]})
	}
	for i := n - 1; i > 0; i-- {
		segments = append(segments, []r2.Point{left[i], left[i-1]})
	}
	return &roiBoundary{loop: loop, segments: segments}, nil
}

func stitchSpotOnLeft(
	samples *boundarySamples,
	corners spotCorners,
	origin r2.Point,
	originHeading float64,
	averageL, leftTopS, rightTopS float64,
) (*roiBoundary, error) {
	n := len(samples.s)

	left := reshapeBoundary(samples.left, samples.center, samples.leftWidth, averageL)
	left = toFrameAll(left, origin, originHeading)
	right := toFrameAll(samples.right, origin, originHeading)

	rightIdx := sort.SearchFloat64s(samples.s, rightTopS)
	if rightIdx > 0 {
		rightIdx--
	}
	leftIdx := sort.Search(n, func(k int) bool { return samples.s[k] > leftTopS })
	if leftIdx >= n || rightIdx >= n {
		return nil, errors.Wrap(ErrDegenerateGeometry, "parking spot stitch point outside sampling window")
	}

	loop := make([]r2.Point, 0, 2*n+5)
	loop = append(loop, right...)
	for i := n - 1; i >= leftIdx; i-- {
		loop = append(loop, left[i])
	}
	loop = append(loop, corners.leftTop, corners.leftDown, corners.rightDown, corners.rightTop)
	for i := rightIdx - 1; i >= 0; i-- {
		loop = append(loop, left[i])
	}
	// reinsert the initial point to form a closed loop
	loop = append(loop, right[0])

	segments := make([][]r2.Point, 0, 2*n+5)
	for i := 0; i < n-1; i++ {
		segments = append(segments, []r2.Point{right[i], right[i+1]})
	}
	for i := n - 1; i > leftIdx; i-- {
		segments = append(segments, []r2.Point{left[i], left[i-1]})
	}
	segments = append(segments,
		[]r2.Point{left[leftIdx], corners.leftTop},
		[]r2.Point{corners.leftTop, corners.leftDown},
		[]r2.Point{corners.leftDown, corners.rightDown},
		[]r2.Point{corners.rightDown, corners.rightTop},
		[]r2.Point{corners.rightTop, left[rightIdx]},
	)
	for i := rightIdx; i > 0; i-- {
		segments = append(segments, []r2.Point{left[i], left[i-1]})
	}
	return &roiBoundary{loop: loop, segments: segments}, nil
}

// reshapeBoundary rescales every boundary point about its center point so the
// offset magnitude becomes scale instead of the sampled road width. The
// rescale is a similarity operation, so it is frame independent and done in
// the world frame.
func reshapeBoundary(boundary, center []r2.Point, width []float64, scale float64) []r2.Point {
	out := make([]r2.Point, len(boundary))
	for i, pt := range boundary {
		if width[i] <= 0 {
			out[i] = pt
			continue
		}
		out[i] = center[i].Add(pt.Sub(center[i]).Mul(scale / width[i]))
	}
	return out
}

func toFrameAll(points []r2.Point, origin r2.Point, heading float64) []r2.Point {
	out := make([]r2.Point, len(points))
	for i, pt := range points {
		out[i] = planar.ToFrame(pt, origin, heading)
	}
	return out
}
