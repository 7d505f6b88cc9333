package hdmap

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/driveplan/openspace/planar"
)

// PathOverlap records a map object overlapping a path over an arc-length
// range.
type PathOverlap struct {
	ObjectID string
	StartS   float64
	EndS     float64
}

// Path is a composite polyline built from one or more lane segments. It
// answers the arc-length queries the open-space planner needs: smooth point
// and heading at s, road widths at s, and projection of arbitrary points.
type Path struct {
	points     []r2.Point
	accumS     []float64
	leftWidth  []float64
	rightWidth []float64
	overlaps   []PathOverlap
}

const duplicateJunctionTolerance = 1e-6

// NewPath concatenates the given lane segments into one path. Consecutive
// segments whose geometry meets at a shared point are joined without
// duplicating the junction.
func NewPath(segments []LaneSegment) (*Path, error) {
	if len(segments) == 0 {
		return nil, errors.New("path needs at least one lane segment")
	}
	p := &Path{}
	for _, seg := range segments {
		if seg.Lane == nil {
			return nil, errors.New("path segment has no lane")
		}
		pts, lw, rw, err := seg.slice()
		if err != nil {
			return nil, errors.Wrapf(err, "lane %q", seg.Lane.ID())
		}
		for i, pt := range pts {
			if n := len(p.points); n > 0 && pt.Sub(p.points[n-1]).Norm() < duplicateJunctionTolerance {
				continue
			}
			p.points = append(p.points, pt)
			p.leftWidth = append(p.leftWidth, lw[i])
			p.rightWidth = append(p.rightWidth, rw[i])
		}
	}
	if len(p.points) < 2 {
		return nil, errors.New("path collapsed to fewer than 2 points")
	}
	p.accumS = make([]float64, len(p.points))
	for i := 1; i < len(p.points); i++ {
		p.accumS[i] = p.accumS[i-1] + p.points[i].Sub(p.points[i-1]).Norm()
	}
	return p, nil
}

// slice extracts the segment's point range from its lane, interpolating
// endpoints that fall between centerline samples.
func (seg LaneSegment) slice() ([]r2.Point, []float64, []float64, error) {
	l := seg.Lane
	start := math.Max(seg.StartS, 0)
	end := math.Min(seg.EndS, l.Length())
	if start >= end {
		return nil, nil, nil, errors.Errorf("empty segment range [%f, %f]", seg.StartS, seg.EndS)
	}
	var pts []r2.Point
	var lw, rw []float64
	emit := func(s float64) {
		pt, i, t := interpolate(l.centerline, l.accumS, s)
		pts = append(pts, pt)
		lw = append(lw, lerp(l.leftWidth[i], l.leftWidth[i+1], t))
		rw = append(rw, lerp(l.rightWidth[i], l.rightWidth[i+1], t))
	}
	emit(start)
	for i, s := range l.accumS {
		if s > start && s < end {
			pts = append(pts, l.centerline[i])
			lw = append(lw, l.leftWidth[i])
			rw = append(rw, l.rightWidth[i])
		}
	}
	emit(end)
	return pts, lw, rw, nil
}

// Length returns the total arc length of the path.
func (p *Path) Length() float64 { return p.accumS[len(p.accumS)-1] }

// ParkingSpaceOverlaps returns the parking spaces overlapping this path,
// ordered by starting arc length.
func (p *Path) ParkingSpaceOverlaps() []PathOverlap { return p.overlaps }

// SmoothPoint returns the point at arc length s and the path heading there.
// s is clamped to [0, Length].
func (p *Path) SmoothPoint(s float64) (r2.Point, float64) {
	pt, i, _ := interpolate(p.points, p.accumS, s)
	heading := planar.Angle(p.points[i+1].Sub(p.points[i]))
	return pt, heading
}

// RoadLeftWidth returns the road width left of the path at arc length s.
func (p *Path) RoadLeftWidth(s float64) float64 {
	_, i, t := interpolate(p.points, p.accumS, s)
	return lerp(p.leftWidth[i], p.leftWidth[i+1], t)
}

// RoadRightWidth returns the road width right of the path at arc length s.
func (p *Path) RoadRightWidth(s float64) float64 {
	_, i, t := interpolate(p.points, p.accumS, s)
	return lerp(p.rightWidth[i], p.rightWidth[i+1], t)
}

// Projection returns the arc length and signed lateral offset of pt relative
// to the path, extrapolating past the path's ends along the terminal
// segments. The lateral offset is positive left of the path.
func (p *Path) Projection(pt r2.Point) (float64, float64, error) {
	return p.project(pt, true)
}

// NearestPoint is Projection clamped to the path's arc-length range.
func (p *Path) NearestPoint(pt r2.Point) (float64, float64, error) {
	return p.project(pt, false)
}

func (p *Path) project(pt r2.Point, extrapolate bool) (float64, float64, error) {
	if len(p.points) < 2 {
		return 0, 0, errors.New("path has no geometry to project onto")
	}
	bestDist := math.Inf(1)
	var bestS, bestL float64
	for i := 0; i+1 < len(p.points); i++ {
		seg := p.points[i+1].Sub(p.points[i])
		segLen := seg.Norm()
		d := pt.Sub(p.points[i])
		t := d.Dot(seg) / (segLen * segLen)
		if !extrapolate || (t < 0 && i != 0) || (t > 1 && i+2 != len(p.points)) {
			t = math.Max(0, math.Min(1, t))
		}
		proj := p.points[i].Add(seg.Mul(t))
		dist := pt.Sub(proj).Norm()
		if dist < bestDist {
			bestDist = dist
			bestS = p.accumS[i] + t*segLen
			// lateral offset from the segment's infinite line, positive left
			bestL = seg.Cross(d) / segLen
		}
	}
	return bestS, bestL, nil
}

// interpolate locates s within accumS and returns the interpolated point, the
// index of the surrounding segment and the interpolation parameter.
func interpolate(points []r2.Point, accumS []float64, s float64) (r2.Point, int, float64) {
	n := len(points)
	if s <= accumS[0] {
		return points[0], 0, 0
	}
	if s >= accumS[n-1] {
		return points[n-1], n - 2, 1
	}
	i := sort.SearchFloat64s(accumS, s)
	if accumS[i] > s {
		i--
	}
	if i > n-2 {
		i = n - 2
	}
	t := (s - accumS[i]) / (accumS[i+1] - accumS[i])
	return points[i].Add(points[i+1].Sub(points[i]).Mul(t)), i, t
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
