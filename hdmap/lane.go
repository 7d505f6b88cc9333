package hdmap

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Lane is a single lane's centerline polyline with per-point road widths and
// its successor topology.
type Lane struct {
	id         string
	centerline []r2.Point
	leftWidth  []float64
	rightWidth []float64
	successors []string
	accumS     []float64
}

// NewLane builds a lane from a centerline of at least two points. leftWidth
// and rightWidth give the road width on each side at every centerline point.
func NewLane(id string, centerline []r2.Point, leftWidth, rightWidth []float64, successors []string) (*Lane, error) {
	if len(centerline) < 2 {
		return nil, errors.Errorf("lane %q needs at least 2 centerline points, got %d", id, len(centerline))
	}
	if len(leftWidth) != len(centerline) || len(rightWidth) != len(centerline) {
		return nil, errors.Errorf("lane %q width samples must match centerline points (%d)", id, len(centerline))
	}
	accumS := make([]float64, len(centerline))
	for i := 1; i < len(centerline); i++ {
		step := centerline[i].Sub(centerline[i-1]).Norm()
		if step == 0 {
			return nil, errors.Errorf("lane %q has a zero-length centerline step at index %d", id, i)
		}
		accumS[i] = accumS[i-1] + step
	}
	return &Lane{
		id:         id,
		centerline: append([]r2.Point{}, centerline...),
		leftWidth:  append([]float64{}, leftWidth...),
		rightWidth: append([]float64{}, rightWidth...),
		successors: append([]string{}, successors...),
		accumS:     accumS,
	}, nil
}

// ID returns the lane id.
func (l *Lane) ID() string { return l.id }

// Length returns the arc length of the centerline.
func (l *Lane) Length() float64 { return l.accumS[len(l.accumS)-1] }

// Successors returns the ids of the lanes following this one.
func (l *Lane) Successors() []string { return l.successors }

// LaneSegment is a longitudinal slice of a lane, used to compose paths.
type LaneSegment struct {
	Lane   *Lane
	StartS float64
	EndS   float64
}

// FullSegment returns the segment spanning the whole lane.
func FullSegment(l *Lane) LaneSegment {
	return LaneSegment{Lane: l, StartS: 0, EndS: l.Length()}
}
