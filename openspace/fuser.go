package openspace

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/driveplan/openspace/planar"
)

// segmentJoinTolerance decides whether two adjacent segments share an
// endpoint and are therefore merge candidates.
const segmentJoinTolerance = 1e-8

// fuseSegments walks the boundary segment list pairwise and merges adjacent
// segments while the shared corner stays mutually convex, minimizing the
// constraint count passed downstream. A non-negative cross product of
// (second-to-last, last, next-second) merges the pair; a negative one marks a
// genuinely required corner and the pair stays distinct. Loop order is
// preserved.
func fuseSegments(segments [][]r2.Point) ([][]r2.Point, error) {
	i := 0
	for i < len(segments)-1 {
		cur, next := segments[i], segments[i+1]
		if len(cur) < 2 || len(next) < 2 {
			return nil, errors.Wrap(ErrDegenerateGeometry, "single point segment in boundary")
		}
		last := cur[len(cur)-1]
		if last.Sub(next[0]).Norm() > segmentJoinTolerance {
			i++
			continue
		}
		if planar.CrossProd(cur[len(cur)-2], last, next[1]) >= 0 {
			segments[i] = append(cur, next[1])
			if len(next) == 2 {
				segments = append(segments[:i+1], segments[i+2:]...)
			} else {
				segments[i+1] = next[2:]
			}
		} else {
			i++
		}
	}
	return segments, nil
}
