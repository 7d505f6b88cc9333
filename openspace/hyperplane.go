package openspace

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// hyperplaneEpsilon classifies an edge as vertical or horizontal.
const hyperplaneEpsilon = 1e-5

// buildHyperplanes converts every polygon edge into one linear inequality
// row, concatenating all obstacles into a global (A, b) pair. The sign of
// each row follows the edge's traversal direction, which encodes the outside
// of the obstacle; the winding produced upstream must not be altered.
func buildHyperplanes(vertices [][]r2.Point, edgeCounts []int) (*mat.Dense, *mat.VecDense, error) {
	if len(vertices) != len(edgeCounts) {
		return nil, nil, errors.Wrapf(ErrDimensionMismatch,
			"%d obstacles but %d edge counts", len(vertices), len(edgeCounts))
	}
	total := 0
	for i, count := range edgeCounts {
		if count < 1 || count > len(vertices[i])-1 {
			return nil, nil, errors.Wrapf(ErrDimensionMismatch,
				"obstacle %d has %d vertices but claims %d edges", i, len(vertices[i]), count)
		}
		total += count
	}

	a := mat.NewDense(total, 2, nil)
	b := mat.NewVecDense(total, nil)
	row := 0
	for i, poly := range vertices {
		for j := 0; j < edgeCounts[i]; j++ {
			v1, v2 := poly[j], poly[j+1]
			var a1, a2, rhs float64
			switch {
			case math.Abs(v1.X-v2.X) < hyperplaneEpsilon:
				// vertical edge
				if v2.Y < v1.Y {
					a1, a2, rhs = 1, 0, v1.X
				} else {
					a1, a2, rhs = -1, 0, -v1.X
				}
			case math.Abs(v1.Y-v2.Y) < hyperplaneEpsilon:
				// horizontal edge
				if v1.X < v2.X {
					a1, a2, rhs = 0, 1, v1.Y
				} else {
					a1, a2, rhs = 0, -1, -v1.Y
				}
			default:
				// closed-form two-point fit of y = slope*x + intercept
				slope := (v2.Y - v1.Y) / (v2.X - v1.X)
				intercept := v1.Y - slope*v1.X
				if v1.X < v2.X {
					a1, a2, rhs = -slope, 1, intercept
				} else {
					a1, a2, rhs = slope, -1, -intercept
				}
			}
			a.Set(row, 0, a1)
			a.Set(row, 1, a2)
			b.SetVec(row, rhs)
			row++
		}
	}
	return a, b, nil
}
