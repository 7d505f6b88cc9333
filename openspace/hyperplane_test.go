package openspace

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestHyperplaneVerticalEdge(t *testing.T) {
	vertices := [][]r2.Point{{{X: 2, Y: 0}, {X: 2, Y: 5}}}
	a, b, err := buildHyperplanes(vertices, []int{1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.At(0, 0), test.ShouldEqual, -1)
	test.That(t, a.At(0, 1), test.ShouldEqual, 0)
	test.That(t, b.AtVec(0), test.ShouldEqual, -2)

	// reversed traversal flips the sign
	vertices = [][]r2.Point{{{X: 2, Y: 5}, {X: 2, Y: 0}}}
	a, b, err = buildHyperplanes(vertices, []int{1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.At(0, 0), test.ShouldEqual, 1)
	test.That(t, b.AtVec(0), test.ShouldEqual, 2)
}

func TestHyperplaneHorizontalEdge(t *testing.T) {
	vertices := [][]r2.Point{{{X: 0, Y: 3}, {X: 4, Y: 3}}}
	a, b, err := buildHyperplanes(vertices, []int{1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.At(0, 0), test.ShouldEqual, 0)
	test.That(t, a.At(0, 1), test.ShouldEqual, 1)
	test.That(t, b.AtVec(0), test.ShouldEqual, 3)
}

func TestHyperplaneGeneralEdge(t *testing.T) {
	// line through (0,0) and (2,4): y = 2x
	vertices := [][]r2.Point{{{X: 0, Y: 0}, {X: 2, Y: 4}}}
	a, b, err := buildHyperplanes(vertices, []int{1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.At(0, 0), test.ShouldAlmostEqual, -2, 1e-12)
	test.That(t, a.At(0, 1), test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, b.AtVec(0), test.ShouldAlmostEqual, 0, 1e-12)

	// reversed traversal
	vertices = [][]r2.Point{{{X: 2, Y: 4}, {X: 0, Y: 0}}}
	a, _, err = buildHyperplanes(vertices, []int{1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.At(0, 0), test.ShouldAlmostEqual, 2, 1e-12)
	test.That(t, a.At(0, 1), test.ShouldAlmostEqual, -1, 1e-12)
}

func TestHyperplaneClosedBox(t *testing.T) {
	// a unit box traversed clockwise, closed by repeating the first vertex
	vertices := [][]r2.Point{{
		{X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1},
	}}
	a, b, err := buildHyperplanes(vertices, []int{4})
	test.That(t, err, test.ShouldBeNil)
	rows, cols := a.Dims()
	test.That(t, rows, test.ShouldEqual, 4)
	test.That(t, cols, test.ShouldEqual, 2)
	test.That(t, b.Len(), test.ShouldEqual, 4)
}

func TestHyperplaneRowTotals(t *testing.T) {
	vertices := [][]r2.Point{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}},
		{{X: 5, Y: 5}, {X: 6, Y: 5}},
	}
	edgeCounts := []int{2, 1}
	a, b, err := buildHyperplanes(vertices, edgeCounts)
	test.That(t, err, test.ShouldBeNil)
	total := 0
	for _, c := range edgeCounts {
		total += c
	}
	rows, _ := a.Dims()
	test.That(t, rows, test.ShouldEqual, total)
	test.That(t, b.Len(), test.ShouldEqual, total)
}

func TestHyperplaneDimensionMismatch(t *testing.T) {
	vertices := [][]r2.Point{{{X: 0, Y: 0}, {X: 1, Y: 0}}}

	_, _, err := buildHyperplanes(vertices, []int{1, 1})
	test.That(t, errors.Is(err, ErrDimensionMismatch), test.ShouldBeTrue)

	// claims more edges than the vertex list supports
	_, _, err = buildHyperplanes(vertices, []int{2})
	test.That(t, errors.Is(err, ErrDimensionMismatch), test.ShouldBeTrue)
}
