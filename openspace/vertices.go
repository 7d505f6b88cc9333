package openspace

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/driveplan/openspace/planar"
)

// loadObstacleVertices assembles the ordered vertex list of every obstacle:
// first the fused boundary segment groups (open polygons, no repeated first
// vertex), then the surviving perception obstacles (closed, first vertex
// repeated, 4 edges each). The returned edge counts follow the same order.
func (d *Decider) loadObstacleVertices(
	obstacles []*Obstacle,
	boundary [][]r2.Point,
	origin r2.Point,
	originHeading float64,
	bounds [4]float64,
	endPose EndPose,
	vehicleXY r2.Point,
) ([][]r2.Point, []int, error) {
	vertices := make([][]r2.Point, 0, len(boundary)+len(obstacles))
	edgeCounts := make([]int, 0, len(boundary)+len(obstacles))

	// Boundary polygons are bounded path pieces, not loops; the first vertex
	// is not repeated and the edge count is one less than the vertex count.
	for _, group := range boundary {
		if len(group) < 2 {
			return nil, nil, errors.Wrap(ErrDegenerateGeometry, "boundary polygon with fewer than 2 vertices")
		}
		vertices = append(vertices, group)
		edgeCounts = append(edgeCounts, len(group)-1)
	}

	if !d.cfg.EnablePerceptionObstacles {
		return vertices, edgeCounts, nil
	}
	if len(obstacles) == 0 {
		d.logger.Debug("no obstacle given by perception")
	}

	// The end pose lives in the ROI frame; the distance filter compares in
	// the world frame.
	endPoseXY := planar.FromFrame(r2.Point{X: endPose.X, Y: endPose.Y}, origin, originHeading)
	for _, obstacle := range obstacles {
		if d.filterOutObstacle(obstacle, origin, originHeading, bounds, endPoseXY, vehicleXY) {
			continue
		}
		box := obstacle.Box
		box.Shift(origin.Mul(-1))
		box.LongitudinalExtend(d.cfg.PerceptionObstacleBuffer)
		box.LateralExtend(d.cfg.PerceptionObstacleBuffer)

		// Corners come counter-clockwise; emit them clockwise, rotated into
		// the ROI frame, and close the hull by repeating the first vertex.
		ccw := box.Corners()
		cw := make([]r2.Point, 0, len(ccw)+1)
		for i := len(ccw) - 1; i >= 0; i-- {
			cw = append(cw, planar.Rotate(ccw[i], -originHeading))
		}
		cw = append(cw, cw[0])
		vertices = append(vertices, cw)
		edgeCounts = append(edgeCounts, 4)
	}
	return vertices, edgeCounts, nil
}

// filterOutObstacle reports whether an obstacle is irrelevant to the parking
// maneuver: virtual, centered outside the ROI box, or farther than the
// filtering distance from both the vehicle and the end pose.
func (d *Decider) filterOutObstacle(
	obstacle *Obstacle,
	origin r2.Point,
	originHeading float64,
	bounds [4]float64,
	endPoseXY, vehicleXY r2.Point,
) bool {
	if obstacle.Virtual {
		return true
	}
	center := planar.ToFrame(obstacle.Box.Center, origin, originHeading)
	if center.X < bounds[0] || center.X > bounds[1] || center.Y < bounds[2] || center.Y > bounds[3] {
		return true
	}
	filteringDistance := d.cfg.PerceptionObstacleFilteringDistance
	return obstacle.Box.DistanceTo(vehicleXY) > filteringDistance &&
		obstacle.Box.DistanceTo(endPoseXY) > filteringDistance
}
