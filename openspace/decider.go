// Package openspace extracts the region of interest for an open-space
// parking maneuver and formulates every obstacle inside it as convex
// half-plane constraints for the downstream trajectory optimizer.
//
// Given a target parking spot, the current vehicle pose and map access, one
// Process call produces a closed free-space boundary around the maneuver and
// an H-representation (A, b) of all boundary and perception obstacles, in a
// local frame anchored at the spot. Everything is recomputed from scratch
// every planning cycle; the only cross-cycle state is the previous cycle's
// resolved lane/spot identity, passed back in by the caller.
package openspace

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/driveplan/openspace/hdmap"
	"github.com/driveplan/openspace/planar"
)

// VehicleParams is the vehicle envelope the end-pose calculation needs.
type VehicleParams struct {
	// FrontEdgeToCenter is the distance from the front bumper to the
	// vehicle's reference center, in m.
	FrontEdgeToCenter float64
	// BackEdgeToCenter is the distance from the rear bumper to the vehicle's
	// reference center, in m.
	BackEdgeToCenter float64
}

// VehicleState is the vehicle pose at the start of the cycle.
type VehicleState struct {
	X       float64
	Y       float64
	Z       float64
	Heading float64
}

// Obstacle is one perceived obstacle, represented by its bounding box.
type Obstacle struct {
	ID      string
	Box     planar.Box
	Virtual bool
}

// Target identifies the resolved parking spot and the lane it was found
// from. Callers hand the previous cycle's Target back via Request.Previous to
// skip a redundant nearest-lane query when the spot is unchanged.
type Target struct {
	SpotID string
	LaneID string
}

// Request carries one planning cycle's inputs.
type Request struct {
	Vehicle   VehicleState
	SpotID    string
	Obstacles []*Obstacle
	// Previous is the prior cycle's resolved identity, nil on the first
	// cycle. It is never mutated.
	Previous *Target
}

// EndPose is the target vehicle pose inside the spot, in the ROI frame.
type EndPose struct {
	X       float64
	Y       float64
	Heading float64
	V       float64
}

// Result is one cycle's ROI output, consumed by the optimizer.
type Result struct {
	// OriginPoint and OriginHeading fix the ROI frame; all geometry below is
	// expressed relative to them.
	OriginPoint   r2.Point
	OriginHeading float64

	// XYBounds is the ROI bounding box as xmin, xmax, ymin, ymax.
	XYBounds [4]float64

	EndPose EndPose

	// ObstacleCount counts boundary-derived polygons plus surviving
	// perception obstacles. EdgeCounts has one entry per obstacle, in the
	// same order as Vertices; their sum equals the rows of A and the length
	// of B.
	ObstacleCount int
	EdgeCounts    []int
	Vertices      [][]r2.Point

	// A and B encode every obstacle edge as one linear inequality row.
	A *mat.Dense
	B *mat.VecDense

	// Target is the resolved identity for next-cycle reuse.
	Target Target
}

// Decider computes the parking ROI once per planning cycle.
type Decider struct {
	cfg     Config
	m       hdmap.Map
	vehicle VehicleParams
	logger  golog.Logger
}

// NewDecider validates the config and returns a ready Decider.
func NewDecider(cfg Config, m hdmap.Map, vehicle VehicleParams, logger golog.Logger) (*Decider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("map access is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Decider{cfg: cfg, m: m, vehicle: vehicle, logger: logger}, nil
}

// spot corners in the ROI frame.
type spotCorners struct {
	leftTop   r2.Point
	leftDown  r2.Point
	rightDown r2.Point
	rightTop  r2.Point
}

// Process runs one planning cycle. On error the returned Result is nil;
// callers must treat any failure as "no valid ROI this cycle".
func (d *Decider) Process(req *Request) (*Result, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if req.SpotID == "" {
		d.logger.Error("routing request has no parking spot id")
		return nil, ErrMissingParkingSpotID
	}

	spot, path, laneID, err := d.locateParkingSpot(req)
	if err != nil {
		d.logger.Errorw("failed to locate parking spot", "spot", req.SpotID, "error", err)
		return nil, err
	}

	// Left or right of the parking lot is decided viewing the spot open
	// upward.
	leftTop := spot.LeftTop()
	leftDown := spot.LeftDown()
	rightDown := spot.RightDown()
	rightTop := spot.RightTop()

	leftTopS, leftTopL, err := path.Projection(leftTop)
	if err != nil {
		d.logger.Errorw("failed to project spot corner on path", "error", err)
		return nil, errors.Wrap(ErrProjectionFailure, err.Error())
	}
	rightTopS, rightTopL, err := path.Projection(rightTop)
	if err != nil {
		d.logger.Errorw("failed to project spot corner on path", "error", err)
		return nil, errors.Wrap(ErrProjectionFailure, err.Error())
	}
	averageL := (leftTopL + rightTopL) / 2
	centerS := (leftTopS + rightTopS) / 2

	// The sampling window is clamped to the path; a lane without successors
	// ends the window early and no boundary is synthesized past the dead
	// end.
	startS := math.Max(centerS-d.cfg.RoiLongitudinalRange, 0)
	endS := math.Min(centerS+d.cfg.RoiLongitudinalRange, path.Length())
	samples := sampleBoundaries(path, startS, endS, d.cfg.RoiLinesegmentMinAngle, d.cfg.RoiLinesegmentLength)

	// The ROI frame: origin at the spot's left-top corner, x axis along the
	// spot's open edge.
	origin := leftTop
	originHeading := planar.Angle(rightTop.Sub(leftTop))
	corners := spotCorners{
		leftTop:   planar.ToFrame(leftTop, origin, originHeading),
		leftDown:  planar.ToFrame(leftDown, origin, originHeading),
		rightDown: planar.ToFrame(rightDown, origin, originHeading),
		rightTop:  planar.ToFrame(rightTop, origin, originHeading),
	}

	boundary, err := stitchBoundary(samples, corners, origin, originHeading, averageL, leftTopS, rightTopS)
	if err != nil {
		d.logger.Errorw("failed to stitch parking boundary", "error", err)
		return nil, err
	}
	fused, err := fuseSegments(boundary.segments)
	if err != nil {
		d.logger.Errorw("failed to fuse boundary segments", "error", err)
		return nil, err
	}

	bounds := xyBounds(boundary.loop)
	vehicleXY := r2.Point{X: req.Vehicle.X, Y: req.Vehicle.Y}
	vehicleLocal := planar.ToFrame(vehicleXY, origin, originHeading)
	if vehicleLocal.X < bounds[0] || vehicleLocal.X > bounds[1] ||
		vehicleLocal.Y < bounds[2] || vehicleLocal.Y > bounds[3] {
		d.logger.Errorw("vehicle outside parking ROI", "x", vehicleLocal.X, "y", vehicleLocal.Y, "bounds", bounds)
		return nil, ErrVehicleOutsideRoi
	}

	endPose := d.computeEndPose(corners)

	vertices, edgeCounts, err := d.loadObstacleVertices(req.Obstacles, fused, origin, originHeading, bounds, endPose, vehicleXY)
	if err != nil {
		d.logger.Errorw("failed to load obstacle vertices", "error", err)
		return nil, err
	}

	a, b, err := buildHyperplanes(vertices, edgeCounts)
	if err != nil {
		d.logger.Errorw("failed to build obstacle hyperplanes", "error", err)
		return nil, err
	}

	return &Result{
		OriginPoint:   origin,
		OriginHeading: originHeading,
		XYBounds:      bounds,
		EndPose:       endPose,
		ObstacleCount: len(vertices),
		EdgeCounts:    edgeCounts,
		Vertices:      vertices,
		A:             a,
		B:             b,
		Target:        Target{SpotID: req.SpotID, LaneID: laneID},
	}, nil
}

// xyBounds returns xmin, xmax, ymin, ymax over the given points.
func xyBounds(points []r2.Point) [4]float64 {
	bounds := [4]float64{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, p := range points {
		bounds[0] = math.Min(bounds[0], p.X)
		bounds[1] = math.Max(bounds[1], p.X)
		bounds[2] = math.Min(bounds[2], p.Y)
		bounds[3] = math.Max(bounds[3], p.Y)
	}
	return bounds
}
