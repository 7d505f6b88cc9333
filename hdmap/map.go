// Package hdmap models the slice of the HD map the open-space planner
// queries: lanes, composite paths near a parking spot, and parking spaces.
package hdmap

import (
	"github.com/golang/geo/r2"
)

// ParkingSpace is a parking spot polygon. Corners are ordered left-down,
// right-down, right-top, left-top when viewed with the spot opening upward.
type ParkingSpace struct {
	ID      string
	Corners [4]r2.Point
}

// LeftDown returns the corner at the closed (deep) end, left side.
func (p *ParkingSpace) LeftDown() r2.Point { return p.Corners[0] }

// RightDown returns the corner at the closed (deep) end, right side.
func (p *ParkingSpace) RightDown() r2.Point { return p.Corners[1] }

// RightTop returns the corner at the open end, right side.
func (p *ParkingSpace) RightTop() r2.Point { return p.Corners[2] }

// LeftTop returns the corner at the open end, left side.
func (p *ParkingSpace) LeftTop() r2.Point { return p.Corners[3] }

// Map is the query surface the open-space planner needs from the HD map.
type Map interface {
	// NearestLaneWithHeading returns the lane closest to pt within radius
	// whose heading at the projected point is within maxHeadingDiff of
	// heading, along with the projected arc length and lateral offset.
	NearestLaneWithHeading(pt r2.Point, radius, heading, maxHeadingDiff float64) (*Lane, float64, float64, error)

	// LaneByID returns the lane with the given id.
	LaneByID(id string) (*Lane, error)

	// ParkingSpaceByID returns the parking space with the given id.
	ParkingSpaceByID(id string) (*ParkingSpace, error)

	// PathFromLanes composes the given lanes, in order, into one path with
	// its parking-space overlaps resolved.
	PathFromLanes(lanes ...*Lane) (*Path, error)
}
