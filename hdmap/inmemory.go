package hdmap

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/driveplan/openspace/planar"
)

// InMemoryMap is a Map backed by explicitly registered lanes and parking
// spaces. It serves tests and deployments whose map slice is assembled
// up front.
type InMemoryMap struct {
	lanes        map[string]*Lane
	lanePaths    map[string]*Path
	spaces       map[string]*ParkingSpace
	spacesByLane map[string][]string
}

// NewInMemoryMap returns an empty map.
func NewInMemoryMap() *InMemoryMap {
	return &InMemoryMap{
		lanes:        map[string]*Lane{},
		lanePaths:    map[string]*Path{},
		spaces:       map[string]*ParkingSpace{},
		spacesByLane: map[string][]string{},
	}
}

// AddLane registers a lane.
func (m *InMemoryMap) AddLane(l *Lane) error {
	if _, ok := m.lanes[l.ID()]; ok {
		return errors.Errorf("duplicate lane id %q", l.ID())
	}
	path, err := NewPath([]LaneSegment{FullSegment(l)})
	if err != nil {
		return err
	}
	m.lanes[l.ID()] = l
	m.lanePaths[l.ID()] = path
	return nil
}

// AddParkingSpace registers a parking space as overlapping the given lane.
func (m *InMemoryMap) AddParkingSpace(space *ParkingSpace, laneID string) error {
	if _, ok := m.lanes[laneID]; !ok {
		return errors.Errorf("unknown lane id %q", laneID)
	}
	if _, ok := m.spaces[space.ID]; ok {
		return errors.Errorf("duplicate parking space id %q", space.ID)
	}
	m.spaces[space.ID] = space
	m.spacesByLane[laneID] = append(m.spacesByLane[laneID], space.ID)
	return nil
}

// LaneByID implements Map.
func (m *InMemoryMap) LaneByID(id string) (*Lane, error) {
	l, ok := m.lanes[id]
	if !ok {
		return nil, errors.Errorf("no lane with id %q", id)
	}
	return l, nil
}

// ParkingSpaceByID implements Map.
func (m *InMemoryMap) ParkingSpaceByID(id string) (*ParkingSpace, error) {
	s, ok := m.spaces[id]
	if !ok {
		return nil, errors.Errorf("no parking space with id %q", id)
	}
	return s, nil
}

// NearestLaneWithHeading implements Map.
func (m *InMemoryMap) NearestLaneWithHeading(
	pt r2.Point, radius, heading, maxHeadingDiff float64,
) (*Lane, float64, float64, error) {
	var best *Lane
	bestDist := math.Inf(1)
	var bestS, bestL float64
	for id, l := range m.lanes {
		path := m.lanePaths[id]
		s, lat, err := path.NearestPoint(pt)
		if err != nil {
			continue
		}
		proj, laneHeading := path.SmoothPoint(s)
		dist := pt.Sub(proj).Norm()
		if dist > radius {
			continue
		}
		if math.Abs(planar.NormalizeAngle(laneHeading-heading)) > maxHeadingDiff {
			continue
		}
		if dist < bestDist {
			best, bestDist, bestS, bestL = l, dist, s, lat
		}
	}
	if best == nil {
		return nil, 0, 0, errors.Errorf("no lane within %.1fm of (%.2f, %.2f) matching heading %.3f", radius, pt.X, pt.Y, heading)
	}
	return best, bestS, bestL, nil
}

// PathFromLanes implements Map. Parking spaces registered on any of the
// composed lanes become overlaps, located by projecting their open-end
// corners onto the path.
func (m *InMemoryMap) PathFromLanes(lanes ...*Lane) (*Path, error) {
	segments := make([]LaneSegment, 0, len(lanes))
	for _, l := range lanes {
		segments = append(segments, FullSegment(l))
	}
	path, err := NewPath(segments)
	if err != nil {
		return nil, err
	}
	for _, l := range lanes {
		for _, spaceID := range m.spacesByLane[l.ID()] {
			space := m.spaces[spaceID]
			s1, _, err := path.NearestPoint(space.LeftTop())
			if err != nil {
				return nil, err
			}
			s2, _, err := path.NearestPoint(space.RightTop())
			if err != nil {
				return nil, err
			}
			path.overlaps = append(path.overlaps, PathOverlap{
				ObjectID: spaceID,
				StartS:   math.Min(s1, s2),
				EndS:     math.Max(s1, s2),
			})
		}
	}
	sort.Slice(path.overlaps, func(i, j int) bool {
		return path.overlaps[i].StartS < path.overlaps[j].StartS
	})
	return path, nil
}
