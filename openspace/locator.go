package openspace

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/driveplan/openspace/hdmap"
)

// locateParkingSpot resolves the target spot polygon and a short path near
// it. If the previous cycle resolved the same spot id, its lane is reused
// without a fresh nearest-lane query. Candidate paths are the resolved lane
// followed by each of its successors in turn; the first path whose overlaps
// contain the target spot wins.
func (d *Decider) locateParkingSpot(req *Request) (*hdmap.ParkingSpace, *hdmap.Path, string, error) {
	lane, err := d.resolveLane(req)
	if err != nil {
		return nil, nil, "", errors.Wrap(ErrMapLookupFailure, err.Error())
	}

	spot, path, err := d.searchSpotOnPaths(lane, req.SpotID)
	if err != nil {
		return nil, nil, "", errors.Wrap(ErrMapLookupFailure, err.Error())
	}

	if err := d.checkDistanceToParkingSpot(req, path, spot); err != nil {
		return nil, nil, "", errors.Wrap(ErrMapLookupFailure, err.Error())
	}
	return spot, path, lane.ID(), nil
}

func (d *Decider) resolveLane(req *Request) (*hdmap.Lane, error) {
	if prev := req.Previous; prev != nil && prev.SpotID == req.SpotID && prev.LaneID != "" {
		lane, err := d.m.LaneByID(prev.LaneID)
		if err == nil {
			return lane, nil
		}
		d.logger.Warnw("previous cycle's lane no longer resolvable, requerying", "lane", prev.LaneID, "error", err)
	}
	lane, _, _, err := d.m.NearestLaneWithHeading(
		r2.Point{X: req.Vehicle.X, Y: req.Vehicle.Y},
		d.cfg.NearestLaneSearchRadius,
		req.Vehicle.Heading,
		d.cfg.NearestLaneMaxHeadingDiff,
	)
	if err != nil {
		return nil, errors.Wrap(err, "no lane near vehicle")
	}
	return lane, nil
}

func (d *Decider) searchSpotOnPaths(lane *hdmap.Lane, spotID string) (*hdmap.ParkingSpace, *hdmap.Path, error) {
	successors := lane.Successors()
	if len(successors) == 0 {
		// Known limitation: a dead-end lane yields a path ending at the
		// lane's own end.
		path, err := d.m.PathFromLanes(lane)
		if err != nil {
			return nil, nil, err
		}
		if spot := d.spotOnPath(path, spotID); spot != nil {
			return spot, path, nil
		}
		return nil, nil, errors.Errorf("parking spot %q not found on any path forward", spotID)
	}
	for _, successorID := range successors {
		next, err := d.m.LaneByID(successorID)
		if err != nil {
			d.logger.Warnw("successor lane not resolvable, skipping", "lane", successorID, "error", err)
			continue
		}
		path, err := d.m.PathFromLanes(lane, next)
		if err != nil {
			return nil, nil, err
		}
		if spot := d.spotOnPath(path, spotID); spot != nil {
			return spot, path, nil
		}
	}
	return nil, nil, errors.Errorf("parking spot %q not found on any path forward", spotID)
}

func (d *Decider) spotOnPath(path *hdmap.Path, spotID string) *hdmap.ParkingSpace {
	for _, overlap := range path.ParkingSpaceOverlaps() {
		if overlap.ObjectID != spotID {
			continue
		}
		spot, err := d.m.ParkingSpaceByID(overlap.ObjectID)
		if err != nil {
			d.logger.Warnw("overlap names a parking space the map cannot resolve", "spot", overlap.ObjectID, "error", err)
			return nil
		}
		return spot
	}
	return nil
}

// checkDistanceToParkingSpot gates the located spot on the along-path
// distance between the vehicle and the midpoint of the spot's bottom
// corners.
func (d *Decider) checkDistanceToParkingSpot(req *Request, path *hdmap.Path, spot *hdmap.ParkingSpace) error {
	leftBottomS, _, err := path.NearestPoint(spot.LeftDown())
	if err != nil {
		return err
	}
	rightBottomS, _, err := path.NearestPoint(spot.RightDown())
	if err != nil {
		return err
	}
	vehicleS, _, err := path.NearestPoint(r2.Point{X: req.Vehicle.X, Y: req.Vehicle.Y})
	if err != nil {
		return err
	}
	if dist := math.Abs((leftBottomS+rightBottomS)/2 - vehicleS); dist >= d.cfg.ParkingStartRange {
		return errors.Errorf("parking spot %q found but %.1fm away, beyond start range %.1fm",
			spot.ID, dist, d.cfg.ParkingStartRange)
	}
	return nil
}
