package openspace

import "github.com/pkg/errors"

// Failure kinds, all terminal for the current cycle's ROI computation.
// Process wraps exactly one of these per failure; callers branch with
// errors.Is and treat any error as "no valid ROI this cycle".
var (
	// ErrMissingParkingSpotID means the routing request carried no spot id.
	ErrMissingParkingSpotID = errors.New("no parking spot id in routing request")

	// ErrMapLookupFailure covers a missing nearby lane, no path reaching the
	// target spot, or a spot too far from the vehicle.
	ErrMapLookupFailure = errors.New("map lookup failed")

	// ErrProjectionFailure means a required path projection was undefined.
	ErrProjectionFailure = errors.New("path projection undefined")

	// ErrVehicleOutsideRoi means the vehicle position fell outside the
	// computed ROI bounding box.
	ErrVehicleOutsideRoi = errors.New("vehicle outside of xy boundary of parking ROI")

	// ErrDegenerateGeometry means a boundary or obstacle polygon collapsed
	// to fewer than 2 usable points.
	ErrDegenerateGeometry = errors.New("degenerate boundary geometry")

	// ErrDimensionMismatch means obstacle/edge bookkeeping disagreed with the
	// constraint matrix size.
	ErrDimensionMismatch = errors.New("obstacle edge bookkeeping mismatch")
)
