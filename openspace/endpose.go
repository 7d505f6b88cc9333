package openspace

import (
	"math"

	"github.com/driveplan/openspace/planar"
)

// mathEpsilon is the zero threshold for the spot heading sign branch.
const mathEpsilon = 1e-10

// computeEndPose derives the target vehicle pose inside the spot from the
// spot geometry (ROI frame), the vehicle overhangs and the configured
// buffers. The pose is centered between the top corners; its depth is the
// larger of a fraction of the spot depth and the relevant vehicle overhang,
// plus the depth buffer. Velocity is fixed at zero.
func (d *Decider) computeEndPose(corners spotCorners) EndPose {
	spotHeading := planar.NormalizeAngle(planar.Angle(corners.leftDown.Sub(corners.leftTop)))
	endX := (corners.leftTop.X + corners.rightTop.X) / 2
	topToDown := corners.leftTop.Y - corners.leftDown.Y

	var depth float64
	if d.cfg.ParkingInwards {
		depth = math.Max(d.cfg.ParkingInwardsDepthFraction*math.Abs(topToDown), d.vehicle.FrontEdgeToCenter)
	} else {
		depth = math.Max(d.cfg.ParkingOutwardsDepthFraction*math.Abs(topToDown), d.vehicle.BackEdgeToCenter)
	}
	depth += d.cfg.ParkingDepthBuffer

	endY := corners.leftDown.Y - depth
	if spotHeading <= mathEpsilon {
		// spot depth runs toward negative y; back off toward the opening
		endY = corners.leftDown.Y + depth
	}

	heading := spotHeading
	if !d.cfg.ParkingInwards {
		heading = planar.NormalizeAngle(spotHeading + math.Pi)
	}
	return EndPose{X: endX, Y: endY, Heading: heading, V: 0}
}
