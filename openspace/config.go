package openspace

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// default values for ROI extraction options.
const (
	// half-width of the longitudinal sampling window around the spot, in m.
	defaultRoiLongitudinalRange = 10.0

	// heading change below which a boundary sample is skipped.
	defaultRoiLinesegmentMinAngle = math.Pi / 9

	// longitudinal step used when skipping low-curvature stretches, in m.
	defaultRoiLinesegmentLength = 1.0

	// extra clearance added to the end pose inside the spot, in m.
	defaultParkingDepthBuffer = 0.1

	// bounding-box expansion margin for perceived obstacles, in m.
	defaultPerceptionObstacleBuffer = 0.2

	// obstacles farther than this from both vehicle and end pose are dropped.
	defaultPerceptionObstacleFilteringDistance = 200.0

	// max allowed along-path distance between vehicle and spot midpoint, in m.
	defaultParkingStartRange = 20.0

	// nearest-lane query limits.
	defaultNearestLaneSearchRadius   = 10.0
	defaultNearestLaneMaxHeadingDiff = math.Pi / 2

	// fraction of the spot depth the end pose sits at, by maneuver direction.
	defaultParkingInwardsDepthFraction  = 0.75
	defaultParkingOutwardsDepthFraction = 0.25
)

// Config holds the recognized options of the ROI decider. Zero values are
// replaced by the documented defaults on validation, except booleans which
// default to false.
type Config struct {
	RoiLongitudinalRange                float64 `yaml:"roi_longitudinal_range"`
	RoiLinesegmentMinAngle              float64 `yaml:"roi_linesegment_min_angle"`
	RoiLinesegmentLength                float64 `yaml:"roi_linesegment_length"`
	ParkingDepthBuffer                  float64 `yaml:"parking_depth_buffer"`
	ParkingInwards                      bool    `yaml:"parking_inwards"`
	EnablePerceptionObstacles           bool    `yaml:"enable_perception_obstacles"`
	PerceptionObstacleBuffer            float64 `yaml:"perception_obstacle_buffer"`
	PerceptionObstacleFilteringDistance float64 `yaml:"perception_obstacle_filtering_distance"`
	ParkingStartRange                   float64 `yaml:"parking_start_range"`
	NearestLaneSearchRadius             float64 `yaml:"nearest_lane_search_radius"`
	NearestLaneMaxHeadingDiff           float64 `yaml:"nearest_lane_max_heading_diff"`
	ParkingInwardsDepthFraction         float64 `yaml:"parking_inwards_depth_fraction"`
	ParkingOutwardsDepthFraction        float64 `yaml:"parking_outwards_depth_fraction"`
}

// DefaultConfig returns a Config populated with the documented defaults.
func DefaultConfig() Config {
	return Config{
		RoiLongitudinalRange:                defaultRoiLongitudinalRange,
		RoiLinesegmentMinAngle:              defaultRoiLinesegmentMinAngle,
		RoiLinesegmentLength:                defaultRoiLinesegmentLength,
		ParkingDepthBuffer:                  defaultParkingDepthBuffer,
		PerceptionObstacleBuffer:            defaultPerceptionObstacleBuffer,
		PerceptionObstacleFilteringDistance: defaultPerceptionObstacleFilteringDistance,
		ParkingStartRange:                   defaultParkingStartRange,
		NearestLaneSearchRadius:             defaultNearestLaneSearchRadius,
		NearestLaneMaxHeadingDiff:           defaultNearestLaneMaxHeadingDiff,
		ParkingInwardsDepthFraction:         defaultParkingInwardsDepthFraction,
		ParkingOutwardsDepthFraction:        defaultParkingOutwardsDepthFraction,
	}
}

// Validate fills unset numeric fields with defaults and rejects values that
// the decider cannot work with.
func (c *Config) Validate() error {
	defaults := DefaultConfig()
	fill := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	fill(&c.RoiLongitudinalRange, defaults.RoiLongitudinalRange)
	fill(&c.RoiLinesegmentMinAngle, defaults.RoiLinesegmentMinAngle)
	fill(&c.RoiLinesegmentLength, defaults.RoiLinesegmentLength)
	fill(&c.ParkingDepthBuffer, defaults.ParkingDepthBuffer)
	fill(&c.PerceptionObstacleBuffer, defaults.PerceptionObstacleBuffer)
	fill(&c.PerceptionObstacleFilteringDistance, defaults.PerceptionObstacleFilteringDistance)
	fill(&c.ParkingStartRange, defaults.ParkingStartRange)
	fill(&c.NearestLaneSearchRadius, defaults.NearestLaneSearchRadius)
	fill(&c.NearestLaneMaxHeadingDiff, defaults.NearestLaneMaxHeadingDiff)
	fill(&c.ParkingInwardsDepthFraction, defaults.ParkingInwardsDepthFraction)
	fill(&c.ParkingOutwardsDepthFraction, defaults.ParkingOutwardsDepthFraction)

	var err error
	check := func(name string, v float64) {
		if v < 0 {
			err = multierr.Append(err, errors.Errorf("%s must be non-negative, got %f", name, v))
		}
	}
	check("roi_longitudinal_range", c.RoiLongitudinalRange)
	check("roi_linesegment_min_angle", c.RoiLinesegmentMinAngle)
	check("roi_linesegment_length", c.RoiLinesegmentLength)
	check("parking_depth_buffer", c.ParkingDepthBuffer)
	check("perception_obstacle_buffer", c.PerceptionObstacleBuffer)
	check("perception_obstacle_filtering_distance", c.PerceptionObstacleFilteringDistance)
	check("parking_start_range", c.ParkingStartRange)
	check("nearest_lane_search_radius", c.NearestLaneSearchRadius)
	check("nearest_lane_max_heading_diff", c.NearestLaneMaxHeadingDiff)
	check("parking_inwards_depth_fraction", c.ParkingInwardsDepthFraction)
	check("parking_outwards_depth_fraction", c.ParkingOutwardsDepthFraction)
	return err
}

// LoadConfig reads a Config from a YAML file, applying defaults for fields
// the file leaves unset.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "cannot read config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "cannot parse config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
