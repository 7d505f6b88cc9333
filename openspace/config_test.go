package openspace

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestConfigDefaultsValidate(t *testing.T) {
	cfg := DefaultConfig()
	test.That(t, cfg.Validate(), test.ShouldBeNil)

	// zero fields are filled with defaults
	cfg = Config{}
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.RoiLongitudinalRange, test.ShouldEqual, defaultRoiLongitudinalRange)
	test.That(t, cfg.NearestLaneMaxHeadingDiff, test.ShouldAlmostEqual, math.Pi/2, 1e-12)
}

func TestConfigRejectsNegatives(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParkingStartRange = -1
	cfg.PerceptionObstacleBuffer = -0.5
	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "parking_start_range")
	test.That(t, err.Error(), test.ShouldContainSubstring, "perception_obstacle_buffer")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roi.yaml")
	data := []byte(`
roi_longitudinal_range: 15
parking_inwards: true
enable_perception_obstacles: true
perception_obstacle_buffer: 0.5
`)
	test.That(t, os.WriteFile(path, data, 0o600), test.ShouldBeNil)

	cfg, err := LoadConfig(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.RoiLongitudinalRange, test.ShouldEqual, 15)
	test.That(t, cfg.ParkingInwards, test.ShouldBeTrue)
	test.That(t, cfg.EnablePerceptionObstacles, test.ShouldBeTrue)
	test.That(t, cfg.PerceptionObstacleBuffer, test.ShouldEqual, 0.5)
	// unset fields pick up defaults
	test.That(t, cfg.RoiLinesegmentLength, test.ShouldEqual, defaultRoiLinesegmentLength)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	test.That(t, err, test.ShouldNotBeNil)
}
