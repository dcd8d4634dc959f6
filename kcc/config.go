package kcc

import "github.com/chewxy/math32"

// Config holds the per-agent tunables of the solver. It is copied into every solver call.
type Config struct {
	// MaxIterations is the upper bound of sweep and project cycles per step.
	MaxIterations int `toml:"max_iterations" yaml:"max_iterations"`
	// SkinWidth is the margin kept between the shape and any surface it slides along.
	SkinWidth float32 `toml:"skin_width" yaml:"skin_width"`
	// Epsilon is the numerical tolerance used for safe distances and near-zero checks.
	Epsilon float32 `toml:"epsilon" yaml:"epsilon"`
	// WalkableAngle is the maximum angle in radians between up and a surface normal for the surface to be
	// considered ground.
	WalkableAngle float32 `toml:"walkable_angle" yaml:"walkable_angle"`
	// StepHeight is the highest obstacle that may be climbed without jumping.
	StepHeight float32 `toml:"step_height" yaml:"step_height"`
	// GroundCheckDistance is the length of the downward probe used to stay attached to the ground.
	GroundCheckDistance float32 `toml:"ground_check_distance" yaml:"ground_check_distance"`
}

// DefaultConfig returns the default solver configuration.
func DefaultConfig() Config {
	return Config{
		MaxIterations:       4,
		SkinWidth:           0.01,
		Epsilon:             1e-4,
		WalkableAngle:       math32.Pi / 4,
		StepHeight:          0.25,
		GroundCheckDistance: 0.1,
	}
}

// StepTolerance is subtracted from the walkable angle when validating the surface a step climb lands on, so
// surfaces sitting exactly on the walkability boundary cannot be stepped onto.
const StepTolerance = 1e-4

// StepWalkableAngle returns the reduced walkable angle used to validate step climbs.
func (c Config) StepWalkableAngle() float32 {
	return c.WalkableAngle - StepTolerance
}
