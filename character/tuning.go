package character

// Tuning holds the gameplay constants used by Advance. None of these are used by the solver itself.
type Tuning struct {
	// MovementSpeed is the speed the agent accelerates towards in the wish direction.
	MovementSpeed float32 `toml:"movement_speed" yaml:"movement_speed"`
	// GroundAcceleration and AirAcceleration are the maximum accelerations while grounded and airborne.
	GroundAcceleration float32 `toml:"ground_acceleration" yaml:"ground_acceleration"`
	AirAcceleration    float32 `toml:"air_acceleration" yaml:"air_acceleration"`
	// Friction is the deceleration applied while grounded.
	Friction float32 `toml:"friction" yaml:"friction"`
	// JumpImpulse is the speed along up given to the agent when it jumps.
	JumpImpulse float32 `toml:"jump_impulse" yaml:"jump_impulse"`
}

// DefaultTuning returns a Tuning suitable for a human sized capsule.
func DefaultTuning() Tuning {
	return Tuning{
		MovementSpeed:      8,
		GroundAcceleration: 100,
		AirAcceleration:    40,
		Friction:           60,
		JumpImpulse:        6,
	}
}
