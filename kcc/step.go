package kcc

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/omath"
)

// ClimbStep attempts to move shape over an obstacle. The shape is lifted along up by at most height, moved by
// motion at the top and then swept back down by the lifted distance. The settled position and the hit of the
// surface it settled on are returned. ClimbStep fails if the shape cannot move forward at the top or if nothing
// is found underneath it.
func ClimbStep(q Query, shape Shape, position, motion mgl32.Vec3, rotation mgl32.Quat, up mgl32.Vec3, height, epsilon float32, filter *Filter) (mgl32.Vec3, Hit, bool) {
	up = omath.UpOrDefault(up)

	lift := height
	if safe, _, ok := Sweep(q, shape, position, rotation, up, height, epsilon, filter); ok {
		lift = safe
	}
	if lift <= epsilon {
		return mgl32.Vec3{}, Hit{}, false
	}
	top := position.Add(up.Mul(lift))

	if dir, length, ok := omath.DirectionAndLength(motion); ok {
		travelled := length
		if safe, _, ok := Sweep(q, shape, top, rotation, dir, length, epsilon, filter); ok {
			travelled = safe
		}
		if travelled <= epsilon {
			// Blocked at the top, the obstacle is taller than the step height.
			return mgl32.Vec3{}, Hit{}, false
		}
		top = top.Add(dir.Mul(travelled))
	}

	safe, hit, ok := Sweep(q, shape, top, rotation, up.Mul(-1), lift, epsilon, filter)
	if !ok {
		return mgl32.Vec3{}, Hit{}, false
	}
	return top.Sub(up.Mul(safe)), hit, true
}

// StepUp is the result of a successful TryStepUp.
type StepUp struct {
	Position mgl32.Vec3
	// ConsumedTime is the time it takes to cover the step motion at the speed the agent was moving at.
	ConsumedTime float32
	Ground       Ground
}

// StepInward returns how far a step attempt pushes into the obstacle. Shapes with a rounded base need to reach
// further in since the normal they measure on a ledge tilts with how far out they stand.
func StepInward(shape Shape, walkableAngle, epsilon float32) float32 {
	inward := epsilon * math32.Pi
	if shape.RoundedBase() {
		inward += shape.HorizontalRadius() * (1 - math32.Cos(walkableAngle))
	}
	return inward
}

// TryStepUp tries to climb onto a non-walkable surface with the normal passed that was hit while moving along
// direction. motion is the distance left to travel from position and speed the speed of the agent. The step only
// succeeds if the agent settles on a surface that is walkable under the slightly reduced step tolerance.
func TryStepUp(q Query, shape Shape, position mgl32.Vec3, rotation mgl32.Quat, up, hitNormal, direction mgl32.Vec3, motion, speed float32, cfg Config, filter *Filter) (StepUp, bool) {
	up = omath.UpOrDefault(up)
	horizontalNormal := omath.NormalizeOrZero(omath.RejectFromNormalized(hitNormal, up))

	inward := StepInward(shape, cfg.WalkableAngle, cfg.Epsilon)
	forward := max(motion-inward, 0)
	stepMotion := direction.Mul(forward).Sub(horizontalNormal.Mul(inward))

	pos, hit, ok := ClimbStep(q, shape, position, stepMotion, rotation, up, cfg.StepHeight+cfg.GroundCheckDistance, cfg.Epsilon, filter)
	if !ok {
		return StepUp{}, false
	}
	ground, ok := NewGroundIfWalkable(hit.Surface, hit.Normal, up, cfg.StepWalkableAngle())
	if !ok {
		return StepUp{}, false
	}

	var consumed float32
	if speed > 0 {
		consumed = (forward + inward) / speed
	}
	return StepUp{Position: pos, ConsumedTime: consumed, Ground: ground}, true
}
