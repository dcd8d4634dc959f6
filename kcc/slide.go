package kcc

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/omath"
)

// Outcome is the decision a HitHook makes about a single hit of the slide loop. It is one of Slide, Redirect or
// SteppedUp.
type Outcome interface {
	outcome()
}

// Slide clips the velocity against the hit normal as usual.
type Slide struct{}

// Redirect replaces the working velocity of the loop before it is clipped against the hit normal.
type Redirect struct {
	Velocity mgl32.Vec3
}

// SteppedUp reports that the hook climbed onto the obstacle that was hit. The loop moves to Position, spends
// ConsumedTime of its remaining time and skips clipping for this hit.
type SteppedUp struct {
	Position     mgl32.Vec3
	ConsumedTime float32
	Ground       Ground
}

func (Slide) outcome()     {}
func (Redirect) outcome()  {}
func (SteppedUp) outcome() {}

// HitInfo is passed to a HitHook for every surface struck by the slide loop.
type HitInfo struct {
	Hit Hit
	// Position is the position the sweep was cast from. The loop has not yet advanced towards the hit.
	Position mgl32.Vec3
	// Velocity is the working velocity of the loop.
	Velocity mgl32.Vec3
	// Direction is the unit direction of the sweep.
	Direction mgl32.Vec3
	// Motion is the distance the loop intended to travel from Position during this iteration.
	Motion float32
	// SafeDistance is the distance that may be travelled towards the hit while keeping epsilon clearance.
	SafeDistance  float32
	RemainingTime float32
}

// HitHook is called by MoveAndSlide for every hit. A nil HitHook always slides.
type HitHook func(info HitInfo) Outcome

// SlideResult is the result of MoveAndSlide.
type SlideResult struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	// RemainingTime is the part of the time step that was not consumed. It is dropped by callers.
	RemainingTime float32
	// Iterations is the number of sweeps that were performed.
	Iterations int
}

// MoveAndSlide moves shape from position with the velocity passed for dt seconds, sliding along every surface it
// hits. Each hit is first offered to hook, which may classify ground, redirect the velocity or climb the obstacle.
// At most cfg.MaxIterations sweeps are performed; time left over after the last sweep is dropped.
func MoveAndSlide(q Query, shape Shape, position, velocity mgl32.Vec3, rotation mgl32.Quat, cfg Config, filter *Filter, dt float32, hook HitHook) SlideResult {
	res := SlideResult{Position: position, Velocity: velocity, RemainingTime: max(dt, 0)}
	originalDirection, _, ok := omath.DirectionAndLength(velocity)
	if dt <= 0 || !ok {
		return res
	}

	normals := make([]mgl32.Vec3, 0, cfg.MaxIterations)
	for res.Iterations < cfg.MaxIterations {
		direction, speed, ok := omath.DirectionAndLength(res.Velocity)
		if !ok {
			break
		}
		maxDistance := speed * res.RemainingTime

		res.Iterations++
		safe, hit, ok := Sweep(q, shape, res.Position, rotation, direction, maxDistance+cfg.SkinWidth, cfg.Epsilon, filter)
		if !ok {
			res.Position = res.Position.Add(res.Velocity.Mul(res.RemainingTime))
			res.RemainingTime = 0
			break
		}

		var outcome Outcome = Slide{}
		if hook != nil {
			outcome = hook(HitInfo{
				Hit:           hit,
				Position:      res.Position,
				Velocity:      res.Velocity,
				Direction:     direction,
				Motion:        maxDistance,
				SafeDistance:  safe,
				RemainingTime: res.RemainingTime,
			})
		}
		switch o := outcome.(type) {
		case SteppedUp:
			res.Position = o.Position
			res.RemainingTime = max(res.RemainingTime-o.ConsumedTime, 0)
			continue
		case Redirect:
			res.Velocity = o.Velocity
		}

		normals = append(normals, hit.Normal)
		res.Velocity = SolvePlanes(res.Velocity, normals, originalDirection)

		// Stop once the velocity turns against the original direction, which would only oscillate in sloped corners.
		if res.Velocity.Dot(originalDirection) <= 0 {
			break
		}

		movement := max(safe-cfg.SkinWidth, 0)
		var ratio float32
		if maxDistance > 0 {
			ratio = mgl32.Clamp(movement/maxDistance, 0, 1)
		}
		res.RemainingTime *= 1 - ratio
		res.Position = res.Position.Add(direction.Mul(movement))
	}
	return res
}
