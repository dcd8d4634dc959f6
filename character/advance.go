package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/oomph-ac/kcc/omath"
	"github.com/sirupsen/logrus"
)

// Advance moves the character for a single tick of dt seconds. The input is turned into a wish direction, friction
// or gravity is applied depending on whether the character is grounded, and the resulting velocity is consumed by
// the slide loop. Ground is classified along the way and refreshed with a ground check at the end.
func (c *Character) Advance(q kcc.Query, in Input, gravity, dt float32) {
	if dt <= 0 {
		return
	}
	if in.Jump && c.onGround {
		c.Jump(c.tuning.JumpImpulse)
	}

	maxAcceleration := c.tuning.AirAcceleration
	if c.onGround {
		c.velocity = c.velocity.Add(Friction(c.velocity, c.tuning.Friction, dt))
		maxAcceleration = c.tuning.GroundAcceleration
	} else {
		c.velocity = c.velocity.Add(c.up.Mul(-gravity * dt))
	}
	accel := Acceleration(c.velocity, WishDirection(in.Axis, in.Yaw), maxAcceleration, c.tuning.MovementSpeed, dt)

	if c.ghost {
		c.velocity = c.velocity.Add(accel)
		c.position = c.position.Add(c.velocity.Mul(dt))
		return
	}

	m := mover{c: c, q: q, wasOnGround: c.onGround}
	if c.onGround {
		accel = kcc.ProjectMotionOnGround(accel, c.ground.Normal(), c.up)
	}
	accel = m.sweepAcceleration(accel, dt)
	c.velocity = c.velocity.Add(accel)

	res := kcc.MoveAndSlide(q, c.shape, c.position, c.velocity, c.rotation, c.config, c.filter, dt, m.onHit)
	c.position = res.Position

	if c.onGround && !m.hasGround {
		if dist, ground, ok := kcc.GroundCheck(q, c.shape, c.position, c.rotation, c.up, c.config, c.filter); ok {
			c.position = c.position.Sub(c.up.Mul(dist))
			m.setGround(ground)
			c.log.WithField("distance", dist).Debug("snapped to ground")
		}
	}

	if m.hasGround && !c.onGround {
		c.log.WithFields(logrus.Fields{"surface": m.ground.Surface(), "position": c.position}).Debug("landed")
	}
	c.ground, c.onGround = m.ground, m.hasGround
}

// mover holds the ground found while a character advances through a single tick.
type mover struct {
	c *Character
	q kcc.Query

	wasOnGround bool
	ground      kcc.Ground
	hasGround   bool
}

func (m *mover) setGround(g kcc.Ground) {
	m.ground, m.hasGround = g, true
}

// sweepAcceleration sweeps the acceleration of the tick on its own and aligns it with the first surface in its way.
// Doing this inside the slide loop makes the character stick to walls instead of sliding down them.
func (m *mover) sweepAcceleration(accel mgl32.Vec3, dt float32) mgl32.Vec3 {
	c := m.c
	dir, dist, ok := omath.DirectionAndLength(accel.Mul(dt))
	if !ok {
		return accel
	}
	safe, hit, ok := kcc.Sweep(m.q, c.shape, c.position, c.rotation, dir, dist, c.config.Epsilon, c.filter)
	if !ok {
		return accel
	}
	c.position = c.position.Add(dir.Mul(safe))

	if ground, ok := kcc.NewGroundIfWalkable(hit.Surface, hit.Normal, c.up, c.config.WalkableAngle); ok {
		m.setGround(ground)
		return kcc.ProjectMotionOnGround(accel, hit.Normal, c.up)
	}
	if m.wasOnGround {
		if step, ok := kcc.TryStepUp(m.q, c.shape, c.position, c.rotation, c.up, hit.Normal, dir, dist-safe, 0, c.config, c.filter); ok {
			m.setGround(step.Ground)
			c.position = step.Position
			return accel
		}
	}
	return kcc.ProjectMotionOnWall(accel, hit.Normal, c.up)
}

// onHit classifies every surface hit by the slide loop. Walkable surfaces become the new ground, walls are stepped
// onto when grounded and otherwise slid along.
func (m *mover) onHit(info kcc.HitInfo) kcc.Outcome {
	c := m.c
	n := info.Hit.Normal

	if ground, ok := kcc.NewGroundIfWalkable(info.Hit.Surface, n, c.up, c.config.WalkableAngle); ok {
		m.setGround(ground)
		if !m.wasOnGround {
			// Don't slide down slopes right after landing on them.
			c.velocity = kcc.ProjectMotionOnGround(c.velocity, n, c.up)
			return kcc.Redirect{Velocity: kcc.ProjectMotionOnGround(info.Velocity, n, c.up)}
		}
		return kcc.Slide{}
	}

	if !m.wasOnGround && !m.hasGround {
		c.velocity = omath.RejectFrom(c.velocity, n)
		return kcc.Slide{}
	}

	step, ok := kcc.TryStepUp(m.q, c.shape, info.Position, c.rotation, c.up, n, info.Direction, info.Motion, info.Velocity.Len(), c.config, c.filter)
	if ok {
		m.setGround(step.Ground)
		c.log.WithFields(logrus.Fields{"from": info.Position, "to": step.Position}).Debug("stepped up")
		return kcc.SteppedUp{Position: step.Position, ConsumedTime: step.ConsumedTime, Ground: step.Ground}
	}

	// Grounded characters don't slide up walls.
	c.velocity = kcc.ProjectMotionOnWall(c.velocity, n, c.up)
	return kcc.Redirect{Velocity: kcc.ProjectMotionOnWall(info.Velocity, n, c.up)}
}
