package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/oomph-ac/kcc/omath"
)

// Platforms provides the poses of surfaces at the current and previous tick. Surfaces that do not move may
// report ok as false.
type Platforms interface {
	Transform(id kcc.SurfaceID) (current, previous kcc.Transform, ok bool)
}

// FollowPlatform carries the character along with the surface it stands on. While grounded, the character is swept
// along the motion of its ground since the previous tick so it cannot be pushed through other geometry. If the
// character left its ground this tick, the motion of the ground it left is added to its velocity instead.
// FollowPlatform must be called once per tick, after Advance.
func (c *Character) FollowPlatform(q kcc.Query, platforms Platforms, dt float32) {
	motion := func(id kcc.SurfaceID) mgl32.Vec3 {
		current, previous, ok := platforms.Transform(id)
		if !ok {
			return mgl32.Vec3{}
		}
		return kcc.MotionOnPoint(c.position, current, previous)
	}

	switch {
	case c.onGround && !c.ghost:
		dir, dist, ok := omath.DirectionAndLength(motion(c.ground.Surface()))
		if !ok {
			break
		}
		if safe, _, hit := kcc.Sweep(q, c.shape, c.position, c.rotation, dir, dist, c.config.Epsilon, c.filter); hit {
			dist = safe
		}
		c.position = c.position.Add(dir.Mul(dist))
	case !c.onGround && c.wasOnGround && dt > 0:
		inherited := motion(c.previousGround.Surface()).Mul(1 / dt)
		if inherited != (mgl32.Vec3{}) {
			c.velocity = c.velocity.Add(inherited)
			c.log.WithField("velocity", inherited).Debug("left platform")
		}
	}
	c.previousGround, c.wasOnGround = c.ground, c.onGround
}
