package simulation

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/oomph-ac/kcc/omath"
	"github.com/oomph-ac/kcc/settings"
)

// platform is a collider moved by the simulation every tick.
type platform struct {
	id     kcc.SurfaceID
	origin mgl32.Vec3
	travel mgl32.Vec3
	period float64
	spin   float64
}

func newPlatform(id kcc.SurfaceID, origin mgl32.Vec3, p settings.Platform) platform {
	return platform{
		id:     id,
		origin: origin,
		travel: omath.Vec3FromFloats(p.Travel),
		period: p.Period,
		spin:   p.Spin,
	}
}

// transformAt returns the transform of the platform t seconds into the simulation. The platform eases from its
// origin to origin+travel and back once per period.
func (p platform) transformAt(t float64) kcc.Transform {
	pos := p.origin
	if p.period > 0 {
		f := (1 - math.Cos(2*math.Pi*t/p.period)) / 2
		pos = pos.Add(p.travel.Mul(float32(f)))
	}
	rot := mgl32.QuatIdent()
	if p.spin != 0 {
		rot = mgl32.QuatRotate(float32(math.Mod(p.spin*t, 2*math.Pi)), omath.Up)
	}
	return kcc.Transform{Position: pos, Rotation: rot}
}
