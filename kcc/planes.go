package kcc

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/omath"
)

const (
	// machineEpsilon is the difference between 1 and the next representable float32. Squared speeds at or below it
	// are treated as no motion at all.
	machineEpsilon = 1.1920929e-7
	// cornerNudge is the length of the push applied away from both planes of a crease the agent is wedged into.
	cornerNudge = 0.01
)

// SolvePlanes resolves velocity against the contact plane normals accumulated during one step, most recent last,
// and returns a velocity that no longer moves into any of them. originalDirection is the direction of the velocity
// before the first contact of the step.
func SolvePlanes(velocity mgl32.Vec3, normals []mgl32.Vec3, originalDirection mgl32.Vec3) mgl32.Vec3 {
	if velocity.LenSqr() <= 0 || originalDirection.LenSqr() <= 0 {
		return mgl32.Vec3{}
	}
	if len(normals) == 0 {
		return velocity
	}

	first := normals[len(normals)-1]
	if velocity.Dot(first) >= 0 {
		// Already separating from the most recent plane.
		return velocity
	}
	vel := omath.RejectFromNormalized(velocity, first)

	originalNormal := omath.NormalizeOrZero(originalDirection)
	all := make([]mgl32.Vec3, 0, len(normals)+1)
	all = append(all, originalNormal)
	all = append(all, normals...)

	for _, second := range all {
		if omath.SimilarPlane(first, second) || omath.SimilarPlane(originalNormal, second) {
			continue
		}

		vel = omath.RejectFromNormalized(vel, second)
		if omath.SimilarPlane(omath.NormalizeOrZero(vel), first) {
			if vel.LenSqr() > machineEpsilon {
				return vel
			}
			return mgl32.Vec3{}
		}

		crease := omath.NormalizeOrZero(first.Cross(second))
		proj := omath.ProjectOntoNormalized(vel, crease)
		projDir := omath.NormalizeOrZero(proj)

		for _, third := range all {
			if omath.SimilarPlane(first, third) || omath.SimilarPlane(second, third) {
				continue
			}
			if omath.SimilarPlane(projDir, third) {
				// Wedged into a corner: escape along both planes of the crease instead of oscillating.
				return proj.Add(omath.NormalizeOrZero(first.Add(second)).Mul(cornerNudge))
			}
		}
		if proj.LenSqr() <= machineEpsilon {
			return proj
		}
		vel = proj
	}
	return vel
}
