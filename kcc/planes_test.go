package kcc

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/omath"
	"github.com/stretchr/testify/require"
)

func randomUnit(r *rand.Rand) mgl32.Vec3 {
	for {
		v := mgl32.Vec3{r.Float32()*2 - 1, r.Float32()*2 - 1, r.Float32()*2 - 1}
		if l := v.Len(); l > 0.1 && l <= 1 {
			return v.Mul(1 / l)
		}
	}
}

func TestSolvePlanesDegenerate(t *testing.T) {
	n := []mgl32.Vec3{{-1, 0, 0}}
	require.Equal(t, mgl32.Vec3{}, SolvePlanes(mgl32.Vec3{}, n, mgl32.Vec3{1, 0, 0}))
	require.Equal(t, mgl32.Vec3{}, SolvePlanes(mgl32.Vec3{1, 0, 0}, n, mgl32.Vec3{}))
	require.Equal(t, mgl32.Vec3{1, 2, 3}, SolvePlanes(mgl32.Vec3{1, 2, 3}, nil, mgl32.Vec3{1, 0, 0}))
}

func TestSolvePlanesSeparating(t *testing.T) {
	v := mgl32.Vec3{1, 0, 0}
	require.Equal(t, v, SolvePlanes(v, []mgl32.Vec3{{1, 0, 0}}, v))
	require.Equal(t, v, SolvePlanes(v, []mgl32.Vec3{{0, 1, 0}}, v))
}

func TestSolvePlanesSinglePlaneRejects(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 5000; i++ {
		n := randomUnit(r)
		v := randomUnit(r).Mul(r.Float32()*10 + 0.1)
		if v.Dot(n) >= -1e-3 {
			continue
		}
		got := SolvePlanes(v, []mgl32.Vec3{n}, omath.NormalizeOrZero(v))
		vecInDelta(t, omath.RejectFromNormalized(v, n), got, 1e-5)
		require.InDelta(t, 0, got.Dot(n), 1e-4)
	}
}

func TestSolvePlanesNeverMovesIntoLatestPlane(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 5000; i++ {
		v := randomUnit(r).Mul(r.Float32()*5 + 0.1)
		normals := make([]mgl32.Vec3, 1+r.IntN(4))
		for j := range normals {
			normals[j] = randomUnit(r)
		}
		got := SolvePlanes(v, normals, omath.NormalizeOrZero(v))
		require.GreaterOrEqual(t, got.Dot(normals[len(normals)-1]), -1e-3*(v.Len()+1), "v=%v normals=%v got=%v", v, normals, got)
	}
}

func TestSolvePlanesRightAngleCorner(t *testing.T) {
	// Two walls facing the agent as it runs diagonally into the corner they form.
	wish := mgl32.Vec3{1, 0, 1}
	normals := []mgl32.Vec3{{-1, 0, 0}, {0, 0, -1}}

	got := SolvePlanes(wish, normals, omath.NormalizeOrZero(wish))
	require.Equal(t, mgl32.Vec3{}, got)
	require.LessOrEqual(t, got.Dot(normals[0]), float32(0))
}

func TestSolvePlanesCornerNudge(t *testing.T) {
	v := mgl32.Vec3{1, 1, 1}
	normals := []mgl32.Vec3{{0, 0, -1}, {0, 1, 0}, {-1, 0, 0}}

	got := SolvePlanes(v, normals, omath.NormalizeOrZero(v))
	nudge := mgl32.Vec3{-1, 0, -1}.Normalize().Mul(0.01)
	vecInDelta(t, mgl32.Vec3{0, 1, 0}.Add(nudge), got, 1e-5)
	require.InDelta(t, 0.01, mgl32.Vec3{got[0], 0, got[2]}.Len(), 1e-5)
}

func TestSolvePlanesMostRecentFirst(t *testing.T) {
	v := mgl32.Vec3{1, 0, -1}
	a := mgl32.Vec3{-1, 0, 0}
	b := mgl32.Vec3{0, 0, -1}
	dir := omath.NormalizeOrZero(v)

	// The latest plane is one the velocity already leaves, so nothing is clipped.
	require.Equal(t, v, SolvePlanes(v, []mgl32.Vec3{a, b}, dir))
	// With the order reversed the latest plane blocks and the crease with the older one pins the agent.
	require.Equal(t, mgl32.Vec3{}, SolvePlanes(v, []mgl32.Vec3{b, a}, dir))
}

func TestSolvePlanesIgnoresSimilarPlanes(t *testing.T) {
	v := mgl32.Vec3{1, 0, 1}
	n := mgl32.Vec3{-1, 0, 0}
	almost := mgl32.Vec3{-1, 0, 0.01}.Normalize()

	got := SolvePlanes(v, []mgl32.Vec3{almost, n}, omath.NormalizeOrZero(v))
	vecInDelta(t, mgl32.Vec3{0, 0, 1}, got, 1e-6)
}
