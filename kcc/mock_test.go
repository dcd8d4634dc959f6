package kcc

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type castCall struct {
	origin      mgl32.Vec3
	direction   mgl32.Vec3
	maxDistance float32
	opts        CastOptions
}

// mockQuery answers casts from a script, in order. Once the script runs out every cast misses.
type mockQuery struct {
	shapeHits []*Hit
	rayHits   []*Hit

	shapeCasts []castCall
	rayCasts   []castCall
}

func (m *mockQuery) CastShape(_ Shape, origin mgl32.Vec3, _ mgl32.Quat, direction mgl32.Vec3, maxDistance float32, opts CastOptions, _ *Filter) (Hit, bool) {
	m.shapeCasts = append(m.shapeCasts, castCall{origin: origin, direction: direction, maxDistance: maxDistance, opts: opts})
	return next(&m.shapeHits, maxDistance)
}

func (m *mockQuery) CastRay(origin, direction mgl32.Vec3, maxDistance float32, _ *Filter) (Hit, bool) {
	m.rayCasts = append(m.rayCasts, castCall{origin: origin, direction: direction, maxDistance: maxDistance})
	return next(&m.rayHits, maxDistance)
}

func next(script *[]*Hit, maxDistance float32) (Hit, bool) {
	if len(*script) == 0 {
		return Hit{}, false
	}
	h := (*script)[0]
	*script = (*script)[1:]
	if h == nil || h.Distance > maxDistance {
		return Hit{}, false
	}
	return *h, true
}

// alwaysHit reports the same hit for every shape cast.
type alwaysHit struct {
	hit   Hit
	casts int
}

func (a *alwaysHit) CastShape(Shape, mgl32.Vec3, mgl32.Quat, mgl32.Vec3, float32, CastOptions, *Filter) (Hit, bool) {
	a.casts++
	return a.hit, true
}

func (a *alwaysHit) CastRay(mgl32.Vec3, mgl32.Vec3, float32, *Filter) (Hit, bool) {
	return Hit{}, false
}

var (
	testShape = Capsule{Radius: 0.35, Length: 1}
	wallID    = SurfaceID{Index: 1, Generation: 1}
	floorID   = SurfaceID{Index: 2, Generation: 1}
)

func vecInDelta(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	require.InDeltaSlice(t, expected[:], actual[:], delta, "expected %v, got %v", expected, actual)
}
