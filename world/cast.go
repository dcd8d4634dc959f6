package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/assert"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/oomph-ac/kcc/omath"
)

// minTraceLength is the shortest segment handed to the box tracer. Shorter casts are traced over this length and
// hits beyond their own distance are dropped, as the tracer skips axes it barely moves along.
const minTraceLength = 1

// CastShape casts a shape through the space. The shape is approximated by the axis aligned box enclosing its
// rotated extents, and each collider is grown by that box so the cast becomes a ray against the grown box.
// A shape with non-positive or non-finite extents is a programming error and panics.
func (s *Space) CastShape(shape kcc.Shape, origin mgl32.Vec3, rotation mgl32.Quat, direction mgl32.Vec3, maxDistance float32, opts kcc.CastOptions, filter *kcc.Filter) (kcc.Hit, bool) {
	assert.IsTrue(shape != nil, "cast with nil shape")
	half := shape.Extents()
	assert.IsTrue(omath.Finite(half) && half[0] > 0 && half[1] > 0 && half[2] > 0, "degenerate shape extents %v", half)
	return s.cast(origin, rotatedExtents(half, rotation), direction, maxDistance, opts, filter)
}

// CastRay casts a ray through the space.
func (s *Space) CastRay(origin, direction mgl32.Vec3, maxDistance float32, filter *kcc.Filter) (kcc.Hit, bool) {
	return s.cast(origin, mgl32.Vec3{}, direction, maxDistance, kcc.SweepOptions, filter)
}

func (s *Space) cast(origin, half, direction mgl32.Vec3, maxDistance float32, opts kcc.CastOptions, filter *kcc.Filter) (kcc.Hit, bool) {
	dir := omath.NormalizeOrZero(direction)
	if dir == (mgl32.Vec3{}) || maxDistance < 0 || !omath.Finite(origin) {
		return kcc.Hit{}, false
	}
	end := origin.Add(dir.Mul(max(maxDistance, minTraceLength)))

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		best  kcc.Hit
		found bool
	)
	test := func(id kcc.SurfaceID) {
		e, ok := s.entries.Get(id)
		if !ok || !filter.Allows(id, e.collider.Layers) {
			return
		}
		hit, ok := castBox(expand(e.bounds(), half), origin, end, dir, maxDistance, opts)
		if !ok {
			return
		}
		hit.Surface = id
		hit.Point = hit.Point.Sub(mgl32.Vec3{hit.Normal[0] * half[0], hit.Normal[1] * half[1], hit.Normal[2] * half[2]})
		if !found || hit.Distance < best.Distance || (hit.Distance == best.Distance && id.Index < best.Surface.Index) {
			best, found = hit, true
		}
	}
	bounds := sweptBounds(origin, origin.Add(dir.Mul(maxDistance)), half)
	if !s.grid.query(bounds, test) {
		for el := s.entries.Front(); el != nil; el = el.Next() {
			test(el.Key)
		}
	}
	return best, found
}

// castBox casts a point from origin towards end against bb and returns the first hit within maxDistance.
func castBox(bb cube.BBox, origin, end, dir mgl32.Vec3, maxDistance float32, opts kcc.CastOptions) (kcc.Hit, bool) {
	if inside(bb, origin) {
		n := pushOutNormal(bb, origin)
		if opts.IgnoreOriginPenetration && dir.Dot(n) >= 0 {
			return kcc.Hit{}, false
		}
		if !opts.ComputeContactOnPenetration {
			n = dir.Mul(-1)
		}
		return kcc.Hit{Normal: n, Point: origin}, true
	}

	res, ok := trace.BBoxIntercept(bb, origin, end)
	if !ok {
		return kcc.Hit{}, false
	}
	n := faceNormal(res.Face())
	if dir.Dot(n) >= 0 {
		// Grazing the face, or leaving through it.
		return kcc.Hit{}, false
	}
	dist := res.Position().Sub(origin).Len()
	if dist > maxDistance {
		return kcc.Hit{}, false
	}
	return kcc.Hit{Distance: dist, Normal: n, Point: res.Position()}, true
}

// inside returns true if p lies strictly within bb.
func inside(bb cube.BBox, p mgl32.Vec3) bool {
	lo, hi := bb.Min(), bb.Max()
	return p[0] > lo[0] && p[0] < hi[0] &&
		p[1] > lo[1] && p[1] < hi[1] &&
		p[2] > lo[2] && p[2] < hi[2]
}

// pushOutNormal returns the normal of the face of bb closest to p, which lies inside bb. Ties favour the top face
// so shapes sunk into the floor are pushed up.
func pushOutNormal(bb cube.BBox, p mgl32.Vec3) mgl32.Vec3 {
	lo, hi := bb.Min(), bb.Max()
	candidates := [...]struct {
		depth  float32
		normal mgl32.Vec3
	}{
		{hi[1] - p[1], mgl32.Vec3{0, 1, 0}},
		{p[1] - lo[1], mgl32.Vec3{0, -1, 0}},
		{p[0] - lo[0], mgl32.Vec3{-1, 0, 0}},
		{hi[0] - p[0], mgl32.Vec3{1, 0, 0}},
		{p[2] - lo[2], mgl32.Vec3{0, 0, -1}},
		{hi[2] - p[2], mgl32.Vec3{0, 0, 1}},
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.depth < best.depth {
			best = c
		}
	}
	return best.normal
}
