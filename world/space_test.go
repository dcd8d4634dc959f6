package world

import (
	"slices"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/oomph-ac/kcc/oerror"
	"github.com/oomph-ac/kcc/settings"
	"github.com/stretchr/testify/require"
)

var capsule = kcc.Capsule{Radius: 0.35, Length: 1}

func at(x, y, z float32) kcc.Transform {
	return kcc.Transform{Position: mgl32.Vec3{x, y, z}, Rotation: mgl32.QuatIdent()}
}

func floorSpace(t *testing.T) (*Space, kcc.SurfaceID) {
	t.Helper()
	s := NewSpace(4)
	floor := s.Add(Collider{Name: "floor", Box: cube.Box(-10, -1, -10, 10, 0, 10)}, at(0, 0, 0))
	return s, floor
}

func TestSpaceHandles(t *testing.T) {
	s := NewSpace(2)
	a := s.Add(Collider{Box: BoxFromExtents(mgl32.Vec3{1, 1, 1})}, at(0, 0, 0))
	require.True(t, a.Valid())
	require.Equal(t, 1, s.Len())

	require.True(t, s.Remove(a))
	require.False(t, s.Remove(a))
	_, ok := s.Collider(a)
	require.False(t, ok)

	b := s.Add(Collider{Name: "b", Box: BoxFromExtents(mgl32.Vec3{1, 1, 1})}, kcc.Transform{Position: mgl32.Vec3{3, 0, 0}})
	require.Equal(t, a.Index, b.Index)
	require.NotEqual(t, a, b)

	c, ok := s.Collider(b)
	require.True(t, ok)
	require.Equal(t, "b", c.Name)
	require.Equal(t, DefaultLayer, c.Layers)

	_, _, ok = s.Transform(a)
	require.False(t, ok)
	cur, _, ok := s.Transform(b)
	require.True(t, ok)
	require.Equal(t, mgl32.QuatIdent(), cur.Rotation)
}

func TestSpaceRejectsDegenerateColliders(t *testing.T) {
	s := NewSpace(2)
	defer func() {
		_, ok := recover().(*oerror.Error)
		require.True(t, ok)
	}()
	s.Add(Collider{Box: cube.Box(0, 0, 0, 1, 0, 1)}, at(0, 0, 0))
}

func TestSpaceMoveAndBeginTick(t *testing.T) {
	s := NewSpace(2)
	id := s.Add(Collider{Box: BoxFromExtents(mgl32.Vec3{1, 0.25, 1})}, at(0, 0, 0))

	s.BeginTick()
	require.True(t, s.Move(id, at(5, 0, 0)))
	cur, prev, ok := s.Transform(id)
	require.True(t, ok)
	require.Equal(t, mgl32.Vec3{5, 0, 0}, cur.Position)
	require.Equal(t, mgl32.Vec3{}, prev.Position)

	// The grid follows the collider.
	_, ok = s.CastRay(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, -1, 0}, 5, nil)
	require.False(t, ok)
	hit, ok := s.CastRay(mgl32.Vec3{5, 2, 0}, mgl32.Vec3{0, -1, 0}, 5, nil)
	require.True(t, ok)
	require.Equal(t, id, hit.Surface)

	s.BeginTick()
	cur, prev, _ = s.Transform(id)
	require.Equal(t, cur, prev)

	bb, ok := s.Bounds(id)
	require.True(t, ok)
	require.Equal(t, mgl32.Vec3{6, 0.25, 1}, bb.Max())
}

func TestSpaceSensors(t *testing.T) {
	s := NewSpace(2)
	s.Add(Collider{Box: BoxFromExtents(mgl32.Vec3{1, 1, 1})}, at(0, 0, 0))
	a := s.Add(Collider{Box: BoxFromExtents(mgl32.Vec3{1, 1, 1}), Sensor: true}, at(3, 0, 0))
	b := s.Add(Collider{Box: BoxFromExtents(mgl32.Vec3{1, 1, 1}), Sensor: true}, at(6, 0, 0))

	require.Equal(t, []kcc.SurfaceID{a, b}, slices.Collect(s.Sensors()))
}

func TestLoadLevel(t *testing.T) {
	s := NewSpace(4)
	loaded, err := s.LoadLevel(settings.Level{
		Boxes: []settings.Box{
			{Name: "floor", Min: []float64{10, 0, 10}, Max: []float64{-10, -1, -10}},
		},
		Platforms: []settings.Platform{
			{Box: settings.Box{Name: "lift", Min: []float64{2, 0, 2}, Max: []float64{4, 0.5, 4}}, Travel: []float64{0, 2, 0}, Period: 4},
		},
	})
	require.NoError(t, err)
	require.Len(t, loaded.Boxes, 1)
	require.Len(t, loaded.Platforms, 1)

	bb, ok := s.Bounds(loaded.Boxes[0])
	require.True(t, ok)
	require.Equal(t, mgl32.Vec3{-10, -1, -10}, bb.Min())
	require.Equal(t, mgl32.Vec3{10, 0, 10}, bb.Max())

	cur, _, ok := s.Transform(loaded.Platforms[0])
	require.True(t, ok)
	require.Equal(t, mgl32.Vec3{3, 0.25, 3}, cur.Position)

	_, err = s.LoadLevel(settings.Level{Boxes: []settings.Box{{Name: "flat", Min: []float64{0, 0, 0}, Max: []float64{1, 0, 1}}}})
	require.Error(t, err)
	_, err = s.LoadLevel(settings.Level{Boxes: []settings.Box{{Name: "short", Min: []float64{0, 0}, Max: []float64{1, 1, 1}}}})
	require.Error(t, err)
}
