package world

import (
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/oomph-ac/kcc/oerror"
	"github.com/oomph-ac/kcc/settings"
)

// LoadedLevel holds the handles of the colliders added by LoadLevel, in the order they appear in the level.
type LoadedLevel struct {
	Boxes []kcc.SurfaceID
	// Platforms holds one handle per platform of the level. The transform of each platform starts at the centre
	// of its box.
	Platforms []kcc.SurfaceID
}

// LoadLevel adds every box and platform of the level passed to the space.
func (s *Space) LoadLevel(level settings.Level) (LoadedLevel, error) {
	var loaded LoadedLevel
	for _, b := range level.Boxes {
		id, err := s.addBox(b)
		if err != nil {
			return loaded, err
		}
		loaded.Boxes = append(loaded.Boxes, id)
	}
	for _, p := range level.Platforms {
		id, err := s.addBox(p.Box)
		if err != nil {
			return loaded, err
		}
		loaded.Platforms = append(loaded.Platforms, id)
	}
	return loaded, nil
}

// addBox adds a box from the level. The collider's transform is placed at the centre of the box so that
// platforms rotate around their own centre.
func (s *Space) addBox(b settings.Box) (kcc.SurfaceID, error) {
	if len(b.Min) != 3 || len(b.Max) != 3 {
		return kcc.SurfaceID{}, oerror.New("box %q needs two corners with 3 components", b.Name)
	}
	// The dragonfly box orders the corners, so levels may list them in any order.
	bb := DFBoxToCubeBox(df_cube.Box(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2]))
	if !validBox(bb) {
		return kcc.SurfaceID{}, oerror.New("box %q has no volume", b.Name)
	}
	centre := bb.Min().Add(bb.Max()).Mul(0.5)
	return s.Add(Collider{
		Name:   b.Name,
		Box:    bb.Translate(centre.Mul(-1)),
		Layers: b.Layers,
		Sensor: b.Sensor,
	}, kcc.Transform{Position: centre, Rotation: mgl32.QuatIdent()}), nil
}
