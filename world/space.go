package world

import (
	"iter"
	"sync"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/assert"
	"github.com/oomph-ac/kcc/kcc"
)

// DefaultLayer is the collision layer of colliders that do not specify any.
const DefaultLayer uint32 = 1

// Collider is a box shaped surface in a Space.
type Collider struct {
	// Name is an optional name used in logs.
	Name string
	// Box is the box of the collider relative to the position of its transform. The rotation of the transform is
	// not applied to the box; it only affects how surfaces standing on the collider are carried.
	Box cube.BBox
	// Layers is the set of collision layers the collider is part of.
	Layers uint32
	// Sensor colliders are typically excluded from agent queries.
	Sensor bool
}

type entry struct {
	collider  Collider
	transform kcc.Transform
	previous  kcc.Transform
}

// bounds returns the world-space box of the entry.
func (e *entry) bounds() cube.BBox {
	return e.collider.Box.Translate(e.transform.Position)
}

// Space is a collection of box colliders that answers the shape and ray casts of the solver. Colliders are
// referred to by kcc.SurfaceID handles whose generation changes whenever a slot is reused. Space is safe for
// concurrent use; casts only take a read lock.
type Space struct {
	mu sync.RWMutex

	generations []uint32
	free        []uint32
	entries     *orderedmap.OrderedMap[kcc.SurfaceID, *entry]
	grid        *grid
}

// NewSpace returns an empty Space that indexes colliders in cells of the size passed.
func NewSpace(cellSize float32) *Space {
	assert.IsTrue(cellSize > 0, "cell size must be positive, got %v", cellSize)
	return &Space{
		entries: orderedmap.NewOrderedMap[kcc.SurfaceID, *entry](),
		grid:    newGrid(cellSize),
	}
}

// Add adds a collider to the space at the transform passed and returns its handle.
func (s *Space) Add(c Collider, t kcc.Transform) kcc.SurfaceID {
	assert.IsTrue(validBox(c.Box), "collider %q has a degenerate box %v-%v", c.Name, c.Box.Min(), c.Box.Max())
	if c.Layers == 0 {
		c.Layers = DefaultLayer
	}
	if t.Rotation == (mgl32.Quat{}) {
		t.Rotation = mgl32.QuatIdent()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var index uint32
	if n := len(s.free); n > 0 {
		index, s.free = s.free[n-1], s.free[:n-1]
	} else {
		index = uint32(len(s.generations))
		s.generations = append(s.generations, 0)
	}
	s.generations[index]++
	id := kcc.SurfaceID{Index: index, Generation: s.generations[index]}

	e := &entry{collider: c, transform: t, previous: t}
	s.entries.Set(id, e)
	s.grid.insert(id, e.bounds())
	return id
}

// Remove removes the collider with the handle passed. It returns false if the handle is stale.
func (s *Space) Remove(id kcc.SurfaceID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries.Get(id)
	if !ok {
		return false
	}
	s.grid.remove(id, e.bounds())
	s.entries.Delete(id)
	s.free = append(s.free, id.Index)
	return true
}

// Move sets the transform of a collider. The transform it had at the start of the tick is kept as its previous
// transform.
func (s *Space) Move(id kcc.SurfaceID, t kcc.Transform) bool {
	if t.Rotation == (mgl32.Quat{}) {
		t.Rotation = mgl32.QuatIdent()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries.Get(id)
	if !ok {
		return false
	}
	s.grid.remove(id, e.bounds())
	e.transform = t
	s.grid.insert(id, e.bounds())
	return true
}

// BeginTick marks the start of a tick: the current transform of every collider becomes its previous transform.
func (s *Space) BeginTick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for el := s.entries.Front(); el != nil; el = el.Next() {
		el.Value.previous = el.Value.transform
	}
}

// Collider returns the collider with the handle passed.
func (s *Space) Collider(id kcc.SurfaceID) (Collider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries.Get(id)
	if !ok {
		return Collider{}, false
	}
	return e.collider, true
}

// Bounds returns the world-space box of the collider with the handle passed.
func (s *Space) Bounds(id kcc.SurfaceID) (cube.BBox, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries.Get(id)
	if !ok {
		return cube.BBox{}, false
	}
	return e.bounds(), true
}

// Transform returns the transform of a collider at the current and at the start of the tick.
func (s *Space) Transform(id kcc.SurfaceID) (current, previous kcc.Transform, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries.Get(id)
	if !ok {
		return kcc.Transform{}, kcc.Transform{}, false
	}
	return e.transform, e.previous, true
}

// Sensors returns the handles of all sensor colliders, in insertion order.
func (s *Space) Sensors() iter.Seq[kcc.SurfaceID] {
	s.mu.RLock()
	var ids []kcc.SurfaceID
	for el := s.entries.Front(); el != nil; el = el.Next() {
		if el.Value.collider.Sensor {
			ids = append(ids, el.Key)
		}
	}
	s.mu.RUnlock()

	return func(yield func(kcc.SurfaceID) bool) {
		for _, id := range ids {
			if !yield(id) {
				return
			}
		}
	}
}

// Len returns the number of colliders in the space.
func (s *Space) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.Len()
}

func validBox(bb cube.BBox) bool {
	lo, hi := bb.Min(), bb.Max()
	for i := 0; i < 3; i++ {
		if !(hi[i] > lo[i]) {
			return false
		}
	}
	return true
}
