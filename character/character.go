package character

import (
	"io"
	"iter"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/oomph-ac/kcc/omath"
	"github.com/sirupsen/logrus"
)

// Config is used to create a new Character.
type Config struct {
	// Shape is the collider of the character. It is passed opaquely to every query.
	Shape kcc.Shape
	// Rotation is the orientation of the collider. The identity rotation is used if left zero.
	Rotation mgl32.Quat
	// Up is the up axis of the character. World up is used if left zero.
	Up mgl32.Vec3
	// Solver holds the solver tunables, Tuning the gameplay constants.
	Solver kcc.Config
	Tuning Tuning
	// Mask is the collision layer mask of the character's queries.
	Mask uint32
	// Ghost characters move freely without querying the world.
	Ghost bool
	// Log is the logger the character writes debug traces to. Nothing is logged if it is nil.
	Log *logrus.Logger
}

// Input is the per-tick input of a character.
type Input struct {
	// Axis is the movement axis, x to the right and y forward.
	Axis mgl32.Vec2
	// Yaw is the yaw of the view the axis is relative to, in radians.
	Yaw float32
	// Jump is true if the character should jump this tick. It is ignored while airborne.
	Jump bool
}

// Character is a kinematic agent moved with the sweep and slide solver. A Character is owned by a single
// goroutine for the duration of a tick.
type Character struct {
	log *logrus.Logger

	self     kcc.SurfaceID
	shape    kcc.Shape
	position mgl32.Vec3
	rotation mgl32.Quat
	velocity mgl32.Vec3
	up       mgl32.Vec3

	ground         kcc.Ground
	onGround       bool
	previousGround kcc.Ground
	wasOnGround    bool

	config kcc.Config
	tuning Tuning
	ghost  bool

	filter *kcc.Filter
}

// New creates a Character at the position passed. self is the surface of the character's own collider, if it has
// one in the world, and is always excluded from its queries.
func New(self kcc.SurfaceID, position mgl32.Vec3, conf Config) *Character {
	if conf.Rotation == (mgl32.Quat{}) {
		conf.Rotation = mgl32.QuatIdent()
	}
	if conf.Mask == 0 {
		conf.Mask = kcc.AllLayers
	}
	c := &Character{
		self:     self,
		shape:    conf.Shape,
		position: position,
		rotation: conf.Rotation,
		up:       omath.UpOrDefault(conf.Up),
		config:   conf.Solver,
		tuning:   conf.Tuning,
		ghost:    conf.Ghost,
		filter:   kcc.NewFilter(conf.Mask, self),
	}
	c.SetLogger(conf.Log)
	return c
}

// SetLogger sets the logger of the character. A nil logger discards everything.
func (c *Character) SetLogger(log *logrus.Logger) {
	if log == nil {
		log = logrus.New()
		log.Out = io.Discard
	}
	c.log = log
}

// Self returns the surface of the character's own collider.
func (c *Character) Self() kcc.SurfaceID {
	return c.self
}

// Shape ...
func (c *Character) Shape() kcc.Shape {
	return c.shape
}

// Position returns the world position of the character's collider.
func (c *Character) Position() mgl32.Vec3 {
	return c.position
}

// Teleport moves the character to the position passed without sweeping and forgets its ground.
func (c *Character) Teleport(pos mgl32.Vec3) {
	c.position = pos
	c.onGround, c.wasOnGround = false, false
}

// Rotation ...
func (c *Character) Rotation() mgl32.Quat {
	return c.rotation
}

// Velocity returns the velocity of the character.
func (c *Character) Velocity() mgl32.Vec3 {
	return c.velocity
}

// SetVelocity overwrites the velocity of the character. Use Launch to respect the grounded state.
func (c *Character) SetVelocity(v mgl32.Vec3) {
	c.velocity = v
}

// Up returns the up axis of the character.
func (c *Character) Up() mgl32.Vec3 {
	return c.up
}

// Ground returns the ground the character is standing on, if any.
func (c *Character) Ground() (kcc.Ground, bool) {
	return c.ground, c.onGround
}

// PreviousGround returns the ground the character stood on during the previous tick, if any.
func (c *Character) PreviousGround() (kcc.Ground, bool) {
	return c.previousGround, c.wasOnGround
}

// Grounded returns true if the character is standing on the ground.
func (c *Character) Grounded() bool {
	return c.onGround
}

// Config returns the solver configuration of the character.
func (c *Character) Config() kcc.Config {
	return c.config
}

// Tuning ...
func (c *Character) Tuning() Tuning {
	return c.tuning
}

// Ghost returns true if the character moves without colliding.
func (c *Character) Ghost() bool {
	return c.ghost
}

// Filter returns the query filter of the character.
func (c *Character) Filter() *kcc.Filter {
	return c.filter
}

// RefreshFilter rebuilds the query filter of the character for a new tick, excluding the character itself and
// every sensor surface.
func (c *Character) RefreshFilter(sensors iter.Seq[kcc.SurfaceID], mask uint32) {
	c.filter.Reset(mask)
	c.filter.Exclude(c.self)
	if sensors == nil {
		return
	}
	for id := range sensors {
		c.filter.Exclude(id)
	}
}

// Launch adds impulse to the velocity of the character. If the impulse points away from the ground the character
// stands on, the character is no longer grounded.
func (c *Character) Launch(impulse mgl32.Vec3) {
	if c.onGround && c.ground.Normal().Dot(impulse) > 0 {
		c.onGround = false
	}
	c.velocity = c.velocity.Add(impulse)
}

// Jump launches the character along its up axis. Any downward velocity is cancelled first, so a jump always
// reaches the same height.
func (c *Character) Jump(impulse float32) {
	down := min(c.velocity.Dot(c.up), 0)
	c.Launch(c.up.Mul(impulse).Sub(c.up.Mul(down)))
}
