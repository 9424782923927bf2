package physics

import "github.com/google/uuid"

var _ Inertial = (*Body)(nil)

// Body is the stock Inertial implementation: a rectangle of fixed size
// centered on its position.
type Body struct {
	id   string
	name string

	position      Vec2
	velocity      Vec2
	size          Vec2
	rotation      float64
	rotationSpeed float64

	mass     float64
	maxSpeed float64

	gravityAffected bool
	rigid           bool
	receives        bool
	sends           bool

	activeForces []Force
	collided     []Inertial
}

// BodyOption customizes a Body at construction time.
type BodyOption func(*Body)

func WithID(id string) BodyOption          { return func(b *Body) { b.id = id } }
func WithVelocity(v Vec2) BodyOption       { return func(b *Body) { b.velocity = v } }
func WithRotation(r float64) BodyOption    { return func(b *Body) { b.rotation = r } }
func WithMass(m float64) BodyOption        { return func(b *Body) { b.mass = m } }
func WithMaxSpeed(s float64) BodyOption    { return func(b *Body) { b.maxSpeed = s } }
func WithGravity(affected bool) BodyOption { return func(b *Body) { b.gravityAffected = affected } }
func WithRigid(rigid bool) BodyOption      { return func(b *Body) { b.rigid = rigid } }

// WithCollision sets whether the body receives and sends collisions.
func WithCollision(receives, sends bool) BodyOption {
	return func(b *Body) {
		b.receives = receives
		b.sends = sends
	}
}

// NewBody creates a rigid, collidable body of unit mass. Without WithID the
// body gets a random UUID.
func NewBody(name string, position, size Vec2, opts ...BodyOption) *Body {
	b := &Body{
		name:     name,
		position: position,
		size:     size,
		mass:     1,
		maxSpeed: DefaultMaxSpeed,
		rigid:    true,
		receives: true,
		sends:    true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.id == "" {
		b.id = uuid.NewString()
	}
	return b
}

func (b *Body) ID() string   { return b.id }
func (b *Body) Name() string { return b.name }
func (b *Body) Size() Vec2   { return b.size }

func (b *Body) MaxSpeed() float64 { return b.maxSpeed }
func (b *Body) Mass() float64     { return b.mass }

func (b *Body) Position() Vec2     { return b.position }
func (b *Body) SetPosition(p Vec2) { b.position = p }

func (b *Body) Velocity() Vec2     { return b.velocity }
func (b *Body) SetVelocity(v Vec2) { b.velocity = v }

func (b *Body) Rotation() float64     { return b.rotation }
func (b *Body) SetRotation(r float64) { b.rotation = r }

func (b *Body) RotationSpeed() float64     { return b.rotationSpeed }
func (b *Body) SetRotationSpeed(s float64) { b.rotationSpeed = s }

func (b *Body) AddActiveForce(f Force) { b.activeForces = append(b.activeForces, f) }
func (b *Body) ActiveForces() []Force  { return b.activeForces }
func (b *Body) ClearActiveForces()     { b.activeForces = b.activeForces[:0] }

func (b *Body) IsGravityAffected() bool          { return b.gravityAffected }
func (b *Body) SetGravityAffected(affected bool) { b.gravityAffected = affected }

func (b *Body) Rect() Rect              { return RectFromCenter(b.position, b.size) }
func (b *Body) ReceivesCollision() bool { return b.receives }
func (b *Body) SendsCollision() bool    { return b.sends }
func (b *Body) IsRigid() bool           { return b.rigid }

func (b *Body) AddCollidedObject(o Inertial) { b.collided = append(b.collided, o) }
func (b *Body) CollidedObjects() []Inertial  { return b.collided }
func (b *Body) ClearCollidedObjects() {
	clear(b.collided)
	b.collided = b.collided[:0]
}
