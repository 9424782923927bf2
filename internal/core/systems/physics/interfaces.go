package physics

// Inertial is the narrow view the stepper needs of a body. The stepper reads
// and writes kinematic state through it and never depends on concrete types.
type Inertial interface {
	MaxSpeed() float64
	Mass() float64

	Position() Vec2
	SetPosition(Vec2)

	Velocity() Vec2
	SetVelocity(Vec2)

	Rotation() float64
	SetRotation(float64)

	RotationSpeed() float64
	SetRotationSpeed(float64)

	// Active forces are single-use: appended by game logic before a frame,
	// drained by the stepper once summed.

	AddActiveForce(Force)
	ActiveForces() []Force
	ClearActiveForces()

	IsGravityAffected() bool
	SetGravityAffected(bool)

	Rect() Rect
	ReceivesCollision() bool
	SendsCollision() bool
	IsRigid() bool

	// Collided bodies are rebuilt every frame, rigid or not.

	AddCollidedObject(Inertial)
	CollidedObjects() []Inertial
	ClearCollidedObjects()
}

// NormalFunc reports the separation normal between a and b when they overlap.
// Implementations must be pure.
type NormalFunc func(a, b Inertial) (Vec2, bool)
