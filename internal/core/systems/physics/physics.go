package physics

import (
	"fmt"
	"math"
	"reflect"
)

// StepStats describes the work done by the most recent Update.
type StepStats struct {
	Bodies        int
	PairTests     int
	Contacts      int
	RigidContacts int
	Resting       int
}

// Physics advances bodies one frame at a time and owns the static forces
// applied to every body. It is not safe for concurrent use.
type Physics struct {
	settings     Settings
	normal       NormalFunc
	staticForces []Force

	normals []Vec2
	last    StepStats
}

// New creates a stepper with DefaultSettings and AABBNormal unless options
// say otherwise.
func New(opts ...Option) *Physics {
	p := &Physics{
		settings: DefaultSettings(),
		normal:   AABBNormal,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Settings returns the active tunables.
func (p *Physics) Settings() Settings { return p.settings }

// LastStep returns statistics for the most recent Update.
func (p *Physics) LastStep() StepStats { return p.last }

// AddStaticForce registers a force applied to every body on every frame.
func (p *Physics) AddStaticForce(f Force) {
	p.staticForces = append(p.staticForces, f)
}

// StaticForces returns a copy of the registered static forces in
// registration order.
func (p *Physics) StaticForces() []Force {
	out := make([]Force, len(p.staticForces))
	copy(out, p.staticForces)
	return out
}

// StaticForcesSum returns the sum of all static forces, or the zero force.
func (p *Physics) StaticForcesSum() Force {
	return SumForces(p.staticForces...)
}

// Update advances every body by dt seconds. Bodies are processed in slice
// order; each one first rebuilds its collided set against every other entry
// (never itself, even when listed twice), then integrates. A nil entry is a
// caller bug and panics before any body is touched.
func (p *Physics) Update(dt float64, bodies []Inertial) {
	for i, body := range bodies {
		if isNil(body) {
			panic(fmt.Sprintf("physics: nil body at index %d", i))
		}
	}

	staticSum := p.StaticForcesSum()
	stats := StepStats{Bodies: len(bodies)}

	for i, body := range bodies {
		body.ClearCollidedObjects()

		p.normals = p.normals[:0]
		for j, other := range bodies {
			if j == i || sameBody(body, other) {
				continue
			}
			stats.PairTests++
			normal, ok := p.normal(body, other)
			if !ok {
				continue
			}
			stats.Contacts++
			body.AddCollidedObject(other)

			if body.IsRigid() && other.IsRigid() {
				stats.RigidContacts++
				p.normals = append(p.normals, normal)
			}
		}

		if !p.updateLinear(dt, body, staticSum, p.normals) {
			stats.Resting++
		}
		p.updateRotation(dt, body)
	}

	p.last = stats
}

// updateLinear integrates force into velocity and velocity into position.
// It reports false when the body came to rest and its position was left
// untouched.
func (p *Physics) updateLinear(dt float64, body Inertial, staticSum Force, normals []Vec2) bool {
	s := p.settings

	acceleration := p.acceleration(body, staticSum)
	if acceleration.LengthSq() < s.MovementThreshold {
		acceleration = Vec2{}
	}

	velocity := body.Velocity().Add(acceleration.Mult(dt))

	maxSpeed := s.MaxSpeed
	if s.HonorBodyMaxSpeed {
		maxSpeed = body.MaxSpeed()
	}
	velocity = velocity.Clamp(maxSpeed)

	// Each contact pushes out of the surface then damps, so N contacts damp
	// by Damping^N.
	for _, n := range normals {
		if projection := velocity.Dot(n); projection > 0 {
			velocity = velocity.Sub(n.Mult(projection * s.PushOut))
		}
		velocity = velocity.Mult(s.Damping)
	}

	if velocity.LengthSq() < s.MovementThreshold {
		body.SetVelocity(Vec2{})
		return false
	}

	body.SetVelocity(velocity)
	body.SetPosition(body.Position().Add(velocity.Mult(dt)))
	return true
}

// acceleration sums static and active forces, drains the active forces and
// converts the result to an acceleration, adding gravity when it applies.
func (p *Physics) acceleration(body Inertial, staticSum Force) Vec2 {
	net := staticSum
	for _, f := range body.ActiveForces() {
		net = net.Add(f)
	}
	body.ClearActiveForces()

	var acceleration Vec2
	if net.Vec().LengthSq() > p.settings.MovementThreshold {
		acceleration = net.Vec().Mult(1 / body.Mass())
	}
	if body.IsGravityAffected() {
		acceleration.Y -= p.settings.Gravity
	}
	return acceleration
}

// updateRotation consumes the body's rotation speed for this frame.
func (p *Physics) updateRotation(dt float64, body Inertial) {
	rotationSpeed := body.RotationSpeed()
	body.SetRotationSpeed(0)
	if math.Abs(rotationSpeed) < p.settings.RotationThreshold {
		return
	}
	body.SetRotation(body.Rotation() + rotationSpeed*dt)
}

// sameBody reports whether a and b are the same body listed twice. Bodies
// whose concrete type cannot be compared are never the same.
func sameBody(a, b Inertial) bool {
	ta := reflect.TypeOf(a)
	return ta == reflect.TypeOf(b) && ta.Comparable() && a == b
}

func isNil(body Inertial) bool {
	if body == nil {
		return true
	}
	v := reflect.ValueOf(body)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
