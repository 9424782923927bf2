package physics

// Force is an applied push. Forces are values: combining them never mutates
// either operand.
type Force Vec2

// F is a shorthand constructor.
func F(x, y float64) Force { return Force{X: x, Y: y} }

// Add returns the sum of f and o.
func (f Force) Add(o Force) Force { return Force(f.Vec().Add(o.Vec())) }

// Vec returns the force as a plain vector.
func (f Force) Vec() Vec2 { return Vec2(f) }

// SumForces adds up forces in order. An empty list sums to the zero force.
func SumForces(forces ...Force) Force {
	var sum Force
	for _, f := range forces {
		sum = sum.Add(f)
	}
	return sum
}
