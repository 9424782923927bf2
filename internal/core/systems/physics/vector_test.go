package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectFromCenter(t *testing.T) {
	r := RectFromCenter(V2(1, 1), V2(4, 2))

	assert.Equal(t, Rect{L: -1, B: 0, R: 3, T: 2}, r)
	assert.Equal(t, V2(1, 1), r.Center())
}

func TestOverlap(t *testing.T) {
	r := RectFromCenter(V2(1, 1), V2(4, 2))

	dx, dy := Overlap(r, RectFromCenter(V2(3, 2), V2(1, 1)))
	assert.Equal(t, 0.5, dx)
	assert.Equal(t, 0.5, dy)

	// Touching edges intersect for cp but carry no penetration.
	touching := RectFromCenter(V2(4, 1), V2(2, 2))
	assert.True(t, r.Intersects(touching))
	dx, _ = Overlap(r, touching)
	assert.Zero(t, dx)

	dx, _ = Overlap(r, RectFromCenter(V2(10, 1), V2(2, 2)))
	assert.Negative(t, dx)
}

func TestSumForces(t *testing.T) {
	a, b := F(1, 0), F(0, 2)

	assert.Equal(t, F(1, 2), a.Add(b))
	assert.Equal(t, F(1, 0), a, "Add does not mutate")
	assert.Equal(t, Force{}, SumForces())
	assert.Equal(t, V2(1, 2), SumForces(a, b).Vec())
}
