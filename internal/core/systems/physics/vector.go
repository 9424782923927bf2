package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec2 is a 2D vector in world units. The zero value is the zero vector.
type Vec2 = cp.Vector

// Rect is an axis-aligned rectangle stored as left, bottom, right and top.
type Rect = cp.BB

// V2 is a shorthand constructor.
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// RectFromCenter builds a rectangle of the given full size around center.
func RectFromCenter(center, size Vec2) Rect {
	return cp.NewBBForExtents(center, size.X/2, size.Y/2)
}

// Overlap returns the penetration depth of a and b on each axis. Either value
// being non-positive means the rectangles do not overlap with positive area;
// cp's BB.Intersects also accepts touching edges.
func Overlap(a, b Rect) (dx, dy float64) {
	dx = math.Min(a.R, b.R) - math.Max(a.L, b.L)
	dy = math.Min(a.T, b.T) - math.Max(a.B, b.B)
	return dx, dy
}
