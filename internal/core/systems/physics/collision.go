package physics

// AABBNormal is the default collision-normal test. It treats both bodies as
// their bounding rectangles and returns the unit axis of least penetration,
// pointing from a toward b. a must receive collisions and b must send them.
func AABBNormal(a, b Inertial) (Vec2, bool) {
	if !a.ReceivesCollision() || !b.SendsCollision() {
		return Vec2{}, false
	}

	ra, rb := a.Rect(), b.Rect()
	dx, dy := Overlap(ra, rb)
	if dx <= 0 || dy <= 0 {
		return Vec2{}, false
	}

	delta := rb.Center().Sub(ra.Center())
	if dx < dy {
		if delta.X < 0 {
			return Vec2{X: -1}, true
		}
		return Vec2{X: 1}, true
	}
	if delta.Y < 0 {
		return Vec2{Y: -1}, true
	}
	return Vec2{Y: 1}, true
}
