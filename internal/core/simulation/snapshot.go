package simulation

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Point is the wire form of a vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BodyState is the committed kinematic state of one body.
type BodyState struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Point    `json:"position"`
	Velocity Point    `json:"velocity"`
	Size     Point    `json:"size"`
	Rotation float64  `json:"rotation"`
	Rigid    bool     `json:"rigid"`
	Touching []string `json:"touching,omitempty"`
}

// Snapshot is an immutable copy of the world after a frame.
type Snapshot struct {
	Frame  int64       `json:"frame"`
	Time   float64     `json:"time"`
	Digest string      `json:"digest"`
	Bodies []BodyState `json:"bodies"`
}

func (s *Simulation) capture() Snapshot {
	snap := Snapshot{
		Frame:  s.frame,
		Time:   s.elapsed,
		Bodies: make([]BodyState, len(s.bodies)),
	}
	for i, b := range s.bodies {
		snap.Bodies[i] = BodyState{
			ID:       b.ID(),
			Name:     b.Name(),
			Position: Point(b.Position()),
			Velocity: Point(b.Velocity()),
			Size:     Point(b.Size()),
			Rotation: b.Rotation(),
			Rigid:    b.IsRigid(),
			Touching: touchingIDs(b.CollidedObjects()),
		}
	}
	snap.Digest = strconv.FormatUint(Digest(snap.Bodies), 16)
	return snap
}

// Digest hashes the kinematic state of bodies in order. Two runs that
// produce the same digest at the same frame are bit-identical.
func Digest(bodies []BodyState) uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	for _, b := range bodies {
		_, _ = h.WriteString(b.ID)
		writeFloat(b.Position.X)
		writeFloat(b.Position.Y)
		writeFloat(b.Velocity.X)
		writeFloat(b.Velocity.Y)
		writeFloat(b.Rotation)
	}
	return h.Sum64()
}
