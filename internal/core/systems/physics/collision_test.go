package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABBNormal(t *testing.T) {
	tests := []struct {
		name   string
		a, b   *Body
		want   Vec2
		wantOK bool
	}{
		{
			name:   "overlap on the right",
			a:      box("a", 0, 0),
			b:      box("b", 1.5, 0.2),
			want:   V2(1, 0),
			wantOK: true,
		},
		{
			name:   "overlap on the left",
			a:      box("a", 0, 0),
			b:      box("b", -1.5, 0),
			want:   V2(-1, 0),
			wantOK: true,
		},
		{
			name:   "overlap below",
			a:      box("a", 0, 0),
			b:      box("b", 0.1, -1.8),
			want:   V2(0, -1),
			wantOK: true,
		},
		{
			name:   "overlap above",
			a:      box("a", 0, 0),
			b:      box("b", 0, 1.2),
			want:   V2(0, 1),
			wantOK: true,
		},
		{
			name: "separated",
			a:    box("a", 0, 0),
			b:    box("b", 5, 0),
		},
		{
			name: "edges touching",
			a:    box("a", 0, 0),
			b:    box("b", 2, 0),
		},
		{
			name: "a does not receive",
			a:    box("a", 0, 0, WithCollision(false, true)),
			b:    box("b", 1, 0),
		},
		{
			name: "b does not send",
			a:    box("a", 0, 0),
			b:    box("b", 1, 0, WithCollision(true, false)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AABBNormal(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAABBNormal_OneWayFlags(t *testing.T) {
	sensor := box("sensor", 0, 0, WithCollision(true, false))
	wall := box("wall", 1, 0)

	_, ok := AABBNormal(sensor, wall)
	assert.True(t, ok)
	_, ok = AABBNormal(wall, sensor)
	assert.False(t, ok)
}
