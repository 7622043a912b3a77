package viewer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

var testRotations = []struct {
	name string
	q    mgl32.Quat
}{
	{"identity", mgl32.QuatIdent()},
	{"roll", mgl32.QuatRotate(0.7, mgl32.Vec3{0, 0, 1})},
	{"yaw", mgl32.QuatRotate(1.2, mgl32.Vec3{0, 1, 0})},
	{"pitch", mgl32.QuatRotate(-0.4, mgl32.Vec3{1, 0, 0})},
	{"oblique", mgl32.QuatRotate(2.1, mgl32.Vec3{1, 2, 3}.Normalize())},
	{"upside down", mgl32.QuatRotate(math32.Pi, mgl32.Vec3{0, 0, 1})},
	{"up along x", mgl32.QuatRotate(-math32.Pi/2, mgl32.Vec3{0, 0, 1})},
}

func TestSetRotationTypeSnapsToFixedUp(t *testing.T) {
	for _, tt := range testRotations {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.TrackballAngle = tt.q
			c.SetRotationType(RotationTwoAxisValuatorFixedUp)

			q := c.TrackballAngle
			assert.InDelta(t, 1, q.Len(), 1e-5)
			up := q.Rotate(mgl32.Vec3{0, 1, 0})
			assert.InDelta(t, 0, up[0], 1e-4, "up has a screen x component: %v", up)
			assert.InDelta(t, 1, up.Len(), 1e-5)
		})
	}
}

func TestSnapIsIdempotent(t *testing.T) {
	for _, tt := range testRotations {
		t.Run(tt.name, func(t *testing.T) {
			s := SnapToFixedUp(tt.q)
			assert.True(t, s.ApproxEqualThreshold(SnapToFixedUp(s), 1e-5) ||
				s.ApproxEqualThreshold(SnapToFixedUp(s).Scale(-1), 1e-5))
		})
	}
}

func TestSetRotationTypeLeavesRotation(t *testing.T) {
	q := mgl32.QuatRotate(0.9, mgl32.Vec3{1, 1, 0}.Normalize())

	c := New()
	c.TrackballAngle = q
	c.SetRotationType(RotationTrackball)
	assert.Equal(t, q, c.TrackballAngle, "trackball to trackball")

	c.SetRotationType(RotationTwoAxisValuatorFixedUp)
	snapped := c.TrackballAngle
	c.SetRotationType(RotationTwoAxisValuatorFixedUp)
	assert.Equal(t, snapped, c.TrackballAngle, "fixed-up to fixed-up")

	c.TrackballAngle = q
	c.SetRotationType(RotationTrackball)
	assert.Equal(t, q, c.TrackballAngle, "leaving fixed-up")
}

func TestTrackball(t *testing.T) {
	down := mgl32.QuatRotate(0.3, mgl32.Vec3{0, 1, 0})

	assert.Equal(t, down, Trackball(640, 480, 2, down, 100, 100, 100, 100), "no drag")

	q := Trackball(640, 480, 2, mgl32.QuatIdent(), 320, 240, 400, 240)
	// Dragging right spins the front of the model right: about +Y.
	axis := q.V.Normalize()
	assert.InDelta(t, 1, axis[1], 1e-3)
	assert.Greater(t, q.V[1], float32(0))
	assert.InDelta(t, 1, q.Len(), 1e-5)
}

func TestTwoAxisValuatorFixedUpKeepsUp(t *testing.T) {
	down := SnapToFixedUp(mgl32.QuatRotate(0.8, mgl32.Vec3{1, 1, 1}.Normalize()))
	drags := [][4]float32{{0, 0, 100, 0}, {0, 0, 0, 100}, {50, 60, -200, 300}}
	for _, d := range drags {
		q := TwoAxisValuatorFixedUp(640, 480, 2, down, d[0], d[1], d[2], d[3])
		up := q.Rotate(mgl32.Vec3{0, 1, 0})
		assert.InDelta(t, 0, up[0], 1e-4, "drag %v", d)
	}

	// A full width drag at speed 2 is a half turn.
	q := TwoAxisValuatorFixedUp(640, 480, 2, mgl32.QuatIdent(), 0, 0, 640, 0)
	assert.InDelta(t, 0, q.W, 1e-5)
	assert.InDelta(t, 1, math32.Abs(q.V[1]), 1e-5)
}

func TestRotateUsesMode(t *testing.T) {
	c := New()
	c.Viewport.Width, c.Viewport.Height = 640, 480
	c.Rotate(mgl32.QuatIdent(), 320, 240, 320, 300)
	trackball := c.TrackballAngle

	c.SetRotationType(RotationTwoAxisValuatorFixedUp)
	c.Rotate(mgl32.QuatIdent(), 320, 240, 320, 300)
	assert.False(t, trackball.ApproxEqualThreshold(c.TrackballAngle, 1e-6))
	up := c.TrackballAngle.Rotate(mgl32.Vec3{0, 1, 0})
	assert.InDelta(t, 0, up[0], 1e-4)
}
