package viewer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RotationType returns the current rotation mode.
func (c *Core) RotationType() RotationType { return c.rotationType }

// SetRotationType switches the rotation mode. Entering fixed-up mode from
// another mode snaps TrackballAngle so the model's up axis has no screen x
// component; any other switch leaves the rotation alone.
func (c *Core) SetRotationType(t RotationType) {
	old := c.rotationType
	c.rotationType = t
	if t == RotationTwoAxisValuatorFixedUp && old != RotationTwoAxisValuatorFixedUp {
		c.TrackballAngle = SnapToFixedUp(c.TrackballAngle)
	}
}

// SnapToFixedUp returns the rotation closest to q whose image of +Y lies
// in the y-z plane: q's up axis is rotated onto its projection there, or
// onto +Y when that projection vanishes.
func SnapToFixedUp(q mgl32.Quat) mgl32.Quat {
	up := q.Rotate(mgl32.Vec3{0, 1, 0})
	projUp := mgl32.Vec3{0, up[1], up[2]}
	if projUp.Len() == 0 {
		projUp = mgl32.Vec3{0, 1, 0}
	}
	return between(up, projUp.Normalize()).Mul(q).Normalize()
}

// between returns the shortest rotation taking unit a onto unit b.
func between(a, b mgl32.Vec3) mgl32.Quat {
	d := a.Dot(b)
	if d < -1+1e-6 {
		// Opposite: any perpendicular axis works.
		return mgl32.QuatBetweenVectors(a, b)
	}
	return mgl32.Quat{W: 1 + d, V: a.Cross(b)}.Normalize()
}

// Rotate applies a pointer drag from down to cur, in window pixels with a
// top-left origin, to the rotation held when the drag started. The mode
// picks the mapping.
func (c *Core) Rotate(downRotation mgl32.Quat, downX, downY, x, y float32) {
	w, h := c.Viewport.Width, c.Viewport.Height
	switch c.rotationType {
	case RotationTwoAxisValuatorFixedUp:
		c.TrackballAngle = TwoAxisValuatorFixedUp(w, h, 2, downRotation, downX, downY, x, y)
	default:
		c.TrackballAngle = Trackball(w, h, 2, downRotation, downX, downY, x, y)
	}
}

// quatD is the trackball sphere's radius in pixels.
func quatD(w, h float32) float32 {
	return min(math32.Abs(w), math32.Abs(h)) - 4
}

func quatIX(x, w, h float32) float32 { return (2*x - w - 1) / quatD(w, h) }
func quatIY(y, w, h float32) float32 { return (-2*y + h - 1) / quatD(w, h) }

// Trackball maps a drag across a w x h window onto a virtual sphere and
// returns the resulting rotation composed onto down. speed scales the
// drag; drags leaving the sphere rotate faster.
func Trackball(w, h, speed float32, down mgl32.Quat, downX, downY, x, y float32) mgl32.Quat {
	ox := quatIX(speed*(downX-w/2)+w/2, w, h)
	oy := quatIY(speed*(downY-h/2)+h/2, w, h)
	cx := quatIX(speed*(x-w/2)+w/2, w, h)
	cy := quatIY(speed*(y-h/2)+h/2, w, h)

	v0 := mgl32.Vec3{ox, oy, 1}
	v1 := mgl32.Vec3{cx, cy, 1}
	if v0.Len() <= 1e-7 || v1.Len() <= 1e-7 {
		return down
	}
	v0, v1 = v0.Normalize(), v1.Normalize()
	axis := v0.Cross(v1)
	sa := axis.Len()
	if sa == 0 {
		return down
	}
	angle := math32.Atan2(sa, v0.Dot(v1))
	if r2 := cx*cx + cy*cy; r2 > 1 {
		angle *= 1 + 0.2*(math32.Sqrt(r2)-1)
	}
	return mgl32.QuatRotate(angle, axis.Mul(1/sa)).Mul(down).Normalize()
}

// TwoAxisValuatorFixedUp yaws down about the model's +Y by the
// horizontal drag, then pitches about the screen x axis by the vertical
// drag. Dragging across the whole window turns by speed quarter turns.
func TwoAxisValuatorFixedUp(w, h, speed float32, down mgl32.Quat, downX, downY, x, y float32) mgl32.Quat {
	yaw := math32.Pi * (x - downX) / w * speed / 2
	q := down.Mul(mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0})).Normalize()
	pitch := math32.Pi * (y - downY) / h * speed / 2
	return mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0}).Mul(q).Normalize()
}
