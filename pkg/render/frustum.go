package render

import "github.com/go-gl/mathgl/mgl32"

// plane is n·p + d = 0 with n pointing into the frustum.
type plane struct {
	n mgl32.Vec3
	d float32
}

func (p plane) normalized() plane {
	l := p.n.Len()
	if l == 0 {
		return p
	}
	return plane{n: p.n.Mul(1 / l), d: p.d / l}
}

// distance is signed, positive on the inner side.
func (p plane) distance(q mgl32.Vec3) float32 {
	return p.n.Dot(q) + p.d
}

// frustum holds the left, right, bottom, top, near and far clip planes.
type frustum [6]plane

// frustumOf extracts the clip planes of m with the Gribb/Hartmann method.
// The planes live in m's input space, so for a full model-view-projection
// they can be tested against model space bounds directly.
func frustumOf(m mgl32.Mat4) frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	rows := [6]mgl32.Vec4{
		r3.Add(r0), r3.Sub(r0),
		r3.Add(r1), r3.Sub(r1),
		r3.Add(r2), r3.Sub(r2),
	}
	var f frustum
	for i, r := range rows {
		f[i] = plane{n: r.Vec3(), d: r[3]}.normalized()
	}
	return f
}

// aabb is an axis-aligned box in model space.
type aabb struct {
	min, max mgl32.Vec3
}

// boundsOf returns the box around points, which must not be empty.
func boundsOf(points []mgl32.Vec3) aabb {
	b := aabb{min: points[0], max: points[0]}
	for _, p := range points[1:] {
		for k := range 3 {
			b.min[k] = min(b.min[k], p[k])
			b.max[k] = max(b.max[k], p[k])
		}
	}
	return b
}

// intersects is conservative: it reports false only when the box lies
// entirely outside one plane. For each plane only the corner furthest
// along its normal needs testing.
func (f frustum) intersects(b aabb) bool {
	for _, p := range f {
		var far mgl32.Vec3
		for k := range 3 {
			if p.n[k] >= 0 {
				far[k] = b.max[k]
			} else {
				far[k] = b.min[k]
			}
		}
		if p.distance(far) < 0 {
			return false
		}
	}
	return true
}
