package math3d

import "github.com/go-gl/mathgl/mgl64"

// Mat4 is a column-major transform, the layout of glTF node matrices.
type Mat4 = mgl64.Mat4

// Identity returns the identity matrix.
func Identity() Mat4 { return mgl64.Ident4() }

func Translate(v Vec3) Mat4 { return mgl64.Translate3D(v.X, v.Y, v.Z) }
func Scale(v Vec3) Mat4     { return mgl64.Scale3D(v.X, v.Y, v.Z) }

// FromQuat creates a rotation matrix from a unit quaternion in glTF order
// (x, y, z, w).
func FromQuat(x, y, z, w float64) Mat4 {
	return mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}.Mat4()
}

// FromTRS composes translation * rotation * scale, the glTF node order.
func FromTRS(t Vec3, q [4]float64, s Vec3) Mat4 {
	return Translate(t).Mul4(FromQuat(q[0], q[1], q[2], q[3])).Mul4(Scale(s))
}

// TransformPoint applies m to p with w = 1, dividing by the resulting w.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	return fromMGL(mgl64.TransformCoordinate(p.mgl(), m))
}

// TransformDir applies m to d with w = 0, ignoring translation.
func TransformDir(m Mat4, d Vec3) Vec3 {
	return fromMGL(mgl64.TransformNormal(d.mgl(), m))
}

// NormalMatrix returns the inverse transpose of m, which keeps normals
// perpendicular to their surfaces under non-uniform scaling. A singular m
// yields the identity.
func NormalMatrix(m Mat4) Mat4 {
	if m.Det() == 0 {
		return Identity()
	}
	return m.Inv().Transpose()
}
