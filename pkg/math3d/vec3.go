// Package math3d provides double precision geometry for plinth meshes.
// Camera and GPU-side math is single precision and lives in mgl32; this
// package holds the CPU-side mesh data the camera is fitted against, with
// the arithmetic delegated to mgl64.
package math3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a point or direction in model space.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

func (a Vec3) mgl() mgl64.Vec3 { return mgl64.Vec3{a.X, a.Y, a.Z} }

func fromMGL(v mgl64.Vec3) Vec3 { return Vec3{v[0], v[1], v[2]} }

func (a Vec3) Add(b Vec3) Vec3 { return fromMGL(a.mgl().Add(b.mgl())) }
func (a Vec3) Sub(b Vec3) Vec3 { return fromMGL(a.mgl().Sub(b.mgl())) }

// Scale multiplies every component by s.
func (a Vec3) Scale(s float64) Vec3 { return fromMGL(a.mgl().Mul(s)) }

// Div divides every component by s.
func (a Vec3) Div(s float64) Vec3 { return fromMGL(a.mgl().Mul(1 / s)) }

func (a Vec3) Dot(b Vec3) float64    { return a.mgl().Dot(b.mgl()) }
func (a Vec3) Cross(b Vec3) Vec3     { return fromMGL(a.mgl().Cross(b.mgl())) }
func (a Vec3) Len() float64          { return a.mgl().Len() }
func (a Vec3) Negate() Vec3          { return Vec3{-a.X, -a.Y, -a.Z} }
func (a Vec3) MaxComponent() float64 { return max(a.X, a.Y, a.Z) }

// Normalize returns the unit vector in the same direction, or zero for the
// zero vector.
func (a Vec3) Normalize() Vec3 {
	if a.Len() == 0 {
		return Vec3{}
	}
	return fromMGL(a.mgl().Normalize())
}

// Min and Max are component-wise.
func (a Vec3) Min(b Vec3) Vec3 { return Vec3{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)} }
func (a Vec3) Max(b Vec3) Vec3 { return Vec3{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)} }

func (a Vec3) Abs() Vec3 { return Vec3{math.Abs(a.X), math.Abs(a.Y), math.Abs(a.Z)} }

// Vec32 narrows the vector to single precision for upload.
func (a Vec3) Vec32() mgl32.Vec3 {
	return mgl32.Vec3{float32(a.X), float32(a.Y), float32(a.Z)}
}
