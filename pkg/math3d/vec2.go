package math3d

import "github.com/go-gl/mathgl/mgl32"

// Vec2 represents a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Vec32 narrows the vector to single precision for upload.
func (a Vec2) Vec32() mgl32.Vec2 {
	return mgl32.Vec2{float32(a.X), float32(a.Y)}
}
