// Package gfx defines the graphics context the viewer core renders through.
//
// A Device is an explicit replacement for process-global GPU state: every
// draw call, uniform upload, and render target goes through the Device
// handed to the caller. Two implementations exist, a deterministic software
// rasterizer in package render and an OpenGL one in package gldevice.
//
// Devices are not safe for concurrent use.
package gfx

import "github.com/go-gl/mathgl/mgl32"

// Viewport is a rectangle in framebuffer pixels with a bottom-left origin,
// the OpenGL convention.
type Viewport struct {
	X, Y          float32
	Width, Height float32
}

// Vec4 returns the viewport as (x, y, width, height).
func (v Viewport) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{v.X, v.Y, v.Width, v.Height}
}

// Aspect returns width / height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return v.Width / v.Height
}

// Transforms are the matrices shared by every program.
type Transforms struct {
	Model mgl32.Mat4
	View  mgl32.Mat4
	Proj  mgl32.Mat4
}

// Lighting holds the mesh program's light uniforms.
type Lighting struct {
	SpecularExponent   float32
	LightPositionWorld mgl32.Vec3
	// LightingFactor blends between lit (1) and flat diffuse (0) shading.
	LightingFactor float32
}
