package gfx

import "github.com/go-gl/mathgl/mgl32"

// TextRenderer draws screen-aligned labels anchored at model space points.
type TextRenderer interface {
	// BeginDraw starts a batch. viewModel maps model to eye space.
	BeginDraw(viewModel, proj mgl32.Mat4, vp Viewport, objectScale float32)
	// DrawText draws text at pos, nudged along normal so labels sit just
	// off the surface.
	DrawText(pos, normal mgl32.Vec3, text string, color mgl32.Vec4)
	EndDraw()
}

// NopText is a TextRenderer that draws nothing.
type NopText struct{}

func (NopText) BeginDraw(mgl32.Mat4, mgl32.Mat4, Viewport, float32) {}
func (NopText) DrawText(mgl32.Vec3, mgl32.Vec3, string, mgl32.Vec4) {}
func (NopText) EndDraw()                                            {}
