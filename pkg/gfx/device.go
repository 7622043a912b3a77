package gfx

import "github.com/go-gl/mathgl/mgl32"

// Device is a graphics context. Bind calls select both the geometry and the
// program it is drawn with; uniform setters apply to the bound program.
type Device interface {
	Viewport() Viewport
	SetViewport(vp Viewport)

	SetDepthTest(enabled bool)
	SetLineWidth(width float32)
	SetPointSize(size float32)

	// Clear fills the color buffer of the bound target and resets depth.
	Clear(color mgl32.Vec4)

	// NewRenderTarget allocates an off-screen color + depth/stencil target.
	NewRenderTarget(width, height int) RenderTarget
	// BindRenderTarget makes rt the draw target; nil selects the default
	// framebuffer.
	BindRenderTarget(rt RenderTarget)
	// ReadPixels copies a rectangle of the bound target into dst as RGBA
	// bytes, rows ordered bottom to top. dst must hold 4*w*h bytes.
	ReadPixels(x, y, w, h int, dst []byte)

	// NewBuffers allocates GPU storage for one renderable.
	NewBuffers() Buffers

	BindMesh(b Buffers)
	// DrawMesh draws the bound mesh filled, or as a wireframe of its
	// triangle edges when solid is false.
	DrawMesh(solid bool)
	BindOverlayLines(b Buffers)
	DrawOverlayLines()
	BindOverlayPoints(b Buffers)
	DrawOverlayPoints()

	SetTransforms(t Transforms)
	SetLighting(l Lighting)
	// SetFixedColor overrides shading when its alpha is non-zero.
	SetFixedColor(c mgl32.Vec4)
	SetTextureFactor(f float32)
}

// Buffers is the per-renderable storage owned by one Device.
type Buffers interface {
	// Upload replaces the stored geometry.
	Upload(g *Geometry)
	// Free releases the storage. The Buffers must not be used afterwards.
	Free()
}

// RenderTarget is an off-screen framebuffer.
type RenderTarget interface {
	Width() int
	Height() int
	// Status reports nil when the target is complete and usable.
	Status() error
	// Release frees the target. Releasing the bound target rebinds the
	// default framebuffer.
	Release()
}
