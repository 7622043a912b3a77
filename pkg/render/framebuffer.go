// Package render is a software implementation of gfx.Device.
//
// It rasterizes into Framebuffers held in memory, top row first. The
// device maps OpenGL's bottom-left viewport convention onto that layout,
// so a frame drawn here reads back in the same row order as one drawn by
// an OpenGL device. Framebuffers can be shown in a terminal with
// half-block characters (see terminal.go) or encoded as images.
package render

import (
	"image"
	"image/color"
	"math"
)

// Framebuffer is a color and depth buffer pair, the software counterpart
// of a window's default framebuffer or a render target's attachments.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major pixel data, top row first
	Depth  []float32    // Window space depth in [0, 1], same layout as Pixels
}

// NewFramebuffer creates a framebuffer with depth cleared to the far
// plane. For half-block terminal output, height should be 2x the terminal
// rows.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		Depth:  make([]float32, width*height),
	}
	fb.ClearDepth()
	return fb
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	// Copy-doubling fill.
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// ClearDepth resets every depth sample to the far plane.
func (fb *Framebuffer) ClearDepth() {
	n := len(fb.Depth)
	if n == 0 {
		return
	}
	fb.Depth[0] = 1
	for i := 1; i < n; i *= 2 {
		copy(fb.Depth[i:], fb.Depth[:i])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// depthTest writes c at (x, y) if z passes a less-than test against the
// stored depth, updating the depth. With test false the pixel is written
// and depth left untouched.
func (fb *Framebuffer) depthTest(x, y int, z float32, test bool, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	idx := y*fb.Width + x
	if test {
		if z < 0 || z >= fb.Depth[idx] {
			return
		}
		fb.Depth[idx] = z
	}
	fb.Pixels[idx] = c
}

// ColorModel, Bounds, At and Set make a Framebuffer a draw.Image, so
// glyph rasterizers can draw labels straight into it.
func (fb *Framebuffer) ColorModel() color.Model { return color.RGBAModel }

func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, fb.Width, fb.Height) }

func (fb *Framebuffer) At(x, y int) color.Color { return fb.GetPixel(x, y) }

func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetPixel(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// toByte converts a [0, 1] channel to 8 bits, rounding to nearest like
// OpenGL's normalized fixed-point conversion.
func toByte(v float32) uint8 {
	if v <= 0 || math.IsNaN(float64(v)) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(float64(v)*255 + 0.5)
}
