package viewer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/taigrr/plinth/pkg/gfx"
)

// Plane is one 8-bit channel of a captured frame. Pixel (x, y) is
// Pix[y*Width+x], and y = 0 is the first row read back from the device:
// the bottom row of the frame.
type Plane struct {
	Width, Height int
	Pix           []uint8
}

// NewPlane allocates a zeroed w x h plane.
func NewPlane(w, h int) *Plane {
	return &Plane{Width: w, Height: h, Pix: make([]uint8, w*h)}
}

// At returns the value at (x, y).
func (p *Plane) At(x, y int) uint8 { return p.Pix[y*p.Width+x] }

// Set stores v at (x, y).
func (p *Plane) Set(x, y int, v uint8) { p.Pix[y*p.Width+x] = v }

func samePlaneSize(planes ...*Plane) bool {
	for _, p := range planes {
		if p == nil || p.Width != planes[0].Width || p.Height != planes[0].Height ||
			len(p.Pix) != p.Width*p.Height {
			return false
		}
	}
	return true
}

// DrawBuffer renders data off-screen at the size of the planes and reads
// the frame back into R, G, B and A.
//
// The target is cleared to the background with zero alpha, and every
// data[i] is drawn with states[i] through a viewport of the plane size.
// The core's and the device's viewports are restored afterwards, the
// default framebuffer is rebound and the target released.
//
// DrawBuffer panics if the planes differ in size or are empty, if data
// and states differ in length, or if the device cannot provide a complete
// render target.
func (c *Core) DrawBuffer(dev gfx.Device, data []*Data, states []*MeshState, updateMatrices bool, R, G, B, A *Plane) {
	if !samePlaneSize(R, G, B, A) {
		panic("viewer: DrawBuffer planes must have identical dimensions")
	}
	w, h := R.Width, R.Height
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("viewer: DrawBuffer size %dx%d", w, h))
	}
	if len(data) != len(states) {
		panic(fmt.Sprintf("viewer: DrawBuffer got %d data and %d states", len(data), len(states)))
	}

	rt := dev.NewRenderTarget(w, h)
	defer rt.Release()
	if err := rt.Status(); err != nil {
		panic(err)
	}
	dev.BindRenderTarget(rt)
	defer dev.BindRenderTarget(nil)

	bg := c.BackgroundColor
	bg[3] = 0
	dev.Clear(bg)

	viewport, devViewport := c.Viewport, dev.Viewport()
	c.Viewport = gfx.Viewport{Width: float32(w), Height: float32(h)}
	for i := range data {
		c.Draw(dev, data[i], states[i], updateMatrices)
	}
	c.Viewport = viewport
	dev.SetViewport(devViewport)

	pixels := make([]byte, 4*w*h)
	dev.ReadPixels(0, 0, w, h, pixels)

	count := 0
	for j := range h {
		for i := range w {
			R.Set(i, j, pixels[count*4+0])
			G.Set(i, j, pixels[count*4+1])
			B.Set(i, j, pixels[count*4+2])
			A.Set(i, j, pixels[count*4+3])
			count++
		}
	}
	c.log.Debug("captured frame", "width", w, "height", h, "objects", len(data))
}

// Capture allocates w x h planes and fills them with DrawBuffer.
func (c *Core) Capture(dev gfx.Device, data []*Data, states []*MeshState, updateMatrices bool, w, h int) (R, G, B, A *Plane) {
	R, G, B, A = NewPlane(w, h), NewPlane(w, h), NewPlane(w, h), NewPlane(w, h)
	c.DrawBuffer(dev, data, states, updateMatrices, R, G, B, A)
	return R, G, B, A
}

// Image interleaves the planes into an image with the top row first, the
// orientation image encoders expect.
func Image(R, G, B, A *Plane) *image.NRGBA {
	if !samePlaneSize(R, G, B, A) {
		panic("viewer: Image planes must have identical dimensions")
	}
	w, h := R.Width, R.Height
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, h-1-y, color.NRGBA{R.At(x, y), G.At(x, y), B.At(x, y), A.At(x, y)})
		}
	}
	return img
}
