package viewer

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/plinth/pkg/gfx"
	"github.com/taigrr/plinth/pkg/math3d"
	"github.com/taigrr/plinth/pkg/render"
)

func uniform(t *testing.T, p *Plane, want uint8, name string) {
	t.Helper()
	for i, v := range p.Pix {
		if v != want {
			t.Fatalf("%s plane pixel %d = %d, want %d", name, i, v, want)
		}
	}
}

func TestCaptureBackground(t *testing.T) {
	dev := render.NewDevice(100, 80)
	devViewport := gfx.Viewport{X: 5, Y: 6, Width: 50, Height: 40}
	dev.SetViewport(devViewport)
	c := New()
	c.Viewport = gfx.Viewport{X: 1, Y: 2, Width: 100, Height: 80}
	before := c.Viewport

	R, G, B, A := c.Capture(dev, nil, nil, true, 64, 64)

	require.Equal(t, 64, R.Width)
	require.Equal(t, 64, R.Height)
	uniform(t, R, 77, "R")
	uniform(t, G, 77, "G")
	uniform(t, B, 128, "B")
	uniform(t, A, 0, "A")
	assert.Equal(t, before, c.Viewport)
	assert.Equal(t, devViewport, dev.Viewport())
	assert.Zero(t, dev.Stats.Targets, "target released")
}

func TestCaptureRestoresDefaultTarget(t *testing.T) {
	dev := render.NewDevice(8, 8)
	c := New()
	c.Capture(dev, nil, nil, false, 4, 4)

	// Clearing after a capture must land on the default framebuffer.
	c.ClearFramebuffers(dev)
	assert.Equal(t, uint8(255), dev.Framebuffer().GetPixel(0, 0).A)
	assert.Equal(t, uint8(77), dev.Framebuffer().GetPixel(7, 7).R)
}

func captureQuad(t *testing.T, update bool, c *Core, dev *render.Device, d *Data, s *MeshState) [4]*Plane {
	t.Helper()
	R, G, B, A := c.Capture(dev, []*Data{d}, []*MeshState{s}, update, 64, 64)
	return [4]*Plane{R, G, B, A}
}

func TestCaptureRoundTrip(t *testing.T) {
	dev := render.NewDevice(64, 64)
	c := New()
	d := NewData(quadMesh())
	s := NewMeshState(dev)
	c.AlignCameraCenterData(d)
	c.CameraZoom *= 3 // pull back so the quad sits inside the frame

	c.ComputeMatrices(gfx.Viewport{Width: 64, Height: 64})
	d.Model = c.ModelMatrix(d.ModelTranslation)

	first := captureQuad(t, false, c, dev, d, s)
	second := captureQuad(t, false, c, dev, d, s)
	for i := range first {
		assert.Equal(t, first[i].Pix, second[i].Pix, "plane %d", i)
	}

	// The quad covers the middle of the frame, opaque; corners stay clear.
	assert.Equal(t, uint8(255), first[3].At(32, 20))
	assert.Equal(t, uint8(0), first[3].At(0, 0))
	assert.Equal(t, uint8(77), first[0].At(0, 0))
}

func TestCaptureAxisMapping(t *testing.T) {
	dev := render.NewDevice(16, 16)
	c := New()
	c.View, c.Proj = mgl32.Ident4(), mgl32.Ident4()

	// A red point in the bottom-left quadrant of clip space.
	d := NewData(nil)
	d.PointSize = 1
	d.AddPoints(Point{Pos: math3d.V3(-0.625, -0.625, 0), Color: mgl32.Vec4{1, 0, 0, 1}})
	s := NewMeshState(dev)

	R, _, _, A := c.Capture(dev, []*Data{d}, []*MeshState{s}, false, 8, 8)

	// Clip (-0.625, -0.625) lands in pixel (1, 1) counted from the bottom left.
	assert.Equal(t, uint8(255), R.At(1, 1))
	assert.Equal(t, uint8(255), A.At(1, 1))
	assert.Equal(t, uint8(0), A.At(1, 6))

	img := Image(R, R, R, A)
	assert.Equal(t, uint8(255), img.NRGBAAt(1, 6).A, "image rows run top-down")
}

func TestDrawBufferPanics(t *testing.T) {
	dev := render.NewDevice(8, 8)
	c := New()
	p := func(w, h int) *Plane { return NewPlane(w, h) }

	assert.Panics(t, func() { c.DrawBuffer(dev, nil, nil, false, p(4, 4), p(4, 4), p(4, 5), p(4, 4)) }, "mismatched planes")
	assert.Panics(t, func() { c.DrawBuffer(dev, nil, nil, false, p(0, 4), p(0, 4), p(0, 4), p(0, 4)) }, "empty planes")
	assert.Panics(t, func() { c.DrawBuffer(dev, nil, nil, false, nil, p(4, 4), p(4, 4), p(4, 4)) }, "nil plane")
	assert.Panics(t, func() {
		c.DrawBuffer(dev, []*Data{NewData(nil)}, nil, false, p(4, 4), p(4, 4), p(4, 4), p(4, 4))
	}, "missing state")
	assert.Panics(t, func() { c.Capture(dev, nil, nil, false, render.MaxTargetSize+1, 1) }, "incomplete target")
	assert.Zero(t, dev.Stats.Targets, "incomplete target released")
}

func TestDrawBufferReleasesIncompleteTarget(t *testing.T) {
	dev := &spyDevice{}
	failing := &failingTargets{spyDevice: dev}
	c := New()

	assert.PanicsWithError(t, "no fbo", func() {
		c.Capture(failing, nil, nil, false, 4, 4)
	})
	assert.Equal(t, []string{"Release"}, dev.calls)
}

type failingTargets struct{ *spyDevice }

func (f *failingTargets) NewRenderTarget(w, h int) gfx.RenderTarget {
	return &spyTarget{dev: f.spyDevice, w: w, h: h, err: errors.New("no fbo")}
}

func TestImagePanicsOnMismatch(t *testing.T) {
	assert.Panics(t, func() { Image(NewPlane(2, 2), NewPlane(2, 2), NewPlane(2, 2), NewPlane(3, 2)) })
}

func BenchmarkCapture(b *testing.B) {
	dev := render.NewDevice(1, 1)
	c := New()
	d := NewData(quadMesh())
	s := NewMeshState(dev)
	c.AlignCameraCenterData(d)

	for b.Loop() {
		c.Capture(dev, []*Data{d}, []*MeshState{s}, true, 128, 128)
	}
}
