package viewer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/plinth/pkg/gfx"
	"github.com/taigrr/plinth/pkg/math3d"
	"github.com/taigrr/plinth/pkg/models"
)

// spyDevice records every call it receives.
type spyDevice struct {
	calls []string
	vp    gfx.Viewport
}

func (s *spyDevice) log(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *spyDevice) Viewport() gfx.Viewport { s.log("Viewport"); return s.vp }
func (s *spyDevice) SetViewport(vp gfx.Viewport) {
	s.log("SetViewport(%v,%v,%v,%v)", vp.X, vp.Y, vp.Width, vp.Height)
	s.vp = vp
}
func (s *spyDevice) SetDepthTest(enabled bool)  { s.log("SetDepthTest(%v)", enabled) }
func (s *spyDevice) SetLineWidth(width float32) { s.log("SetLineWidth(%v)", width) }
func (s *spyDevice) SetPointSize(size float32)  { s.log("SetPointSize(%v)", size) }
func (s *spyDevice) Clear(c mgl32.Vec4)         { s.log("Clear(%v)", c) }
func (s *spyDevice) NewRenderTarget(w, h int) gfx.RenderTarget {
	s.log("NewRenderTarget(%d,%d)", w, h)
	return &spyTarget{dev: s, w: w, h: h}
}
func (s *spyDevice) BindRenderTarget(rt gfx.RenderTarget) {
	s.log("BindRenderTarget(%v)", rt != nil)
}
func (s *spyDevice) ReadPixels(x, y, w, h int, dst []byte) {
	s.log("ReadPixels(%d,%d,%d,%d)", x, y, w, h)
}
func (s *spyDevice) NewBuffers() gfx.Buffers       { s.log("NewBuffers"); return &spyBuffers{dev: s} }
func (s *spyDevice) BindMesh(gfx.Buffers)          { s.log("BindMesh") }
func (s *spyDevice) DrawMesh(solid bool)           { s.log("DrawMesh(%v)", solid) }
func (s *spyDevice) BindOverlayLines(gfx.Buffers)  { s.log("BindOverlayLines") }
func (s *spyDevice) DrawOverlayLines()             { s.log("DrawOverlayLines") }
func (s *spyDevice) BindOverlayPoints(gfx.Buffers) { s.log("BindOverlayPoints") }
func (s *spyDevice) DrawOverlayPoints()            { s.log("DrawOverlayPoints") }
func (s *spyDevice) SetTransforms(gfx.Transforms)  { s.log("SetTransforms") }
func (s *spyDevice) SetLighting(gfx.Lighting)      { s.log("SetLighting") }
func (s *spyDevice) SetFixedColor(c mgl32.Vec4)    { s.log("SetFixedColor(%v)", c) }
func (s *spyDevice) SetTextureFactor(f float32)    { s.log("SetTextureFactor(%v)", f) }

type spyBuffers struct {
	dev     *spyDevice
	uploads []*gfx.Geometry
}

func (b *spyBuffers) Upload(g *gfx.Geometry) {
	b.dev.log("Upload")
	b.uploads = append(b.uploads, g)
}
func (b *spyBuffers) Free() { b.dev.log("Free") }

type spyTarget struct {
	dev  *spyDevice
	w, h int
	err  error
}

func (t *spyTarget) Width() int    { return t.w }
func (t *spyTarget) Height() int   { return t.h }
func (t *spyTarget) Status() error { return t.err }
func (t *spyTarget) Release()      { t.dev.log("Release") }

// spyText records labels into the device log.
type spyText struct {
	dev *spyDevice
}

func (t spyText) BeginDraw(_, _ mgl32.Mat4, _ gfx.Viewport, scale float32) {
	t.dev.log("BeginDraw(%v)", scale)
}
func (t spyText) DrawText(_, _ mgl32.Vec3, text string, _ mgl32.Vec4) {
	t.dev.log("DrawText(%s)", text)
}
func (t spyText) EndDraw() { t.dev.log("EndDraw") }

// quadMesh is the square [-1, 1]^2 at z = 0 facing +Z, as two triangles.
func quadMesh() *models.Mesh {
	m := models.NewMesh("quad")
	for _, p := range []math3d.Vec3{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}} {
		m.Vertices = append(m.Vertices, models.MeshVertex{
			Position: p,
			Normal:   math3d.V3(0, 0, 1),
			UV:       math3d.V2((p.X+1)/2, (p.Y+1)/2),
		})
	}
	m.Faces = []models.Face{
		{V: [3]int{0, 1, 2}, Material: -1},
		{V: [3]int{0, 2, 3}, Material: -1},
	}
	m.CalculateBounds()
	return m
}

// cubeCorners returns the eight corners of [-1, 1]^3 as rows.
func cubeCorners() [][]float64 {
	var rows [][]float64
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				rows = append(rows, []float64{x, y, z})
			}
		}
	}
	return rows
}
