//go:build !tinygo && cgo

package gldevice

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/taigrr/plinth/pkg/gfx"
)

type program int

const (
	programNone program = iota
	programMesh
	programOverlayLines
	programOverlayPoints
)

// Device is an OpenGL gfx.Device. It draws into the context current when
// it was created.
type Device struct {
	vp gfx.Viewport

	mesh   *meshProgram
	lines  *overlayProgram
	points *overlayProgram

	program program
	bound   *buffers
	target  *renderTarget
}

var _ gfx.Device = (*Device)(nil)

// New compiles the programs on the current context. width and height are
// the default framebuffer size and the initial viewport.
func New(width, height int) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}
	d := &Device{}
	var err error
	if d.mesh, err = newMeshProgram(); err != nil {
		return nil, err
	}
	if d.lines, err = newOverlayProgram(overlayLineFragmentShader); err != nil {
		d.Close()
		return nil, err
	}
	if d.points, err = newOverlayProgram(overlayPointFragmentShader); err != nil {
		d.Close()
		return nil, err
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	d.Resize(width, height)
	if err := glgl.Err(); err != nil {
		d.Close()
		return nil, fmt.Errorf("gl setup: %w", err)
	}
	return d, nil
}

// NewHeadless creates a hidden 1x1 window to own a context and a Device
// for off-screen rendering. terminate tears the context down.
func NewHeadless(width, height int) (d *Device, terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "plinth",
		Version: [2]int{4, 6},
		Width:   1,
		Height:  1,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create gl context: %w", err)
	}
	d, err = New(width, height)
	if err != nil {
		terminate()
		return nil, nil, err
	}
	return d, func() { d.Close(); terminate() }, nil
}

// Close deletes the programs.
func (d *Device) Close() {
	if d.mesh != nil {
		d.mesh.prog.Delete()
	}
	if d.lines != nil {
		d.lines.prog.Delete()
	}
	if d.points != nil {
		d.points.prog.Delete()
	}
	d.mesh, d.lines, d.points = nil, nil, nil
	d.program = programNone
}

// Resize sets the viewport to cover a default framebuffer of the given
// size.
func (d *Device) Resize(width, height int) {
	d.SetViewport(gfx.Viewport{Width: float32(width), Height: float32(height)})
}

func (d *Device) Viewport() gfx.Viewport { return d.vp }

func (d *Device) SetViewport(vp gfx.Viewport) {
	d.vp = vp
	gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
}

func (d *Device) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (d *Device) SetLineWidth(width float32) { gl.LineWidth(width) }
func (d *Device) SetPointSize(size float32)  { gl.PointSize(size) }

func (d *Device) Clear(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) ReadPixels(x, y, w, h int, dst []byte) {
	if len(dst) < 4*w*h {
		panic("gldevice: ReadPixels destination too small")
	}
	gl.ReadPixels(int32(x), int32(y), int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
}

func (d *Device) use(p program) {
	if d.program == p {
		return
	}
	d.program = p
	switch p {
	case programMesh:
		d.mesh.prog.Bind()
	case programOverlayLines:
		d.lines.prog.Bind()
	case programOverlayPoints:
		d.points.prog.Bind()
	}
}

func (d *Device) bind(b gfx.Buffers, p program) {
	bb, ok := b.(*buffers)
	if !ok || bb.dev != d {
		panic("gldevice: buffers belong to another device")
	}
	d.bound = bb
	d.use(p)
}

func (d *Device) BindMesh(b gfx.Buffers) {
	d.bind(b, programMesh)
	gl.BindVertexArray(d.bound.meshVAO)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.bound.tex)
}

func (d *Device) BindOverlayLines(b gfx.Buffers) {
	d.bind(b, programOverlayLines)
	gl.BindVertexArray(d.bound.linesVAO)
}

func (d *Device) BindOverlayPoints(b gfx.Buffers) {
	d.bind(b, programOverlayPoints)
	gl.BindVertexArray(d.bound.pointsVAO)
}

func (d *Device) SetTransforms(t gfx.Transforms) {
	switch d.program {
	case programMesh:
		d.mesh.set(t)
	case programOverlayLines:
		d.lines.set(t)
	case programOverlayPoints:
		d.points.set(t)
	}
}

func (d *Device) SetLighting(l gfx.Lighting) {
	if d.program == programMesh {
		d.mesh.setLighting(l)
	}
}

func (d *Device) SetFixedColor(c mgl32.Vec4) {
	if d.program == programMesh {
		d.mesh.setFixedColor(c)
	}
}

func (d *Device) SetTextureFactor(f float32) {
	if d.program == programMesh {
		gl.Uniform1f(d.mesh.textureFactor, f)
	}
}

func (d *Device) usable(p program) *buffers {
	if d.program != p || d.bound == nil || d.bound.freed {
		return nil
	}
	return d.bound
}

func (d *Device) DrawMesh(solid bool) {
	b := d.usable(programMesh)
	if b == nil || b.triangles == 0 {
		return
	}
	if solid {
		gl.Enable(gl.POLYGON_OFFSET_FILL)
		gl.PolygonOffset(1, 1)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.DrawElements(gl.TRIANGLES, int32(3*b.triangles), gl.UNSIGNED_INT, nil)
	gl.Disable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

func (d *Device) DrawOverlayLines() {
	if b := d.usable(programOverlayLines); b != nil && b.lineVertices > 0 {
		gl.DrawArrays(gl.LINES, 0, int32(b.lineVertices))
	}
}

func (d *Device) DrawOverlayPoints() {
	if b := d.usable(programOverlayPoints); b != nil && b.points > 0 {
		gl.DrawArrays(gl.POINTS, 0, int32(b.points))
	}
}

// textureRGBA converts img to tightly packed RGBA rows, bottom row first,
// so texture coordinate v = 0 addresses the bottom of the image.
func textureRGBA(img image.Image) (w, h int, pix []byte) {
	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	w, h = b.Dx(), b.Dy()
	pix = make([]byte, 0, 4*w*h)
	for y := h - 1; y >= 0; y-- {
		pix = append(pix, rgba.Pix[y*rgba.Stride:y*rgba.Stride+4*w]...)
	}
	return w, h, pix
}
