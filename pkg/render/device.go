package render

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/plinth/pkg/gfx"
)

// MaxTargetSize is the largest render target side the device accepts.
const MaxTargetSize = 16384

// ErrIncompleteTarget is reported by RenderTarget.Status for targets the
// device cannot draw into.
var ErrIncompleteTarget = errors.New("render: incomplete render target")

// Stats counts device work since the last ResetStats.
type Stats struct {
	Uploads   int // Buffers.Upload calls
	Triangles int // filled triangles submitted
	Edges     int // wireframe and overlay segments submitted
	Points    int // overlay points submitted
	Culled    int // mesh draws skipped by frustum culling
	Targets   int // live render targets
}

type program int

const (
	programNone program = iota
	programMesh
	programOverlayLines
	programOverlayPoints
)

// Device is a software gfx.Device.
type Device struct {
	screen *Framebuffer
	fb     *Framebuffer // bound draw target
	target *renderTarget

	vp        gfx.Viewport
	depthTest bool
	lineWidth float32
	pointSize float32

	program       program
	bound         *buffers
	transforms    gfx.Transforms
	lighting      gfx.Lighting
	fixedColor    mgl32.Vec4
	textureFactor float32

	// DisableCulling draws meshes whose bounds fall outside the frustum.
	DisableCulling bool

	Stats Stats
}

var _ gfx.Device = (*Device)(nil)

// NewDevice creates a device whose default framebuffer is width x height,
// with the viewport covering it and depth testing enabled.
func NewDevice(width, height int) *Device {
	d := &Device{
		depthTest: true,
		lineWidth: 1,
		pointSize: 1,
		transforms: gfx.Transforms{
			Model: mgl32.Ident4(),
			View:  mgl32.Ident4(),
			Proj:  mgl32.Ident4(),
		},
	}
	d.Resize(width, height)
	return d
}

// Resize replaces the default framebuffer and resets the viewport to
// cover it.
func (d *Device) Resize(width, height int) {
	rebind := d.fb == d.screen
	d.screen = NewFramebuffer(width, height)
	if rebind {
		d.fb = d.screen
	}
	d.vp = gfx.Viewport{Width: float32(width), Height: float32(height)}
}

// Framebuffer returns the default framebuffer.
func (d *Device) Framebuffer() *Framebuffer {
	return d.screen
}

// ResetStats zeroes the work counters, keeping the live target count.
func (d *Device) ResetStats() {
	d.Stats = Stats{Targets: d.Stats.Targets}
}

func (d *Device) Viewport() gfx.Viewport      { return d.vp }
func (d *Device) SetViewport(vp gfx.Viewport) { d.vp = vp }
func (d *Device) SetDepthTest(enabled bool)   { d.depthTest = enabled }
func (d *Device) SetLineWidth(width float32)  { d.lineWidth = width }
func (d *Device) SetPointSize(size float32)   { d.pointSize = size }

func (d *Device) Clear(c mgl32.Vec4) {
	d.fb.Clear(toRGBA(c))
	d.fb.ClearDepth()
}

func (d *Device) NewRenderTarget(width, height int) gfx.RenderTarget {
	rt := &renderTarget{dev: d, width: width, height: height}
	if width > 0 && height > 0 && width <= MaxTargetSize && height <= MaxTargetSize {
		rt.fb = NewFramebuffer(width, height)
	}
	d.Stats.Targets++
	return rt
}

func (d *Device) BindRenderTarget(rt gfx.RenderTarget) {
	if rt == nil {
		d.target = nil
		d.fb = d.screen
		return
	}
	t, ok := rt.(*renderTarget)
	if !ok || t.dev != d {
		panic("render: render target belongs to another device")
	}
	if t.fb == nil || t.released {
		panic(fmt.Sprintf("render: binding unusable target: %v", t.Status()))
	}
	d.target = t
	d.fb = t.fb
}

// ReadPixels copies RGBA bytes bottom row first, like glReadPixels.
// Pixels outside the bound target read as zero.
func (d *Device) ReadPixels(x, y, w, h int, dst []byte) {
	if len(dst) < 4*w*h {
		panic("render: ReadPixels destination too small")
	}
	fb := d.fb
	count := 0
	for j := range h {
		row := fb.Height - 1 - (y + j)
		for i := range w {
			c := fb.GetPixel(x+i, row)
			dst[count*4+0] = c.R
			dst[count*4+1] = c.G
			dst[count*4+2] = c.B
			dst[count*4+3] = c.A
			count++
		}
	}
}

func (d *Device) NewBuffers() gfx.Buffers {
	return &buffers{dev: d}
}

func (d *Device) bind(b gfx.Buffers, p program) {
	bb, ok := b.(*buffers)
	if !ok || bb.dev != d {
		panic("render: buffers belong to another device")
	}
	d.bound = bb
	d.program = p
}

func (d *Device) BindMesh(b gfx.Buffers)          { d.bind(b, programMesh) }
func (d *Device) BindOverlayLines(b gfx.Buffers)  { d.bind(b, programOverlayLines) }
func (d *Device) BindOverlayPoints(b gfx.Buffers) { d.bind(b, programOverlayPoints) }

func (d *Device) SetTransforms(t gfx.Transforms) { d.transforms = t }
func (d *Device) SetLighting(l gfx.Lighting)     { d.lighting = l }
func (d *Device) SetFixedColor(c mgl32.Vec4)     { d.fixedColor = c }
func (d *Device) SetTextureFactor(f float32)     { d.textureFactor = f }

func (d *Device) usable(p program) *buffers {
	if d.program != p || d.bound == nil || d.bound.freed {
		return nil
	}
	return d.bound
}

func (d *Device) DrawMesh(solid bool) {
	b := d.usable(programMesh)
	if b == nil || len(b.geom.Positions) == 0 || len(b.geom.Triangles) == 0 {
		return
	}
	xf := d.transforms
	mvp := xf.Proj.Mul4(xf.View).Mul4(xf.Model)
	if !d.DisableCulling && !frustumOf(mvp).intersects(b.bounds) {
		d.Stats.Culled++
		return
	}

	vs := d.meshVertexStage(b)
	if solid {
		for _, t := range b.geom.Triangles {
			d.fillTriangle([3]varying{vs[t[0]], vs[t[1]], vs[t[2]]}, b.tex)
		}
		d.Stats.Triangles += len(b.geom.Triangles)
		return
	}
	for _, t := range b.geom.Triangles {
		d.drawSegment(vs[t[0]], vs[t[1]], b.tex)
		d.drawSegment(vs[t[1]], vs[t[2]], b.tex)
		d.drawSegment(vs[t[2]], vs[t[0]], b.tex)
	}
	d.Stats.Edges += 3 * len(b.geom.Triangles)
}

// meshVertexStage transforms and lights every vertex of b.
func (d *Device) meshVertexStage(b *buffers) []varying {
	g := &b.geom
	xf := d.transforms
	mv := xf.View.Mul4(xf.Model)
	proj := xf.Proj
	lightEye := xf.View.Mul4x1(d.lighting.LightPositionWorld.Vec4(1)).Vec3()

	out := make([]varying, len(g.Positions))
	for i, p := range g.Positions {
		posEye := mv.Mul4x1(p.Vec4(1))
		s := surface{
			posEye: posEye.Vec3(),
			ka:     attr(g.Ambient, i, defaultAmbient),
			kd:     attr(g.Diffuse, i, defaultDiffuse),
			ks:     attr(g.Specular, i, defaultSpecular),
		}
		if i < len(g.Normals) {
			s.normalEye = safeNormalize(mv.Mul4x1(g.Normals[i].Vec4(0)).Vec3())
		}
		v := varying{
			clip:  proj.Mul4x1(posEye),
			color: shade(s, lightEye, d.lighting),
		}
		if i < len(g.UVs) {
			v.uv = g.UVs[i]
		}
		out[i] = v
	}
	return out
}

func (d *Device) DrawOverlayLines() {
	b := d.usable(programOverlayLines)
	if b == nil {
		return
	}
	restore := d.overlayState()
	defer restore()
	mvp := d.mvp()
	g := &b.geom
	for i := 0; i+1 < len(g.LinePositions); i += 2 {
		a := varying{clip: mvp.Mul4x1(g.LinePositions[i].Vec4(1)), color: g.LineColors[i]}
		c := varying{clip: mvp.Mul4x1(g.LinePositions[i+1].Vec4(1)), color: g.LineColors[i+1]}
		d.drawSegment(a, c, nil)
		d.Stats.Edges++
	}
}

func (d *Device) DrawOverlayPoints() {
	b := d.usable(programOverlayPoints)
	if b == nil {
		return
	}
	mvp := d.mvp()
	g := &b.geom
	for i, p := range g.PointPositions {
		d.drawPoint(varying{clip: mvp.Mul4x1(p.Vec4(1)), color: g.PointColors[i]})
	}
	d.Stats.Points += len(g.PointPositions)
}

func (d *Device) mvp() mgl32.Mat4 {
	xf := d.transforms
	return xf.Proj.Mul4(xf.View).Mul4(xf.Model)
}

// overlayState clears the mesh-only uniforms for the shared fragment stage
// and returns a func restoring them.
func (d *Device) overlayState() (restore func()) {
	fixed, tf := d.fixedColor, d.textureFactor
	d.fixedColor, d.textureFactor = mgl32.Vec4{}, 0
	return func() { d.fixedColor, d.textureFactor = fixed, tf }
}

func attr(s []mgl32.Vec4, i int, def mgl32.Vec4) mgl32.Vec4 {
	if i < len(s) {
		return s[i]
	}
	return def
}

// buffers is the software gfx.Buffers: a private copy of the geometry.
type buffers struct {
	dev    *Device
	geom   gfx.Geometry
	tex    *texture
	bounds aabb
	freed  bool
}

func (b *buffers) Upload(g *gfx.Geometry) {
	if b.freed {
		panic("render: upload to freed buffers")
	}
	b.geom = gfx.Geometry{
		Positions:      slices.Clone(g.Positions),
		Normals:        slices.Clone(g.Normals),
		Ambient:        slices.Clone(g.Ambient),
		Diffuse:        slices.Clone(g.Diffuse),
		Specular:       slices.Clone(g.Specular),
		UVs:            slices.Clone(g.UVs),
		Triangles:      slices.Clone(g.Triangles),
		LinePositions:  slices.Clone(g.LinePositions),
		LineColors:     slices.Clone(g.LineColors),
		PointPositions: slices.Clone(g.PointPositions),
		PointColors:    slices.Clone(g.PointColors),
	}
	b.tex = nil
	if g.Texture != nil {
		b.tex = newTexture(g.Texture)
	}
	if len(g.Positions) > 0 {
		b.bounds = boundsOf(g.Positions)
	}
	b.dev.Stats.Uploads++
}

func (b *buffers) Free() {
	b.freed = true
	b.geom = gfx.Geometry{}
	b.tex = nil
	if b.dev.bound == b {
		b.dev.bound = nil
	}
}

// renderTarget is the software gfx.RenderTarget.
type renderTarget struct {
	dev           *Device
	width, height int
	fb            *Framebuffer
	released      bool
}

func (t *renderTarget) Width() int  { return t.width }
func (t *renderTarget) Height() int { return t.height }

func (t *renderTarget) Status() error {
	switch {
	case t.released:
		return fmt.Errorf("%w: released", ErrIncompleteTarget)
	case t.fb == nil:
		return fmt.Errorf("%w: %dx%d", ErrIncompleteTarget, t.width, t.height)
	}
	return nil
}

func (t *renderTarget) Release() {
	if t.released {
		return
	}
	t.released = true
	if t.dev.target == t {
		t.dev.BindRenderTarget(nil)
	}
	t.fb = nil
	t.dev.Stats.Targets--
}
