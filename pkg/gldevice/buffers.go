//go:build !tinygo && cgo

package gldevice

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/plinth/pkg/gfx"
)

// buffers holds one renderable: a vertex array per program, a buffer per
// attribute stream, an index buffer and a texture.
type buffers struct {
	dev   *Device
	freed bool

	meshVAO, linesVAO, pointsVAO uint32

	position, normal, ambient, diffuse, specular, texcoord uint32
	index                                                  uint32
	linePosition, lineColor                                uint32
	pointPosition, pointColor                              uint32
	tex                                                    uint32

	triangles    int
	lineVertices int
	points       int
}

func (d *Device) NewBuffers() gfx.Buffers {
	b := &buffers{dev: d}
	gl.GenVertexArrays(1, &b.meshVAO)
	gl.GenVertexArrays(1, &b.linesVAO)
	gl.GenVertexArrays(1, &b.pointsVAO)
	for _, vbo := range b.vbos() {
		gl.GenBuffers(1, vbo)
	}
	gl.GenTextures(1, &b.tex)

	gl.BindVertexArray(b.meshVAO)
	attrib(b.position, attribPosition, 3)
	attrib(b.normal, attribNormal, 3)
	attrib(b.ambient, attribAmbient, 4)
	attrib(b.diffuse, attribDiffuse, 4)
	attrib(b.specular, attribSpecular, 4)
	attrib(b.texcoord, attribTexcoord, 2)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.index)

	gl.BindVertexArray(b.linesVAO)
	attrib(b.linePosition, attribPosition, 3)
	attrib(b.lineColor, attribColor, 4)

	gl.BindVertexArray(b.pointsVAO)
	attrib(b.pointPosition, attribPosition, 3)
	attrib(b.pointColor, attribColor, 4)
	gl.BindVertexArray(0)
	return b
}

func (b *buffers) vbos() []*uint32 {
	return []*uint32{
		&b.position, &b.normal, &b.ambient, &b.diffuse, &b.specular, &b.texcoord,
		&b.index, &b.linePosition, &b.lineColor, &b.pointPosition, &b.pointColor,
	}
}

func attrib(vbo, loc uint32, size int32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, 0, 0)
}

// Upload replaces every stream. Empty streams are uploaded as zero length
// buffers, and streams shorter than Positions are padded with zeros.
func (b *buffers) Upload(g *gfx.Geometry) {
	if b.freed {
		panic("gldevice: Upload on freed buffers")
	}
	if !g.Validate() {
		panic("gldevice: inconsistent geometry")
	}
	n := len(g.Positions)
	upload3(b.position, g.Positions, n)
	upload3(b.normal, g.Normals, n)
	upload4(b.ambient, g.Ambient, n)
	upload4(b.diffuse, g.Diffuse, n)
	upload4(b.specular, g.Specular, n)
	uv := make([]mgl32.Vec2, n)
	copy(uv, g.UVs)
	bufferData(gl.ARRAY_BUFFER, b.texcoord, len(uv)*8, ptr(uv))

	idx := make([]uint32, 0, 3*len(g.Triangles))
	for _, t := range g.Triangles {
		idx = append(idx, t[0], t[1], t[2])
	}
	gl.BindVertexArray(b.meshVAO)
	bufferData(gl.ELEMENT_ARRAY_BUFFER, b.index, len(idx)*4, ptr(idx))
	gl.BindVertexArray(0)
	b.triangles = len(g.Triangles)

	upload3(b.linePosition, g.LinePositions, len(g.LinePositions))
	upload4(b.lineColor, g.LineColors, len(g.LineColors))
	b.lineVertices = len(g.LinePositions)
	upload3(b.pointPosition, g.PointPositions, len(g.PointPositions))
	upload4(b.pointColor, g.PointColors, len(g.PointColors))
	b.points = len(g.PointPositions)

	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if g.Texture != nil && !g.Texture.Bounds().Empty() {
		w, h, pix := textureRGBA(g.Texture)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	} else {
		white := []byte{255, 255, 255, 255}
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white))
	}
}

func upload3(vbo uint32, v []mgl32.Vec3, n int) {
	s := make([]mgl32.Vec3, n)
	copy(s, v)
	bufferData(gl.ARRAY_BUFFER, vbo, n*12, ptr(s))
}

func upload4(vbo uint32, v []mgl32.Vec4, n int) {
	s := make([]mgl32.Vec4, n)
	copy(s, v)
	bufferData(gl.ARRAY_BUFFER, vbo, n*16, ptr(s))
}

func bufferData(target, vbo uint32, size int, p any) {
	gl.BindBuffer(target, vbo)
	gl.BufferData(target, size, gl.Ptr(p), gl.STATIC_DRAW)
}

// ptr returns nil for empty slices; gl.Ptr rejects a zero length slice.
func ptr[T any](s []T) any {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}

func (b *buffers) Free() {
	if b.freed {
		return
	}
	b.freed = true
	for _, vao := range []*uint32{&b.meshVAO, &b.linesVAO, &b.pointsVAO} {
		gl.DeleteVertexArrays(1, vao)
	}
	for _, vbo := range b.vbos() {
		gl.DeleteBuffers(1, vbo)
	}
	gl.DeleteTextures(1, &b.tex)
	if b.dev.bound == b {
		b.dev.bound = nil
	}
}

var errIncompleteTarget = errors.New("gldevice: incomplete framebuffer")

// renderTarget is a framebuffer object with an RGBA texture color
// attachment and a depth/stencil renderbuffer.
type renderTarget struct {
	dev           *Device
	width, height int
	fbo, color    uint32
	depth         uint32
	status        error
	released      bool
}

func (d *Device) NewRenderTarget(width, height int) gfx.RenderTarget {
	rt := &renderTarget{dev: d, width: width, height: height}
	if width <= 0 || height <= 0 {
		rt.status = fmt.Errorf("%w: size %dx%d", errIncompleteTarget, width, height)
		return rt
	}
	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)

	gl.GenTextures(1, &rt.color)
	gl.BindTexture(gl.TEXTURE_2D, rt.color)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.color, 0)

	gl.GenRenderbuffers(1, &rt.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, rt.depth)

	if s := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); s != gl.FRAMEBUFFER_COMPLETE {
		rt.status = fmt.Errorf("%w: status 0x%x", errIncompleteTarget, s)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.targetFBO())
	return rt
}

func (d *Device) targetFBO() uint32 {
	if d.target == nil {
		return 0
	}
	return d.target.fbo
}

func (d *Device) BindRenderTarget(rt gfx.RenderTarget) {
	if rt == nil {
		d.target = nil
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	t, ok := rt.(*renderTarget)
	if !ok || t.dev != d {
		panic("gldevice: render target belongs to another device")
	}
	if t.released || t.status != nil {
		panic("gldevice: binding unusable render target")
	}
	d.target = t
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
}

func (rt *renderTarget) Width() int    { return rt.width }
func (rt *renderTarget) Height() int   { return rt.height }
func (rt *renderTarget) Status() error { return rt.status }

func (rt *renderTarget) Release() {
	if rt.released {
		return
	}
	rt.released = true
	if rt.dev.target == rt {
		rt.dev.BindRenderTarget(nil)
	}
	if rt.fbo == 0 {
		return
	}
	gl.DeleteFramebuffers(1, &rt.fbo)
	gl.DeleteTextures(1, &rt.color)
	gl.DeleteRenderbuffers(1, &rt.depth)
}
