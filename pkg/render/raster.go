package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Edge function rasterization with incremental updates, after the
// classic Pineda formulation.

// varying is a vertex after the vertex stage: clip space position plus the
// attributes interpolated across primitives.
type varying struct {
	clip  mgl32.Vec4
	color mgl32.Vec4
	uv    mgl32.Vec2
}

func lerpVarying(a, b varying, t float32) varying {
	return varying{
		clip:  a.clip.Add(b.clip.Sub(a.clip).Mul(t)),
		color: lerp4(a.color, b.color, t),
		uv:    a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
	}
}

// windowVertex is a varying mapped to top-down framebuffer coordinates.
type windowVertex struct {
	x, y  float64
	z     float64 // window depth, [0, 1]
	invW  float64
	color mgl32.Vec4
	uv    mgl32.Vec2
}

// Fill fragments are pushed back slightly so wireframes drawn over them
// with the same geometry win the depth test.
const fillDepthBias = 1e-5

// clipPlanes are the view volume planes as distances in clip space, near
// and far first; a vertex is inside when all are non-negative.
var clipPlanes = [6]func(c mgl32.Vec4) float32{
	func(c mgl32.Vec4) float32 { return c[2] + c[3] },
	func(c mgl32.Vec4) float32 { return c[3] - c[2] },
	func(c mgl32.Vec4) float32 { return c[0] + c[3] },
	func(c mgl32.Vec4) float32 { return c[3] - c[0] },
	func(c mgl32.Vec4) float32 { return c[1] + c[3] },
	func(c mgl32.Vec4) float32 { return c[3] - c[1] },
}

// clipPolygon clips a convex polygon against the near and far planes
// (Sutherland-Hodgman). The sides are left to the scissor in
// rasterTriangle.
func clipPolygon(poly []varying) []varying {
	for _, dist := range clipPlanes[:2] {
		if len(poly) == 0 {
			return nil
		}
		out := make([]varying, 0, len(poly)+1)
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			da, db := dist(a.clip), dist(b.clip)
			if da >= 0 {
				out = append(out, a)
			}
			if (da >= 0) != (db >= 0) {
				out = append(out, lerpVarying(a, b, da/(da-db)))
			}
		}
		poly = out
	}
	return poly
}

// clipSegment clips a segment against all six planes, so the walk in
// drawSegment never leaves the viewport.
func clipSegment(a, b varying) (varying, varying, bool) {
	for _, dist := range clipPlanes {
		da, db := dist(a.clip), dist(b.clip)
		switch {
		case da < 0 && db < 0:
			return a, b, false
		case da < 0:
			a = lerpVarying(a, b, da/(da-db))
		case db < 0:
			b = lerpVarying(a, b, da/(da-db))
		}
	}
	return a, b, true
}

// scissor returns the viewport as inclusive top-down pixel bounds, clamped
// to the bound target. ok is false when no pixel is covered.
func (d *Device) scissor() (x0, y0, x1, y1 int, ok bool) {
	vp, fb := d.vp, d.fb
	x0 = max(int(math.Floor(float64(vp.X))), 0)
	x1 = min(int(math.Ceil(float64(vp.X+vp.Width)))-1, fb.Width-1)
	y0 = max(fb.Height-int(math.Ceil(float64(vp.Y+vp.Height))), 0)
	y1 = min(fb.Height-1-int(math.Floor(float64(vp.Y))), fb.Height-1)
	return x0, y0, x1, y1, x0 <= x1 && y0 <= y1
}

// toWindow maps a clip space vertex through the viewport. The viewport
// has a bottom-left origin; framebuffer rows run top-down.
func (d *Device) toWindow(v varying) windowVertex {
	w := float64(v.clip[3])
	if w == 0 {
		w = math.SmallestNonzeroFloat32
	}
	invW := 1 / w
	nx := float64(v.clip[0]) * invW
	ny := float64(v.clip[1]) * invW
	nz := float64(v.clip[2]) * invW

	vp := d.vp
	x := float64(vp.X) + (nx+1)*0.5*float64(vp.Width)
	yGL := float64(vp.Y) + (ny+1)*0.5*float64(vp.Height)
	return windowVertex{
		x:     x,
		y:     float64(d.fb.Height) - yGL,
		z:     (nz + 1) * 0.5,
		invW:  invW,
		color: v.color,
		uv:    v.uv,
	}
}

// edgeCoeffs returns A, B, C for edge(x,y) = A*x + B*y + C, positive on
// the left of the edge from (x0, y0) to (x1, y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1
	B = x1 - x0
	C = x0*y1 - x1*y0
	return
}

// fillTriangle clips and rasterizes one triangle with perspective correct
// attribute interpolation. Both windings are drawn.
func (d *Device) fillTriangle(tri [3]varying, tex *texture) {
	poly := clipPolygon(tri[:])
	if len(poly) < 3 {
		return
	}
	wv := make([]windowVertex, len(poly))
	for i, v := range poly {
		wv[i] = d.toWindow(v)
	}
	for i := 1; i+1 < len(wv); i++ {
		d.rasterTriangle(wv[0], wv[i], wv[i+1], tex)
	}
}

func (d *Device) rasterTriangle(v0, v1, v2 windowVertex, tex *texture) {
	fb := d.fb
	area2 := (v1.x-v0.x)*(v2.y-v0.y) - (v1.y-v0.y)*(v2.x-v0.x)
	if area2 == 0 || math.IsNaN(area2) {
		return
	}
	sx0, sy0, sx1, sy1, ok := d.scissor()
	if !ok {
		return
	}

	minX := int(math.Max(float64(sx0), math.Floor(min(v0.x, v1.x, v2.x))))
	maxX := int(math.Min(float64(sx1), math.Ceil(max(v0.x, v1.x, v2.x))))
	minY := int(math.Max(float64(sy0), math.Floor(min(v0.y, v1.y, v2.y))))
	maxY := int(math.Min(float64(sy1), math.Ceil(max(v0.y, v1.y, v2.y))))
	if minX > maxX || minY > maxY {
		return
	}

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	A0, B0, C0 := edgeCoeffs(v1.x, v1.y, v2.x, v2.y)
	A1, B1, C1 := edgeCoeffs(v2.x, v2.y, v0.x, v0.y)
	A2, B2, C2 := edgeCoeffs(v0.x, v0.y, v1.x, v1.y)

	// Flip clockwise triangles so inside is always positive.
	sign := 1.0
	if area2 < 0 {
		sign = -1
	}
	invArea := 1.0 / (area2 * sign)
	A0, B0, C0 = A0*sign, B0*sign, C0*sign
	A1, B1, C1 = A1*sign, B1*sign, C1*sign
	A2, B2, C2 = A2*sign, B2*sign, C2*sign

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := A0*px + B0*py + C0
	w1Row := A1*px + B1*py + C1
	w2Row := A2*px + B2*py + C2

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				bc0, bc1, bc2 := w0*invArea, w1*invArea, w2*invArea
				z := bc0*v0.z + bc1*v1.z + bc2*v2.z + fillDepthBias

				pw0, pw1, pw2 := bc0*v0.invW, bc1*v1.invW, bc2*v2.invW
				if sum := pw0 + pw1 + pw2; sum != 0 {
					s := float32(1 / sum)
					f0, f1, f2 := float32(pw0)*s, float32(pw1)*s, float32(pw2)*s
					c := v0.color.Mul(f0).Add(v1.color.Mul(f1)).Add(v2.color.Mul(f2))
					uv := v0.uv.Mul(f0).Add(v1.uv.Mul(f1)).Add(v2.uv.Mul(f2))
					c = fragment(c, uv, tex, d.textureFactor, d.fixedColor)
					fb.depthTest(x, y, float32(z), d.depthTest, toRGBA(c))
				}
			}
			w0 += A0
			w1 += A1
			w2 += A2
		}
		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}

// drawSegment clips and rasterizes a line of the current line width,
// interpolating color and depth in window space.
func (d *Device) drawSegment(a, b varying, tex *texture) {
	a, b, ok := clipSegment(a, b)
	if !ok {
		return
	}
	p, q := d.toWindow(a), d.toWindow(b)

	steps := int(math.Ceil(math.Max(math.Abs(q.x-p.x), math.Abs(q.y-p.y))))
	if steps == 0 {
		steps = 1
	}
	half := brushHalf(d.lineWidth)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := p.x + (q.x-p.x)*t
		y := p.y + (q.y-p.y)*t
		z := float32(p.z + (q.z-p.z)*t)
		c := lerp4(p.color, q.color, float32(t))
		uv := p.uv.Add(q.uv.Sub(p.uv).Mul(float32(t)))
		c = fragment(c, uv, tex, d.textureFactor, d.fixedColor)
		d.stamp(int(math.Floor(x)), int(math.Floor(y)), half, z, toRGBA(c), false)
	}
}

// drawPoint rasterizes a round point of the current point size.
func (d *Device) drawPoint(v varying) {
	if v.clip[3] <= 0 || clipPlanes[0](v.clip) < 0 || clipPlanes[1](v.clip) < 0 {
		return
	}
	p := d.toWindow(v)
	half := brushHalf(d.pointSize)
	if x0, y0, x1, y1, ok := d.scissor(); !ok ||
		p.x+float64(half) < float64(x0) || p.x-float64(half) >= float64(x1+1) ||
		p.y+float64(half) < float64(y0) || p.y-float64(half) >= float64(y1+1) {
		return
	}
	c := toRGBA(v.color)
	d.stamp(int(math.Floor(p.x)), int(math.Floor(p.y)), half, float32(p.z), c, true)
}

// brushHalf returns the brush radius in whole pixels for a GL style
// line width or point size.
func brushHalf(size float32) int {
	return max(int(math.Round(float64(size)))-1, 0) / 2
}

// stamp writes a (2*half+1) square brush, or a disc when round is set,
// cut to the viewport.
func (d *Device) stamp(cx, cy, half int, z float32, c color.RGBA, round bool) {
	x0, y0, x1, y1, ok := d.scissor()
	if !ok {
		return
	}
	for dy := max(-half, y0-cy); dy <= min(half, y1-cy); dy++ {
		for dx := max(-half, x0-cx); dx <= min(half, x1-cx); dx++ {
			if round && dx*dx+dy*dy > half*half {
				continue
			}
			d.fb.depthTest(cx+dx, cy+dy, z, d.depthTest, c)
		}
	}
}
