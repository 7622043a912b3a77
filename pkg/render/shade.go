package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/plinth/pkg/gfx"
)

// Material terms used when a geometry stream is missing.
var (
	defaultDiffuse  = mgl32.Vec4{1, 1, 1, 1}
	defaultAmbient  = mgl32.Vec4{0.1, 0.1, 0.1, 1}
	defaultSpecular = mgl32.Vec4{0.3, 0.3, 0.3, 1}
)

// surface is one vertex's material and eye space geometry.
type surface struct {
	posEye, normalEye mgl32.Vec3
	ka, kd, ks        mgl32.Vec4
}

// shade evaluates the Phong model with a white light:
//
//	Ia + f (Id + Is) + (1 - f) Kd
//
// where f is the lighting factor. Alpha is the mean of the three material
// alphas.
func shade(s surface, lightEye mgl32.Vec3, l gfx.Lighting) mgl32.Vec4 {
	ia := s.ka.Vec3()

	toLight := safeNormalize(lightEye.Sub(s.posEye))
	facing := toLight.Dot(s.normalEye)
	id := s.kd.Vec3().Mul(max(facing, 0))

	// No highlight on surfaces facing away from the light.
	var specular float32
	if facing >= 0 {
		reflection := reflect(toLight.Mul(-1), s.normalEye)
		toViewer := safeNormalize(s.posEye.Mul(-1))
		specular = math32.Pow(max(reflection.Dot(toViewer), 0), l.SpecularExponent)
	}
	is := s.ks.Vec3().Mul(specular)

	f := l.LightingFactor
	c := ia.Add(id.Add(is).Mul(f)).Add(s.kd.Vec3().Mul(1 - f))
	return c.Vec4((s.ka[3] + s.kd[3] + s.ks[3]) / 3)
}

// fragment applies the per-pixel stages after lighting: modulation by
// the texture, weighted by textureFactor, and the fixed color override.
func fragment(c mgl32.Vec4, uv mgl32.Vec2, tex *texture, textureFactor float32, fixed mgl32.Vec4) mgl32.Vec4 {
	if fixed != (mgl32.Vec4{}) {
		return fixed
	}
	if tex != nil && textureFactor != 0 {
		t := lerp4(mgl32.Vec4{1, 1, 1, 1}, tex.sample(uv[0], uv[1]), textureFactor)
		c = mgl32.Vec4{c[0] * t[0], c[1] * t[1], c[2] * t[2], c[3] * t[3]}
	}
	return c
}

// reflect mirrors incident i about unit normal n.
func reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

// safeNormalize returns the unit vector along v, or zero for zero v.
func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}
