//go:build !tinygo && cgo

package gldevice

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/taigrr/plinth/pkg/gfx"
)

// uniform looks up a uniform location once, at program creation.
func uniform(prog glgl.Program, name string, dst *int32, err *error) {
	if *err != nil {
		return
	}
	loc, e := prog.UniformLocation(name + "\x00")
	if e != nil {
		*err = fmt.Errorf("uniform %s: %w", name, e)
		return
	}
	*dst = loc
}

// transformUniforms are the locations every program shares.
type transformUniforms struct {
	model, view, proj int32
}

func (u *transformUniforms) resolve(prog glgl.Program, err *error) {
	uniform(prog, "model", &u.model, err)
	uniform(prog, "view", &u.view, err)
	uniform(prog, "proj", &u.proj, err)
}

func (u *transformUniforms) set(t gfx.Transforms) {
	gl.UniformMatrix4fv(u.model, 1, false, &t.Model[0])
	gl.UniformMatrix4fv(u.view, 1, false, &t.View[0])
	gl.UniformMatrix4fv(u.proj, 1, false, &t.Proj[0])
}

type meshProgram struct {
	prog glgl.Program
	transformUniforms
	fixedColor, lightPositionWorld   int32
	specularExponent, lightingFactor int32
	textureFactor, tex               int32
}

func newMeshProgram() (*meshProgram, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   meshVertexShader,
		Fragment: meshFragmentShader,
	})
	if err != nil {
		return nil, fmt.Errorf("compile mesh program: %w", err)
	}
	p := &meshProgram{prog: prog}
	p.resolve(prog, &err)
	uniform(prog, "fixed_color", &p.fixedColor, &err)
	uniform(prog, "light_position_world", &p.lightPositionWorld, &err)
	uniform(prog, "specular_exponent", &p.specularExponent, &err)
	uniform(prog, "lighting_factor", &p.lightingFactor, &err)
	uniform(prog, "texture_factor", &p.textureFactor, &err)
	uniform(prog, "tex", &p.tex, &err)
	if err != nil {
		prog.Delete()
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	prog.Bind()
	gl.Uniform1i(p.tex, 0)
	gl.Uniform4f(p.fixedColor, 0, 0, 0, 0)
	gl.Uniform1f(p.textureFactor, 0)
	prog.Unbind()
	return p, nil
}

func (p *meshProgram) setLighting(l gfx.Lighting) {
	gl.Uniform1f(p.specularExponent, l.SpecularExponent)
	gl.Uniform3fv(p.lightPositionWorld, 1, &l.LightPositionWorld[0])
	gl.Uniform1f(p.lightingFactor, l.LightingFactor)
}

func (p *meshProgram) setFixedColor(c mgl32.Vec4) {
	gl.Uniform4fv(p.fixedColor, 1, &c[0])
}

type overlayProgram struct {
	prog glgl.Program
	transformUniforms
}

func newOverlayProgram(fragment string) (*overlayProgram, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   overlayVertexShader,
		Fragment: fragment,
	})
	if err != nil {
		return nil, fmt.Errorf("compile overlay program: %w", err)
	}
	p := &overlayProgram{prog: prog}
	p.resolve(prog, &err)
	if err != nil {
		prog.Delete()
		return nil, fmt.Errorf("overlay program: %w", err)
	}
	return p, nil
}
