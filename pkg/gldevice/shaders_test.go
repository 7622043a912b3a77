package gldevice

import (
	"strings"
	"testing"
)

func TestShaderSources(t *testing.T) {
	sources := map[string]string{
		"mesh vertex":    meshVertexShader,
		"mesh fragment":  meshFragmentShader,
		"overlay vertex": overlayVertexShader,
		"overlay line":   overlayLineFragmentShader,
		"overlay point":  overlayPointFragmentShader,
	}
	for name, src := range sources {
		if !strings.HasPrefix(src, "#version 460 core") {
			t.Errorf("%s: missing version directive", name)
		}
		if !strings.HasSuffix(src, "\x00") {
			t.Errorf("%s: source not null terminated", name)
		}
	}
	for _, u := range []string{"fixed_color", "light_position_world", "specular_exponent", "lighting_factor", "texture_factor", "tex"} {
		if !strings.Contains(meshFragmentShader, "uniform") || !strings.Contains(meshFragmentShader+meshVertexShader, u) {
			t.Errorf("mesh program does not declare %s", u)
		}
	}
	if !strings.Contains(overlayPointFragmentShader, "discard") {
		t.Error("point shader does not clip to a disc")
	}
}
