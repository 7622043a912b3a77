package viewer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "trackball", cfg.Rotation)
	assert.Equal(t, float32(45), cfg.ViewAngle)
	assert.True(t, cfg.Data.ShowLines)
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Orthographic = true
	cfg.Rotation = "fixed_up"
	cfg.Background = [4]float32{0.1, 0.2, 0.3, 1}
	cfg.Data.ShowLines = false

	b, err := cfg.Marshal()
	require.NoError(t, err)
	got, err := ParseConfig(b)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestParseConfigPartial(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
view_angle = 60.0
[data]
show_faceid = true
`))
	require.NoError(t, err)
	assert.Equal(t, float32(60), cfg.ViewAngle)
	assert.True(t, cfg.Data.ShowFaceID)
	assert.Equal(t, DefaultConfig().Background, cfg.Background, "unset keys keep defaults")
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		invalid bool
	}{
		{"unknown key", `zoom_level = 2.0`, true},
		{"bad angle", `view_angle = 180.0`, true},
		{"far before near", "near = 5.0\nfar = 1.0", true},
		{"bad rotation", `rotation = "orbit"`, true},
		{"zero line width", "[data]\nline_width = 0.0", true},
		{"lighting factor", `lighting_factor = 2.0`, true},
		{"syntax", `view_angle = `, false},
		{"wrong type", `view_angle = "wide"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig), "error: %v", err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plinth.toml")
	require.NoError(t, os.WriteFile(path, []byte("shininess = 10.0\nrotation = \"fixed_up\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, float32(10), cfg.Shininess)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Background = [4]float32{1, 1, 1, 1}
	cfg.Rotation = "fixed_up"
	cfg.Near, cfg.Far = 0.5, 50
	cfg.Data.ShowLines = false
	cfg.Data.FaceBased = true

	c := New()
	c.TrackballAngle = mgl32.QuatRotate(0.5, mgl32.Vec3{0, 0, 1})
	c.ApplyConfig(cfg)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, c.BackgroundColor)
	assert.Equal(t, RotationTwoAxisValuatorFixedUp, c.RotationType())
	assert.InDelta(t, 0, c.TrackballAngle.Rotate(mgl32.Vec3{0, 1, 0})[0], 1e-4, "snapped on entry")
	assert.Equal(t, float32(0.5), c.CameraDNear)

	d := NewData(quadMesh())
	d.Dirty = DirtyNone
	cfg.Data.Apply(d)
	assert.False(t, d.ShowLines)
	assert.True(t, d.FaceBased)
	assert.NotZero(t, d.Dirty&DirtyNormal, "layout change needs an upload")
}
