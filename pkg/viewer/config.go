package viewer

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig wraps every Config.Validate failure.
var ErrInvalidConfig = errors.New("viewer: invalid config")

// Config is the TOML form of the viewer defaults.
//
//	background = [0.3, 0.3, 0.5, 1.0]
//	view_angle = 45.0
//	rotation = "trackball"
//
//	[data]
//	show_lines = false
type Config struct {
	Background       [4]float32 `toml:"background"`
	LineColor        [4]float32 `toml:"line_color"`
	Shininess        float32    `toml:"shininess"`
	LightPosition    [3]float32 `toml:"light_position"`
	LightingFactor   float32    `toml:"lighting_factor"`
	OverlayLineWidth float32    `toml:"overlay_line_width"`

	Orthographic bool    `toml:"orthographic"`
	ViewAngle    float32 `toml:"view_angle"`
	Near         float32 `toml:"near"`
	Far          float32 `toml:"far"`
	Rotation     string  `toml:"rotation"` // "trackball" or "fixed_up"

	AnimationMaxFPS float64 `toml:"animation_max_fps"`

	Data DataConfig `toml:"data"`
}

// DataConfig holds the display flags applied to every loaded object.
type DataConfig struct {
	ShowFaces        bool    `toml:"show_faces"`
	ShowLines        bool    `toml:"show_lines"`
	ShowTexture      bool    `toml:"show_texture"`
	ShowVertID       bool    `toml:"show_vertid"`
	ShowFaceID       bool    `toml:"show_faceid"`
	ShowOverlay      bool    `toml:"show_overlay"`
	ShowOverlayDepth bool    `toml:"show_overlay_depth"`
	InvertNormals    bool    `toml:"invert_normals"`
	FaceBased        bool    `toml:"face_based"`
	LineWidth        float32 `toml:"line_width"`
	PointSize        float32 `toml:"point_size"`
}

// DefaultConfig returns the settings of New and NewData.
func DefaultConfig() Config {
	c := New()
	d := NewData(nil)
	return Config{
		Background:       c.BackgroundColor,
		LineColor:        c.LineColor,
		Shininess:        c.Shininess,
		LightPosition:    c.LightPosition,
		LightingFactor:   c.LightingFactor,
		OverlayLineWidth: c.OverlayLineWidth,
		Orthographic:     c.Orthographic,
		ViewAngle:        c.CameraViewAngle,
		Near:             c.CameraDNear,
		Far:              c.CameraDFar,
		Rotation:         c.rotationType.String(),
		AnimationMaxFPS:  c.AnimationMaxFPS,
		Data: DataConfig{
			ShowFaces:        d.ShowFaces,
			ShowLines:        d.ShowLines,
			ShowTexture:      d.ShowTexture,
			ShowVertID:       d.ShowVertID,
			ShowFaceID:       d.ShowFaceID,
			ShowOverlay:      d.ShowOverlay,
			ShowOverlayDepth: d.ShowOverlayDepth,
			InvertNormals:    d.InvertNormals,
			FaceBased:        d.FaceBased,
			LineWidth:        d.LineWidth,
			PointSize:        d.PointSize,
		},
	}
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
// Unknown keys are an error.
func ParseConfig(b []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(b)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config as TOML.
func (cfg Config) Marshal() ([]byte, error) {
	return toml.Marshal(cfg)
}

func parseRotation(s string) (RotationType, bool) {
	switch s {
	case RotationTrackball.String():
		return RotationTrackball, true
	case RotationTwoAxisValuatorFixedUp.String():
		return RotationTwoAxisValuatorFixedUp, true
	}
	return 0, false
}

// Validate reports settings no camera can be built from.
func (cfg Config) Validate() error {
	switch {
	case !(cfg.ViewAngle > 0 && cfg.ViewAngle < 180):
		return fmt.Errorf("%w: view_angle %v outside (0, 180)", ErrInvalidConfig, cfg.ViewAngle)
	case cfg.Near < 0 || (cfg.Near == 0 && !cfg.Orthographic):
		return fmt.Errorf("%w: near %v", ErrInvalidConfig, cfg.Near)
	case !(cfg.Far > cfg.Near):
		return fmt.Errorf("%w: far %v not beyond near %v", ErrInvalidConfig, cfg.Far, cfg.Near)
	case cfg.Shininess < 0:
		return fmt.Errorf("%w: shininess %v", ErrInvalidConfig, cfg.Shininess)
	case cfg.LightingFactor < 0 || cfg.LightingFactor > 1:
		return fmt.Errorf("%w: lighting_factor %v outside [0, 1]", ErrInvalidConfig, cfg.LightingFactor)
	case cfg.AnimationMaxFPS <= 0:
		return fmt.Errorf("%w: animation_max_fps %v", ErrInvalidConfig, cfg.AnimationMaxFPS)
	case cfg.Data.LineWidth <= 0 || cfg.Data.PointSize <= 0 || cfg.OverlayLineWidth <= 0:
		return fmt.Errorf("%w: line and point sizes must be positive", ErrInvalidConfig)
	}
	if _, ok := parseRotation(cfg.Rotation); !ok {
		return fmt.Errorf("%w: rotation %q", ErrInvalidConfig, cfg.Rotation)
	}
	return nil
}

// ApplyConfig copies the camera and renderer settings of cfg into c. cfg
// is assumed valid.
func (c *Core) ApplyConfig(cfg Config) {
	c.BackgroundColor = mgl32.Vec4(cfg.Background)
	c.LineColor = mgl32.Vec4(cfg.LineColor)
	c.Shininess = cfg.Shininess
	c.LightPosition = mgl32.Vec3(cfg.LightPosition)
	c.LightingFactor = cfg.LightingFactor
	c.OverlayLineWidth = cfg.OverlayLineWidth
	c.Orthographic = cfg.Orthographic
	c.CameraViewAngle = cfg.ViewAngle
	c.CameraDNear = cfg.Near
	c.CameraDFar = cfg.Far
	c.AnimationMaxFPS = cfg.AnimationMaxFPS
	if rt, ok := parseRotation(cfg.Rotation); ok {
		c.SetRotationType(rt)
	}
}

// Apply copies the display flags into d.
func (dc DataConfig) Apply(d *Data) {
	d.ShowFaces = dc.ShowFaces
	d.ShowLines = dc.ShowLines
	d.ShowTexture = dc.ShowTexture
	d.ShowVertID = dc.ShowVertID
	d.ShowFaceID = dc.ShowFaceID
	d.ShowOverlay = dc.ShowOverlay
	d.ShowOverlayDepth = dc.ShowOverlayDepth
	if d.InvertNormals != dc.InvertNormals || d.FaceBased != dc.FaceBased {
		d.Dirty |= DirtyNormal | DirtyPosition
	}
	d.InvertNormals = dc.InvertNormals
	d.FaceBased = dc.FaceBased
	d.LineWidth = dc.LineWidth
	d.PointSize = dc.PointSize
}
