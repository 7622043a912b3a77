// Package viewer is the camera and frame rendering core of plinth.
//
// A Core holds the camera model and renderer settings. It fits the camera
// to loaded geometry, derives the view, projection and per-object model
// matrices, and issues the draw calls for each Data object against an
// explicit gfx.Device. DrawBuffer and Capture render off-screen and read
// the frame back into separate R, G, B and A planes.
//
// A Core and the Device it draws with are not safe for concurrent use.
package viewer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/plinth/pkg/gfx"
)

// RotationType selects how pointer drags rotate the scene.
type RotationType int

const (
	// RotationTrackball rotates freely about the camera center.
	RotationTrackball RotationType = iota
	// RotationTwoAxisValuatorFixedUp yaws about the model's up axis and
	// pitches about the screen x axis, so the model never rolls.
	RotationTwoAxisValuatorFixedUp
)

func (r RotationType) String() string {
	switch r {
	case RotationTrackball:
		return "trackball"
	case RotationTwoAxisValuatorFixedUp:
		return "fixed_up"
	default:
		return fmt.Sprintf("RotationType(%d)", int(r))
	}
}

// ErrInvalidCamera is returned by Core.Validate.
var ErrInvalidCamera = errors.New("viewer: invalid camera")

// Core is the camera state and renderer settings shared by every object
// drawn in one view.
type Core struct {
	// Colors
	BackgroundColor mgl32.Vec4
	LineColor       mgl32.Vec4

	// Lighting
	Shininess      float32
	LightPosition  mgl32.Vec3
	LightingFactor float32

	OverlayLineWidth float32

	// Scene rotation about the camera center, and a translation applied
	// to every object.
	TrackballAngle    mgl32.Quat
	GlobalTranslation mgl32.Vec3
	rotationType      RotationType

	// Camera
	CameraZoom      float32
	Orthographic    bool
	CameraViewAngle float32 // vertical field of view, degrees
	CameraDNear     float32
	CameraDFar      float32
	CameraEye       mgl32.Vec3
	CameraCenter    mgl32.Vec3
	CameraUp        mgl32.Vec3

	// Viewport is the draw rectangle, bottom-left origin.
	Viewport gfx.Viewport
	View     mgl32.Mat4
	Proj     mgl32.Mat4

	IsAnimating     bool
	AnimationMaxFPS float64

	log  *slog.Logger
	text gfx.TextRenderer
}

// Option configures a Core.
type Option func(*Core)

// WithLogger sets the logger used for upload and capture events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Core) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTextRenderer enables vertex, face and overlay labels. Without it
// labels are skipped.
func WithTextRenderer(t gfx.TextRenderer) Option {
	return func(c *Core) {
		if t != nil {
			c.text = t
		}
	}
}

// New returns a Core with the default camera: perspective, 45 degree field
// of view, eye at (0, 0, 5) looking at the origin with +Y up.
func New(opts ...Option) *Core {
	c := &Core{
		BackgroundColor: mgl32.Vec4{0.3, 0.3, 0.5, 1},
		LineColor:       mgl32.Vec4{0, 0, 0, 1},

		Shininess:      35,
		LightPosition:  mgl32.Vec3{0, -0.3, -5000},
		LightingFactor: 1,

		OverlayLineWidth: 1,

		TrackballAngle: mgl32.QuatIdent(),
		rotationType:   RotationTrackball,

		CameraZoom:      1,
		CameraViewAngle: 45,
		CameraDNear:     1,
		CameraDFar:      100,
		CameraEye:       mgl32.Vec3{0, 0, 5},
		CameraUp:        mgl32.Vec3{0, 1, 0},

		View: mgl32.Ident4(),
		Proj: mgl32.Ident4(),

		AnimationMaxFPS: 30,

		log:  slog.Default(),
		text: gfx.NopText{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Logger returns the core's logger.
func (c *Core) Logger() *slog.Logger { return c.log }

// SetCameraPosition moves the camera so that pos becomes the center,
// keeping the viewing direction.
func (c *Core) SetCameraPosition(pos mgl32.Vec3) {
	dir := c.CameraCenter.Sub(c.CameraEye)
	c.CameraCenter = pos
	c.CameraEye = pos.Sub(dir)
}

// Validate checks the camera invariants. Rendering never calls it; a core
// that fails it draws garbage rather than failing.
func (c *Core) Validate() error {
	dir := c.CameraCenter.Sub(c.CameraEye)
	switch {
	case dir.Len() == 0:
		return fmt.Errorf("%w: eye equals center %v", ErrInvalidCamera, c.CameraEye)
	case dir.Cross(c.CameraUp).Len() <= 1e-6*dir.Len()*c.CameraUp.Len():
		return fmt.Errorf("%w: up %v parallel to view direction", ErrInvalidCamera, c.CameraUp)
	case !(c.CameraZoom > 0):
		return fmt.Errorf("%w: zoom %v", ErrInvalidCamera, c.CameraZoom)
	case !(c.CameraDNear >= 0) || (c.CameraDNear == 0 && !c.Orthographic) || !(c.CameraDFar > c.CameraDNear):
		return fmt.Errorf("%w: clip range [%v, %v]", ErrInvalidCamera, c.CameraDNear, c.CameraDFar)
	}
	return nil
}
