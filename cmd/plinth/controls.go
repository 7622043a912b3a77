package main

import (
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/plinth/pkg/viewer"
)

// minZoom bounds scroll zoom from below.
const minZoom = 0.1

// spinAxis is a drag velocity in pixels per frame that a critically damped
// spring pulls back to zero.
type spinAxis struct {
	Velocity float64
	accel    float64
	spring   harmonica.Spring
}

func newSpinAxis(fps int) spinAxis {
	return spinAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *spinAxis) update() {
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

// controls maps pointer and key input onto a Core and the displayed Data.
// Coordinates are framebuffer pixels with a top-left origin.
type controls struct {
	core *viewer.Core
	data *viewer.Data
	fps  int

	dragging     bool
	down         mgl32.Quat
	downX, downY float32
	lastX, lastY float32
	spinX, spinY spinAxis
	home         mgl32.Quat
	homeZoom     float32
	quit         bool
}

func newControls(core *viewer.Core, data *viewer.Data, fps int) *controls {
	return &controls{
		core:     core,
		data:     data,
		fps:      fps,
		spinX:    newSpinAxis(fps),
		spinY:    newSpinAxis(fps),
		home:     core.TrackballAngle,
		homeZoom: core.CameraZoom,
	}
}

func (c *controls) press(x, y float32) {
	c.dragging = true
	c.down = c.core.TrackballAngle
	c.downX, c.downY = x, y
	c.lastX, c.lastY = x, y
	c.spinX.Velocity, c.spinY.Velocity = 0, 0
}

func (c *controls) release() {
	c.dragging = false
}

func (c *controls) move(x, y float32) {
	if !c.dragging {
		return
	}
	c.core.Rotate(c.down, c.downX, c.downY, x, y)
	c.spinX.Velocity = float64(x - c.lastX)
	c.spinY.Velocity = float64(y - c.lastY)
	c.lastX, c.lastY = x, y
}

// tick advances inertia by one frame. It reports whether the view moved.
func (c *controls) tick() bool {
	if c.dragging {
		return false
	}
	vx, vy := float32(c.spinX.Velocity), float32(c.spinY.Velocity)
	c.spinX.update()
	c.spinY.update()
	if vx*vx+vy*vy < 1e-4 {
		return false
	}
	cx, cy := c.core.Viewport.Width/2, c.core.Viewport.Height/2
	c.core.Rotate(c.core.TrackballAngle, cx, cy, cx+vx, cy+vy)
	return true
}

func (c *controls) scroll(dy float32) {
	mult := float32(1.05)
	if dy < 0 {
		mult = 0.95
	}
	c.core.CameraZoom = max(c.core.CameraZoom*mult, minZoom)
}

func (c *controls) reset() {
	c.core.TrackballAngle = c.home
	c.core.CameraZoom = c.homeZoom
	c.spinX, c.spinY = newSpinAxis(c.fps), newSpinAxis(c.fps)
}

// key applies a single key command.
func (c *controls) key(k rune) {
	d := c.data
	switch k {
	case 'q':
		c.quit = true
	case 'r':
		c.reset()
	case 'f':
		d.ShowFaces = !d.ShowFaces
	case 'l':
		d.ShowLines = !d.ShowLines
	case 't':
		d.ShowTexture = !d.ShowTexture
	case 'o':
		d.ShowOverlay = !d.ShowOverlay
	case 'v':
		d.ShowVertID = !d.ShowVertID
	case 'n':
		d.ShowFaceID = !d.ShowFaceID
	case 'i':
		d.InvertNormals = !d.InvertNormals
		d.Dirty |= viewer.DirtyNormal
	case 'b':
		d.FaceBased = !d.FaceBased
		d.Dirty |= viewer.DirtyMesh
	case 'p':
		c.core.Orthographic = !c.core.Orthographic
	case 'u':
		if c.core.RotationType() == viewer.RotationTrackball {
			c.core.SetRotationType(viewer.RotationTwoAxisValuatorFixedUp)
		} else {
			c.core.SetRotationType(viewer.RotationTrackball)
		}
	case 's':
		c.core.TrackballAngle = viewer.SnapToFixedUp(c.core.TrackballAngle)
	case '+', '=':
		c.scroll(1)
	case '-', '_':
		c.scroll(-1)
	}
}

const keyHelp = `  Mouse drag  - Rotate (trackball or fixed up)
  Scroll +/-  - Zoom
  F           - Toggle faces
  L           - Toggle wireframe
  T           - Toggle texture
  O           - Toggle overlays
  V / N       - Toggle vertex / face ids
  I           - Invert normals
  B           - Toggle face based shading
  P           - Toggle orthographic
  U           - Toggle fixed up rotation
  S           - Snap to fixed up
  R           - Reset view
  Q / Esc     - Quit
`
