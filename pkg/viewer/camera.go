package viewer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/plinth/pkg/gfx"
)

// Projection is the view volume a projection matrix was built from, in
// eye space units.
type Projection struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
}

// zoomedEye returns the eye pulled toward (zoom < 1) or pushed away from
// (zoom > 1) the center.
func (c *Core) zoomedEye() mgl32.Vec3 {
	return c.CameraCenter.Add(c.CameraEye.Sub(c.CameraCenter).Mul(c.CameraZoom))
}

// ProjectionBounds returns the view volume for vp. Zoom scales the clip
// distances along with the eye. An orthographic volume is sized to match
// the perspective one at the center distance.
func (c *Core) ProjectionBounds(vp gfx.Viewport) Projection {
	near := c.CameraDNear * c.CameraZoom
	far := c.CameraDFar * c.CameraZoom
	aspect := vp.Width / vp.Height
	halfAngle := math32.Tan(c.CameraViewAngle / 360 * math32.Pi)

	var h float32
	if c.Orthographic {
		h = halfAngle * c.zoomedEye().Sub(c.CameraCenter).Len()
	} else {
		h = halfAngle * near
	}
	w := h * aspect
	return Projection{Left: -w, Right: w, Bottom: -h, Top: h, Near: near, Far: far}
}

// ComputeMatrices recomputes View and Proj for vp.
func (c *Core) ComputeMatrices(vp gfx.Viewport) {
	c.View = mgl32.LookAtV(c.zoomedEye(), c.CameraCenter, c.CameraUp)
	p := c.ProjectionBounds(vp)
	if c.Orthographic {
		c.Proj = mgl32.Ortho(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
	} else {
		c.Proj = mgl32.Frustum(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
	}
}

// ModelMatrix returns the model matrix of an object translated by
// translation: the trackball rotation pivots about the camera center and
// is applied after the global and object translations.
func (c *Core) ModelMatrix(translation mgl32.Vec3) mgl32.Mat4 {
	ctr := c.CameraCenter
	g := c.GlobalTranslation
	return mgl32.Translate3D(ctr[0], ctr[1], ctr[2]).
		Mul4(c.TrackballAngle.Mat4()).
		Mul4(mgl32.Translate3D(-ctr[0], -ctr[1], -ctr[2])).
		Mul4(mgl32.Translate3D(g[0], g[1], g[2])).
		Mul4(mgl32.Translate3D(translation[0], translation[1], translation[2]))
}
