package viewer

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/plinth/pkg/gfx"
)

// lighting returns the mesh program's light uniforms. The light is
// placed at the negated light position.
func (c *Core) lighting() gfx.Lighting {
	return gfx.Lighting{
		SpecularExponent:   c.Shininess,
		LightPositionWorld: c.LightPosition.Mul(-1),
		LightingFactor:     c.LightingFactor,
	}
}

// ClearFramebuffers clears the bound target to the opaque background.
func (c *Core) ClearFramebuffers(dev gfx.Device) {
	bg := c.BackgroundColor
	bg[3] = 1
	dev.Clear(bg)
}

// Draw renders d with s on dev, into the current Viewport. Invisible
// data is skipped without touching the device. Pending edits are uploaded
// first. With updateMatrices, View, Proj and d.Model are recomputed;
// otherwise the last ones are reused.
//
// Faces, wireframe and id labels come first, then overlay lines, points
// and labels under their own depth test setting. Depth testing is left
// enabled.
func (c *Core) Draw(dev gfx.Device, d *Data, s *MeshState, updateMatrices bool) {
	if !d.Visible {
		return
	}
	dev.SetDepthTest(d.DepthTest)

	if d.Dirty != DirtyNone {
		s.Upload(d)
		c.log.Debug("uploaded mesh", "dirty", uint32(d.Dirty), "vertices", vertexCount(d))
		d.Dirty = DirtyNone
	}
	dev.BindMesh(s.buf)

	dev.SetViewport(c.Viewport)

	if updateMatrices {
		c.ComputeMatrices(c.Viewport)
		d.Model = c.ModelMatrix(d.ModelTranslation)
	}

	xf := gfx.Transforms{Model: d.Model, View: c.View, Proj: c.Proj}
	dev.SetTransforms(xf)
	dev.SetLighting(c.lighting())
	dev.SetFixedColor(mgl32.Vec4{})

	if d.hasVertices() {
		if d.ShowFaces {
			if d.ShowTexture {
				dev.SetTextureFactor(1)
			} else {
				dev.SetTextureFactor(0)
			}
			dev.DrawMesh(true)
			dev.SetTextureFactor(0)
		}

		if d.ShowLines {
			dev.SetLineWidth(d.LineWidth)
			lc := c.LineColor
			lc[3] = 1
			dev.SetFixedColor(lc)
			dev.DrawMesh(false)
			dev.SetFixedColor(mgl32.Vec4{})
		}

		if d.ShowVertID {
			c.text.BeginDraw(c.View.Mul4(d.Model), c.Proj, c.Viewport, d.ObjectScale)
			for i, v := range d.Mesh.Vertices {
				c.text.DrawText(v.Position.Vec32(), v.Normal.Vec32(), strconv.Itoa(i), d.LabelColor)
			}
			c.text.EndDraw()
		}

		if d.ShowFaceID {
			c.text.BeginDraw(c.View.Mul4(d.Model), c.Proj, c.Viewport, d.ObjectScale)
			for i := range d.Mesh.Faces {
				c.text.DrawText(d.Mesh.FaceCentroid(i).Vec32(), d.Mesh.FaceNormal(i).Vec32(), strconv.Itoa(i), d.LabelColor)
			}
			c.text.EndDraw()
		}
	}

	if d.ShowOverlay {
		dev.SetDepthTest(d.ShowOverlayDepth)

		if len(d.Lines) > 0 {
			dev.BindOverlayLines(s.buf)
			dev.SetTransforms(xf)
			dev.SetLineWidth(c.OverlayLineWidth)
			dev.DrawOverlayLines()
			dev.SetLineWidth(d.LineWidth)
		}

		if len(d.Points) > 0 {
			dev.BindOverlayPoints(s.buf)
			dev.SetTransforms(xf)
			dev.SetPointSize(d.PointSize)
			dev.DrawOverlayPoints()
		}

		if len(d.Labels) > 0 {
			c.text.BeginDraw(c.View.Mul4(d.Model), c.Proj, c.Viewport, d.ObjectScale)
			for _, l := range d.Labels {
				col := l.Color
				if col == (mgl32.Vec4{}) {
					col = d.LabelColor
				}
				c.text.DrawText(l.Pos.Vec32(), mgl32.Vec3{}, l.Text, col)
			}
			c.text.EndDraw()
		}

		dev.SetDepthTest(true)
	}
}

func vertexCount(d *Data) int {
	if d.Mesh == nil {
		return 0
	}
	return len(d.Mesh.Vertices)
}
