package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/plinth/pkg/gfx"
	"github.com/taigrr/plinth/pkg/math3d"
	"github.com/taigrr/plinth/pkg/render"
)

func TestDrawInvisibleIssuesNoCalls(t *testing.T) {
	dev := &spyDevice{}
	s := NewMeshState(dev)
	dev.calls = nil

	d := NewData(quadMesh())
	d.Visible = false
	New().Draw(dev, d, s, true)

	assert.Empty(t, dev.calls)
	assert.Equal(t, DirtyAll, d.Dirty, "upload deferred until visible")
}

func TestDrawCallOrder(t *testing.T) {
	dev := &spyDevice{}
	c := New(WithTextRenderer(spyText{dev}))
	c.Viewport = gfx.Viewport{Width: 64, Height: 32}
	c.OverlayLineWidth = 3

	d := NewData(quadMesh())
	d.ShowTexture = true
	d.ShowVertID = true
	d.ShowFaceID = true
	d.ShowOverlayDepth = false
	d.AddLines(Line{From: math3d.V3(0, 0, 0), To: math3d.V3(1, 0, 0), Color: mgl32.Vec4{1, 0, 0, 1}})
	d.AddPoints(Point{Pos: math3d.V3(0, 1, 0), Color: mgl32.Vec4{0, 1, 0, 1}})
	d.AddLabel(math3d.V3(0, 0, 1), "tip")
	s := NewMeshState(dev)
	dev.calls = nil

	c.Draw(dev, d, s, true)

	want := []string{
		"SetDepthTest(true)",
		"Upload",
		"BindMesh",
		"SetViewport(0,0,64,32)",
		"SetTransforms",
		"SetLighting",
		"SetFixedColor([0 0 0 0])",
		"SetTextureFactor(1)",
		"DrawMesh(true)",
		"SetTextureFactor(0)",
		"SetLineWidth(0.5)",
		"SetFixedColor([0 0 0 1])",
		"DrawMesh(false)",
		"SetFixedColor([0 0 0 0])",
		"BeginDraw(2.828427)",
		"DrawText(0)", "DrawText(1)", "DrawText(2)", "DrawText(3)",
		"EndDraw",
		"BeginDraw(2.828427)",
		"DrawText(0)", "DrawText(1)",
		"EndDraw",
		"SetDepthTest(false)",
		"BindOverlayLines",
		"SetTransforms",
		"SetLineWidth(3)",
		"DrawOverlayLines",
		"SetLineWidth(0.5)",
		"BindOverlayPoints",
		"SetTransforms",
		"SetPointSize(30)",
		"DrawOverlayPoints",
		"BeginDraw(2.828427)",
		"DrawText(tip)",
		"EndDraw",
		"SetDepthTest(true)",
	}
	assert.Equal(t, want, dev.calls)
	assert.Equal(t, DirtyNone, d.Dirty)
	assert.Equal(t, c.ModelMatrix(d.ModelTranslation), d.Model)
}

func TestDrawWithoutMeshSkipsMeshPasses(t *testing.T) {
	dev := &spyDevice{}
	c := New()
	d := NewData(nil)
	s := NewMeshState(dev)
	dev.calls = nil

	c.Draw(dev, d, s, false)

	assert.NotContains(t, dev.calls, "DrawMesh(true)")
	assert.NotContains(t, dev.calls, "DrawOverlayLines")
	assert.Equal(t, "SetDepthTest(true)", dev.calls[len(dev.calls)-1])
}

func TestDrawUploadsOnlyWhenDirty(t *testing.T) {
	dev := render.NewDevice(32, 32)
	c := New()
	c.Viewport = dev.Viewport()
	d := NewData(quadMesh())
	s := NewMeshState(dev)

	c.Draw(dev, d, s, true)
	c.Draw(dev, d, s, true)
	assert.Equal(t, 1, dev.Stats.Uploads)

	d.AddPoints(Point{Pos: math3d.V3(0, 0, 0), Color: mgl32.Vec4{1, 1, 1, 1}})
	c.Draw(dev, d, s, false)
	assert.Equal(t, 2, dev.Stats.Uploads)
	assert.Equal(t, 1, dev.Stats.Points)
}

func TestDrawKeepsMatricesWithoutUpdate(t *testing.T) {
	dev := &spyDevice{}
	c := New()
	c.Viewport = gfx.Viewport{Width: 10, Height: 10}
	d := NewData(quadMesh())
	s := NewMeshState(dev)

	c.Draw(dev, d, s, false)
	assert.Equal(t, mgl32.Ident4(), c.View)
	assert.Equal(t, mgl32.Ident4(), d.Model)

	d.ModelTranslation = mgl32.Vec3{1, 0, 0}
	c.Draw(dev, d, s, true)
	assert.Equal(t, mgl32.Translate3D(1, 0, 0), d.Model)
	assert.NotEqual(t, mgl32.Ident4(), c.Proj)
}

func TestDrawLabelsThroughTextRenderer(t *testing.T) {
	dev := render.NewDevice(64, 64)
	text, err := render.NewTextRenderer(dev, 12)
	require.NoError(t, err)
	defer text.Close()

	c := New(WithTextRenderer(text))
	c.Viewport = dev.Viewport()
	d := NewData(quadMesh())
	d.ShowVertID = true
	d.ShowFaceID = true
	d.AddLabel(math3d.V3(0, 0, 0), "origin")
	s := NewMeshState(dev)
	c.AlignCameraCenterData(d)

	c.ClearFramebuffers(dev)
	c.Draw(dev, d, s, true)

	assert.Equal(t, 4+2+1, text.Drawn)
}

func BenchmarkDraw(b *testing.B) {
	dev := render.NewDevice(160, 96)
	c := New()
	c.Viewport = dev.Viewport()
	d := NewData(quadMesh())
	s := NewMeshState(dev)
	c.AlignCameraCenterData(d)

	for b.Loop() {
		c.ClearFramebuffers(dev)
		c.Draw(dev, d, s, true)
	}
}
