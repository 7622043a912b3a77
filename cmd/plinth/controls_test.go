package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/taigrr/plinth/pkg/gfx"
	"github.com/taigrr/plinth/pkg/math3d"
	"github.com/taigrr/plinth/pkg/models"
	"github.com/taigrr/plinth/pkg/viewer"
)

func testControls() *controls {
	core := viewer.New()
	core.Viewport = gfx.Viewport{Width: 200, Height: 200}
	m := models.NewMesh("tri")
	m.Vertices = []models.MeshVertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0, 1, 0)},
	}
	m.Faces = []models.Face{{V: [3]int{0, 1, 2}, Material: -1}}
	return newControls(core, viewer.NewData(m), 60)
}

func TestDragRotates(t *testing.T) {
	c := testControls()
	c.press(100, 100)
	c.move(150, 100)
	assert.NotEqual(t, mgl32.QuatIdent(), c.core.TrackballAngle)
	assert.InDelta(t, 1, c.core.TrackballAngle.Len(), 1e-5)

	c.release()
	c.move(10, 10)
	rot := c.core.TrackballAngle
	c.move(20, 20)
	assert.Equal(t, rot, c.core.TrackballAngle, "moves without a button must not rotate")
}

func TestSpinDecays(t *testing.T) {
	c := testControls()
	c.press(100, 100)
	c.move(110, 100)
	c.release()

	moved := 0
	for range 600 {
		if c.tick() {
			moved++
		}
	}
	assert.Positive(t, moved)
	assert.False(t, c.tick(), "spin should settle")
}

func TestScrollZoom(t *testing.T) {
	c := testControls()
	c.scroll(1)
	assert.InDelta(t, 1.05, c.core.CameraZoom, 1e-6)
	for range 200 {
		c.scroll(-1)
	}
	assert.InDelta(t, minZoom, c.core.CameraZoom, 1e-6)
}

func TestKeys(t *testing.T) {
	tests := []struct {
		key   rune
		check func(c *controls) bool
	}{
		{'f', func(c *controls) bool { return !c.data.ShowFaces }},
		{'l', func(c *controls) bool { return !c.data.ShowLines }},
		{'t', func(c *controls) bool { return c.data.ShowTexture }},
		{'p', func(c *controls) bool { return c.core.Orthographic }},
		{'u', func(c *controls) bool { return c.core.RotationType() == viewer.RotationTwoAxisValuatorFixedUp }},
		{'i', func(c *controls) bool { return c.data.InvertNormals && c.data.Dirty&viewer.DirtyNormal != 0 }},
		{'q', func(c *controls) bool { return c.quit }},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			c := testControls()
			c.data.Dirty = viewer.DirtyNone
			c.key(tt.key)
			assert.True(t, tt.check(c))
		})
	}
}

func TestReset(t *testing.T) {
	c := testControls()
	c.press(100, 100)
	c.move(180, 40)
	c.release()
	c.scroll(1)
	c.key('r')
	assert.Equal(t, mgl32.QuatIdent(), c.core.TrackballAngle)
	assert.Equal(t, float32(1), c.core.CameraZoom)
	assert.False(t, c.tick())
}

func TestAddBoundsOverlay(t *testing.T) {
	c := testControls()
	addBoundsOverlay(c.data)
	assert.Len(t, c.data.Lines, 12)
	assert.Len(t, c.data.Points, 8)
	assert.Len(t, c.data.Labels, 1)
}
