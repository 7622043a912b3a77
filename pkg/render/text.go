package render

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/freetype/truetype"
	"github.com/taigrr/plinth/pkg/gfx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// labelOffset scales the nudge along the surface normal, relative to the
// object scale.
const labelOffset = 0.005

// TextRenderer draws labels into a Device's bound target with the Go
// regular font. Labels are centered on their anchor and drawn on top of
// the scene.
type TextRenderer struct {
	dev  *Device
	face font.Face

	mvp   mgl32.Mat4
	scale float32
	// Drawn counts labels that landed in front of the camera.
	Drawn int
}

var _ gfx.TextRenderer = (*TextRenderer)(nil)

// NewTextRenderer creates a label renderer with size in pixels.
func NewTextRenderer(dev *Device, size float64) (*TextRenderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &TextRenderer{dev: dev, face: face}, nil
}

func (t *TextRenderer) BeginDraw(viewModel, proj mgl32.Mat4, _ gfx.Viewport, objectScale float32) {
	t.mvp = proj.Mul4(viewModel)
	t.scale = objectScale
}

func (t *TextRenderer) DrawText(pos, normal mgl32.Vec3, text string, c mgl32.Vec4) {
	p := pos.Add(normal.Mul(labelOffset * t.scale))
	clip := t.mvp.Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return
	}
	w := t.dev.toWindow(varying{clip: clip})

	d := &font.Drawer{
		Dst:  t.dev.fb,
		Src:  image.NewUniform(toRGBA(c)),
		Face: t.face,
	}
	width := d.MeasureString(text)
	ascent := t.face.Metrics().Ascent
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(w.x*64) - width/2,
		Y: fixed.Int26_6(w.y*64) + ascent/2,
	}
	d.DrawString(text)
	t.Drawn++
}

func (t *TextRenderer) EndDraw() {}

// Close releases the font face.
func (t *TextRenderer) Close() error {
	return t.face.Close()
}
