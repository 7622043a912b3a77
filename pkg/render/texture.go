package render

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// texture is an uploaded image stored the way OpenGL holds it after
// upload: rows bottom to top, so row 0 is v = 0. Coordinates wrap with
// repeat on both axes.
type texture struct {
	width, height int
	texels        []mgl32.Vec4
	// nearest selects nearest texel sampling instead of bilinear.
	nearest bool
}

// newTexture converts img to straight alpha texels.
func newTexture(img image.Image) *texture {
	b := img.Bounds()
	t := &texture{
		width:  b.Dx(),
		height: b.Dy(),
		texels: make([]mgl32.Vec4, b.Dx()*b.Dy()),
	}
	for y := range t.height {
		row := t.height - 1 - y
		for x := range t.width {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			t.texels[row*t.width+x] = mgl32.Vec4{
				float32(c.R) / 255,
				float32(c.G) / 255,
				float32(c.B) / 255,
				float32(c.A) / 255,
			}
		}
	}
	return t
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func (t *texture) at(x, y int) mgl32.Vec4 {
	return t.texels[wrap(y, t.height)*t.width+wrap(x, t.width)]
}

// sample returns the color at texture coordinates (u, v).
func (t *texture) sample(u, v float32) mgl32.Vec4 {
	if t.width == 0 || t.height == 0 {
		return mgl32.Vec4{}
	}
	if t.nearest {
		return t.at(int(math32.Floor(u*float32(t.width))), int(math32.Floor(v*float32(t.height))))
	}
	fx := u*float32(t.width) - 0.5
	fy := v*float32(t.height) - 0.5
	x0, y0 := math32.Floor(fx), math32.Floor(fy)
	tx, ty := fx-x0, fy-y0
	x, y := int(x0), int(y0)
	bottom := lerp4(t.at(x, y), t.at(x+1, y), tx)
	top := lerp4(t.at(x, y+1), t.at(x+1, y+1), tx)
	return lerp4(bottom, top, ty)
}

func lerp4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}
