package viewer

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/plinth/pkg/gfx"
	"github.com/taigrr/plinth/pkg/math3d"
	"github.com/taigrr/plinth/pkg/models"
)

// Dirty marks which parts of a Data changed since the last upload.
type Dirty uint32

const (
	DirtyNone     Dirty = 0
	DirtyPosition Dirty = 1 << (iota - 1)
	DirtyUV
	DirtyNormal
	DirtyAmbient
	DirtyDiffuse
	DirtySpecular
	DirtyTexture
	DirtyFace
	DirtyOverlayLines
	DirtyOverlayPoints

	DirtyMesh = DirtyPosition | DirtyUV | DirtyNormal | DirtyAmbient |
		DirtyDiffuse | DirtySpecular | DirtyTexture | DirtyFace
	DirtyAll = DirtyMesh | DirtyOverlayLines | DirtyOverlayPoints
)

// DefaultDiffuse is the surface color of faces without a material.
var DefaultDiffuse = mgl32.Vec4{1, 228.0 / 255, 58.0 / 255, 1}

// Line is an overlay segment.
type Line struct {
	From, To math3d.Vec3
	Color    mgl32.Vec4
}

// Point is an overlay point.
type Point struct {
	Pos   math3d.Vec3
	Color mgl32.Vec4
}

// Label is overlay text anchored at a model space point. A zero Color
// uses the owning Data's LabelColor.
type Label struct {
	Pos   math3d.Vec3
	Text  string
	Color mgl32.Vec4
}

// Data is one renderable object: a mesh, its display flags and its
// overlays.
type Data struct {
	Mesh *models.Mesh

	Visible          bool
	DepthTest        bool
	ShowFaces        bool
	ShowLines        bool
	ShowTexture      bool
	ShowVertID       bool
	ShowFaceID       bool
	ShowOverlay      bool
	ShowOverlayDepth bool
	InvertNormals    bool
	// FaceBased shades every face flat with its own normal instead of
	// sharing vertex normals.
	FaceBased bool

	LineWidth  float32
	PointSize  float32
	LabelColor mgl32.Vec4
	// ObjectScale is the mesh bounding box diagonal; labels are offset
	// from the surface relative to it.
	ObjectScale float32

	ModelTranslation mgl32.Vec3
	// Model is recomputed by Core.Draw when matrices are updated.
	Model mgl32.Mat4

	Lines  []Line
	Points []Point
	Labels []Label

	Dirty Dirty
}

// NewData returns visible Data showing faces and wireframe of m, marked
// dirty so the first draw uploads it. m may be nil.
func NewData(m *models.Mesh) *Data {
	d := &Data{
		Visible:          true,
		DepthTest:        true,
		ShowFaces:        true,
		ShowLines:        true,
		ShowOverlay:      true,
		ShowOverlayDepth: true,
		LineWidth:        0.5,
		PointSize:        30,
		LabelColor:       mgl32.Vec4{0, 0, 0.04, 1},
		Model:            mgl32.Ident4(),
	}
	d.SetMesh(m)
	return d
}

// SetMesh replaces the mesh and marks everything dirty.
func (d *Data) SetMesh(m *models.Mesh) {
	d.Mesh = m
	d.ObjectScale = 0
	if m != nil && len(m.Vertices) > 0 {
		m.CalculateBounds()
		d.ObjectScale = float32(m.Bounds.Size().Len())
	}
	d.Dirty |= DirtyAll
}

// AddLines appends overlay segments.
func (d *Data) AddLines(lines ...Line) {
	d.Lines = append(d.Lines, lines...)
	d.Dirty |= DirtyOverlayLines
}

// AddPoints appends overlay points.
func (d *Data) AddPoints(points ...Point) {
	d.Points = append(d.Points, points...)
	d.Dirty |= DirtyOverlayPoints
}

// AddLabel appends an overlay label. Labels are drawn from Data each frame
// and need no upload.
func (d *Data) AddLabel(pos math3d.Vec3, text string) {
	d.Labels = append(d.Labels, Label{Pos: pos, Text: text})
}

// ClearOverlays removes every overlay line, point and label.
func (d *Data) ClearOverlays() {
	d.Lines, d.Points, d.Labels = nil, nil, nil
	d.Dirty |= DirtyOverlayLines | DirtyOverlayPoints
}

func (d *Data) hasVertices() bool {
	return d.Mesh != nil && len(d.Mesh.Vertices) > 0
}

// BuildGeometry lays out d as the vertex streams a device uploads.
//
// Per vertex layouts share mesh vertices; a vertex used by faces of
// different materials takes the color of the last one. Face based layouts
// give every face three vertices of its own carrying the face normal.
// Ambient is a tenth of the diffuse color and specular a fixed gray.
func BuildGeometry(d *Data) *gfx.Geometry {
	g := &gfx.Geometry{}
	if m := d.Mesh; m != nil && len(m.Vertices) > 0 {
		if d.FaceBased {
			buildFaceBased(g, m)
		} else {
			buildPerVertex(g, m)
		}
		if d.InvertNormals {
			for i, n := range g.Normals {
				g.Normals[i] = n.Mul(-1)
			}
		}
		g.Texture = m.Texture()
		if g.Texture == nil {
			g.Texture = GridTexture()
		}
	}

	for _, l := range d.Lines {
		g.LinePositions = append(g.LinePositions, l.From.Vec32(), l.To.Vec32())
		g.LineColors = append(g.LineColors, l.Color, l.Color)
	}
	for _, p := range d.Points {
		g.PointPositions = append(g.PointPositions, p.Pos.Vec32())
		g.PointColors = append(g.PointColors, p.Color)
	}
	return g
}

func buildPerVertex(g *gfx.Geometry, m *models.Mesh) {
	n := len(m.Vertices)
	g.Positions = make([]mgl32.Vec3, n)
	g.Normals = make([]mgl32.Vec3, n)
	g.UVs = make([]mgl32.Vec2, n)
	kd := make([]mgl32.Vec4, n)
	for i, v := range m.Vertices {
		g.Positions[i] = v.Position.Vec32()
		g.Normals[i] = v.Normal.Vec32()
		g.UVs[i] = v.UV.Vec32()
		kd[i] = DefaultDiffuse
	}
	g.Triangles = make([][3]uint32, len(m.Faces))
	for fi, f := range m.Faces {
		c := faceColor(m, fi)
		for k, vi := range f.V {
			g.Triangles[fi][k] = uint32(vi)
			kd[vi] = c
		}
	}
	setMaterial(g, kd)
}

func buildFaceBased(g *gfx.Geometry, m *models.Mesh) {
	n := 3 * len(m.Faces)
	g.Positions = make([]mgl32.Vec3, 0, n)
	g.Normals = make([]mgl32.Vec3, 0, n)
	g.UVs = make([]mgl32.Vec2, 0, n)
	g.Triangles = make([][3]uint32, len(m.Faces))
	kd := make([]mgl32.Vec4, 0, n)
	for fi, f := range m.Faces {
		normal := m.FaceNormal(fi).Vec32()
		c := faceColor(m, fi)
		for k, vi := range f.V {
			v := m.Vertices[vi]
			g.Positions = append(g.Positions, v.Position.Vec32())
			g.Normals = append(g.Normals, normal)
			g.UVs = append(g.UVs, v.UV.Vec32())
			kd = append(kd, c)
			g.Triangles[fi][k] = uint32(3*fi + k)
		}
	}
	setMaterial(g, kd)
}

func faceColor(m *models.Mesh, fi int) mgl32.Vec4 {
	mat := m.GetMaterial(m.GetFaceMaterial(fi))
	if mat == nil {
		return DefaultDiffuse
	}
	c := mat.BaseColor
	return mgl32.Vec4{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
}

func setMaterial(g *gfx.Geometry, kd []mgl32.Vec4) {
	g.Diffuse = kd
	g.Ambient = make([]mgl32.Vec4, len(kd))
	g.Specular = make([]mgl32.Vec4, len(kd))
	for i, c := range kd {
		g.Ambient[i] = c.Vec3().Mul(0.1).Vec4(c[3])
		g.Specular[i] = mgl32.Vec4{0.3, 0.3, 0.3, c[3]}
	}
}

// gridSize is the side of the default texture.
const gridSize = 128

// GridTexture returns the default texture: a two by two black and white
// checkerboard.
func GridTexture() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, gridSize, gridSize))
	half := gridSize / 2
	for y := range gridSize {
		for x := range gridSize {
			c := color.NRGBA{A: 255}
			if (x < half) == (y < half) {
				c = color.NRGBA{255, 255, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// MeshState is the device storage behind one Data. It belongs to the
// device it was created on.
type MeshState struct {
	buf gfx.Buffers
}

// NewMeshState allocates storage for one Data on dev.
func NewMeshState(dev gfx.Device) *MeshState {
	return &MeshState{buf: dev.NewBuffers()}
}

// Upload replaces the stored geometry with d's.
func (s *MeshState) Upload(d *Data) {
	s.buf.Upload(BuildGeometry(d))
}

// Free releases the device storage.
func (s *MeshState) Free() {
	if s.buf != nil {
		s.buf.Free()
		s.buf = nil
	}
}
