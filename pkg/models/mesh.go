// Package models provides mesh loading and representation for plinth.
package models

import (
	"image"

	"github.com/taigrr/plinth/pkg/math3d"
)

// Mesh represents a triangle mesh with vertices, faces, and materials.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Dim is 2 for planar meshes whose Z coordinates are ignored when
	// fitting the camera; any other value means 3.
	Dim int

	// Bounds is calculated on load.
	Bounds math3d.Box
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the base color part of a glTF material. BaseColor becomes
// the diffuse color of the faces using it.
type Material struct {
	Name       string
	BaseColor  [4]float64  // RGBA in 0-1 range
	BaseMap    image.Image // Optional base color texture
	HasTexture bool
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = math3d.Box{}
		return
	}

	p := m.Vertices[0].Position
	m.Bounds = math3d.NewBox(p, p)
	for _, v := range m.Vertices[1:] {
		m.Bounds = m.Bounds.Extend(v.Position)
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// PositionRows returns the vertex positions as rows of Dim columns.
func (m *Mesh) PositionRows() [][]float64 {
	rows := make([][]float64, len(m.Vertices))
	for i, v := range m.Vertices {
		if m.Dim == 2 {
			rows[i] = []float64{v.Position.X, v.Position.Y}
		} else {
			rows[i] = []float64{v.Position.X, v.Position.Y, v.Position.Z}
		}
	}
	return rows
}

// FaceRows returns the face indices as rows of three.
func (m *Mesh) FaceRows() [][]int {
	rows := make([][]int, len(m.Faces))
	for i, f := range m.Faces {
		rows[i] = []int{f.V[0], f.V[1], f.V[2]}
	}
	return rows
}

// FaceNormal returns the unit normal of face i, following its winding.
func (m *Mesh) FaceNormal(i int) math3d.Vec3 {
	f := m.Faces[i]
	v0 := m.Vertices[f.V[0]].Position
	v1 := m.Vertices[f.V[1]].Position
	v2 := m.Vertices[f.V[2]].Position
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// FaceCentroid returns the average of the three corners of face i.
func (m *Mesh) FaceCentroid(i int) math3d.Vec3 {
	f := m.Faces[i]
	return m.Vertices[f.V[0]].Position.
		Add(m.Vertices[f.V[1]].Position).
		Add(m.Vertices[f.V[2]].Position).
		Div(3)
}

// CalculateNormals computes face normals and assigns them to vertices.
// Shared vertices keep the normal of the last face written, so this
// suits meshes whose faces do not share vertices.
func (m *Mesh) CalculateNormals() {
	for i, f := range m.Faces {
		normal := m.FaceNormal(i)
		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// CalculateSmoothNormals computes area weighted averaged normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		// Unnormalized: longer cross products weigh larger faces more.
		normal := v1.Sub(v0).Cross(v2.Sub(v0))

		m.Vertices[f.V[0]].Normal = m.Vertices[f.V[0]].Normal.Add(normal)
		m.Vertices[f.V[1]].Normal = m.Vertices[f.V[1]].Normal.Add(normal)
		m.Vertices[f.V[2]].Normal = m.Vertices[f.V[2]].Normal.Add(normal)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies a transformation matrix to all vertices. Normals go
// through the inverse transpose so non-uniform scales keep them
// perpendicular to the surface.
func (m *Mesh) Transform(mat math3d.Mat4) {
	nm := math3d.NormalMatrix(mat)
	for i := range m.Vertices {
		m.Vertices[i].Position = math3d.TransformPoint(mat, m.Vertices[i].Position)
		m.Vertices[i].Normal = math3d.TransformDir(nm, m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Append adds the vertices and faces of o to m, remapping vertex indices,
// and recomputes the bounds. Face material indices are kept as they are:
// both meshes index the same material table, as the parts of one glTF
// document do.
func (m *Mesh) Append(o *Mesh) {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, o.Vertices...)
	for _, f := range o.Faces {
		m.Faces = append(m.Faces, Face{
			V:        [3]int{f.V[0] + base, f.V[1] + base, f.V[2] + base},
			Material: f.Material,
		})
	}
	m.CalculateBounds()
}

// GetFaceMaterial returns the material index for face i.
// Returns -1 if no material assigned.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// Texture returns the first material base map, or nil.
func (m *Mesh) Texture() image.Image {
	for _, mat := range m.Materials {
		if mat.HasTexture && mat.BaseMap != nil {
			return mat.BaseMap
		}
	}
	return nil
}
