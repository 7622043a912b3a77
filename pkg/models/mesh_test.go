package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taigrr/plinth/pkg/math3d"
)

func quad() *Mesh {
	m := NewMesh("quad")
	for _, p := range []math3d.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0}} {
		m.Vertices = append(m.Vertices, MeshVertex{Position: p})
	}
	m.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: -1},
		{V: [3]int{0, 2, 3}, Material: -1},
	}
	m.CalculateBounds()
	return m
}

func TestPositionRows(t *testing.T) {
	m := quad()
	rows := m.PositionRows()
	assert.Len(t, rows, 4)
	assert.Equal(t, []float64{2, 2, 0}, rows[2])

	m.Dim = 2
	rows = m.PositionRows()
	assert.Equal(t, []float64{2, 2}, rows[2])

	assert.Equal(t, [][]int{{0, 1, 2}, {0, 2, 3}}, m.FaceRows())
}

func TestFaceCentroidAndNormal(t *testing.T) {
	m := quad()
	assert.Equal(t, math3d.V3(4.0/3, 2.0/3, 0), m.FaceCentroid(0))
	assert.Equal(t, math3d.V3(0, 0, 1), m.FaceNormal(0))
}

func TestSmoothNormals(t *testing.T) {
	m := quad()
	m.CalculateSmoothNormals()
	for i, v := range m.Vertices {
		assert.InDelta(t, 1.0, v.Normal.Z, 1e-12, "vertex %d", i)
	}
}

func TestTransformNonUniformScale(t *testing.T) {
	m := NewMesh("tilted")
	m.Vertices = []MeshVertex{
		{Position: math3d.V3(0, 0, 0), Normal: math3d.V3(1, 1, 0).Normalize()},
	}
	m.Transform(math3d.Scale(math3d.V3(4, 1, 1)))

	// The inverse transpose shrinks the normal's x component.
	n := m.Vertices[0].Normal
	assert.InDelta(t, 1.0, n.Len(), 1e-12)
	assert.Less(t, n.X, n.Y)
}

func TestAppend(t *testing.T) {
	a := quad()
	a.Materials = []Material{{Name: "a"}, {Name: "b"}}
	a.Faces[0].Material = 0

	b := quad()
	b.Faces[1].Material = 1
	b.Transform(math3d.Translate(math3d.V3(10, 0, 0)))

	a.Append(b)
	assert.Equal(t, 8, a.VertexCount())
	assert.Equal(t, 4, a.TriangleCount())
	assert.Equal(t, [3]int{4, 6, 7}, a.Faces[3].V)
	assert.Equal(t, 1, a.Faces[3].Material, "material indices are shared, not shifted")
	assert.Equal(t, -1, a.Faces[2].Material)
	assert.Len(t, a.Materials, 2)
	assert.Equal(t, 12.0, a.Bounds.Max.X)
}

func TestCalculateBoundsEmpty(t *testing.T) {
	m := NewMesh("empty")
	m.CalculateBounds()
	assert.Equal(t, math3d.Box{}, m.Bounds)
}
