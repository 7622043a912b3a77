package gfx

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is the vertex stream layout uploaded for one renderable. The
// per-vertex slices of the mesh all have len(Positions) entries.
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Ambient   []mgl32.Vec4
	Diffuse   []mgl32.Vec4
	Specular  []mgl32.Vec4
	UVs       []mgl32.Vec2
	Triangles [][3]uint32

	Texture image.Image

	// Overlay lines are drawn pairwise: vertex 2i to vertex 2i+1.
	LinePositions []mgl32.Vec3
	LineColors    []mgl32.Vec4

	PointPositions []mgl32.Vec3
	PointColors    []mgl32.Vec4
}

// Validate reports whether every stream is consistent with Positions and
// every triangle index is in range.
func (g *Geometry) Validate() bool {
	n := len(g.Positions)
	for _, l := range []int{len(g.Normals), len(g.Ambient), len(g.Diffuse), len(g.Specular), len(g.UVs)} {
		if l != 0 && l != n {
			return false
		}
	}
	for _, t := range g.Triangles {
		if int(t[0]) >= n || int(t[1]) >= n || int(t[2]) >= n {
			return false
		}
	}
	if len(g.LinePositions)%2 != 0 || len(g.LineColors) != len(g.LinePositions) {
		return false
	}
	return len(g.PointColors) == len(g.PointPositions)
}
