package models

import (
	"image"
	"testing"
)

func TestFaceMaterialIndex(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}},
	}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{3, 4, 5}, Material: 1},
		{V: [3]int{6, 7, 8}, Material: -1},
		{V: [3]int{6, 7, 8}, Material: 7},
	}

	tests := []struct {
		face int
		want string // "" for no material
	}{
		{0, "red"},
		{1, "green"},
		{2, ""},
		{3, ""},
	}
	for _, tt := range tests {
		mat := mesh.GetMaterial(mesh.GetFaceMaterial(tt.face))
		switch {
		case tt.want == "" && mat != nil:
			t.Errorf("face %d: got material %q, want none", tt.face, mat.Name)
		case tt.want != "" && (mat == nil || mat.Name != tt.want):
			t.Errorf("face %d: got %v, want %q", tt.face, mat, tt.want)
		}
	}
}

func TestMeshTexture(t *testing.T) {
	mesh := NewMesh("test")
	if mesh.Texture() != nil {
		t.Error("mesh without materials should have no texture")
	}

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	mesh.Materials = []Material{
		{Name: "plain"},
		{Name: "decode failed", BaseMap: nil, HasTexture: true},
		{Name: "textured", BaseMap: img, HasTexture: true},
	}
	if got := mesh.Texture(); got != img {
		t.Errorf("Texture() = %v, want the first decoded base map", got)
	}
}
