package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestFromQuatRotatesVector(t *testing.T) {
	// 90 degrees about +Y takes +X to -Z.
	s := math.Sqrt(0.5)
	m := FromQuat(0, s, 0, s)
	got := TransformPoint(m, V3(1, 0, 0))
	if !vecNear(got, V3(0, 0, -1)) {
		t.Errorf("rotated +X = %v, want (0, 0, -1)", got)
	}
}

func TestFromTRSOrder(t *testing.T) {
	s := math.Sqrt(0.5)
	m := FromTRS(V3(10, 0, 0), [4]float64{0, 0, s, s}, V3(2, 2, 2))
	// scale, then rotate +X to +Y, then translate.
	got := TransformPoint(m, V3(1, 0, 0))
	if !vecNear(got, V3(10, 2, 0)) {
		t.Errorf("TRS(+X) = %v, want (10, 2, 0)", got)
	}
}

func TestTransformPointRoundTrip(t *testing.T) {
	m := FromTRS(V3(1, -2, 3), [4]float64{0, 0.247404, 0, 0.968912}, V3(2, 3, 4))
	p := V3(0.5, 7, -1)
	got := TransformPoint(m.Inv(), TransformPoint(m, p))
	if !vecNear(got, p) {
		t.Errorf("inverse round trip = %v, want %v", got, p)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	m := Scale(V3(4, 1, 1))
	// Plane x + y = 0 squashed along x; its normal must stay perpendicular.
	n := TransformDir(NormalMatrix(m), V3(1, 1, 0)).Normalize()
	tangent := TransformDir(m, V3(1, -1, 0))
	if d := n.Dot(tangent); math.Abs(d) > eps {
		t.Errorf("normal . tangent = %v, want 0", d)
	}
}

func TestNormalMatrixSingular(t *testing.T) {
	if got := NormalMatrix(Scale(V3(1, 0, 1))); got != Identity() {
		t.Errorf("NormalMatrix(singular) = %v, want identity", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize(0) = %v, want 0", got)
	}
}

func TestRowBounds(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
		want Box
		ok   bool
	}{
		{"empty", nil, Box{}, false},
		{"ragged", [][]float64{{0, 0, 0}, {1, 1}}, Box{}, false},
		{"one column", [][]float64{{1}, {2}}, Box{}, false},
		{
			"3d",
			[][]float64{{-1, 2, 0}, {3, -4, 5}},
			NewBox(V3(-1, -4, 0), V3(3, 2, 5)),
			true,
		},
		{
			"2d pads z",
			[][]float64{{-1, 2}, {3, -4}},
			NewBox(V3(-1, -4, 0), V3(3, 2, 0)),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RowBounds(tt.rows)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("box = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBarycenters(t *testing.T) {
	V := [][]float64{{0, 0, 0}, {3, 0, 0}, {0, 3, 0}, {3, 3, 3}}
	bc, ok := Barycenters(V, [][]int{{0, 1, 2}, {1, 3, 2}})
	if !ok {
		t.Fatal("Barycenters rejected valid faces")
	}
	want := [][]float64{{1, 1, 0}, {2, 2, 1}}
	for i := range want {
		for k := range want[i] {
			if math.Abs(bc[i][k]-want[i][k]) > eps {
				t.Errorf("bc[%d] = %v, want %v", i, bc[i], want[i])
			}
		}
	}

	if _, ok := Barycenters(V, [][]int{{0, 1, 9}}); ok {
		t.Error("out of range index accepted")
	}
}

func TestBox(t *testing.T) {
	b := NewBox(V3(-1, -1, -1), V3(1, 1, 1))
	if c := b.Center(); c != Zero3() {
		t.Errorf("Center() = %v", c)
	}
	if s := b.Size(); s != V3(2, 2, 2) {
		t.Errorf("Size() = %v", s)
	}
	b = b.Extend(V3(5, 0, 0))
	if !b.Contains(V3(4, 0, 0)) || b.Contains(V3(6, 0, 0)) {
		t.Errorf("Extend() = %+v", b)
	}
}
