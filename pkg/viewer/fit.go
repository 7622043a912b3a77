package viewer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/plinth/pkg/math3d"
)

// ZoomAndShiftToFit returns the zoom and shift that frame the point rows
// V. With more than one face in F the box is taken over the face
// barycenters rather than the raw points. Two column input lies in the
// z = 0 plane.
//
// zoom is half the largest extent of the box and shift moves the box
// center to the origin. ok is false, and nothing should change, when V is
// empty, ragged, neither 2D nor 3D, or F indexes outside it.
func ZoomAndShiftToFit(V [][]float64, F [][]int) (zoom float32, shift mgl32.Vec3, ok bool) {
	if len(V) == 0 {
		return 0, mgl32.Vec3{}, false
	}
	pts := V
	if len(F) > 1 {
		if math3d.RowDim(V) == 0 {
			return 0, mgl32.Vec3{}, false
		}
		pts, ok = math3d.Barycenters(V, F)
		if !ok {
			return 0, mgl32.Vec3{}, false
		}
	}
	box, ok := math3d.RowBounds(pts)
	if !ok {
		return 0, mgl32.Vec3{}, false
	}
	return float32(box.Size().MaxComponent() / 2), box.Center().Negate().Vec32(), true
}

// AlignCameraCenter fits the camera to V and F, keeping the viewing
// direction. See ZoomAndShiftToFit. A box with no extent leaves the zoom
// alone.
func (c *Core) AlignCameraCenter(V [][]float64, F [][]int) {
	zoom, shift, ok := ZoomAndShiftToFit(V, F)
	if !ok {
		return
	}
	dir := c.CameraCenter.Sub(c.CameraEye)
	if zoom > 0 {
		c.CameraZoom = zoom
	}
	c.CameraCenter = shift.Mul(-1).Add(c.GlobalTranslation)
	c.CameraEye = c.CameraCenter.Sub(dir)
}

// AlignCameraCenterData fits the camera to d's mesh, then offsets the
// center, and only the center, by the object's translation.
func (c *Core) AlignCameraCenterData(d *Data) {
	if d.Mesh != nil {
		c.AlignCameraCenter(d.Mesh.PositionRows(), d.Mesh.FaceRows())
	}
	c.CameraCenter = c.CameraCenter.Add(d.ModelTranslation)
}
