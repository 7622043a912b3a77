package math3d

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3
	Max Vec3
}

// NewBox creates a Box from min and max points.
func NewBox(min, max Vec3) Box {
	return Box{Min: min, Max: max}
}

// Center returns the center of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the absolute extent of the box along each axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min).Abs()
}

// Extend grows the box to contain p.
func (b Box) Extend(p Vec3) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Contains reports whether p lies inside the box, boundary included.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
