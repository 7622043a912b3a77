package math3d

// Point sets are passed around as rows: one []float64 per point with two or
// three columns, the layout mesh loaders and callers naturally produce.

// RowDim returns the column count shared by every row, or 0 when rows is
// empty or ragged.
func RowDim(rows [][]float64) int {
	if len(rows) == 0 {
		return 0
	}
	dim := len(rows[0])
	for _, r := range rows[1:] {
		if len(r) != dim {
			return 0
		}
	}
	return dim
}

// RowPoint reads row r as a point, with z = 0 for two column rows.
func RowPoint(r []float64) Vec3 {
	if len(r) == 2 {
		return Vec3{r[0], r[1], 0}
	}
	return Vec3{r[0], r[1], r[2]}
}

// RowBounds returns the bounding box of rows. Two column rows are treated
// as lying in the z = 0 plane. ok is false for empty or ragged input and for
// any dimension other than 2 or 3.
func RowBounds(rows [][]float64) (box Box, ok bool) {
	dim := RowDim(rows)
	if dim != 2 && dim != 3 {
		return Box{}, false
	}
	p := RowPoint(rows[0])
	box = Box{Min: p, Max: p}
	for _, r := range rows[1:] {
		box = box.Extend(RowPoint(r))
	}
	return box, true
}

// Barycenters returns the centroid of every face in F, with the same column
// count as V. ok is false if a face is empty or indexes outside V.
func Barycenters(V [][]float64, F [][]int) (bc [][]float64, ok bool) {
	dim := RowDim(V)
	if dim == 0 {
		return nil, false
	}
	bc = make([][]float64, len(F))
	for i, f := range F {
		if len(f) == 0 {
			return nil, false
		}
		c := make([]float64, dim)
		for _, vi := range f {
			if vi < 0 || vi >= len(V) {
				return nil, false
			}
			for k := range dim {
				c[k] += V[vi][k]
			}
		}
		for k := range dim {
			c[k] /= float64(len(f))
		}
		bc[i] = c
	}
	return bc, true
}
