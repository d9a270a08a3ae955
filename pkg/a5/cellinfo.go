package a5

const (
	// AuthalicRadius is the radius in metres of the sphere with the same
	// area as the WGS84 ellipsoid
	AuthalicRadius = 6371007.2
	// AuthalicArea is the surface area in m² of that sphere
	AuthalicArea = 510065624779439.1
)

// NumCells returns the number of cells at a resolution, or 0 outside
// [0, MaxResolution]
func NumCells(resolution int) uint64 {
	switch {
	case resolution < 0 || resolution > MaxResolution:
		return 0
	case resolution == 0:
		return 12
	}
	return 60 << uint(2*(resolution-1))
}

// NumChildren returns how many descendants at childResolution a cell at
// parentResolution has
func NumChildren(parentResolution, childResolution int) uint64 {
	if childResolution < parentResolution || NumCells(parentResolution) == 0 {
		return 0
	}
	return NumCells(childResolution) / NumCells(parentResolution)
}

// CellArea returns the area in m² of every cell at a resolution
func CellArea(resolution int) float64 {
	n := NumCells(resolution)
	if n == 0 {
		return 0
	}
	return AuthalicArea / float64(n)
}
