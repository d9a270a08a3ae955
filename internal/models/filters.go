package models

// GridFilter represents filter parameters for querying grid cells
type GridFilter struct {
	Resolution int   `form:"resolution"`
	MinCount   int64 `form:"minCount"` // Minimum point count
	Limit      int   `form:"limit"`    // Max results, capped at 10000
}

// BoundaryQuery represents options for boundary requests
type BoundaryQuery struct {
	Segments int    `form:"segments" binding:"min=0,max=1024"`
	Open     bool   `form:"open"`   // drop the closing vertex
	Format   string `form:"format"` // json (default) or geojson
}

// EncodeQuery represents a point lookup
type EncodeQuery struct {
	Lon        *float64 `form:"lon" binding:"required"`
	Lat        *float64 `form:"lat" binding:"required"`
	Resolution *int     `form:"resolution"`
}

// CoverageQuery selects how a stored coverage is returned
type CoverageQuery struct {
	Resolution *int `form:"resolution"` // uncompact to this resolution
}
