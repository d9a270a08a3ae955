package models

// LonLat is a point in degrees
type LonLat struct {
	Lon float64 `json:"lon" binding:"min=-180,max=180"`
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
}

// CellInfo describes a single cell
type CellInfo struct {
	CellID     string  `json:"cell_id"`
	Resolution int     `json:"resolution"`
	Center     LonLat  `json:"center"`
	AreaM2     float64 `json:"area_m2"`
	Parent     string  `json:"parent,omitempty"`
}

// ResolutionInfo describes a grid level
type ResolutionInfo struct {
	Resolution int     `json:"resolution"`
	NumCells   uint64  `json:"num_cells"`
	CellAreaM2 float64 `json:"cell_area_m2"`
}

// CellSetRequest is the body of compact and uncompact calls
type CellSetRequest struct {
	Cells      []string `json:"cells" binding:"required"`
	Resolution int      `json:"resolution"`
}

// PointsRequest is an ingest batch
type PointsRequest struct {
	Resolution *int          `json:"resolution"`
	Points     []TimedLonLat `json:"points" binding:"required,min=1,dive"`
}

// TimedLonLat is a point with an optional Unix timestamp
type TimedLonLat struct {
	LonLat
	Time int64 `json:"time,omitempty"`
}
