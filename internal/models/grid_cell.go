package models

import "time"

// GridCell is the stored point count of one cell
type GridCell struct {
	CellID     string `json:"cell_id" db:"cell_id"` // hex id
	Resolution int    `json:"resolution" db:"resolution"`
	PointCount int64  `json:"point_count" db:"point_count"`
	FirstSeen  int64  `json:"first_seen,omitempty" db:"first_seen"` // Unix timestamp
	LastSeen   int64  `json:"last_seen,omitempty" db:"last_seen"`   // Unix timestamp

	// Filled from the grid, not stored
	CenterLon float64 `json:"center_lon"`
	CenterLat float64 `json:"center_lat"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CellCount is one increment applied by an ingest batch
type CellCount struct {
	CellID     string
	Resolution int
	Count      int64
	FirstSeen  int64
	LastSeen   int64
}

// Rollup is the sum of the stored counts under one cell
type Rollup struct {
	CellID           string `json:"cell_id"`
	Resolution       int    `json:"resolution"`
	SourceResolution int    `json:"source_resolution"`
	PointCount       int64  `json:"point_count"`
	CellCount        int    `json:"cell_count"`
}
