package models

import "time"

// Coverage is a named set of cells, stored compacted
type Coverage struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Cells       []string  `json:"cells"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CoverageRequest is the body of a coverage upsert
type CoverageRequest struct {
	Name        string   `json:"name" binding:"required,max=128"`
	Description string   `json:"description"`
	Cells       []string `json:"cells" binding:"required"`
}
