package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/a5grid/internal/export"
	"github.com/jengzang/a5grid/internal/models"
	"github.com/jengzang/a5grid/internal/service"
	"github.com/jengzang/a5grid/internal/spatial"
	"github.com/jengzang/a5grid/pkg/a5"
	"github.com/jengzang/a5grid/pkg/response"
)

// CellHandler handles HTTP requests for single cells and cell sets
type CellHandler struct {
	service           *service.CellService
	defaultResolution int
}

// NewCellHandler creates a new cell handler
func NewCellHandler(service *service.CellService, defaultResolution int) *CellHandler {
	return &CellHandler{service: service, defaultResolution: defaultResolution}
}

// Encode handles GET /api/v1/cells/encode
func (h *CellHandler) Encode(c *gin.Context) {
	var q models.EncodeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	res := h.defaultResolution
	if q.Resolution != nil {
		res = *q.Resolution
	}

	id, err := h.service.Encode(spatial.LonLat{Lon: *q.Lon, Lat: *q.Lat}, res)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"cell_id": id.String(), "resolution": res})
}

// GetCell handles GET /api/v1/cells/:id
func (h *CellHandler) GetCell(c *gin.Context) {
	id, ok := cellParam(c)
	if !ok {
		return
	}
	info, err := h.service.Info(id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, info)
}

// GetBoundary handles GET /api/v1/cells/:id/boundary
func (h *CellHandler) GetBoundary(c *gin.Context) {
	id, ok := cellParam(c)
	if !ok {
		return
	}
	var q models.BoundaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	opts := a5.BoundaryOptions{Closed: !q.Open, Segments: q.Segments}
	ring, err := h.service.Boundary(id, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	switch strings.ToLower(q.Format) {
	case "", "json":
		coords := make([][2]float64, len(ring))
		for i, p := range ring {
			coords[i] = [2]float64{p.Lon, p.Lat}
		}
		response.Success(c, gin.H{"cell_id": id.String(), "boundary": coords})
	case "geojson":
		f, err := export.CellFeature(id, ring)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, f)
	default:
		response.BadRequest(c, "unknown format "+q.Format)
	}
}

// Contains handles GET /api/v1/cells/:id/contains
func (h *CellHandler) Contains(c *gin.Context) {
	id, ok := cellParam(c)
	if !ok {
		return
	}
	var q models.EncodeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	point := spatial.LonLat{Lon: *q.Lon, Lat: *q.Lat}
	score, err := a5.CellContainsPoint(id, point)
	if err != nil {
		respondError(c, err)
		return
	}
	center, err := a5.CellToLonLat(id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"cell_id":           id.String(),
		"contains":          score >= 0,
		"score":             score,
		"center_distance_m": spatial.HaversineDistance(point, center),
	})
}

// GetParent handles GET /api/v1/cells/:id/parent
func (h *CellHandler) GetParent(c *gin.Context) {
	id, ok := cellParam(c)
	if !ok {
		return
	}
	res, ok := optionalInt(c, "resolution")
	if !ok {
		return
	}
	parent, err := h.service.Parent(id, res)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"cell_id": parent.String(), "resolution": parent.Resolution()})
}

// GetChildren handles GET /api/v1/cells/:id/children
func (h *CellHandler) GetChildren(c *gin.Context) {
	id, ok := cellParam(c)
	if !ok {
		return
	}
	res, ok := optionalInt(c, "resolution")
	if !ok {
		return
	}
	children, err := h.service.Children(id, res)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"cells": hexIDs(children), "count": len(children)})
}

// Compact handles POST /api/v1/cells/compact
func (h *CellHandler) Compact(c *gin.Context) {
	var req models.CellSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	ids, err := service.ParseCells(req.Cells)
	if err != nil {
		respondError(c, err)
		return
	}
	compacted, err := h.service.Compact(ids)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"cells": hexIDs(compacted), "count": len(compacted)})
}

// Uncompact handles POST /api/v1/cells/uncompact
func (h *CellHandler) Uncompact(c *gin.Context) {
	var req models.CellSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	ids, err := service.ParseCells(req.Cells)
	if err != nil {
		respondError(c, err)
		return
	}
	cells, err := h.service.Uncompact(ids, req.Resolution)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"cells": hexIDs(cells), "count": len(cells)})
}

// Wireframe handles GET /api/v1/cells/wireframe. Without cells it covers
// the whole globe.
func (h *CellHandler) Wireframe(c *gin.Context) {
	res, ok := optionalInt(c, "resolution")
	if !ok {
		return
	}
	if res == nil {
		response.BadRequest(c, "resolution is required")
		return
	}

	var ids []a5.CellID
	if raw := c.Query("cells"); raw != "" {
		parsed, err := service.ParseCells(strings.Split(raw, ","))
		if err != nil {
			respondError(c, err)
			return
		}
		ids = parsed
	}

	fc, err := export.Wireframe(c.Request.Context(), h.service, h.service.Uncompact, ids, *res)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// Res0 handles GET /api/v1/cells/res0
func (h *CellHandler) Res0(c *gin.Context) {
	cells := h.service.Res0()
	response.Success(c, gin.H{"cells": hexIDs(cells), "count": len(cells)})
}

// GetResolution handles GET /api/v1/resolutions/:res
func (h *CellHandler) GetResolution(c *gin.Context) {
	var uri struct {
		Res int `uri:"res"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "Invalid resolution: "+err.Error())
		return
	}
	info, err := h.service.Resolution(uri.Res)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, info)
}
