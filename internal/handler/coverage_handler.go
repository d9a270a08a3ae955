package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/a5grid/internal/export"
	"github.com/jengzang/a5grid/internal/models"
	"github.com/jengzang/a5grid/internal/service"
	"github.com/jengzang/a5grid/pkg/a5"
	"github.com/jengzang/a5grid/pkg/response"
)

// CoverageHandler handles HTTP requests for named cell sets
type CoverageHandler struct {
	service *service.CoverageService
	cells   *service.CellService
}

// NewCoverageHandler creates a new coverage handler
func NewCoverageHandler(service *service.CoverageService, cells *service.CellService) *CoverageHandler {
	return &CoverageHandler{service: service, cells: cells}
}

// Save handles POST /api/v1/coverages
func (h *CoverageHandler) Save(c *gin.Context) {
	var req models.CoverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	cov, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, cov)
}

// List handles GET /api/v1/coverages
func (h *CoverageHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"data": list, "count": len(list)})
}

// Get handles GET /api/v1/coverages/:name
func (h *CoverageHandler) Get(c *gin.Context) {
	var q models.CoverageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	cov, err := h.service.Get(c.Request.Context(), c.Param("name"), q.Resolution)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, cov)
}

// GeoJSON handles GET /api/v1/coverages/:name/geojson
func (h *CoverageHandler) GeoJSON(c *gin.Context) {
	cov, err := h.service.Get(c.Request.Context(), c.Param("name"), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	ids, err := service.ParseCells(cov.Cells)
	if err != nil {
		respondError(c, err)
		return
	}
	fc, err := export.Cells(c.Request.Context(), h.cells, ids, a5.DefaultBoundaryOptions())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// Delete handles DELETE /api/v1/coverages/:name
func (h *CoverageHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
