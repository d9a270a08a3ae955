package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/a5grid/internal/models"
	"github.com/jengzang/a5grid/internal/service"
	"github.com/jengzang/a5grid/pkg/response"
)

// GridHandler handles HTTP requests for aggregated cell counts
type GridHandler struct {
	service           *service.GridService
	defaultResolution int
}

// NewGridHandler creates a new grid handler
func NewGridHandler(service *service.GridService, defaultResolution int) *GridHandler {
	return &GridHandler{service: service, defaultResolution: defaultResolution}
}

// IngestPoints handles POST /api/v1/grid/points
func (h *GridHandler) IngestPoints(c *gin.Context) {
	var req models.PointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	n, err := h.service.Ingest(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"points": len(req.Points), "cells": n})
}

// GetGridCells handles GET /api/v1/grid/cells
func (h *GridHandler) GetGridCells(c *gin.Context) {
	filter := models.GridFilter{Resolution: h.defaultResolution}
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	cells, err := h.service.GetGridCells(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"data":  cells,
		"count": len(cells),
	})
}

// GetGridCell handles GET /api/v1/grid/cells/:id
func (h *GridHandler) GetGridCell(c *gin.Context) {
	id, ok := cellParam(c)
	if !ok {
		return
	}
	cell, err := h.service.GetGridCell(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, cell)
}

// Rollup handles GET /api/v1/grid/cells/:id/rollup
func (h *GridHandler) Rollup(c *gin.Context) {
	id, ok := cellParam(c)
	if !ok {
		return
	}
	res, ok := optionalInt(c, "resolution")
	if !ok {
		return
	}
	source := h.defaultResolution
	if res != nil {
		source = *res
	}

	rollup, err := h.service.Rollup(c.Request.Context(), id, source)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, rollup)
}

// Summary handles GET /api/v1/grid/summary
func (h *GridHandler) Summary(c *gin.Context) {
	res, ok := optionalInt(c, "resolution")
	if !ok {
		return
	}
	target := h.defaultResolution
	if res != nil {
		target = *res
	}
	summary, err := h.service.Summary(c.Request.Context(), target)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"resolution": target, "summary": summary})
}

// Reset handles DELETE /api/v1/grid/resolutions/:res
func (h *GridHandler) Reset(c *gin.Context) {
	res, err := strconv.Atoi(c.Param("res"))
	if err != nil {
		response.BadRequest(c, "invalid resolution "+c.Param("res"))
		return
	}
	n, err := h.service.Reset(c.Request.Context(), res)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": n})
}
