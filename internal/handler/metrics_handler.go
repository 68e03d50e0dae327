package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/hexmetrics-backend-go/internal/models"
	"github.com/jengzang/hexmetrics-backend-go/internal/service"
	"github.com/jengzang/hexmetrics-backend-go/pkg/response"
)

// MetricsHandler serves the biodiversity cell-metrics read endpoints
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// ListCells handles GET /api/v1/cells
func (h *MetricsHandler) ListCells(c *gin.Context) {
	filter := models.CellFilter{
		Country: c.Query("country"),
	}
	filter.Year, _ = strconv.Atoi(c.Query("year"))
	filter.Resolution, _ = strconv.Atoi(c.Query("resolution"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "1000"))
	if v, err := strconv.ParseInt(c.Query("min_richness"), 10, 64); err == nil {
		filter.MinRichness = v
	}

	cells, err := h.metrics.QueryCells(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, "failed to query cells")
		return
	}
	response.Success(c, gin.H{
		"cells": cells,
		"count": len(cells),
	})
}

// GetCell handles GET /api/v1/cells/:index
// Returns all yearly metrics for one cell plus a trend when available.
func (h *MetricsHandler) GetCell(c *gin.Context) {
	h3Index := c.Param("index")
	country := c.Query("country")
	resolution, err := strconv.Atoi(c.Query("resolution"))
	if err != nil || country == "" {
		response.BadRequest(c, "country and resolution are required")
		return
	}

	rows, trend, err := h.metrics.CellHistory(c.Request.Context(), country, h3Index, resolution)
	if err != nil {
		response.InternalError(c, "failed to query cell")
		return
	}
	if len(rows) == 0 {
		response.NotFound(c, "no metrics for this cell")
		return
	}

	response.Success(c, gin.H{
		"h3_index":      h3Index,
		"h3_resolution": resolution,
		"metrics":       rows,
		"trend":         trend,
	})
}

// GetCellNeighbors handles GET /api/v1/cells/:index/neighbors
func (h *MetricsHandler) GetCellNeighbors(c *gin.Context) {
	h3Index := c.Param("index")
	k, _ := strconv.Atoi(c.DefaultQuery("k", "1"))

	neighbors, err := h.metrics.Neighbors(h3Index, k)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"h3_index":  h3Index,
		"k":         k,
		"neighbors": neighbors,
	})
}

// ListPartitions handles GET /api/v1/partitions
func (h *MetricsHandler) ListPartitions(c *gin.Context) {
	partitions, err := h.metrics.Partitions(c.Request.Context())
	if err != nil {
		response.InternalError(c, "failed to query partitions")
		return
	}
	response.Success(c, gin.H{"partitions": partitions})
}
