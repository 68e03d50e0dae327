package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/hexmetrics-backend-go/internal/service"
	"github.com/jengzang/hexmetrics-backend-go/pkg/response"
)

// FeaturesHandler serves the land-feature context endpoints
type FeaturesHandler struct {
	metrics *service.MetricsService
}

// NewFeaturesHandler creates a new features handler
func NewFeaturesHandler(metrics *service.MetricsService) *FeaturesHandler {
	return &FeaturesHandler{metrics: metrics}
}

// GetOSMContext handles GET /api/v1/cells/:index/osm
func (h *FeaturesHandler) GetOSMContext(c *gin.Context) {
	h3Index := c.Param("index")
	country := c.Query("country")
	resolution, err := strconv.Atoi(c.Query("resolution"))
	if err != nil || country == "" {
		response.BadRequest(c, "country and resolution are required")
		return
	}

	row, err := h.metrics.OSMContext(c.Request.Context(), country, h3Index, resolution)
	if err != nil {
		response.InternalError(c, "failed to query osm context")
		return
	}
	if row == nil {
		response.Success(c, gin.H{
			"h3_index":      h3Index,
			"h3_resolution": resolution,
			"osm_context":   nil,
			"message":       "No OSM data found for this cell",
		})
		return
	}

	response.Success(c, gin.H{
		"h3_index":      h3Index,
		"h3_resolution": resolution,
		"osm_context":   row,
	})
}
