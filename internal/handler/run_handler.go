package handler

import (
	"context"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/hexmetrics-backend-go/internal/models"
	"github.com/jengzang/hexmetrics-backend-go/internal/service"
	"github.com/jengzang/hexmetrics-backend-go/pkg/response"
)

// RunHandler serves the aggregation-run trigger and status endpoints
type RunHandler struct {
	aggregation *service.AggregationService
	metrics     *service.MetricsService
}

// NewRunHandler creates a new run handler
func NewRunHandler(aggregation *service.AggregationService, metrics *service.MetricsService) *RunHandler {
	return &RunHandler{aggregation: aggregation, metrics: metrics}
}

type createRunRequest struct {
	Domain     string             `json:"domain" binding:"required"`
	Partitions []models.Partition `json:"partitions"`
}

// CreateRun handles POST /api/v1/aggregation/runs
// With no explicit partitions, all staged partitions of the domain are run.
func (h *RunHandler) CreateRun(c *gin.Context) {
	var req createRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	partitions := req.Partitions
	if len(partitions) == 0 {
		var err error
		switch req.Domain {
		case service.DomainBiodiversity:
			partitions, err = h.aggregation.ListBiodiversityPartitions(c.Request.Context())
		case service.DomainLandFeature:
			partitions, err = h.aggregation.ListFeaturePartitions(c.Request.Context())
		default:
			response.BadRequest(c, "unknown domain")
			return
		}
		if err != nil {
			response.InternalError(c, "failed to list partitions")
			return
		}
	}

	// The run executes in the background; poll GET /runs/:id for status.
	go func() {
		runID, err := h.aggregation.Run(context.Background(), req.Domain, partitions)
		if err != nil {
			log.Printf("[RunHandler] run %d finished with error: %v", runID, err)
		}
	}()

	response.Success(c, gin.H{
		"domain":     req.Domain,
		"partitions": len(partitions),
		"status":     models.RunPending,
	})
}

// GetRun handles GET /api/v1/aggregation/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid run id")
		return
	}

	run, err := h.metrics.GetRun(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c, "failed to query run")
		return
	}
	if run == nil {
		response.NotFound(c, "run not found")
		return
	}
	response.Success(c, run)
}

// ListRuns handles GET /api/v1/aggregation/runs
func (h *RunHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.metrics.ListRuns(c.Request.Context(), limit)
	if err != nil {
		response.InternalError(c, "failed to list runs")
		return
	}
	response.Success(c, gin.H{"runs": runs})
}
