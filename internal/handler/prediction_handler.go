package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/delaywise/flights-backend-go/internal/models"
	"github.com/delaywise/flights-backend-go/internal/service"
	"github.com/delaywise/flights-backend-go/pkg/response"
)

// PredictionHandler handles HTTP requests for segment scoring
type PredictionHandler struct {
	predictionService *service.PredictionService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionService *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
	}
}

// ScoreSegments handles POST /api/v1/predictions. The body is the list of
// extracted segments; the response carries one result per segment in input
// order, each either a probability distribution or a structured error.
func (h *PredictionHandler) ScoreSegments(c *gin.Context) {
	var segments []models.Segment
	if err := c.ShouldBindJSON(&segments); err != nil {
		response.BadRequest(c, "Invalid request body: expected a JSON array of segments")
		return
	}
	if len(segments) == 0 {
		response.BadRequest(c, "Empty segment list")
		return
	}

	results := h.predictionService.ScoreSegments(c.Request.Context(), segments)
	response.Success(c, results)
}

// Embedding handles POST /api/v1/features/embedding, returning the
// fixed-order numeric vector for a single segment.
func (h *PredictionHandler) Embedding(c *gin.Context) {
	var segment models.Segment
	if err := c.ShouldBindJSON(&segment); err != nil {
		response.BadRequest(c, "Invalid request body: expected a segment object")
		return
	}

	vec, names, err := h.predictionService.EmbeddingForSegment(segment)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"features": names,
		"vector":   vec,
	})
}

// RecentPredictions handles GET /api/v1/predictions/recent
func (h *PredictionHandler) RecentPredictions(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	records, err := h.predictionService.RecentPredictions(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, records)
}
