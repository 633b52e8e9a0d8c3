package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/delaywise/flights-backend-go/internal/service"
	"github.com/delaywise/flights-backend-go/pkg/response"
)

// AdminHandler handles authenticated operational endpoints
type AdminHandler struct {
	aggregateService  *service.AggregateService
	predictionService *service.PredictionService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(aggregateService *service.AggregateService, predictionService *service.PredictionService) *AdminHandler {
	return &AdminHandler{
		aggregateService:  aggregateService,
		predictionService: predictionService,
	}
}

// RebuildAggregates handles POST /api/v1/admin/aggregates/rebuild. It runs
// the offline builder over the configured corpus and atomically swaps the
// serving tables.
func (h *AdminHandler) RebuildAggregates(c *gin.Context) {
	manifest, err := h.aggregateService.Rebuild(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, manifest)
}

// PurgePredictions handles DELETE /api/v1/admin/predictions
func (h *AdminHandler) PurgePredictions(c *gin.Context) {
	if err := h.predictionService.PurgeHistory(); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"purged": true})
}
