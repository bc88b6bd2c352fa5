package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/c-gorringe/moxie-app/internal/application/report"
)

// PerformanceHandler handles performance trend endpoints
type PerformanceHandler struct {
	BaseHandler
	performanceService *reportapp.PerformanceService
}

// NewPerformanceHandler creates a new PerformanceHandler
func NewPerformanceHandler(performanceService *reportapp.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService}
}

// Get returns the authenticated user's metrics and trend deltas
func (h *PerformanceHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.performanceService.GetPerformance(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers performance routes
func (h *PerformanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/performance", h.Get)
}
