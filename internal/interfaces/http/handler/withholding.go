package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/c-gorringe/moxie-app/internal/application/report"
)

// WithholdingHandler handles withholding endpoints
type WithholdingHandler struct {
	BaseHandler
	withholdingService *reportapp.WithholdingService
}

// NewWithholdingHandler creates a new WithholdingHandler
func NewWithholdingHandler(withholdingService *reportapp.WithholdingService) *WithholdingHandler {
	return &WithholdingHandler{withholdingService: withholdingService}
}

// Get returns the authenticated user's withholding limit and transactions
func (h *WithholdingHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.withholdingService.GetWithholding(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers withholding routes
func (h *WithholdingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/withholding", h.Get)
}
