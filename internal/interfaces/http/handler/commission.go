package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/c-gorringe/moxie-app/internal/application/report"
)

const salesDetailDateLayout = "2006-01-02"

// CommissionHandler handles commission endpoints
type CommissionHandler struct {
	BaseHandler
	commissionService *reportapp.CommissionService
}

// NewCommissionHandler creates a new CommissionHandler
func NewCommissionHandler(commissionService *reportapp.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

// Get returns the authenticated user's commission summary and transactions
func (h *CommissionHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.commissionService.GetCommission(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SalesForDay returns the individual sale rows behind one commission day
func (h *CommissionHandler) SalesForDay(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	rawDate := c.Query("date")
	if rawDate == "" {
		h.BadRequest(c, "date query parameter is required")
		return
	}

	day, err := time.ParseInLocation(salesDetailDateLayout, rawDate, time.Local)
	if err != nil {
		h.BadRequest(c, "date must be formatted as YYYY-MM-DD")
		return
	}

	resp, err := h.commissionService.GetSalesForDay(c.Request.Context(), userID, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers commission routes
func (h *CommissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	commission := rg.Group("/commission")
	commission.GET("", h.Get)
	commission.GET("/sales", h.SalesForDay)
}
