package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/c-gorringe/moxie-app/internal/application/report"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	BaseHandler
	leaderboardService *reportapp.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(leaderboardService *reportapp.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// LeaderboardRequest captures leaderboard query parameters
type LeaderboardRequest struct {
	Period string `form:"period"`
	Region string `form:"region"`
	Team   string `form:"team"`
}

// Get returns the ranked leaderboard for the requested period
func (h *LeaderboardHandler) Get(c *gin.Context) {
	var req LeaderboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), reportapp.LeaderboardQuery{
		Period:    req.Period,
		Region:    req.Region,
		TeamQuery: req.Team,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers leaderboard routes
func (h *LeaderboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/leaderboard", h.Get)
}
