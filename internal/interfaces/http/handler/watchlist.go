package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	watchlistapp "github.com/c-gorringe/moxie-app/internal/application/watchlist"
	"github.com/c-gorringe/moxie-app/internal/interfaces/http/dto"
	"github.com/c-gorringe/moxie-app/internal/interfaces/http/middleware"
)

// WatchlistHandler handles watchlist endpoints
type WatchlistHandler struct {
	BaseHandler
	watchlistService *watchlistapp.Service
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(watchlistService *watchlistapp.Service) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// AddWatchRequest represents a request to watch another user
type AddWatchRequest struct {
	WatchedUserID string `json:"watchedUserId" binding:"required,uuid"`
}

// List returns the authenticated user's watchlist with today's stats
func (h *WatchlistHandler) List(c *gin.Context) {
	watcherID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.watchlistService.List(c.Request.Context(), watcherID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Add places another user on the authenticated user's watchlist
func (h *WatchlistHandler) Add(c *gin.Context) {
	watcherID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddWatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	watchedID, err := uuid.Parse(req.WatchedUserID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	entry, err := h.watchlistService.Add(c.Request.Context(), watcherID, watchedID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// Remove takes a user off the authenticated user's watchlist
func (h *WatchlistHandler) Remove(c *gin.Context) {
	watcherID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	watchedID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.watchlistService.Remove(c.Request.Context(), watcherID, watchedID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers watchlist routes
func (h *WatchlistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	watchlist := rg.Group("/watchlist")
	watchlist.GET("", h.List)
	watchlist.POST("", h.Add)
	watchlist.DELETE("/:id", h.Remove)
}
