package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/c-gorringe/moxie-app/internal/application/identity"
	"github.com/c-gorringe/moxie-app/internal/interfaces/http/dto"
)

// UserHandler handles user profile endpoints
type UserHandler struct {
	BaseHandler
	profileService *identityapp.ProfileService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profileService *identityapp.ProfileService) *UserHandler {
	return &UserHandler{profileService: profileService}
}

// GetProfile returns a user's profile, personal bests and accolades
func (h *UserHandler) GetProfile(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	userID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	resp, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("/:id", h.GetProfile)
}
