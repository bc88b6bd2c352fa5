package handler

import (
	"github.com/gin-gonic/gin"

	adminapp "github.com/c-gorringe/moxie-app/internal/application/admin"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	BaseHandler
	seedService *adminapp.SeedService
	adminOnly   gin.HandlerFunc
}

// NewAdminHandler creates a new AdminHandler. adminOnly guards every route
// in the group.
func NewAdminHandler(seedService *adminapp.SeedService, adminOnly gin.HandlerFunc) *AdminHandler {
	return &AdminHandler{seedService: seedService, adminOnly: adminOnly}
}

// Reseed wipes and regenerates demo sales, commission and withholding data
func (h *AdminHandler) Reseed(c *gin.Context) {
	result, err := h.seedService.Reseed(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers admin routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	if h.adminOnly != nil {
		admin.Use(h.adminOnly)
	}
	admin.POST("/reseed", h.Reseed)
}
