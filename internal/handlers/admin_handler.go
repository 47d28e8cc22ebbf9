package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thimar/internal/services"
)

// AdminHandler handles the admin dashboard statistics
type AdminHandler struct {
	adminService services.AdminServicer
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService services.AdminServicer) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// DashboardStats returns the marketplace-wide summary
// @Summary     Dashboard statistics
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any "Statistics"
// @Router      /admin/dashboard [get]
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.adminService.DashboardStats(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}

// GrowthStats returns the month-over-month growth series
// @Summary     Growth statistics
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any "Growth"
// @Router      /admin/growth [get]
func (h *AdminHandler) GrowthStats(c *gin.Context) {
	stats, err := h.adminService.GrowthStats(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"growth": stats})
}
