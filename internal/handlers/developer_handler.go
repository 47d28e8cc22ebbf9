package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thimar/internal/pagination"
	"thimar/internal/services"
)

// DeveloperHandler handles developer-related requests
type DeveloperHandler struct {
	developerService services.DeveloperServicer
}

// NewDeveloperHandler creates a new DeveloperHandler
func NewDeveloperHandler(developerService services.DeveloperServicer) *DeveloperHandler {
	return &DeveloperHandler{developerService: developerService}
}

// DeveloperRequest represents the request payload for creating or updating a developer
type DeveloperRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

func (r DeveloperRequest) input() services.DeveloperInput {
	return services.DeveloperInput{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Description: r.Description,
	}
}

// ListDevelopers returns the developer list
// @Summary     List developers
// @Tags        developers
// @Produce     json
// @Param       search query string false "Name search"
// @Success     200 {object} map[string]any "Developers"
// @Router      /developers [get]
func (h *DeveloperHandler) ListDevelopers(c *gin.Context) {
	var req struct {
		pagination.PageRequest
		Search string `form:"search"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	developers, err := h.developerService.List(c.Request.Context(), services.DeveloperParams{
		PageRequest: req.PageRequest,
		Search:      req.Search,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"developers": developers})
}

// GetDeveloper returns one developer
// @Summary     Get a developer
// @Tags        developers
// @Produce     json
// @Param       id path int true "Developer ID"
// @Success     200 {object} map[string]any "Developer"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /developers/{id} [get]
func (h *DeveloperHandler) GetDeveloper(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	developer, err := h.developerService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"developer": developer})
}

// CreateDeveloper creates a developer
// @Summary     Create a developer
// @Tags        developers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DeveloperRequest true "Developer details"
// @Success     201 {object} map[string]any "Created developer"
// @Failure     422 {object} ErrorResponse "Developer already exists"
// @Router      /developers [post]
func (h *DeveloperHandler) CreateDeveloper(c *gin.Context) {
	var req DeveloperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	developer, err := h.developerService.Create(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"developer": developer})
}

// UpdateDeveloper replaces a developer's fields
// @Summary     Update a developer
// @Tags        developers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Developer ID"
// @Param       request body DeveloperRequest true "Developer details"
// @Success     200 {object} map[string]any "Updated developer"
// @Router      /developers/{id} [put]
func (h *DeveloperHandler) UpdateDeveloper(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DeveloperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	developer, err := h.developerService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"developer": developer})
}

// DeleteDeveloper removes a developer
// @Summary     Delete a developer
// @Tags        developers
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Developer ID"
// @Success     200 {object} map[string]any "Deleted"
// @Router      /developers/{id} [delete]
func (h *DeveloperHandler) DeleteDeveloper(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.developerService.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المطور"})
}
