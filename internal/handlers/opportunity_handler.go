package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thimar/internal/models"
	"thimar/internal/pagination"
	"thimar/internal/services"
)

// OpportunityHandler handles opportunity-related requests
type OpportunityHandler struct {
	opportunityService services.OpportunityServicer
}

// NewOpportunityHandler creates a new OpportunityHandler
func NewOpportunityHandler(opportunityService services.OpportunityServicer) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService}
}

// ListOpportunitiesRequest represents the query parameters for listing opportunities
type ListOpportunitiesRequest struct {
	pagination.PageRequest
	Search      string `form:"search"`
	Status      string `form:"status" binding:"omitempty,opportunity_status"`
	CityID      uint   `form:"city_id"`
	AssetTypeID uint   `form:"asset_type_id"`
	DeveloperID uint   `form:"developer_id"`
}

// CreateOpportunityRequest represents the request payload for creating an opportunity
type CreateOpportunityRequest struct {
	Name           string   `json:"name" binding:"required,min=2"`
	Description    string   `json:"description" binding:"required"`
	ExpectedReturn float64  `json:"expected_return" binding:"required,gt=0"`
	Duration       string   `json:"duration" binding:"required"`
	Funded         float64  `json:"funded" binding:"omitempty,min=0,max=100"`
	Status         string   `json:"status" binding:"omitempty,opportunity_status"`
	DeveloperID    uint     `json:"developer_id" binding:"required"`
	CityID         uint     `json:"city_id" binding:"required"`
	AssetTypeID    uint     `json:"asset_type_id" binding:"required"`
	ImageIDs       []string `json:"image_ids"`
}

// UpdateOpportunityRequest represents the request payload for a partial update
type UpdateOpportunityRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=2"`
	Description    *string  `json:"description"`
	ExpectedReturn *float64 `json:"expected_return" binding:"omitempty,gt=0"`
	Duration       *string  `json:"duration"`
	Funded         *float64 `json:"funded" binding:"omitempty,min=0,max=100"`
	Status         *string  `json:"status" binding:"omitempty,opportunity_status"`
	DeveloperID    *uint    `json:"developer_id"`
	CityID         *uint    `json:"city_id"`
	AssetTypeID    *uint    `json:"asset_type_id"`
	ImageIDs       []string `json:"image_ids"`
}

// ListOpportunities returns the filtered opportunity list
// @Summary     List opportunities
// @Tags        opportunities
// @Produce     json
// @Param       search query string false "Name search"
// @Param       status query string false "Status filter"
// @Success     200 {object} map[string]any "Opportunities"
// @Router      /opportunities [get]
func (h *OpportunityHandler) ListOpportunities(c *gin.Context) {
	var req ListOpportunitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	req.PageRequest.Defaults()

	page, err := h.opportunityService.ListPage(c.Request.Context(), services.OpportunityParams{
		PageRequest: req.PageRequest,
		Search:      req.Search,
		Status:      models.OpportunityStatus(req.Status),
		CityID:      req.CityID,
		AssetTypeID: req.AssetTypeID,
		DeveloperID: req.DeveloperID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"opportunities": page.Data,
		"meta":          page.Meta,
		"links":         page.Links,
	})
}

// GetOpportunity returns one opportunity
// @Summary     Get an opportunity
// @Tags        opportunities
// @Produce     json
// @Param       id path int true "Opportunity ID"
// @Success     200 {object} map[string]any "Opportunity"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /opportunities/{id} [get]
func (h *OpportunityHandler) GetOpportunity(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	opportunity, err := h.opportunityService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunity": opportunity})
}

// CreateOpportunity creates an opportunity
// @Summary     Create an opportunity
// @Tags        opportunities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateOpportunityRequest true "Opportunity details"
// @Success     201 {object} map[string]any "Created opportunity"
// @Failure     422 {object} ErrorResponse "Name taken or bad reference"
// @Router      /opportunities [post]
func (h *OpportunityHandler) CreateOpportunity(c *gin.Context) {
	var req CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	opportunity, err := h.opportunityService.Create(c.Request.Context(), services.OpportunityInput{
		Name:           req.Name,
		Description:    req.Description,
		ExpectedReturn: req.ExpectedReturn,
		Duration:       req.Duration,
		Funded:         req.Funded,
		Status:         models.OpportunityStatus(req.Status),
		DeveloperID:    req.DeveloperID,
		CityID:         req.CityID,
		AssetTypeID:    req.AssetTypeID,
		ImageIDs:       req.ImageIDs,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"opportunity": opportunity})
}

// UpdateOpportunity applies a partial update
// @Summary     Update an opportunity
// @Tags        opportunities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Opportunity ID"
// @Param       request body UpdateOpportunityRequest true "Fields to change"
// @Success     200 {object} map[string]any "Updated opportunity"
// @Router      /opportunities/{id} [put]
func (h *OpportunityHandler) UpdateOpportunity(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.OpportunityUpdate{
		Name:           req.Name,
		Description:    req.Description,
		ExpectedReturn: req.ExpectedReturn,
		Duration:       req.Duration,
		Funded:         req.Funded,
		DeveloperID:    req.DeveloperID,
		CityID:         req.CityID,
		AssetTypeID:    req.AssetTypeID,
		ImageIDs:       req.ImageIDs,
	}
	if req.Status != nil {
		status := models.OpportunityStatus(*req.Status)
		update.Status = &status
	}

	opportunity, err := h.opportunityService.Update(c.Request.Context(), id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunity": opportunity})
}

// DeleteOpportunity removes an opportunity
// @Summary     Delete an opportunity
// @Tags        opportunities
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Opportunity ID"
// @Success     200 {object} map[string]any "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /opportunities/{id} [delete]
func (h *OpportunityHandler) DeleteOpportunity(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.opportunityService.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الفرصة"})
}
