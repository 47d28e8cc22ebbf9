package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thimar/internal/pagination"
	"thimar/internal/services"
)

// SettingsHandler handles the city and asset-type lookup tables
type SettingsHandler struct {
	cityService      services.CityServicer
	assetTypeService services.AssetTypeServicer
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(cityService services.CityServicer, assetTypeService services.AssetTypeServicer) *SettingsHandler {
	return &SettingsHandler{cityService: cityService, assetTypeService: assetTypeService}
}

// LookupRequest represents the request payload for a lookup entry
type LookupRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

type lookupQuery struct {
	pagination.PageRequest
	Search string `form:"search"`
}

func (q lookupQuery) params() services.LookupParams {
	return services.LookupParams{PageRequest: q.PageRequest, Search: q.Search}
}

// ListCities returns the city lookup table
// @Summary     List cities
// @Tags        settings
// @Produce     json
// @Success     200 {object} map[string]any "Cities"
// @Router      /settings/cities [get]
func (h *SettingsHandler) ListCities(c *gin.Context) {
	var req lookupQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	cities, err := h.cityService.List(c.Request.Context(), req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// CreateCity adds a city
// @Summary     Create a city
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body LookupRequest true "City name"
// @Success     201 {object} map[string]any "Created city"
// @Failure     422 {object} ErrorResponse "City already exists"
// @Router      /settings/cities [post]
func (h *SettingsHandler) CreateCity(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	city, err := h.cityService.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"city": city})
}

// UpdateCity renames a city
// @Summary     Rename a city
// @Tags        settings
// @Security    BearerAuth
// @Router      /settings/cities/{id} [put]
func (h *SettingsHandler) UpdateCity(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	city, err := h.cityService.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": city})
}

// DeleteCity removes a city
// @Summary     Delete a city
// @Tags        settings
// @Security    BearerAuth
// @Router      /settings/cities/{id} [delete]
func (h *SettingsHandler) DeleteCity(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.cityService.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المدينة"})
}

// ListAssetTypes returns the asset-type lookup table
// @Summary     List asset types
// @Tags        settings
// @Produce     json
// @Success     200 {object} map[string]any "Asset types"
// @Router      /settings/asset-types [get]
func (h *SettingsHandler) ListAssetTypes(c *gin.Context) {
	var req lookupQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	assetTypes, err := h.assetTypeService.List(c.Request.Context(), req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset_types": assetTypes})
}

// CreateAssetType adds an asset type
// @Summary     Create an asset type
// @Tags        settings
// @Security    BearerAuth
// @Router      /settings/asset-types [post]
func (h *SettingsHandler) CreateAssetType(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	assetType, err := h.assetTypeService.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset_type": assetType})
}

// UpdateAssetType renames an asset type
// @Summary     Rename an asset type
// @Tags        settings
// @Security    BearerAuth
// @Router      /settings/asset-types/{id} [put]
func (h *SettingsHandler) UpdateAssetType(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	assetType, err := h.assetTypeService.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset_type": assetType})
}

// DeleteAssetType removes an asset type
// @Summary     Delete an asset type
// @Tags        settings
// @Security    BearerAuth
// @Router      /settings/asset-types/{id} [delete]
func (h *SettingsHandler) DeleteAssetType(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetTypeService.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف نوع الأصل"})
}
