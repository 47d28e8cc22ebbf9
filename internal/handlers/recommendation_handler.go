package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thimar/internal/recommend"
)

// RecommendationHandler handles recommendation engine requests
type RecommendationHandler struct {
	engine *recommend.Client
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(engine *recommend.Client) *RecommendationHandler {
	return &RecommendationHandler{engine: engine}
}

// RecommendationRequest represents the request payload for fetching
// recommendations
type RecommendationRequest struct {
	UserPreferences string `json:"user_preferences" binding:"required"`
	MarketTrends    string `json:"market_trends"`
}

// GetRecommendations asks the engine once and returns whatever it suggests
// @Summary     Get recommendations
// @Tags        recommendations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecommendationRequest true "Preferences"
// @Success     200 {object} map[string]any "Recommendations"
// @Failure     502 {object} ErrorResponse "Engine unavailable"
// @Router      /recommendations [post]
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	recs, err := h.engine.Fetch(c.Request.Context(), recommend.Request{
		UserPreferences: req.UserPreferences,
		MarketTrends:    req.MarketTrends,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
