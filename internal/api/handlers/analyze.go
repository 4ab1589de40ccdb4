package handlers

import (
	"net/http"

	"fridgechef/internal/core/vision"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyzeIngredientsRequest is the analyze-ingredients request body.
type AnalyzeIngredientsRequest struct {
	ImageURLs           []string `json:"imageUrls" binding:"required"`
	DietaryRestrictions string   `json:"dietaryRestrictions,omitempty"`
	CuisinePreferences  []string `json:"cuisinePreferences,omitempty"`
}

// AnalyzeIngredientsResponse is the analyze-ingredients response body.
type AnalyzeIngredientsResponse struct {
	Ingredients []string               `json:"ingredients"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// HandleAnalyzeIngredients runs uploaded photo URLs through the vision
// pipeline and returns the canonical ingredient list.
func HandleAnalyzeIngredients(cfg *config.Config, visionSvc *vision.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")

		// Missing credentials is a fatal configuration error, not
		// something to degrade around.
		if cfg.OpenRouter.APIKey == "" {
			common.LogError("AI provider API key not configured",
				zap.String("request_id", requestID))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "AI provider is not configured",
			})
			return
		}

		var req AnalyzeIngredientsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.LogError("Invalid request format",
				zap.Error(err),
				zap.String("request_id", requestID))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if len(req.ImageURLs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "imageUrls must not be empty"})
			return
		}

		result, err := visionSvc.AnalyzeImages(c.Request.Context(), req.ImageURLs, req.DietaryRestrictions)
		if err != nil {
			if common.IsValidationError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			common.LogError("Failed to analyze images",
				zap.Error(err),
				zap.String("request_id", requestID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze images"})
			return
		}

		c.JSON(http.StatusOK, AnalyzeIngredientsResponse{
			Ingredients: result.Ingredients,
			Metadata: map[string]interface{}{
				"images_processed": result.ImagesProcessed,
				"images_failed":    result.ImagesFailed,
				"count":            len(result.Ingredients),
				"items":            result.Items,
			},
		})
	}
}
