package handlers

import (
	"context"
	"errors"
	"net/http"

	"fridgechef/internal/core/recipes"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileStore is the slice of the profile store the handlers need.
// *profile.Store satisfies it, including its disabled (nil) form.
type ProfileStore interface {
	Preferences(ctx context.Context, userID string) (recipes.Preferences, error)
	SetPreferences(ctx context.Context, userID string, prefs recipes.Preferences) error
	SavedRecipes(ctx context.Context, userID string) ([]recipes.Recipe, error)
	SaveRecipe(ctx context.Context, userID string, r recipes.Recipe) error
}

// GenerateRecipesRequest is the generate-recipes request body.
type GenerateRecipesRequest struct {
	Ingredients []string            `json:"ingredients" binding:"required"`
	Preferences recipes.Preferences `json:"preferences"`
	Count       int                 `json:"count,omitempty"`
	UserID      string              `json:"userId,omitempty"`
}

// GenerateRecipesResponse is the generate-recipes response body.
type GenerateRecipesResponse struct {
	Recipes []recipes.RecipeWithMissing `json:"recipes"`
	Source  string                      `json:"source"`
}

// SaveRecipeRequest is the save-recipe request body.
type SaveRecipeRequest struct {
	UserID string         `json:"userId" binding:"required"`
	Recipe recipes.Recipe `json:"recipe" binding:"required"`
}

// HandleGenerateRecipes generates recipes for the given ingredient
// list. When the model response is unusable, or well-formed but leaves
// nothing within the missing-ingredient threshold, it degrades to
// ranking the user's saved recipes instead of returning an empty list.
func HandleGenerateRecipes(cfg *config.Config, recipeSvc *recipes.Service, profileStore ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")

		if cfg.OpenRouter.APIKey == "" {
			common.LogError("AI provider API key not configured",
				zap.String("request_id", requestID))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "AI provider is not configured",
			})
			return
		}

		var req GenerateRecipesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.LogError("Invalid request format",
				zap.Error(err),
				zap.String("request_id", requestID))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		// Stored preferences fill in whatever the request left blank.
		if req.UserID != "" {
			stored, err := profileStore.Preferences(c.Request.Context(), req.UserID)
			if err != nil {
				common.LogWarn("failed to load stored preferences",
					zap.String("user_id", req.UserID),
					zap.Error(err))
			} else {
				if req.Preferences.DietaryRestrictions == "" {
					req.Preferences.DietaryRestrictions = stored.DietaryRestrictions
				}
				if len(req.Preferences.FoodGenres) == 0 {
					req.Preferences.FoodGenres = stored.FoodGenres
				}
			}
		}

		ranked, err := recipeSvc.Generate(c.Request.Context(), req.Ingredients, req.Preferences, req.Count)
		if err != nil {
			if common.IsValidationError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if errors.Is(err, recipes.ErrMalformedResponse) {
				if fallback, ok := savedFallback(c, recipeSvc, profileStore, req.UserID, req.Ingredients); ok {
					c.JSON(http.StatusOK, GenerateRecipesResponse{
						Recipes: fallback,
						Source:  "saved",
					})
					return
				}
			}
			common.LogError("Failed to generate recipes",
				zap.Error(err),
				zap.String("request_id", requestID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipes"})
			return
		}

		// Generation can succeed and still leave nothing in range, e.g.
		// every candidate needs too much shopping. That counts as a
		// failure for fallback purposes.
		if len(ranked) == 0 {
			if fallback, ok := savedFallback(c, recipeSvc, profileStore, req.UserID, req.Ingredients); ok {
				c.JSON(http.StatusOK, GenerateRecipesResponse{
					Recipes: fallback,
					Source:  "saved",
				})
				return
			}
		}

		c.JSON(http.StatusOK, GenerateRecipesResponse{
			Recipes: ranked,
			Source:  "generated",
		})
	}
}

// savedFallback ranks the user's saved recipes against their pantry.
func savedFallback(c *gin.Context, recipeSvc *recipes.Service, profileStore ProfileStore, userID string, ingredients []string) ([]recipes.RecipeWithMissing, bool) {
	if userID == "" {
		return nil, false
	}

	saved, err := profileStore.SavedRecipes(c.Request.Context(), userID)
	if err != nil || len(saved) == 0 {
		if err != nil {
			common.LogWarn("saved recipe fallback unavailable",
				zap.String("user_id", userID),
				zap.Error(err))
		}
		return nil, false
	}

	common.LogInfo("falling back to saved recipes",
		zap.String("user_id", userID),
		zap.Int("saved_count", len(saved)))

	return recipeSvc.RankSaved(saved, ingredients), true
}

// HandleSaveRecipe appends a recipe to the user's saved collection.
func HandleSaveRecipe(profileStore ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveRecipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if err := profileStore.SaveRecipe(c.Request.Context(), req.UserID, req.Recipe); err != nil {
			common.LogError("Failed to save recipe",
				zap.String("user_id", req.UserID),
				zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to save recipe"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"saved": true})
	}
}

// HandleListSavedRecipes returns the user's saved collection, ranked
// against the optional available-ingredient query.
func HandleListSavedRecipes(recipeSvc *recipes.Service, profileStore ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}

		saved, err := profileStore.SavedRecipes(c.Request.Context(), userID)
		if err != nil {
			common.LogError("Failed to load saved recipes",
				zap.String("user_id", userID),
				zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load saved recipes"})
			return
		}

		available := c.QueryArray("ingredient")
		if len(available) > 0 {
			c.JSON(http.StatusOK, gin.H{"recipes": recipeSvc.RankSaved(saved, available)})
			return
		}

		c.JSON(http.StatusOK, gin.H{"recipes": saved})
	}
}
