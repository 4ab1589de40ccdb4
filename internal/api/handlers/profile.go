package handlers

import (
	"net/http"

	"fridgechef/internal/core/recipes"
	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleGetPreferences returns a user's stored generation preferences.
// A user without stored preferences gets the zero value, not a 404.
func HandleGetPreferences(profileStore ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}

		prefs, err := profileStore.Preferences(c.Request.Context(), userID)
		if err != nil {
			common.LogError("Failed to load preferences",
				zap.String("user_id", userID),
				zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load preferences"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"preferences": prefs})
	}
}

// HandleSetPreferences stores a user's generation preferences.
func HandleSetPreferences(profileStore ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}

		var prefs recipes.Preferences
		if err := c.ShouldBindJSON(&prefs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if err := profileStore.SetPreferences(c.Request.Context(), userID, prefs); err != nil {
			common.LogError("Failed to store preferences",
				zap.String("user_id", userID),
				zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to store preferences"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"saved": true})
	}
}
