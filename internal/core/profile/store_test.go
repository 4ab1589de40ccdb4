package profile

import (
	"context"
	"testing"

	"fridgechef/internal/core/recipes"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	common.Logger = zap.NewNop()
}

// A disabled store is represented as nil; reads degrade to empty data
// and writes fail loudly. The handlers rely on both.
func TestNilStoreDegrades(t *testing.T) {
	store, err := NewStore(&config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	require.Nil(t, store)

	ctx := context.Background()

	prefs, err := store.Preferences(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, recipes.Preferences{}, prefs)

	saved, err := store.SavedRecipes(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, saved)

	err = store.SaveRecipe(ctx, "user-1", recipes.Recipe{Title: "Omelette"})
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)

	err = store.SetPreferences(ctx, "user-1", recipes.Preferences{})
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)

	assert.NoError(t, store.Close())
}

func TestKeyScheme(t *testing.T) {
	assert.Equal(t, "profile:u1:preferences", preferencesKey("u1"))
	assert.Equal(t, "profile:u1:recipes", savedRecipesKey("u1"))
}
