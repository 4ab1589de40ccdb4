package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"fridgechef/internal/core/recipes"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Store persists user preferences and saved recipes in Redis. The core
// pipeline reads preferences and falls back to saved recipes when
// generation fails; it never mutates preferences.
type Store struct {
	client *redis.Client
	config *config.RedisConfig
}

// NewStore connects to Redis. Returns nil when the store is disabled;
// callers treat a nil store as "no profile data available".
func NewStore(cfg *config.RedisConfig) (*Store, error) {
	if !cfg.Enabled {
		common.LogInfo("profile store disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("profile store connected", zap.String("addr", cfg.Addr))

	return &Store{
		client: client,
		config: cfg,
	}, nil
}

func preferencesKey(userID string) string {
	return "profile:" + userID + ":preferences"
}

func savedRecipesKey(userID string) string {
	return "profile:" + userID + ":recipes"
}

// Preferences loads a user's stored generation preferences. A missing
// profile yields zero-value preferences, not an error.
func (s *Store) Preferences(ctx context.Context, userID string) (recipes.Preferences, error) {
	var prefs recipes.Preferences
	if s == nil || userID == "" {
		return prefs, nil
	}

	data, err := s.client.Get(ctx, preferencesKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return prefs, nil
		}
		return prefs, fmt.Errorf("failed to load preferences: %w", err)
	}

	if err := json.Unmarshal(data, &prefs); err != nil {
		return recipes.Preferences{}, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	return prefs, nil
}

// SetPreferences stores a user's generation preferences.
func (s *Store) SetPreferences(ctx context.Context, userID string, prefs recipes.Preferences) error {
	if s == nil {
		return common.ErrServiceUnavailable
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	return s.client.Set(ctx, preferencesKey(userID), data, 0).Err()
}

// SavedRecipes loads a user's saved recipe collection.
func (s *Store) SavedRecipes(ctx context.Context, userID string) ([]recipes.Recipe, error) {
	if s == nil || userID == "" {
		return nil, nil
	}

	raw, err := s.client.LRange(ctx, savedRecipesKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load saved recipes: %w", err)
	}

	saved := make([]recipes.Recipe, 0, len(raw))
	for _, item := range raw {
		var r recipes.Recipe
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			// One corrupt entry does not poison the collection.
			common.LogWarn("skipping corrupt saved recipe",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			continue
		}
		saved = append(saved, r)
	}

	return saved, nil
}

// SaveRecipe appends a recipe to a user's saved collection.
func (s *Store) SaveRecipe(ctx context.Context, userID string, r recipes.Recipe) error {
	if s == nil {
		return common.ErrServiceUnavailable
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	return s.client.RPush(ctx, savedRecipesKey(userID), data).Err()
}

// Close releases the Redis connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}
