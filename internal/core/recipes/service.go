package recipes

import (
	"context"
	"fmt"
	"strings"

	"fridgechef/internal/core/ai/provider"
	aiservice "fridgechef/internal/core/ai/service"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"go.uber.org/zap"
)

// Service generates recipes from an ingredient list and ranks them by
// how many extra ingredients the user would need to buy.
type Service struct {
	config    *config.Config
	aiService *aiservice.Service
}

// NewService creates the recipe generation service.
func NewService(cfg *config.Config, aiService *aiservice.Service) *Service {
	return &Service{
		config:    cfg,
		aiService: aiService,
	}
}

// Generate asks the text model for recipes built (mostly) from the
// given ingredients, parses the response and returns candidates ranked
// and filtered against the available set. A malformed model response
// surfaces as ErrMalformedResponse so the caller can fall back to saved
// recipes.
func (s *Service) Generate(ctx context.Context, ingredients []string, prefs Preferences, count int) ([]RecipeWithMissing, error) {
	if len(ingredients) == 0 {
		return nil, common.NewValidationError("at least one ingredient is required")
	}
	if count <= 0 {
		count = s.config.Recipes.DefaultCount
	}
	if count > s.config.Recipes.MaxCount {
		count = s.config.Recipes.MaxCount
	}

	resp, err := s.aiService.ProcessRequest(ctx, &provider.Request{
		Model:  s.config.OpenRouter.TextModel,
		Prompt: buildPrompt(ingredients, prefs, count),
	})
	if err != nil {
		return nil, fmt.Errorf("AI service error: %w", err)
	}
	if resp == nil || resp.Content == "" {
		return nil, fmt.Errorf("%w: empty AI response", ErrMalformedResponse)
	}

	candidates, err := ParseResponse(resp.Content)
	if err != nil {
		return nil, err
	}

	ranked := Rank(candidates, ingredients)

	common.LogInfo("recipes generated",
		zap.Int("candidates", len(candidates)),
		zap.Int("in_range", len(ranked)),
		zap.Int("pantry_size", len(ingredients)),
		zap.Int("threshold", AdaptiveThreshold(len(ingredients))),
	)

	return ranked, nil
}

// RankSaved applies the same matcher to an already-saved recipe list.
// Used as the fallback path when generation fails or yields nothing.
func (s *Service) RankSaved(saved []Recipe, available []string) []RecipeWithMissing {
	return Rank(saved, available)
}

func buildPrompt(ingredients []string, prefs Preferences, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create %d cooking recipes using mostly these ingredients: %s.\n",
		count, strings.Join(ingredients, ", "))

	if prefs.DietaryRestrictions != "" {
		fmt.Fprintf(&b, "Dietary restrictions: %s.\n", prefs.DietaryRestrictions)
	}
	if len(prefs.FoodGenres) > 0 {
		fmt.Fprintf(&b, "Preferred cuisines: %s.\n", strings.Join(prefs.FoodGenres, ", "))
	}
	if prefs.ServingSize > 0 {
		fmt.Fprintf(&b, "Each recipe should serve %d.\n", prefs.ServingSize)
	}

	b.WriteString(`You may add a few common pantry staples, but keep extra shopping minimal.
Respond with compact JSON in exactly this shape and nothing else:
{"recipes":[{"title":"","description":"","ingredients":[""],"instructions":[""],"prep_time":15,"cook_time":30,"servings":4,"cuisine":[""],"dietary_tags":[""],"difficulty":"easy|medium|hard","tips":[""],"variations":[""]}]}
Rules:
1. All fields use double quotes
2. prep_time and cook_time are integer minutes
3. difficulty is exactly one of easy, medium, hard
4. Return a single JSON object, no markdown fences`)

	return b.String()
}
