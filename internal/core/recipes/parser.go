package recipes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fridgechef/internal/pkg/common"
)

// ErrMalformedResponse signals that a generation response contained no
// usable recipes array. There is no safe default recipe to fabricate,
// so this is the one hard failure in the pipeline; callers fall back to
// saved recipes.
var ErrMalformedResponse = errors.New("malformed recipe response")

// ParseResponse extracts structured recipes from a raw generation
// response. The first balanced JSON span must contain a top-level
// "recipes" array; everything below that level is coerced permissively
// with per-field defaults.
func ParseResponse(rawText string) ([]Recipe, error) {
	span, ok := common.ExtractJSONObject(rawText)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}

	var envelope struct {
		Recipes json.RawMessage `json:"recipes"`
	}
	if err := common.ParseJSON(span, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(envelope.Recipes) == 0 {
		return nil, fmt.Errorf("%w: missing recipes array", ErrMalformedResponse)
	}

	var rawRecipes []map[string]interface{}
	if err := common.ParseJSON(string(envelope.Recipes), &rawRecipes); err != nil {
		return nil, fmt.Errorf("%w: recipes is not an array", ErrMalformedResponse)
	}

	result := make([]Recipe, 0, len(rawRecipes))
	for _, raw := range rawRecipes {
		result = append(result, coerceRecipe(raw))
	}

	return result, nil
}

// coerceRecipe fills a Recipe from an untyped object, defaulting every
// missing or wrong-typed field. Ingestion is deliberately permissive;
// only the top-level shape is strict.
func coerceRecipe(raw map[string]interface{}) Recipe {
	r := Recipe{
		ID:           common.GenerateUUID(),
		Title:        stringOr(raw["title"], "Untitled Recipe"),
		Description:  stringOr(raw["description"], ""),
		Ingredients:  stringListOr(raw["ingredients"]),
		Instructions: stringListOr(raw["instructions"]),
		PrepTime:     clampNonNegative(intOr(raw["prep_time"], 15)),
		CookTime:     clampNonNegative(intOr(raw["cook_time"], 30)),
		Servings:     atLeastOne(intOr(raw["servings"], 4)),
		DietaryTags:  stringListOr(raw["dietary_tags"]),
		Difficulty:   difficultyOr(raw["difficulty"]),
	}

	cuisine := stringListOr(raw["cuisine"])
	if len(cuisine) == 0 {
		cuisine = []string{"International"}
	}
	r.Cuisine = cuisine

	if tips := stringListOr(raw["tips"]); len(tips) > 0 {
		r.Tips = tips
	}
	if variations := stringListOr(raw["variations"]); len(variations) > 0 {
		r.Variations = variations
	}

	return r
}

func stringOr(v interface{}, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func intOr(v interface{}, def int) int {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(n)
	}
	return def
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func stringListOr(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(list))
	for _, item := range list {
		// Blank entries would later count as unmatchable missing
		// ingredients, so they are dropped here.
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			result = append(result, s)
		}
	}
	return result
}

func difficultyOr(v interface{}) string {
	if s, ok := v.(string); ok {
		switch s {
		case "easy", "medium", "hard":
			return s
		}
	}
	return "medium"
}
