package recipes

import (
	"sort"
	"strings"
)

// ScoreMissing computes the recipe ingredient phrases not covered by
// the available set. A phrase counts as available when it and some
// pantry item contain each other as case-insensitive substrings in
// either direction; that is loose on purpose, so "red bell peppers"
// still matches "peppers".
func ScoreMissing(recipeIngredients []string, available []string) ([]string, int) {
	lowered := make([]string, len(available))
	for i, a := range available {
		lowered[i] = strings.ToLower(strings.TrimSpace(a))
	}

	missing := make([]string, 0)
	for _, phrase := range recipeIngredients {
		p := strings.ToLower(strings.TrimSpace(phrase))
		found := false
		for _, a := range lowered {
			if a == "" || p == "" {
				continue
			}
			if strings.Contains(p, a) || strings.Contains(a, p) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, phrase)
		}
	}

	return missing, len(missing)
}

// AdaptiveThreshold is the maximum tolerated missing-ingredient count
// as a function of pantry size. Small pantries get more lenient
// matching so the user is not shown zero results.
func AdaptiveThreshold(pantrySize int) int {
	if pantrySize <= 3 {
		if n := pantrySize + 2; n < 3 {
			return n
		}
		return 3
	}
	return 2
}

// Rank decorates candidates with their missing ingredients, drops the
// ones over the adaptive threshold and sorts the rest ascending by
// missing count. The sort is stable, so zero-missing recipes surface
// first and ties keep generation order.
func Rank(candidates []Recipe, available []string) []RecipeWithMissing {
	threshold := AdaptiveThreshold(len(available))

	ranked := make([]RecipeWithMissing, 0, len(candidates))
	for _, r := range candidates {
		missing, count := ScoreMissing(r.Ingredients, available)
		if count > threshold {
			continue
		}
		ranked = append(ranked, RecipeWithMissing{
			Recipe:             r,
			MissingIngredients: missing,
			MissingCount:       count,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MissingCount < ranked[j].MissingCount
	})

	return ranked
}
