package vision

import (
	"strings"

	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/pkg/common"
)

// Tier is the confidence bucket an ingredient was reported under.
type Tier string

const (
	TierHigh    Tier = "high"
	TierMedium  Tier = "medium"
	TierDefault Tier = "default"
)

// Confidence maps a tier to its numeric score.
func (t Tier) Confidence() float64 {
	switch t {
	case TierHigh:
		return 0.95
	case TierMedium:
		return 0.8
	default:
		return 0.7
	}
}

// Item is one detected ingredient with the tier it came from.
type Item struct {
	Name string `json:"name"`
	Tier Tier   `json:"tier"`
}

// structuredResponse is the shape the vision prompt asks for. The model
// does not reliably produce it.
type structuredResponse struct {
	HighConfidence []struct {
		Name string `json:"name"`
	} `json:"high_confidence"`
	MediumConfidence []struct {
		Name string `json:"name"`
	} `json:"medium_confidence"`
}

// ParseResponse extracts validated, normalized ingredients from a raw
// vision model response. It degrades through three levels of structure:
// tier-tagged JSON arrays, a comma-separated list, and finally an empty
// result. It never fails on malformed input.
func ParseResponse(rawText string, dietaryRestrictions string) []Item {
	if span, ok := common.ExtractJSONObject(rawText); ok {
		var resp structuredResponse
		if err := common.ParseJSON(span, &resp); err == nil {
			if resp.HighConfidence != nil || resp.MediumConfidence != nil {
				return parseStructured(&resp, dietaryRestrictions)
			}
		}
	}

	return parseCommaList(rawText, dietaryRestrictions)
}

func parseStructured(resp *structuredResponse, dietaryRestrictions string) []Item {
	items := make([]Item, 0, len(resp.HighConfidence)+len(resp.MediumConfidence))
	seen := make(map[string]struct{})

	appendTier := func(names []struct {
		Name string `json:"name"`
	}, tier Tier) {
		for _, entry := range names {
			name := strings.ToLower(strings.TrimSpace(entry.Name))
			if !ingredient.IsValid(name, dietaryRestrictions) {
				continue
			}
			normalized := ingredient.Normalize(name)
			if _, dup := seen[normalized]; dup {
				continue
			}
			seen[normalized] = struct{}{}
			items = append(items, Item{Name: normalized, Tier: tier})
		}
	}

	appendTier(resp.HighConfidence, TierHigh)
	appendTier(resp.MediumConfidence, TierMedium)

	return items
}

func parseCommaList(rawText string, dietaryRestrictions string) []Item {
	items := make([]Item, 0)
	seen := make(map[string]struct{})

	for _, token := range strings.Split(strings.ToLower(rawText), ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if !ingredient.IsValid(token, dietaryRestrictions) {
			continue
		}
		normalized := ingredient.Normalize(token)
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		items = append(items, Item{Name: normalized, Tier: TierDefault})
	}

	return items
}
