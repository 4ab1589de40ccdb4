package ingredient

import (
	"strings"
	"unicode"
)

// genericTerms is the blocklist of category, container and vague words
// the vision model likes to return instead of actual food items.
var genericTerms = map[string]struct{}{
	"food": {}, "foods": {},
	"fruit": {}, "fruits": {},
	"vegetable": {}, "vegetables": {},
	"produce":   {},
	"groceries": {},
	"item":      {}, "items": {},
	"ingredient": {}, "ingredients": {},
	"condiment": {}, "condiments": {},
	"spice": {}, "spices": {},
	"seasoning": {}, "seasonings": {},
	"sauce": {}, "sauces": {},
	"oils":     {},
	"beverage": {}, "beverages": {},
	"drink": {}, "drinks": {},
	"snack": {}, "snacks": {},
	"leftovers": {},
	"various":   {},
	"assorted":  {},
	"misc":      {}, "miscellaneous": {},
	"unknown": {}, "other": {},
	"stuff": {}, "things": {},
	"container": {}, "containers": {},
	"jar": {}, "jars": {},
	"bottle": {}, "bottles": {},
	"can": {}, "cans": {},
	"box": {}, "boxes": {},
	"bag": {}, "bags": {},
	"package": {}, "packaging": {},
	"wrapper": {},
	"plastic": {},
	"shelf":   {}, "drawer": {},
}

var veganExclusions = []string{
	"milk", "cheese", "butter", "yogurt", "cream", "eggs", "honey",
	"meat", "chicken", "beef", "pork", "fish", "salmon", "tuna", "bacon",
}

var vegetarianExclusions = []string{
	"meat", "chicken", "beef", "pork", "fish", "salmon", "tuna",
	"bacon", "ham", "turkey",
}

var glutenExclusions = []string{
	"bread", "pasta", "flour", "wheat", "barley", "rye", "soy sauce",
}

// IsValid reports whether a raw token is an acceptable concrete
// ingredient. Generic category/container words, too-short tokens and
// letterless tokens are rejected. When dietaryRestrictions mentions
// vegan, vegetarian or gluten-free, matching animal products or gluten
// sources are rejected as well. All checks are case-insensitive
// substring tests.
func IsValid(name string, dietaryRestrictions string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(name))

	if len(cleaned) < 2 {
		return false
	}
	if !containsLetter(cleaned) {
		return false
	}
	if _, blocked := genericTerms[cleaned]; blocked {
		return false
	}

	restrictions := strings.ToLower(dietaryRestrictions)
	if strings.Contains(restrictions, "vegan") {
		if containsAny(cleaned, veganExclusions) {
			return false
		}
	} else if strings.Contains(restrictions, "vegetarian") {
		if containsAny(cleaned, vegetarianExclusions) {
			return false
		}
	}
	if strings.Contains(restrictions, "gluten-free") {
		if containsAny(cleaned, glutenExclusions) {
			return false
		}
	}

	return true
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
