package ingredient

import (
	"strings"
	"unicode"
)

// canonRule maps a pattern to its canonical replacement. A rule fires
// when the cleaned string equals the pattern or contains it as a
// substring; the first firing rule wins.
type canonRule struct {
	pattern     string
	replacement string
}

// canonRules are tested in order: singular/plural unification first,
// then category collapses. Every replacement must itself normalize to
// itself, otherwise Normalize stops being idempotent.
var canonRules = []canonRule{
	// singular -> plural unification
	{"tomato", "tomatoes"},
	{"potato", "potatoes"},
	{"carrot", "carrots"},
	{"onion", "onions"},
	{"mushroom", "mushrooms"},

	// oil variants
	{"vegetable oil", "olive oil"},
	{"canola oil", "olive oil"},
	{"cooking oil", "olive oil"},

	// leafy greens
	{"romaine", "lettuce"},
	{"iceberg", "lettuce"},
	{"salad greens", "lettuce"},
	{"mixed greens", "lettuce"},
	{"spring mix", "lettuce"},

	// pepper variants
	{"bell pepper", "peppers"},
	{"chili pepper", "peppers"},
	{"jalapeno", "peppers"},
	{"pepper", "peppers"},

	// cheese variants
	{"cheddar", "cheese"},
	{"mozzarella", "cheese"},
	{"parmesan", "cheese"},
}

// Normalize maps a raw ingredient token to its canonical form:
// lowercase, trimmed, punctuation stripped, whitespace collapsed, then
// the first matching canonicalization rule applied. Total and
// idempotent; unmatched strings come back cleaned but otherwise
// unchanged.
func Normalize(raw string) string {
	cleaned := clean(raw)

	for _, rule := range canonRules {
		if cleaned == rule.pattern || strings.Contains(cleaned, rule.pattern) {
			return rule.replacement
		}
	}

	return cleaned
}

// clean lowercases, trims, strips punctuation and collapses internal
// whitespace runs to single spaces.
func clean(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
