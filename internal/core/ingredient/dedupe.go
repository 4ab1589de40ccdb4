package ingredient

import "strings"

// equivalenceGroups collapse near-duplicates the normalization rules do
// not cover. Any member of a group duplicates every other member.
var equivalenceGroups = [][]string{
	{"lemon", "lemons"},
	{"lime", "limes"},
	{"fruit", "fruits"},
	{"oil", "oils", "olive oil"},
	{"juice", "juices"},
}

// groupIndex maps each member to its group id, built once at init.
var groupIndex = func() map[string]int {
	idx := make(map[string]int)
	for i, group := range equivalenceGroups {
		for _, member := range group {
			idx[member] = i
		}
	}
	return idx
}()

// Dedupe collapses duplicate ingredient strings, keeping the first
// occurrence of each normalized form or equivalence group. Input order
// is preserved.
func Dedupe(ingredients []string) []string {
	seen := make(map[string]struct{}, len(ingredients))
	seenGroups := make(map[int]struct{})

	result := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		key := strings.ToLower(strings.TrimSpace(ing))

		if _, dup := seen[key]; dup {
			continue
		}
		if gid, ok := groupIndex[key]; ok {
			if _, dup := seenGroups[gid]; dup {
				continue
			}
			seenGroups[gid] = struct{}{}
		}

		seen[key] = struct{}{}
		result = append(result, ing)
	}

	return result
}
