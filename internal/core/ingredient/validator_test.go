package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"concrete ingredient", "tomatoes", true},
		{"generic category word", "vegetables", false},
		{"container word", "jar", false},
		{"vague word", "various", false},
		{"too short", "a", false},
		{"no letters", "1234", false},
		{"case insensitive blocklist", "  Condiments ", false},
		{"two letter food", "oj", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValid(tt.input, ""))
		})
	}
}

func TestIsValidDietaryRestrictions(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		restrictions string
		expected     bool
	}{
		{"vegan rejects chicken", "chicken breast", "vegan", false},
		{"vegan rejects dairy", "whole milk", "vegan", false},
		{"vegan rejects honey", "raw honey", "vegan", false},
		{"vegan accepts tofu", "tofu", "vegan", true},
		{"vegetarian rejects chicken", "chicken breast", "vegetarian", false},
		{"vegetarian accepts dairy", "whole milk", "vegetarian", true},
		{"vegetarian rejects ham", "ham hock", "vegetarian", false},
		{"gluten-free rejects bread", "sourdough bread", "gluten-free", false},
		{"gluten-free rejects soy sauce", "soy sauce", "gluten-free", false},
		{"gluten-free accepts rice", "rice", "gluten-free", true},
		{"combined restrictions", "pasta", "vegan, gluten-free", false},
		{"substring match in joined prefs", "bacon", "prefers vegan meals", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValid(tt.input, tt.restrictions))
		})
	}
}
