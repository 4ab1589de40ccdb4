package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases and trims", "  Tomatoes ", "tomatoes"},
		{"strips punctuation", "extra-virgin lettuce!", "extravirgin lettuce"},
		{"collapses whitespace", "olive   oil", "olive oil"},
		{"singular to plural", "tomato", "tomatoes"},
		{"oil variant collapses", "vegetable oil", "olive oil"},
		{"pepper variant collapses", "red bell peppers", "peppers"},
		{"bare pepper collapses", "black pepper", "peppers"},
		{"leafy green collapses", "romaine hearts", "lettuce"},
		{"cheese variant collapses", "shredded cheddar", "cheese"},
		{"unmatched passes through", "avocados", "avocados"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Tomatoes", "tomato", "red bell peppers", "vegetable oil",
		"romaine", "shredded cheddar", "eggs", "milk", "avocados",
		"green onions", "baby carrots", "portobello mushroom",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", input)
	}
}
