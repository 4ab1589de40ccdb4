package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{
			name:     "bare object",
			input:    `{"a":1}`,
			expected: `{"a":1}`,
			found:    true,
		},
		{
			name:     "object wrapped in prose",
			input:    "Sure! Here you go: {\"a\":1} hope that helps",
			expected: `{"a":1}`,
			found:    true,
		},
		{
			name:     "nested objects stay balanced",
			input:    `prefix {"a":{"b":{"c":2}}} suffix`,
			expected: `{"a":{"b":{"c":2}}}`,
			found:    true,
		},
		{
			name:     "braces inside strings are ignored",
			input:    `{"text":"use { and } freely"}`,
			expected: `{"text":"use { and } freely"}`,
			found:    true,
		},
		{
			name:     "escaped quotes inside strings",
			input:    `{"text":"a \"quoted\" brace }"}`,
			expected: `{"text":"a \"quoted\" brace }"}`,
			found:    true,
		},
		{
			name:  "no object at all",
			input: "eggs, milk, tomatoes",
			found: false,
		},
		{
			name:  "unbalanced open brace",
			input: `{"a":1`,
			found: false,
		},
		{
			name:     "first of two objects wins",
			input:    `{"a":1} {"b":2}`,
			expected: `{"a":1}`,
			found:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.input)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	err := ParseJSON(`{"a":1} trailing`, &v)
	assert.Error(t, err)
}
