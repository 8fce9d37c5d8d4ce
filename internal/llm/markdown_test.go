package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdownFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON untouched",
			input:    `{"category":"Groceries"}`,
			expected: `{"category":"Groceries"}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"category\":\"Groceries\"}\n```",
			expected: `{"category":"Groceries"}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "fence with surrounding whitespace",
			input:    "  ```json\n[1,2,3]\n```  ",
			expected: `[1,2,3]`,
		},
		{
			name:     "fence on same line as content",
			input:    "```{\"a\":1}```",
			expected: `{"a":1}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripMarkdownFence(tt.input))
		})
	}
}
