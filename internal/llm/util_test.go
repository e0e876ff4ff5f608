package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"similarity\": 0.7}\n```",
			expected: `{"similarity": 0.7}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"similarity\": 0.7}\n```",
			expected: `{"similarity": 0.7}`,
		},
		{
			name:     "plain object",
			input:    `{"review": "ok"}`,
			expected: `{"review": "ok"}`,
		},
		{
			name:     "preamble",
			input:    "Here is the candidate profile:\n{\"first_name\": \"Ada\"}",
			expected: `{"first_name": "Ada"}`,
		},
		{
			name:     "trailing chatter",
			input:    "{\"skills\": [\"go\"]}\n\nLet me know if you need more.",
			expected: `{"skills": ["go"]}`,
		},
		{
			name:     "braces inside strings",
			input:    `Result: {"reason": "uses {templates} and \"quotes\""}`,
			expected: `{"reason": "uses {templates} and \"quotes\""}`,
		},
		{
			name:     "array",
			input:    "Skills:\n[\"go\", \"sql\"]",
			expected: `["go", "sql"]`,
		},
		{
			name:     "no json",
			input:    "  nothing here  ",
			expected: "nothing here",
		},
		{
			name:     "unbalanced",
			input:    `{"a": 1`,
			expected: `{"a": 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractBalanced(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 1}}`, extractJSONObject(`{"a": {"b": 1}} tail`))
	assert.Equal(t, `[[1], [2]]`, extractJSONArray(`[[1], [2]] tail`))
	assert.Equal(t, "", extractJSONObject(""))
	assert.Equal(t, "", extractJSONObject("not json"))
	assert.Equal(t, "", extractJSONArray(`{"a": 1}`))
}
