package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "collapses spaces", input: "Senior    Go\tEngineer", expected: "Senior Go Engineer"},
		{name: "line endings", input: "a\r\nb\rc", expected: "a\nb\nc"},
		{name: "blank line runs", input: "Experience\n\n\n\n\nEducation", expected: "Experience\n\nEducation"},
		{name: "keeps bullets", input: "  -   Built APIs\n  •  Led team", expected: "- Built APIs\n• Led team"},
		{name: "keeps headings", input: "## Skills  \nGo", expected: "## Skills\nGo"},
		{name: "nul bytes", input: "Data Scientist\x00", expected: "Data Scientist"},
		{name: "whitespace only", input: " \n\t\n ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	input := "Résumé   \r\n\r\n\r\n- Go  developer\n\n\n\nPython"
	once := CleanText(input)
	assert.Equal(t, once, CleanText(once))
}
