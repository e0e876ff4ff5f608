package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes a structured extraction: the task preamble and
// the JSON fields the model must return.
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField is one field of the expected JSON output.
type SchemaField struct {
	Name        string // JSON key
	Type        string // type hint shown to the model, e.g. "string", ["string"]
	Description string
	Required    bool
}

// PromptInput is one labeled block of source text.
type PromptInput struct {
	Label string
	Text  string
}

// BuildExtractionPrompt renders schema followed by each input block.
func BuildExtractionPrompt(schema ExtractionSchema, inputs ...PromptInput) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(schema.Description))
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, typeHint))
		if field.Required {
			sb.WriteString(" (required)")
		}
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Use null for information that is not present. Do not invent values.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	for _, in := range inputs {
		label := in.Label
		if label == "" {
			label = "Input text"
		}
		sb.WriteString("\n" + label + ":\n\"\"\"\n")
		sb.WriteString(in.Text)
		sb.WriteString("\n\"\"\"\n")
	}

	return sb.String()
}
