package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/assessment-engine/internal/prompts"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string"
	Description string
	Required    bool
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// EntityLabels are the labels requested from the model.
var EntityLabels = []string{"PERSON", "ORG", "GPE"}

// EntitiesSchema returns the extraction schema for named entities.
func EntitiesSchema() ExtractionSchema {
	hint := prompts.MustRender(prompts.EntitiesFieldHint, nil)
	fields := make([]SchemaField, 0, len(EntityLabels))
	for _, label := range EntityLabels {
		fields = append(fields, SchemaField{Name: label, Type: "[]string", Description: hint, Required: true})
	}

	return ExtractionSchema{
		Name: "NamedEntities",
		Description: prompts.MustRender(prompts.ExtractEntities, map[string]string{
			"Labels": strings.Join(EntityLabels, ", "),
		}),
		Fields: fields,
	}
}

// EntityExtractor finds named entities in text with a generative model.
type EntityExtractor struct {
	client Client
	schema ExtractionSchema
}

// NewEntityExtractor creates an EntityExtractor using client.
func NewEntityExtractor(client Client) *EntityExtractor {
	return &EntityExtractor{client: client, schema: EntitiesSchema()}
}

// ExtractEntities returns the entities found in text keyed by label.
func (e *EntityExtractor) ExtractEntities(ctx context.Context, text string) (map[string][]string, error) {
	prompt := BuildExtractionPrompt(e.schema, text)

	raw, err := e.client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		return nil, fmt.Errorf("entity extraction failed: %w", err)
	}

	var entities map[string][]string
	if err := json.Unmarshal([]byte(raw), &entities); err != nil {
		return nil, fmt.Errorf("failed to parse entity JSON: %w", err)
	}

	allowed := make(map[string]bool, len(EntityLabels))
	for _, label := range EntityLabels {
		allowed[label] = true
	}
	for label := range entities {
		if !allowed[label] {
			delete(entities, label)
		}
	}
	return entities, nil
}
