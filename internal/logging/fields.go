package logging

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by the engine components.
const (
	FieldComponent = "component"
	FieldFilename  = "filename"
	FieldQuestion  = "question"
	FieldBackend   = "linguistic_backend"
	FieldRunID     = "run_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace and
// dropping entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}
