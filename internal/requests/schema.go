package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema that a request body must satisfy.
type Schema struct {
	Name       string
	Definition map[string]any
}

var contentFields = map[string]any{
	"content":       map[string]any{"type": "string", "minLength": 1},
	"upload_method": map[string]any{"enum": []any{"text", "file"}},
	"file_type":     map[string]any{"type": "string"},
	"file_name":     map[string]any{"type": []any{"string", "null"}},
}

func withContent(props map[string]any) map[string]any {
	for k, v := range contentFields {
		props[k] = v
	}
	return props
}

// Request body schemas.
var (
	SchemaStudyPlan = &Schema{
		Name: "study-plan",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"subjects": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name":       map[string]any{"type": "string", "minLength": 1},
							"difficulty": map[string]any{"enum": []any{"Easy", "Medium", "Hard"}},
							"exam_date":  map[string]any{"type": []any{"string", "null"}},
						},
						"required": []any{"name", "difficulty", "exam_date"},
					},
				},
				"daily_hours": map[string]any{"type": "integer", "minimum": MinDailyHours, "maximum": MaxDailyHours},
			},
			"required": []any{"subjects", "daily_hours"},
		},
	}

	SchemaAskDoubt = &Schema{
		Name: "ask-doubt",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
			},
			"required": []any{"question"},
		},
	}

	SchemaProgress = &Schema{
		Name: "analyze-progress",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"completed_tasks": map[string]any{"type": "integer", "minimum": 0},
				"total_tasks":     map[string]any{"type": "integer", "minimum": 1},
				"study_hours":     map[string]any{"type": "number", "minimum": 0},
				"focus_level":     map[string]any{"type": "integer", "minimum": MinFocus, "maximum": MaxFocus},
				"tasks":           map[string]any{"type": "array"},
			},
			"required": []any{"completed_tasks", "total_tasks", "study_hours", "focus_level", "tasks"},
		},
	}

	SchemaNotes = &Schema{
		Name: "upload-notes",
		Definition: map[string]any{
			"type": "object",
			"properties": withContent(map[string]any{
				"title":   map[string]any{"type": "string", "minLength": 1},
				"subject": map[string]any{"type": "string", "minLength": 1},
			}),
			"required": []any{"title", "subject", "content", "upload_method", "file_type", "file_name"},
		},
	}

	SchemaQuestions = &Schema{
		Name: "generate-questions",
		Definition: map[string]any{
			"type": "object",
			"properties": withContent(map[string]any{
				"type":          map[string]any{"type": "string", "minLength": 1},
				"num_questions": map[string]any{"type": "integer", "minimum": 1, "maximum": MaxQuestionNum},
			}),
			"required": []any{"content", "type", "num_questions", "upload_method", "file_type", "file_name"},
		},
	}
)

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// Validate checks v, marshaled as JSON, against schema. A failure is
// reported as *ValidationError naming the first offending field.
func Validate(schema *Schema, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", schema.Name, err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse %s request: %w", schema.Name, err)
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ValidationError{
			Field:   failedField(err),
			Message: "Request is not valid",
			Err:     err,
		}
	}
	return nil
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed
	// numbers, so round-trip the definition.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

// failedField walks to the deepest cause and joins its instance location.
func failedField(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return ""
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return strings.Join(ve.InstanceLocation, ".")
}
