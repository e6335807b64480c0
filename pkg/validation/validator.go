// Package validation checks survey documents at authoring time: a JSON
// Schema pass over the serialised document followed by structural checks
// the schema cannot express.
package validation

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

//go:embed survey.schema.json
var defaultSchema []byte

// rootField is how gojsonschema names the document root.
const rootField = "(root)"

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures validation outcomes for builder previews.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

func (r *SchemaValidationResult) add(issue SchemaIssue) {
	r.Valid = false
	r.Issues = append(r.Issues, issue)
}

// Option customises a Validator.
type Option func(*config)

type config struct {
	schema []byte
	path   string
}

// WithSchema replaces the embedded schema.
func WithSchema(raw []byte) Option {
	return func(c *config) {
		if len(raw) > 0 {
			c.schema = raw
		}
	}
}

// WithSchemaFile loads the schema from path.
func WithSchemaFile(path string) Option {
	return func(c *config) {
		c.path = strings.TrimSpace(path)
	}
}

// Validator holds a compiled schema and is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles the configured schema.
func NewValidator(opts ...Option) (*Validator, error) {
	cfg := config{schema: defaultSchema}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.path != "" {
		raw, err := os.ReadFile(cfg.path)
		if err != nil {
			return nil, fmt.Errorf("validation: read schema: %w", err)
		}
		cfg.schema = raw
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(cfg.schema))
	if err != nil {
		return nil, fmt.Errorf("validation: compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Validate checks doc with the embedded schema.
func Validate(ctx context.Context, doc survey.Document) SchemaValidationResult {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = NewValidator()
	})
	if defaultErr != nil {
		return SchemaValidationResult{Issues: []SchemaIssue{{Message: defaultErr.Error()}}}
	}
	return defaultValidator.Validate(ctx, doc)
}

// Validate checks doc against the schema and the structural rules.
func (v *Validator) Validate(ctx context.Context, doc survey.Document) SchemaValidationResult {
	raw, err := json.Marshal(doc)
	if err != nil {
		return SchemaValidationResult{Issues: []SchemaIssue{{Message: "encode document: " + err.Error()}}}
	}
	result := v.validateRaw(ctx, raw)
	checkStructure(doc, &result)
	return result
}

// ValidateRaw checks a serialised document. JSON is validated as written;
// YAML is decoded first. Structural rules run when the document decodes.
func (v *Validator) ValidateRaw(ctx context.Context, raw []byte) SchemaValidationResult {
	doc, decodeErr := survey.Decode(raw)
	payload := raw
	if !json.Valid(raw) {
		if decodeErr != nil {
			return SchemaValidationResult{Issues: []SchemaIssue{{Message: decodeErr.Error()}}}
		}
		encoded, err := json.Marshal(doc)
		if err != nil {
			return SchemaValidationResult{Issues: []SchemaIssue{{Message: "encode document: " + err.Error()}}}
		}
		payload = encoded
	}
	result := v.validateRaw(ctx, payload)
	if decodeErr == nil {
		checkStructure(doc, &result)
	}
	return result
}

func (v *Validator) validateRaw(ctx context.Context, raw []byte) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	if err := ctx.Err(); err != nil {
		result.add(SchemaIssue{Message: err.Error()})
		return result
	}
	outcome, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		result.add(SchemaIssue{Message: strings.TrimSpace(err.Error())})
		return result
	}
	for _, desc := range outcome.Errors() {
		field := fieldFromResult(desc)
		result.add(SchemaIssue{
			Path:    pointerFromField(field),
			Field:   field,
			Message: strings.TrimSpace(desc.Description()),
		})
	}
	return result
}

// fieldFromResult returns the dotted field of a schema error, pointing at the
// missing property for "required" errors.
func fieldFromResult(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if field == rootField {
		field = ""
	}
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok && prop != "" {
			if field == "" {
				return prop
			}
			return field + "." + prop
		}
	}
	return field
}

func pointerFromField(field string) string {
	if field == "" {
		return "#"
	}
	parts := strings.Split(field, ".")
	for idx, part := range parts {
		part = strings.ReplaceAll(part, "~", "~0")
		parts[idx] = strings.ReplaceAll(part, "/", "~1")
	}
	return "#/" + strings.Join(parts, "/")
}

func fieldFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	for idx, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[idx] = strings.ReplaceAll(part, "~0", "~")
	}
	return strings.Join(parts, ".")
}
