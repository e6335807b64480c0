package importer

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// Input types for string formats the text element can render natively.
var formatInputTypes = map[string]string{
	"email":     "email",
	"date":      "date",
	"date-time": "datetime-local",
	"time":      "time",
	"uri":       "url",
	"url":       "url",
	"password":  "password",
}

type converter struct {
	used   map[string]int
	logger *slog.Logger
}

// properties converts the object properties of schema, allOf members
// included, in name order.
func (c converter) properties(schema *openapi3.Schema, path string) []survey.Element {
	props, required := flatten(schema)
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []survey.Element
	for _, name := range names {
		ref := props[name]
		if ref == nil || ref.Value == nil {
			c.logger.Debug("skipping unresolved property", slog.String("property", join(path, name)))
			continue
		}
		el, ok := c.element(name, ref.Value, join(path, name))
		if !ok {
			continue
		}
		el.IsRequired = required[name]
		out = append(out, el)
	}
	return out
}

func (c converter) element(name string, schema *openapi3.Schema, path string) (survey.Element, bool) {
	el := survey.Element{
		Name:        c.claim(name),
		Title:       firstNonEmpty(schema.Title, humanize(name)),
		Description: strings.TrimSpace(schema.Description),
	}

	switch kind := schemaType(schema); {
	case len(schema.Enum) > 0:
		el.Type = survey.TypeDropdown
		el.Choices = choices(schema.Enum)
	case kind == "boolean":
		el.Type = survey.TypeBoolean
	case kind == "integer" || kind == "number":
		el.Type = survey.TypeText
		el.Extra = map[string]any{"inputType": "number"}
		if schema.Min != nil {
			el.Extra["min"] = *schema.Min
		}
		if schema.Max != nil {
			el.Extra["max"] = *schema.Max
		}
	case kind == "array":
		items := schema.Items
		if items != nil && items.Value != nil && len(items.Value.Enum) > 0 {
			el.Type = survey.TypeCheckbox
			el.Choices = choices(items.Value.Enum)
			break
		}
		if items != nil && items.Value != nil && schemaType(items.Value) == "object" {
			el.Type = survey.TypePanelDynamic
			el.Extra = map[string]any{"templateElements": c.properties(items.Value, path+"[]")}
			break
		}
		c.logger.Debug("skipping unsupported array property", slog.String("property", path))
		return survey.Element{}, false
	case kind == "object" || len(schema.Properties) > 0 || len(schema.AllOf) > 0:
		el.Type = survey.TypePanel
		el.Elements = c.properties(schema, path)
		if el.Elements == nil {
			el.Elements = []survey.Element{}
		}
	case kind == "string" || kind == "":
		el.Type = survey.TypeText
		if inputType, ok := formatInputTypes[schema.Format]; ok {
			el.Extra = map[string]any{"inputType": inputType}
		}
		if schema.MaxLength != nil {
			if el.Extra == nil {
				el.Extra = map[string]any{}
			}
			el.Extra["maxLength"] = *schema.MaxLength
		}
	default:
		c.logger.Debug("skipping unsupported property", slog.String("property", path), slog.String("type", kind))
		return survey.Element{}, false
	}
	return el, true
}

// claim reserves name, suffixing it when the document already uses it.
func (c converter) claim(name string) string {
	if c.used[name] == 0 {
		c.used[name]++
		return name
	}
	return survey.NextName(c.used, name)
}

func flatten(schema *openapi3.Schema) (map[string]*openapi3.SchemaRef, map[string]bool) {
	props := make(map[string]*openapi3.SchemaRef)
	required := make(map[string]bool)
	var walk func(s *openapi3.Schema)
	walk = func(s *openapi3.Schema) {
		if s == nil {
			return
		}
		for _, member := range s.AllOf {
			if member != nil {
				walk(member.Value)
			}
		}
		for name, prop := range s.Properties {
			props[name] = prop
		}
		for _, name := range s.Required {
			required[name] = true
		}
	}
	walk(schema)
	return props, required
}

func schemaType(schema *openapi3.Schema) string {
	if schema == nil || schema.Type == nil {
		return ""
	}
	for _, t := range schema.Type.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}

func choices(values []any) []survey.Choice {
	out := make([]survey.Choice, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		out = append(out, survey.Choice{Value: v})
	}
	return out
}

func humanize(name string) string {
	var b strings.Builder
	for idx, r := range name {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
			continue
		case idx > 0 && r >= 'A' && r <= 'Z':
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	if out == "" {
		return name
	}
	return strings.ToUpper(out[:1]) + out[1:]
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return fmt.Sprintf("%s.%s", path, name)
}
