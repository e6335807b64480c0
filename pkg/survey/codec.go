package survey

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Decode parses a document payload. JSON is attempted first, then YAML, so
// hand-written fixtures can use either notation.
func Decode(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, fmt.Errorf("survey: document payload is empty")
	}

	var doc Document
	jsonErr := json.Unmarshal(data, &doc)
	if jsonErr == nil {
		return doc, nil
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return Document{}, fmt.Errorf("survey: decode: invalid JSON (%v) or YAML (%v)", jsonErr, err)
	}
	if _, ok := generic.(map[string]any); !ok {
		return Document{}, fmt.Errorf("survey: decode: document root must be an object")
	}
	converted, err := json.Marshal(generic)
	if err != nil {
		return Document{}, fmt.Errorf("survey: decode: convert yaml: %w", err)
	}
	if err := json.Unmarshal(converted, &doc); err != nil {
		return Document{}, fmt.Errorf("survey: decode: %w", err)
	}
	return doc, nil
}

// Encode renders the document as indented JSON with a stable key order:
// modelled properties first, then extra keys sorted alphabetically.
func Encode(doc Document) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("survey: encode: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("survey: encode: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

var (
	metaKeys    = []string{"title", "description", "logo", "pages", "elements"}
	pageKeys    = []string{"name", "title", "visibleIf", "elements"}
	elementKeys = []string{"type", "name", "title", "description", "isRequired", "visibleIf", "choices", "elements"}
)

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.string("title", d.Title)
	w.string("description", d.Description)
	w.string("logo", d.Logo)
	switch d.Shape() {
	case ShapePaged:
		w.value("pages", d.Pages)
	case ShapeFlat:
		w.value("elements", d.Elements)
	}
	w.extra(d.Extra, metaKeys)
	return w.bytes()
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	fields, err := splitObject(data)
	if err != nil {
		return fmt.Errorf("survey: document: %w", err)
	}
	var out Document
	if err := decodeFields(fields, map[string]any{
		"title":       &out.Title,
		"description": &out.Description,
		"logo":        &out.Logo,
		"pages":       &out.Pages,
		"elements":    &out.Elements,
	}); err != nil {
		return fmt.Errorf("survey: document: %w", err)
	}
	if out.Extra, err = extraFields(fields, metaKeys); err != nil {
		return fmt.Errorf("survey: document: %w", err)
	}
	*d = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Page) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.value("name", p.Name)
	w.string("title", p.Title)
	w.string("visibleIf", p.VisibleIf)
	elements := p.Elements
	if elements == nil {
		elements = []Element{}
	}
	w.value("elements", elements)
	w.extra(p.Extra, pageKeys)
	return w.bytes()
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Page) UnmarshalJSON(data []byte) error {
	fields, err := splitObject(data)
	if err != nil {
		return fmt.Errorf("survey: page: %w", err)
	}
	var out Page
	if err := decodeFields(fields, map[string]any{
		"name":      &out.Name,
		"title":     &out.Title,
		"visibleIf": &out.VisibleIf,
		"elements":  &out.Elements,
	}); err != nil {
		return fmt.Errorf("survey: page %q: %w", out.Name, err)
	}
	if out.Extra, err = extraFields(fields, pageKeys); err != nil {
		return fmt.Errorf("survey: page %q: %w", out.Name, err)
	}
	*p = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (e Element) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.value("type", e.Type)
	w.value("name", e.Name)
	w.string("title", e.Title)
	w.string("description", e.Description)
	if e.IsRequired {
		w.value("isRequired", true)
	}
	w.string("visibleIf", e.VisibleIf)
	if len(e.Choices) > 0 {
		w.value("choices", e.Choices)
	}
	if e.Elements != nil || e.IsPanel() {
		elements := e.Elements
		if elements == nil {
			elements = []Element{}
		}
		w.value("elements", elements)
	}
	w.extra(e.Extra, elementKeys)
	return w.bytes()
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Element) UnmarshalJSON(data []byte) error {
	fields, err := splitObject(data)
	if err != nil {
		return fmt.Errorf("survey: element: %w", err)
	}
	var out Element
	if err := decodeFields(fields, map[string]any{
		"type":        &out.Type,
		"name":        &out.Name,
		"title":       &out.Title,
		"description": &out.Description,
		"isRequired":  &out.IsRequired,
		"visibleIf":   &out.VisibleIf,
		"choices":     &out.Choices,
		"elements":    &out.Elements,
	}); err != nil {
		return fmt.Errorf("survey: element %q: %w", out.Name, err)
	}
	if out.Extra, err = extraFields(fields, elementKeys); err != nil {
		return fmt.Errorf("survey: element %q: %w", out.Name, err)
	}
	*e = out
	return nil
}

// MarshalJSON writes the shorthand form (bare value) when the choice has no
// separate display text.
func (c Choice) MarshalJSON() ([]byte, error) {
	if c.Text == "" {
		return json.Marshal(c.Value)
	}
	w := newObjectWriter()
	w.value("value", c.Value)
	w.value("text", c.Text)
	return w.bytes()
}

// UnmarshalJSON accepts both `"a"` and `{"value": "a", "text": "A"}`.
func (c *Choice) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			Value any    `json:"value"`
			Text  string `json:"text"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		*c = Choice{Value: obj.Value, Text: obj.Text}
		return nil
	}
	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return err
	}
	*c = Choice{Value: value}
	return nil
}

type objectWriter struct {
	buf   bytes.Buffer
	err   error
	count int
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

func (w *objectWriter) string(key, value string) {
	if value == "" {
		return
	}
	w.value(key, value)
}

func (w *objectWriter) value(key string, value any) {
	if w.err != nil {
		return
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("field %q: %w", key, err)
		return
	}
	if w.count > 0 {
		w.buf.WriteByte(',')
	}
	name, _ := json.Marshal(key)
	w.buf.Write(name)
	w.buf.WriteByte(':')
	w.buf.Write(encoded)
	w.count++
}

func (w *objectWriter) extra(extra map[string]any, reserved []string) {
	if len(extra) == 0 {
		return
	}
	keys := make([]string, 0, len(extra))
	for key := range extra {
		if isReserved(key, reserved) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		w.value(key, extra[key])
	}
}

func (w *objectWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

func splitObject(data []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("expected JSON object")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeFields(fields map[string]json.RawMessage, targets map[string]any) error {
	for key, target := range targets {
		raw, ok := fields[key]
		if !ok || isNull(raw) {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

func extraFields(fields map[string]json.RawMessage, reserved []string) (map[string]any, error) {
	var extra map[string]any
	for key, raw := range fields {
		if isReserved(key, reserved) {
			continue
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = value
	}
	return extra, nil
}

func isReserved(key string, reserved []string) bool {
	for _, candidate := range reserved {
		if key == candidate {
			return true
		}
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
