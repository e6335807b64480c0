// Package importer seeds survey pages from OpenAPI request bodies, so a form
// for an existing endpoint starts from the fields the endpoint accepts.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// ErrOperationNotFound is returned when no operation matches the requested id.
var ErrOperationNotFound = errors.New("openapi importer: operation not found")

// Operation summarises an operation that carries a request body.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Option customises an Importer.
type Option func(*Importer)

// WithLogger sets the logger used for skipped properties.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithExternalRefs allows $refs pointing outside the document and validates
// the document after loading.
func WithExternalRefs(enabled bool) Option {
	return func(i *Importer) {
		i.externalRefs = enabled
	}
}

// Importer converts OpenAPI 3 documents with kin-openapi.
type Importer struct {
	logger       *slog.Logger
	externalRefs bool
}

// New returns an Importer.
func New(opts ...Option) *Importer {
	i := &Importer{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Operations lists the operations of raw that accept a request body, sorted
// by id. Operations without an operationId are keyed method:path.
func (i *Importer) Operations(ctx context.Context, raw []byte) ([]Operation, error) {
	api, err := i.load(ctx, raw)
	if err != nil {
		return nil, err
	}
	var out []Operation
	for _, entry := range collect(api) {
		out = append(out, entry.Operation)
	}
	return out, nil
}

// Page builds a page from the request body of the operation with id
// operationID. Element names are the property names, suffixed when they
// clash with a name already used in doc. The page is unnamed; inserting it
// through the editor assigns one.
func (i *Importer) Page(ctx context.Context, raw []byte, operationID string, doc survey.Document) (survey.Page, error) {
	api, err := i.load(ctx, raw)
	if err != nil {
		return survey.Page{}, err
	}
	for _, entry := range collect(api) {
		if entry.ID != operationID {
			continue
		}
		schema := requestSchema(entry.op.RequestBody)
		if schema == nil {
			return survey.Page{}, fmt.Errorf("openapi importer: operation %q has no request schema", operationID)
		}
		conv := converter{used: survey.Names(doc), logger: i.logger}
		page := survey.Page{
			Title:    firstNonEmpty(entry.Summary, schema.Title, operationID),
			Elements: conv.properties(schema, ""),
		}
		if page.Elements == nil {
			page.Elements = []survey.Element{}
		}
		if desc := strings.TrimSpace(entry.op.Description); desc != "" {
			page.Extra = map[string]any{"description": desc}
		}
		return page, nil
	}
	return survey.Page{}, fmt.Errorf("%w: %s", ErrOperationNotFound, operationID)
}

func (i *Importer) load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi importer: document payload is empty")
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.externalRefs,
	}
	api, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi importer: load document: %w", err)
	}
	if i.externalRefs {
		if err := api.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi importer: validate: %w", err)
		}
	}
	return api, nil
}

type operationEntry struct {
	Operation
	op *openapi3.Operation
}

func collect(api *openapi3.T) []operationEntry {
	if api == nil || api.Paths == nil {
		return nil
	}
	var out []operationEntry
	for path, item := range api.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || requestSchema(op.RequestBody) == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, operationEntry{
				Operation: Operation{ID: id, Method: strings.ToUpper(method), Path: path, Summary: op.Summary},
				op:        op,
			})
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
