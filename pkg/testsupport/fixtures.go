package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// LoadDocument reads a JSON or YAML fixture into a survey.Document. Testing
// helpers fail the test on error to keep table tests concise.
func LoadDocument(t *testing.T, path string) survey.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T, so
// fixtures can be wired from setup functions.
func LoadDocumentFromPath(path string) (survey.Document, error) {
	if path == "" {
		return survey.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return survey.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := survey.Decode(data)
	if err != nil {
		return survey.Document{}, fmt.Errorf("testsupport: decode document: %w", err)
	}
	return doc, nil
}

// MustDecode decodes an inline JSON or YAML document.
func MustDecode(t *testing.T, raw string) survey.Document {
	t.Helper()

	doc, err := survey.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode document: %v", err)
	}
	return doc
}

// ElementNames lists the top-level element names of the page at index.
func ElementNames(t *testing.T, doc survey.Document, index int) []string {
	t.Helper()

	if index < 0 || index >= len(doc.Pages) {
		t.Fatalf("page index %d out of range (pages=%d)", index, len(doc.Pages))
	}
	names := make([]string, 0, len(doc.Pages[index].Elements))
	for _, el := range doc.Pages[index].Elements {
		names = append(names, el.Name)
	}
	return names
}

// PageNames lists the page names in order.
func PageNames(doc survey.Document) []string {
	names := make([]string, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		names = append(names, page.Name)
	}
	return names
}

// DiffDocuments compares two documents structurally, treating nil and empty
// slices and maps as equal.
func DiffDocuments(want, got survey.Document) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
