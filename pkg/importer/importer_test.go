package importer_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/importer"
	"github.com/goliatone/go-formbuilder/pkg/survey"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func loadContacts(t *testing.T) []byte {
	t.Helper()
	raw, err := os.ReadFile("testdata/contacts.yaml")
	if err != nil {
		t.Fatalf("read openapi document: %v", err)
	}
	return raw
}

func TestOperations(t *testing.T) {
	ops, err := importer.New().Operations(context.Background(), loadContacts(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	want := []importer.Operation{
		{ID: "createContact", Method: "POST", Path: "/contacts", Summary: "Create contact"},
		{ID: "put:/contacts/{id}/tags", Method: "PUT", Path: "/contacts/{id}/tags", Summary: "Replace tags"},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestPage_MapsPropertyTypes(t *testing.T) {
	page, err := importer.New().Page(context.Background(), loadContacts(t), "createContact", survey.Document{})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if page.Title != "Create contact" {
		t.Fatalf("unexpected title %q", page.Title)
	}
	if page.Extra["description"] != "Adds a contact to the address book." {
		t.Fatalf("unexpected description %v", page.Extra)
	}

	type row struct {
		Name     string
		Type     string
		Required bool
	}
	var got []row
	byName := map[string]survey.Element{}
	for _, el := range page.Elements {
		got = append(got, row{Name: el.Name, Type: el.Type, Required: el.IsRequired})
		byName[el.Name] = el
	}
	want := []row{
		{Name: "address", Type: survey.TypePanel},
		{Name: "age", Type: survey.TypeText},
		{Name: "email", Type: survey.TypeText, Required: true},
		{Name: "first_name", Type: survey.TypeText, Required: true},
		{Name: "phones", Type: survey.TypePanelDynamic},
		{Name: "subscribed", Type: survey.TypeBoolean},
		{Name: "tier", Type: survey.TypeDropdown},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("elements mismatch (-want +got):\n%s", diff)
	}

	if byName["age"].Extra["inputType"] != "number" || byName["age"].Extra["min"] != float64(18) {
		t.Fatalf("unexpected number extras: %v", byName["age"].Extra)
	}
	if byName["email"].Extra["inputType"] != "email" {
		t.Fatalf("unexpected email extras: %v", byName["email"].Extra)
	}
	if byName["first_name"].Title != "First name" {
		t.Fatalf("unexpected title %q", byName["first_name"].Title)
	}
	if diff := cmp.Diff([]survey.Choice{{Value: "free"}, {Value: "pro"}}, byName["tier"].Choices); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	address := byName["address"]
	if len(address.Elements) != 1 || address.Elements[0].Name != "city" {
		t.Fatalf("unexpected panel children: %+v", address.Elements)
	}
}

func TestPage_ArrayOfEnumBecomesCheckbox(t *testing.T) {
	page, err := importer.New().Page(context.Background(), loadContacts(t), "put:/contacts/{id}/tags", survey.Document{})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Elements) != 1 {
		t.Fatalf("expected one element, got %+v", page.Elements)
	}
	tags := page.Elements[0]
	if tags.Type != survey.TypeCheckbox || len(tags.Choices) != 3 {
		t.Fatalf("unexpected tags element: %+v", tags)
	}
}

func TestPage_SuffixesTakenNames(t *testing.T) {
	doc := testsupport.MustDecode(t, `{"pages":[{"name":"page1","elements":[{"type":"text","name":"email"}]}]}`)
	page, err := importer.New().Page(context.Background(), loadContacts(t), "createContact", doc)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	var names []string
	for _, el := range page.Elements {
		names = append(names, el.Name)
	}
	want := []string{"address", "age", "email1", "first_name", "phones", "subscribed", "tier"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestPage_Errors(t *testing.T) {
	imp := importer.New()
	if _, err := imp.Page(context.Background(), loadContacts(t), "missing", survey.Document{}); !errors.Is(err, importer.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := imp.Page(context.Background(), nil, "createContact", survey.Document{}); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := imp.Operations(context.Background(), []byte("openapi: [broken")); err == nil {
		t.Fatalf("expected load error")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := imp.Operations(ctx, loadContacts(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
