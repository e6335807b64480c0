package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/internal/prompt"
	"github.com/goliatone/go-formbuilder/pkg/survey"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

const openapiDoc = `openapi: 3.0.3
info: {title: Signup, version: "1"}
paths:
  /signup:
    post:
      operationId: signup
      summary: Sign up
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [email]
              properties:
                email: {type: string, format: email}
                newsletter: {type: boolean}
      responses:
        "201": {description: created}
`

type noPrompts struct{}

func (noPrompts) Input(context.Context, prompt.InputConfig) (string, error) { return "", prompt.ErrAborted }
func (noPrompts) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) { return false, prompt.ErrAborted }
func (noPrompts) Select(context.Context, prompt.SelectConfig) (int, error) { return 0, prompt.ErrAborted }
func (noPrompts) Info(context.Context, string) error { return nil }

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func baseArgs(t *testing.T) []string {
	t.Setenv("FORMBUILDER_LOG_LEVEL", "error")
	return []string{"-config", writeTemp(t, "config.yaml", "sanitize:\n  enabled: true\n")}
}

func TestRun_ImportIntoNewSurvey(t *testing.T) {
	api := writeTemp(t, "openapi.yaml", openapiDoc)
	var out bytes.Buffer
	args := append(baseArgs(t), "-import", api, "-operation", "signup", "-validate")

	if err := run(context.Background(), args, &out, noPrompts{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	doc := testsupport.MustDecode(t, out.String())
	if diff := cmp.Diff([]string{"page1"}, testsupport.PageNames(doc)); diff != "" {
		t.Fatalf("pages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email", "newsletter"}, testsupport.ElementNames(t, doc, 0)); diff != "" {
		t.Fatalf("elements mismatch (-want +got):\n%s", diff)
	}
	if doc.Pages[0].Title != "Sign up" {
		t.Fatalf("unexpected page title %q", doc.Pages[0].Title)
	}
}

func TestRun_ImportAppendsPage(t *testing.T) {
	api := writeTemp(t, "openapi.yaml", openapiDoc)
	in := writeTemp(t, "survey.json", `{"elements":[{"type":"text","name":"email"}]}`)
	outPath := filepath.Join(t.TempDir(), "out.json")
	args := append(baseArgs(t), "-in", in, "-out", outPath, "-import", api, "-operation", "signup")

	if err := run(context.Background(), args, &bytes.Buffer{}, noPrompts{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	doc := testsupport.LoadDocument(t, outPath)
	if diff := cmp.Diff([]string{"page1", "page2"}, testsupport.PageNames(doc)); diff != "" {
		t.Fatalf("pages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email1", "newsletter"}, testsupport.ElementNames(t, doc, 1)); diff != "" {
		t.Fatalf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ListOperations(t *testing.T) {
	api := writeTemp(t, "openapi.yaml", openapiDoc)
	var out bytes.Buffer
	if err := run(context.Background(), append(baseArgs(t), "-import", api), &out, noPrompts{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "signup\tPOST /signup\tSign up") {
		t.Fatalf("unexpected listing %q", out.String())
	}
}

func TestRun_ValidationFailure(t *testing.T) {
	in := writeTemp(t, "survey.json", `{"pages":[{"name":"page1","elements":[{"type":"slider","name":"q1"}]}]}`)
	err := run(context.Background(), append(baseArgs(t), "-in", in, "-validate"), &bytes.Buffer{}, noPrompts{})
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
}

func TestRun_InteractiveAbort(t *testing.T) {
	err := run(context.Background(), append(baseArgs(t), "-interactive"), &bytes.Buffer{}, noPrompts{})
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestLoadInput_Empty(t *testing.T) {
	doc, err := loadInput("")
	if err != nil {
		t.Fatalf("loadInput: %v", err)
	}
	if doc.Shape() != survey.ShapeEmpty {
		t.Fatalf("expected empty document, got %s", doc.Shape())
	}
}
