package selection

import (
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/survey"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestController_Lifecycle(t *testing.T) {
	c := New()
	if _, ok := c.Current(); ok {
		t.Fatalf("new controller should have no selection")
	}

	c.Select(survey.NameRef("q1"))
	if got, ok := c.Current(); !ok || got.Name() != "q1" {
		t.Fatalf("expected q1 selected, got %v (ok=%v)", got, ok)
	}

	if !c.Rename("q1", "email") {
		t.Fatalf("expected rename of the selected node to re-point")
	}
	if !c.IsSelected(survey.NameRef("email")) {
		t.Fatalf("selection should follow the rename")
	}
	if c.Rename("other", "x") {
		t.Fatalf("renaming an unselected node must not change the selection")
	}

	if c.Forget(survey.NameRef("q1")) {
		t.Fatalf("forgetting an unselected node must not clear")
	}
	if !c.Forget(survey.NameRef("email")) {
		t.Fatalf("expected forget to clear the selection")
	}
	if _, ok := c.Current(); ok {
		t.Fatalf("selection should be cleared")
	}

	c.Select(survey.RootRef())
	if !c.IsSelected(survey.RootRef()) || c.IsSelected(survey.NameRef(survey.RootType)) {
		t.Fatalf("root sentinel must be distinct from a node named %q", survey.RootType)
	}

	c.Select(survey.Ref{})
	if _, ok := c.Current(); ok {
		t.Fatalf("selecting the zero ref should clear")
	}
}

func TestController_Resolve(t *testing.T) {
	doc := testsupport.MustDecode(t, `{"pages":[{"name":"page1","elements":[{"type":"text","name":"q1"}]}]}`)
	c := New()

	c.Select(survey.NameRef("q1"))
	node, ok := c.Resolve(doc)
	if !ok || node.Kind() != survey.KindElement {
		t.Fatalf("expected q1 to resolve, got %#v", node)
	}

	c.Select(survey.NameRef("gone"))
	if _, ok := c.Resolve(doc); ok {
		t.Fatalf("stale selection should not resolve")
	}
}
