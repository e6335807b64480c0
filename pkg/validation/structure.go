package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// checkStructure adds the rules that span the whole tree: a document uses
// one shape, and names are unique across pages and elements.
func checkStructure(doc survey.Document, result *SchemaValidationResult) {
	if len(doc.Pages) > 0 && len(doc.Elements) > 0 {
		result.add(issueAt("#/elements", "document mixes pages with top-level elements"))
	}

	seen := make(map[string]string)
	claim := func(name, pointer string) {
		if strings.TrimSpace(name) == "" {
			return
		}
		if first, ok := seen[name]; ok {
			result.add(issueAt(pointer+"/name", fmt.Sprintf("duplicate name %q, first used at %s", name, first)))
			return
		}
		seen[name] = pointer
	}

	for idx, page := range doc.Pages {
		claim(page.Name, "#/pages/"+strconv.Itoa(idx))
	}
	survey.Walk(doc, func(el survey.Element, loc survey.Location) bool {
		claim(el.Name, elementPointer(loc))
		if el.IsPanel() && len(el.Choices) > 0 {
			result.add(issueAt(elementPointer(loc)+"/choices", "panels do not take choices"))
		}
		return true
	})
}

func elementPointer(loc survey.Location) string {
	var b strings.Builder
	b.WriteString("#")
	if loc.Page >= 0 {
		b.WriteString("/pages/")
		b.WriteString(strconv.Itoa(loc.Page))
	}
	for _, idx := range loc.Path {
		b.WriteString("/elements/")
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

func issueAt(pointer, message string) SchemaIssue {
	return SchemaIssue{Path: pointer, Field: fieldFromPointer(pointer), Message: message}
}
