package mutation

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// Update replaces the node referenced by ref with replacement, keeping its
// position in the parent sequence. The replacement must be of the same kind
// as the target: survey.Element for elements, survey.Page for pages, and
// survey.Meta for the root sentinel. A root update is merged into the
// document's top-level properties rather than replacing them: empty Title,
// Description and Logo keep the current values, so a root update sets those
// properties but never clears them. Extra keys are added or overwritten.
//
// An empty replacement name keeps the current name. Renaming to a name that
// another node already uses returns ErrDuplicateName.
func Update(doc survey.Document, ref survey.Ref, replacement survey.Node) (survey.Document, error) {
	if replacement == nil {
		return doc, ErrKindMismatch
	}
	if ref.IsRoot() {
		meta, ok := asMeta(replacement)
		if !ok {
			return doc, ErrKindMismatch
		}
		return mergeMeta(doc, meta), nil
	}
	if ref.IsZero() {
		return doc, ErrNotFound
	}

	return withPaged(doc, func(paged survey.Document) (survey.Document, error) {
		loc, ok := survey.Locate(paged, ref.Name())
		if !ok {
			return paged, ErrNotFound
		}
		if loc.IsPage() {
			return updatePage(paged, loc.Page, replacement)
		}
		return updateElement(paged, loc, replacement)
	})
}

func asMeta(node survey.Node) (survey.Meta, bool) {
	switch typed := node.(type) {
	case survey.Meta:
		return typed, true
	case *survey.Meta:
		if typed != nil {
			return *typed, true
		}
	case survey.Document:
		return typed.Meta, true
	}
	return survey.Meta{}, false
}

// mergeMeta treats empty strings as absent.
func mergeMeta(doc survey.Document, meta survey.Meta) survey.Document {
	if meta.Title != "" {
		doc.Title = meta.Title
	}
	if meta.Description != "" {
		doc.Description = meta.Description
	}
	if meta.Logo != "" {
		doc.Logo = meta.Logo
	}
	if len(meta.Extra) > 0 {
		extra := make(map[string]any, len(doc.Extra)+len(meta.Extra))
		for key, value := range doc.Extra {
			extra[key] = value
		}
		for key, value := range meta.Extra {
			if key == "type" {
				// the root selection tag is not a document property
				continue
			}
			extra[key] = value
		}
		doc.Extra = extra
	}
	return doc
}

func updatePage(doc survey.Document, idx int, replacement survey.Node) (survey.Document, error) {
	var page survey.Page
	switch typed := replacement.(type) {
	case survey.Page:
		page = typed
	case *survey.Page:
		if typed == nil {
			return doc, ErrKindMismatch
		}
		page = *typed
	default:
		return doc, ErrKindMismatch
	}

	current := doc.Pages[idx]
	page.Name = strings.TrimSpace(page.Name)
	if page.Name == "" {
		page.Name = current.Name
	}
	used := survey.Names(doc)
	used[current.Name]--
	for _, el := range current.Elements {
		used = withoutSubtree(used, el)
	}
	if used[page.Name] > 0 {
		return doc, ErrDuplicateName
	}
	used[page.Name]++
	for _, el := range page.Elements {
		if err := checkNamesFree(used, el); err != nil {
			return doc, err
		}
		used = subtreeNames(el, used)
	}
	if page.Elements == nil {
		page.Elements = []survey.Element{}
	}
	return replacePage(doc, idx, page), nil
}

func updateElement(doc survey.Document, loc survey.Location, replacement survey.Node) (survey.Document, error) {
	var el survey.Element
	switch typed := replacement.(type) {
	case survey.Element:
		el = typed
	case *survey.Element:
		if typed == nil {
			return doc, ErrKindMismatch
		}
		el = *typed
	default:
		return doc, ErrKindMismatch
	}

	current, ok := survey.ElementAt(doc, loc)
	if !ok {
		return doc, ErrNotFound
	}
	el.Name = strings.TrimSpace(el.Name)
	if el.Name == "" {
		el.Name = current.Name
	}
	if strings.TrimSpace(el.Type) == "" {
		return doc, ErrInvalidElement
	}
	if err := checkNamesFree(withoutSubtree(survey.Names(doc), current), el); err != nil {
		return doc, err
	}

	return editSequence(doc, loc.Parent(), func(seq []survey.Element) ([]survey.Element, error) {
		return replaceAt(seq, loc.Index(), el), nil
	})
}
