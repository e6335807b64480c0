package mutation

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// InsertElement adds el to the top-level sequence of the page at pageIndex,
// immediately before the sibling named before, or at the end when before is
// empty or does not name a top-level element of that page. An out-of-range
// pageIndex falls back to the first page.
//
// An element without a name receives a generated one. Names must be unique
// across the whole document; a collision returns ErrDuplicateName.
func InsertElement(doc survey.Document, el survey.Element, pageIndex int, before string) (survey.Document, error) {
	if strings.TrimSpace(el.Type) == "" {
		return doc, ErrInvalidElement
	}
	return withPaged(doc, func(paged survey.Document) (survey.Document, error) {
		if el.Name == "" {
			el.Name = survey.GenerateName(paged, survey.DefaultElementPrefix)
		}
		if err := checkNamesFree(survey.Names(paged), el); err != nil {
			return paged, err
		}
		if pageIndex < 0 || pageIndex >= len(paged.Pages) {
			pageIndex = 0
		}
		return editSequence(paged, survey.Location{Page: pageIndex}, func(seq []survey.Element) ([]survey.Element, error) {
			return insertAt(seq, indexOf(seq, before), el), nil
		})
	})
}

// InsertIntoPanel adds el to the children of the panel named panel, before
// the child named before or at the end.
func InsertIntoPanel(doc survey.Document, el survey.Element, panel, before string) (survey.Document, error) {
	if strings.TrimSpace(el.Type) == "" {
		return doc, ErrInvalidElement
	}
	return withPaged(doc, func(paged survey.Document) (survey.Document, error) {
		loc, ok := survey.Locate(paged, panel)
		if !ok {
			return paged, ErrNotFound
		}
		target, ok := survey.ElementAt(paged, loc)
		if !ok || !target.IsPanel() {
			return paged, ErrNotPanel
		}
		if el.Name == "" {
			el.Name = survey.GenerateName(paged, survey.DefaultElementPrefix)
		}
		if err := checkNamesFree(survey.Names(paged), el); err != nil {
			return paged, err
		}
		return editSequence(paged, loc, func(seq []survey.Element) ([]survey.Element, error) {
			return insertAt(seq, indexOf(seq, before), el), nil
		})
	})
}
