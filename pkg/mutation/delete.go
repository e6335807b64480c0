package mutation

import "github.com/goliatone/go-formbuilder/pkg/survey"

// DeleteNode removes the page or element referenced by ref. Elements are
// found anywhere in the tree, including inside panels. Deleting the only
// page returns ErrLastPage; the root cannot be deleted.
func DeleteNode(doc survey.Document, ref survey.Ref) (survey.Document, error) {
	if ref.IsRoot() {
		return doc, ErrKindMismatch
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
			return DeletePage(paged, loc.Page)
		}
		return editSequence(paged, loc.Parent(), func(seq []survey.Element) ([]survey.Element, error) {
			return removeAt(seq, loc.Index()), nil
		})
	})
}
