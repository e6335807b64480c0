package mutation

import "github.com/goliatone/go-formbuilder/pkg/survey"

// MoveElement relocates the element named name to the top-level sequence of
// the page at pageIndex.
//
// When the element already sits at the top level of that page the move is an
// in-place reorder: it is removed from its index and reinserted at the
// original index of over (array-move semantics, so moving downwards lands
// after over). Otherwise the element is detached from wherever it lives,
// panels included, and inserted immediately before over. An empty or
// unknown over appends to the end of the page. Moving an element onto its
// own position returns the input document unchanged.
func MoveElement(doc survey.Document, name string, pageIndex int, over string) (survey.Document, error) {
	return withPaged(doc, func(paged survey.Document) (survey.Document, error) {
		loc, ok := survey.Locate(paged, name)
		if !ok {
			return paged, ErrNotFound
		}
		if loc.IsPage() {
			return paged, ErrKindMismatch
		}
		if pageIndex < 0 || pageIndex >= len(paged.Pages) {
			return paged, ErrPageOutOfRange
		}
		if over == name {
			return paged, nil
		}

		target := paged.Pages[pageIndex].Elements
		if loc.Page == pageIndex && loc.Depth() == 1 {
			from := loc.Index()
			to := indexOf(target, over)
			if to < 0 {
				to = len(target) - 1
			}
			if from == to {
				return paged, nil
			}
			return editSequence(paged, survey.Location{Page: pageIndex}, func(seq []survey.Element) ([]survey.Element, error) {
				return arrayMove(seq, from, to), nil
			})
		}

		el, ok := survey.ElementAt(paged, loc)
		if !ok {
			return paged, ErrNotFound
		}
		detached, err := editSequence(paged, loc.Parent(), func(seq []survey.Element) ([]survey.Element, error) {
			return removeAt(seq, loc.Index()), nil
		})
		if err != nil {
			return paged, err
		}
		return editSequence(detached, survey.Location{Page: pageIndex}, func(seq []survey.Element) ([]survey.Element, error) {
			return insertAt(seq, indexOf(seq, over), el), nil
		})
	})
}

// MoveToPageEnd appends the element to the end of the page at pageIndex. It
// serves drops on a page's empty-container region.
func MoveToPageEnd(doc survey.Document, name string, pageIndex int) (survey.Document, error) {
	return MoveElement(doc, name, pageIndex, "")
}
