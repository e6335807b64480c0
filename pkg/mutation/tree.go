package mutation

import "github.com/goliatone/go-formbuilder/pkg/survey"

// The helpers below implement path copying: only the slices between the
// root and the edited sequence are reallocated, every other page and subtree
// is shared with the input document. Shared slices are never written to.

type sequenceEdit func(seq []survey.Element) ([]survey.Element, error)

// withPaged runs fn against the paged view of doc. Flat documents are
// converted back after a successful edit when that can be done losslessly.
func withPaged(doc survey.Document, fn func(survey.Document) (survey.Document, error)) (survey.Document, error) {
	if doc.Shape() == survey.ShapePaged {
		out, err := fn(doc)
		if err != nil {
			return doc, err
		}
		return out, nil
	}

	out, err := fn(survey.EnsurePaged(doc))
	if err != nil {
		return doc, err
	}
	if flat, ok := survey.Flatten(out); ok {
		return flat, nil
	}
	return out, nil
}

// editSequence rewrites the element sequence owned by parent, which is either
// a page (empty Path) or a panel element.
func editSequence(doc survey.Document, parent survey.Location, edit sequenceEdit) (survey.Document, error) {
	if parent.Page < 0 || parent.Page >= len(doc.Pages) {
		return doc, ErrPageOutOfRange
	}
	page := doc.Pages[parent.Page]
	elements, err := editNested(page.Elements, parent.Path, edit)
	if err != nil {
		return doc, err
	}
	page.Elements = elements
	return replacePage(doc, parent.Page, page), nil
}

func editNested(seq []survey.Element, path []int, edit sequenceEdit) ([]survey.Element, error) {
	if len(path) == 0 {
		return edit(seq)
	}
	idx := path[0]
	if idx < 0 || idx >= len(seq) {
		return nil, ErrNotFound
	}
	el := seq[idx]
	children, err := editNested(el.Elements, path[1:], edit)
	if err != nil {
		return nil, err
	}
	el.Elements = children
	return replaceAt(seq, idx, el), nil
}

func replacePage(doc survey.Document, idx int, page survey.Page) survey.Document {
	pages := make([]survey.Page, len(doc.Pages))
	copy(pages, doc.Pages)
	pages[idx] = page
	doc.Pages = pages
	return doc
}

func replaceAt(seq []survey.Element, idx int, el survey.Element) []survey.Element {
	out := make([]survey.Element, len(seq))
	copy(out, seq)
	out[idx] = el
	return out
}

func insertAt(seq []survey.Element, idx int, el survey.Element) []survey.Element {
	if idx < 0 || idx > len(seq) {
		idx = len(seq)
	}
	out := make([]survey.Element, 0, len(seq)+1)
	out = append(out, seq[:idx]...)
	out = append(out, el)
	out = append(out, seq[idx:]...)
	return out
}

func removeAt(seq []survey.Element, idx int) []survey.Element {
	out := make([]survey.Element, 0, len(seq)-1)
	out = append(out, seq[:idx]...)
	out = append(out, seq[idx+1:]...)
	return out
}

// arrayMove removes the element at from and reinserts it at to.
func arrayMove(seq []survey.Element, from, to int) []survey.Element {
	el := seq[from]
	return insertAt(removeAt(seq, from), to, el)
}

// indexOf returns the index of the top-level element named name, or -1.
func indexOf(seq []survey.Element, name string) int {
	if name == "" {
		return -1
	}
	for idx, el := range seq {
		if el.Name == name {
			return idx
		}
	}
	return -1
}

// subtreeNames counts the element's own name and those of its descendants.
func subtreeNames(el survey.Element, into map[string]int) map[string]int {
	if into == nil {
		into = make(map[string]int)
	}
	if el.Name != "" {
		into[el.Name]++
	}
	for _, child := range el.Elements {
		subtreeNames(child, into)
	}
	return into
}

// checkNamesFree fails when el, or any of its descendants, reuses a name in
// used or repeats a name within its own subtree.
func checkNamesFree(used map[string]int, el survey.Element) error {
	for name, count := range subtreeNames(el, nil) {
		if count > 1 || used[name] > 0 {
			return ErrDuplicateName
		}
	}
	return nil
}

// withoutSubtree returns a copy of used with the names of el removed.
func withoutSubtree(used map[string]int, el survey.Element) map[string]int {
	out := make(map[string]int, len(used))
	for name, count := range used {
		out[name] = count
	}
	for name, count := range subtreeNames(el, nil) {
		out[name] -= count
		if out[name] <= 0 {
			delete(out, name)
		}
	}
	return out
}
