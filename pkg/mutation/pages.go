package mutation

import (
	"strconv"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// AddPage appends an empty page named page{N+1}, N being the current page
// count. When that name is already taken (a page was renamed by hand) N is
// bumped until the name is free. Flat documents are upgraded first.
func AddPage(doc survey.Document) survey.Document {
	paged := survey.EnsurePaged(doc)
	used := survey.Names(paged)
	n := len(paged.Pages) + 1
	name := survey.PagePrefix + strconv.Itoa(n)
	for used[name] > 0 {
		n++
		name = survey.PagePrefix + strconv.Itoa(n)
	}

	pages := make([]survey.Page, 0, len(paged.Pages)+1)
	pages = append(pages, paged.Pages...)
	pages = append(pages, survey.Page{Name: name, Elements: []survey.Element{}})
	paged.Pages = pages
	return paged
}

// DeletePage removes the page at index. Out-of-range indexes return
// ErrPageOutOfRange and the last remaining page is never removed.
func DeletePage(doc survey.Document, index int) (survey.Document, error) {
	count := doc.PageCount()
	if index < 0 || index >= count {
		return doc, ErrPageOutOfRange
	}
	if count <= 1 {
		return doc, ErrLastPage
	}
	pages := make([]survey.Page, 0, len(doc.Pages)-1)
	pages = append(pages, doc.Pages[:index]...)
	pages = append(pages, doc.Pages[index+1:]...)
	doc.Pages = pages
	return doc, nil
}

// MovePage moves the page at from to index to, shifting the pages between.
func MovePage(doc survey.Document, from, to int) (survey.Document, error) {
	count := len(doc.Pages)
	if from < 0 || from >= count || to < 0 || to >= count {
		return doc, ErrPageOutOfRange
	}
	if from == to {
		return doc, nil
	}
	page := doc.Pages[from]
	pages := make([]survey.Page, 0, count)
	pages = append(pages, doc.Pages[:from]...)
	pages = append(pages, doc.Pages[from+1:]...)
	pages = append(pages[:to], append([]survey.Page{page}, pages[to:]...)...)
	doc.Pages = pages
	return doc, nil
}
