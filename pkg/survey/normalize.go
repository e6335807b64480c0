package survey

import "strconv"

// Prefixes for generated names (page1, page2, ... and question1, ...).
const (
	PagePrefix           = "page"
	DefaultElementPrefix = "question"
)

// EnsurePaged upgrades a flat document to the paged shape by wrapping its
// elements into a single synthetic page, named page{N} with N skipping
// names the elements already use. Paged documents are returned as-is and a
// document with neither shape becomes a single empty page.
func EnsurePaged(doc Document) Document {
	switch doc.Shape() {
	case ShapePaged:
		// Pages are authoritative when both shapes are populated; the
		// encoder never writes the stale flat list.
		return doc
	case ShapeFlat:
		doc.Pages = []Page{{
			Name:     GenerateName(doc, PagePrefix),
			Elements: doc.Elements,
		}}
		doc.Elements = nil
		return doc
	default:
		doc.Pages = []Page{{Name: PagePrefix + "1", Elements: []Element{}}}
		doc.Elements = nil
		return doc
	}
}

// Flatten re-derives the legacy flat shape. Only single-page documents whose
// page carries no page-level properties can be flattened without loss; for
// any other document the input is returned with false.
func Flatten(doc Document) (Document, bool) {
	switch doc.Shape() {
	case ShapeFlat, ShapeEmpty:
		return doc, true
	}
	if len(doc.Pages) != 1 {
		return doc, false
	}
	page := doc.Pages[0]
	if page.Title != "" || page.VisibleIf != "" || len(page.Extra) > 0 {
		return doc, false
	}
	doc.Elements = page.Elements
	if doc.Elements == nil {
		doc.Elements = []Element{}
	}
	doc.Pages = nil
	return doc, true
}

// GenerateName returns the first prefix{N} (N >= 1) that no page or element
// in the document uses.
func GenerateName(doc Document, prefix string) string {
	return NextName(Names(doc), prefix)
}

// NextName returns the first prefix{N} (N >= 1) absent from used and records
// it, so successive calls over the same set never repeat.
func NextName(used map[string]int, prefix string) string {
	if prefix == "" {
		prefix = DefaultElementPrefix
	}
	for n := 1; ; n++ {
		candidate := prefix + strconv.Itoa(n)
		if used[candidate] == 0 {
			if used != nil {
				used[candidate]++
			}
			return candidate
		}
	}
}
