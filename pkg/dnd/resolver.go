package dnd

import "github.com/goliatone/go-formbuilder/pkg/survey"

// Target is an unambiguous insertion point: a page and the top-level sibling
// to insert before (or, for reorders, to move over). An empty Before means
// append to the end of the page.
type Target struct {
	Page   int    `json:"page"`
	Before string `json:"before,omitempty"`
}

// Append reports whether the target is the end of the page.
func (t Target) Append() bool { return t.Before == "" }

// ResolvePalette converts the hovered region of a palette drag into a
// target. The page is taken, in order, from the region's explicit page
// annotation, from a page index encoded in its identifier, from the page
// whose top-level elements include the hovered sibling, or defaults to the
// first page. Hovering a sibling inserts before it; anything else appends.
func ResolvePalette(doc survey.Document, region Region) Target {
	paged := survey.EnsurePaged(doc)
	page := resolvePage(paged, region)
	target := Target{Page: page}
	if region.Kind == RegionElement && region.Element != "" && containsTopLevel(paged.Pages[page], region.Element) {
		target.Before = region.Element
	}
	return target
}

// ResolveExisting converts the hovered region of a reorder drag into a
// target for the element named name. A page container region moves the
// element to the end of that page; a sibling region moves it over that
// sibling, in place when both share a page. Hovering the element itself
// resolves to nothing.
func ResolveExisting(doc survey.Document, name string, region Region) (Target, bool) {
	if region.Kind == RegionElement && region.Element == name {
		return Target{}, false
	}
	paged := survey.EnsurePaged(doc)
	loc, ok := survey.Locate(paged, name)
	if !ok || loc.IsPage() {
		return Target{}, false
	}
	page := resolvePage(paged, region)
	target := Target{Page: page}
	if region.Kind == RegionElement && containsTopLevel(paged.Pages[page], region.Element) {
		target.Before = region.Element
	}
	return target, true
}

func resolvePage(doc survey.Document, region Region) int {
	count := len(doc.Pages)
	valid := func(idx int) bool { return idx >= 0 && idx < count }

	if region.Page != nil && valid(*region.Page) {
		return *region.Page
	}
	if region.Kind == RegionPage || region.Element == "" {
		if idx, ok := pageFromID(region.ID); ok && valid(idx) {
			return idx
		}
	}
	if region.Element != "" {
		for idx, page := range doc.Pages {
			if containsTopLevel(page, region.Element) {
				return idx
			}
		}
	}
	return 0
}

func containsTopLevel(page survey.Page, name string) bool {
	for _, el := range page.Elements {
		if el.Name == name {
			return true
		}
	}
	return false
}
