package dnd

import (
	"regexp"
	"strconv"
)

// RegionKind distinguishes sibling drop regions from page containers.
type RegionKind int

const (
	// RegionElement is the drop area of an existing top-level element.
	RegionElement RegionKind = iota
	// RegionPage is a page's container area, used when the page is empty or
	// the pointer is below its last element.
	RegionPage
)

func (k RegionKind) String() string {
	if k == RegionPage {
		return "page"
	}
	return "element"
}

// Region is a droppable area reported by the host for the current frame.
type Region struct {
	ID      string     `json:"id"`
	Kind    RegionKind `json:"kind"`
	Rect    Rect       `json:"rect"`
	Element string     `json:"element,omitempty"`
	// Page is an explicit page index annotation; it wins over every other
	// way of resolving the target page.
	Page *int `json:"page,omitempty"`
}

// ElementRegion describes the drop area of the element named name.
func ElementRegion(name string, rect Rect) Region {
	return Region{ID: name, Kind: RegionElement, Rect: rect, Element: name}
}

// PageRegion describes the container area of the page at index. Its ID
// encodes the index so hosts that drop the annotation still resolve it.
func PageRegion(index int, rect Rect) Region {
	page := index
	return Region{ID: PageRegionID(index), Kind: RegionPage, Rect: rect, Page: &page}
}

// PageRegionID returns the canonical identifier of a page container region.
func PageRegionID(index int) string {
	return "page-drop-" + strconv.Itoa(index)
}

// WithPage returns a copy of r annotated with an explicit page index.
func (r Region) WithPage(index int) Region {
	page := index
	r.Page = &page
	return r
}

var pageIDPattern = regexp.MustCompile(`(?i)(?:^|[-_:])page(?:[-_:]?drop)?[-_:]?(\d+)$`)

// pageFromID extracts a page index encoded in a region identifier such as
// "page-drop-2", "page-2" or "canvas:page_2".
func pageFromID(id string) (int, bool) {
	match := pageIDPattern.FindStringSubmatch(id)
	if len(match) != 2 {
		return 0, false
	}
	idx, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return idx, true
}
