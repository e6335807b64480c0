package survey

// Location is the address of a node inside a document. Page is -1 for nodes
// of a flat document. Path holds element indexes from the page's top-level
// sequence down through panel children; an empty Path addresses the page.
type Location struct {
	Page int
	Path []int
}

// IsPage reports whether the location addresses a page.
func (l Location) IsPage() bool { return l.Page >= 0 && len(l.Path) == 0 }

// Depth returns the nesting depth of an element location (1 for top-level).
func (l Location) Depth() int { return len(l.Path) }

// Parent returns the location of the containing page or panel.
func (l Location) Parent() Location {
	if len(l.Path) == 0 {
		return l
	}
	return Location{Page: l.Page, Path: l.Path[:len(l.Path)-1]}
}

// Index returns the element's index within its parent sequence.
func (l Location) Index() int {
	if len(l.Path) == 0 {
		return -1
	}
	return l.Path[len(l.Path)-1]
}

// Find resolves a reference to a node. The root sentinel yields the
// document's Meta. Names are matched against pages first, then depth-first
// through elements and panel children in declaration order; the first match
// wins.
func Find(doc Document, ref Ref) (Node, bool) {
	if ref.IsRoot() {
		return doc.Meta, true
	}
	loc, ok := Locate(doc, ref.Name())
	if !ok {
		return nil, false
	}
	if loc.IsPage() {
		return doc.Pages[loc.Page], true
	}
	el, _ := ElementAt(doc, loc)
	return el, true
}

// Locate returns the location of the first page or element named name.
func Locate(doc Document, name string) (Location, bool) {
	if name == "" {
		return Location{}, false
	}
	if doc.Shape() == ShapeFlat {
		if path, ok := locateIn(doc.Elements, name, nil); ok {
			return Location{Page: -1, Path: path}, true
		}
		return Location{}, false
	}
	for idx, page := range doc.Pages {
		if page.Name == name {
			return Location{Page: idx}, true
		}
	}
	for idx, page := range doc.Pages {
		if path, ok := locateIn(page.Elements, name, nil); ok {
			return Location{Page: idx, Path: path}, true
		}
	}
	return Location{}, false
}

func locateIn(elements []Element, name string, prefix []int) ([]int, bool) {
	for idx, el := range elements {
		if el.Name == name {
			return appendPath(prefix, idx), true
		}
		if len(el.Elements) > 0 {
			if path, ok := locateIn(el.Elements, name, appendPath(prefix, idx)); ok {
				return path, true
			}
		}
	}
	return nil, false
}

func appendPath(prefix []int, idx int) []int {
	out := make([]int, len(prefix)+1)
	copy(out, prefix)
	out[len(prefix)] = idx
	return out
}

// ElementAt returns the element addressed by an element location.
func ElementAt(doc Document, loc Location) (Element, bool) {
	if len(loc.Path) == 0 {
		return Element{}, false
	}
	seq, ok := topLevel(doc, loc.Page)
	if !ok {
		return Element{}, false
	}
	var current Element
	for _, idx := range loc.Path {
		if idx < 0 || idx >= len(seq) {
			return Element{}, false
		}
		current = seq[idx]
		seq = current.Elements
	}
	return current, true
}

func topLevel(doc Document, page int) ([]Element, bool) {
	if page < 0 {
		return doc.Elements, doc.Shape() != ShapePaged
	}
	if page >= len(doc.Pages) {
		return nil, false
	}
	return doc.Pages[page].Elements, true
}

// WalkFunc is invoked for every element with its location. Returning false
// stops the walk.
type WalkFunc func(el Element, loc Location) bool

// Walk visits every element depth-first in declaration order.
func Walk(doc Document, fn WalkFunc) {
	if fn == nil {
		return
	}
	if doc.Shape() != ShapePaged {
		walkElements(doc.Elements, -1, nil, fn)
		return
	}
	for idx, page := range doc.Pages {
		if !walkElements(page.Elements, idx, nil, fn) {
			return
		}
	}
}

func walkElements(elements []Element, page int, prefix []int, fn WalkFunc) bool {
	for idx, el := range elements {
		path := appendPath(prefix, idx)
		if !fn(el, Location{Page: page, Path: path}) {
			return false
		}
		if len(el.Elements) > 0 && !walkElements(el.Elements, page, path, fn) {
			return false
		}
	}
	return true
}

// Names counts every page and element name in the document.
func Names(doc Document) map[string]int {
	names := make(map[string]int)
	for _, page := range doc.Pages {
		if page.Name != "" {
			names[page.Name]++
		}
	}
	Walk(doc, func(el Element, _ Location) bool {
		if el.Name != "" {
			names[el.Name]++
		}
		return true
	})
	return names
}

// Contains reports whether l addresses loc itself or one of its ancestors.
func (l Location) Contains(loc Location) bool {
	if l.Page != loc.Page || len(l.Path) > len(loc.Path) {
		return false
	}
	for idx := range l.Path {
		if l.Path[idx] != loc.Path[idx] {
			return false
		}
	}
	return true
}
