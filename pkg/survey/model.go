package survey

// Kind classifies the nodes reachable from a Document.
type Kind string

const (
	KindRoot    Kind = "survey"
	KindPage    Kind = "page"
	KindElement Kind = "element"
)

// RootType is the reserved type tag hosts attach to the document root when
// they select it. It never names a page or element.
const RootType = "survey"

// Element types the builder treats specially. Every other type string is
// accepted as-is and carried through untouched.
const (
	TypeText         = "text"
	TypeComment      = "comment"
	TypeCheckbox     = "checkbox"
	TypeRadioGroup   = "radiogroup"
	TypeDropdown     = "dropdown"
	TypeTagbox       = "tagbox"
	TypeRanking      = "ranking"
	TypeBoolean      = "boolean"
	TypeRating       = "rating"
	TypeMatrix       = "matrix"
	TypeHTML         = "html"
	TypeExpression   = "expression"
	TypePanel        = "panel"
	TypePanelDynamic = "paneldynamic"
)

// Node is implemented by the three node kinds: Meta (the root), Page and
// Element.
type Node interface {
	Kind() Kind
	NodeName() string
}

// Meta holds the document's top-level display properties. It doubles as the
// root node returned by Find for the root sentinel.
type Meta struct {
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Logo        string         `json:"logo,omitempty"`
	Extra       map[string]any `json:"-"`
}

// Kind implements Node.
func (Meta) Kind() Kind { return KindRoot }

// NodeName implements Node. The root has no name.
func (Meta) NodeName() string { return "" }

// Document is the editable schema tree. A document is either paged (Pages
// set) or flat (Elements set, legacy single-page shape), never both.
type Document struct {
	Meta
	Pages    []Page    `json:"pages,omitempty"`
	Elements []Element `json:"elements,omitempty"`
}

// Page is a top-level ordered container of elements.
type Page struct {
	Name      string         `json:"name"`
	Title     string         `json:"title,omitempty"`
	VisibleIf string         `json:"visibleIf,omitempty"`
	Elements  []Element      `json:"elements"`
	Extra     map[string]any `json:"-"`
}

// Kind implements Node.
func (Page) Kind() Kind { return KindPage }

// NodeName implements Node.
func (p Page) NodeName() string { return p.Name }

// Element is a single question or panel. Type-specific properties that the
// builder does not model explicitly (rateMax, inputType, columns, ...) live
// in Extra and round-trip unchanged.
type Element struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	IsRequired  bool           `json:"isRequired,omitempty"`
	VisibleIf   string         `json:"visibleIf,omitempty"`
	Choices     []Choice       `json:"choices,omitempty"`
	Elements    []Element      `json:"elements,omitempty"`
	Extra       map[string]any `json:"-"`
}

// Kind implements Node.
func (Element) Kind() Kind { return KindElement }

// NodeName implements Node.
func (e Element) NodeName() string { return e.Name }

// IsPanel reports whether the element owns nested child elements.
func (e Element) IsPanel() bool {
	return e.Type == TypePanel || e.Type == TypePanelDynamic
}

// Choice is a single option of a choice-like element.
type Choice struct {
	Value any    `json:"value"`
	Text  string `json:"text,omitempty"`
}

// Shape describes which of the two document layouts is populated.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeFlat
	ShapePaged
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapePaged:
		return "paged"
	default:
		return "empty"
	}
}

// Shape reports the document layout. Pages win when both are populated.
func (d Document) Shape() Shape {
	switch {
	case len(d.Pages) > 0:
		return ShapePaged
	case len(d.Elements) > 0:
		return ShapeFlat
	default:
		return ShapeEmpty
	}
}

// PageCount returns the number of pages, counting a flat document as one.
func (d Document) PageCount() int {
	switch d.Shape() {
	case ShapePaged:
		return len(d.Pages)
	case ShapeFlat:
		return 1
	default:
		return 0
	}
}

// PageIndex returns the index of the page with the given name.
func (d Document) PageIndex(name string) (int, bool) {
	for idx, page := range d.Pages {
		if page.Name == name {
			return idx, true
		}
	}
	return -1, false
}
