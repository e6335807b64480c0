package editor

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/dnd"
	"github.com/goliatone/go-formbuilder/pkg/mutation"
	"github.com/goliatone/go-formbuilder/pkg/survey"
)

var _ dnd.Dispatcher = (*Editor)(nil)

// InsertElement adds el to the page at page before the top-level sibling
// named before, or at the end. Unnamed elements receive a generated name
// using the configured prefix. It satisfies dnd.Dispatcher.
func (e *Editor) InsertElement(el survey.Element, page int, before string) error {
	return e.commit("insert", func(doc survey.Document) (survey.Document, error) {
		if el.Name == "" {
			el.Name = survey.GenerateName(doc, e.namePrefix)
		}
		return mutation.InsertElement(doc, el, page, before)
	}, nil)
}

// AddFromPalette inserts a fresh element of the given type and returns its
// generated name.
func (e *Editor) AddFromPalette(elementType string, page int, before string) (string, error) {
	var name string
	err := e.commit("insert", func(doc survey.Document) (survey.Document, error) {
		if strings.TrimSpace(elementType) == "" {
			return doc, mutation.ErrInvalidElement
		}
		name = survey.GenerateName(doc, e.namePrefix)
		return mutation.InsertElement(doc, survey.Element{Type: elementType, Name: name}, page, before)
	}, nil)
	if err != nil {
		return "", err
	}
	return name, nil
}

// InsertIntoPanel adds el to the children of the named panel.
func (e *Editor) InsertIntoPanel(el survey.Element, panel, before string) error {
	return e.commit("insert", func(doc survey.Document) (survey.Document, error) {
		if el.Name == "" {
			el.Name = survey.GenerateName(doc, e.namePrefix)
		}
		return mutation.InsertIntoPanel(doc, el, panel, before)
	}, nil)
}

// Update replaces the node referenced by ref. When the selected node is
// updated OnSelectElement receives the new value, and a rename re-points the
// selection. Consecutive updates of the same node coalesce into one undo
// step.
func (e *Editor) Update(ref survey.Ref, node survey.Node) error {
	return e.commitCoalesced("update:"+ref.String(), func(doc survey.Document) (survey.Document, error) {
		return mutation.Update(doc, ref, node)
	}, func(_, next survey.Document, fire []func()) []func() {
		if !e.sel.IsSelected(ref) {
			return fire
		}
		target := ref
		if !ref.IsRoot() {
			renamed := strings.TrimSpace(node.NodeName())
			if renamed != "" && e.sel.Rename(ref.Name(), renamed) {
				target = survey.NameRef(renamed)
			}
		}
		if updated, ok := survey.Find(next, target); ok {
			fire = e.selectEvent(fire, updated)
		}
		return fire
	})
}

// Delete removes the page or element referenced by ref. A selection on the
// removed node, or anything inside it, is cleared.
func (e *Editor) Delete(ref survey.Ref) error {
	deleted := -1
	return e.commit("delete", func(doc survey.Document) (survey.Document, error) {
		if !ref.IsRoot() && !ref.IsZero() {
			if idx, ok := doc.PageIndex(ref.Name()); ok {
				deleted = idx
			}
		}
		return mutation.DeleteNode(doc, ref)
	}, func(_, next survey.Document, fire []func()) []func() {
		if deleted >= 0 {
			fire = e.pageDeleted(fire, deleted, next.PageCount())
		}
		return fire
	})
}

// AddPage appends an empty page, selects it and returns its name.
func (e *Editor) AddPage() string {
	var name string
	_ = e.commit("add-page", func(doc survey.Document) (survey.Document, error) {
		return mutation.AddPage(doc), nil
	}, func(_, next survey.Document, fire []func()) []func() {
		count := next.PageCount()
		page := next.Pages[count-1]
		name = page.Name
		e.nav.AfterAdd(count)
		if e.onAddPage != nil {
			fire = append(fire, e.onAddPage)
		}
		e.sel.Select(survey.RefOf(page))
		return e.selectEvent(fire, page)
	})
	return name
}

// DeletePage removes the page at index. The last page cannot be removed.
func (e *Editor) DeletePage(index int) error {
	return e.commit("delete-page", func(doc survey.Document) (survey.Document, error) {
		return mutation.DeletePage(doc, index)
	}, func(_, next survey.Document, fire []func()) []func() {
		return e.pageDeleted(fire, index, next.PageCount())
	})
}

func (e *Editor) pageDeleted(fire []func(), index, count int) []func() {
	e.nav.AfterDelete(index, count)
	if e.onDeletePage == nil {
		return fire
	}
	hook := e.onDeletePage
	return append(fire, func() { hook(index) })
}

// MoveElement moves the named element to the page at page, over the
// top-level sibling named over or to the end. It satisfies dnd.Dispatcher.
func (e *Editor) MoveElement(name string, page int, over string) error {
	return e.commit("move", func(doc survey.Document) (survey.Document, error) {
		return mutation.MoveElement(doc, name, page, over)
	}, nil)
}

// MovePage reorders pages, keeping the current page in view.
func (e *Editor) MovePage(from, to int) error {
	return e.commit("move-page", func(doc survey.Document) (survey.Document, error) {
		return mutation.MovePage(doc, from, to)
	}, func(_, next survey.Document, fire []func()) []func() {
		e.nav.AfterMove(from, to, next.PageCount())
		return fire
	})
}

// Duplicate copies the named element next to itself and returns the copy's
// name.
func (e *Editor) Duplicate(name string) (string, error) {
	var created string
	err := e.commit("duplicate", func(doc survey.Document) (survey.Document, error) {
		out, copyName, err := mutation.DuplicateElement(doc, name)
		created = copyName
		return out, err
	}, nil)
	if err != nil {
		return "", err
	}
	return created, nil
}
