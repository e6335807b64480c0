// Package selection tracks the single node open for editing. The controller
// does not observe document mutations: callers re-point it after renames and
// clear it after deletions (pkg/editor does both).
package selection

import "github.com/goliatone/go-formbuilder/pkg/survey"

// Controller holds at most one selected reference.
type Controller struct {
	current survey.Ref
	set     bool
}

// New returns a controller with nothing selected.
func New() *Controller {
	return &Controller{}
}

// Select makes ref the current selection. A zero ref clears it.
func (c *Controller) Select(ref survey.Ref) {
	if ref.IsZero() {
		c.Clear()
		return
	}
	c.current = ref
	c.set = true
}

// Clear drops the current selection.
func (c *Controller) Clear() {
	c.current = survey.Ref{}
	c.set = false
}

// Current returns the selected reference.
func (c *Controller) Current() (survey.Ref, bool) {
	if c == nil || !c.set {
		return survey.Ref{}, false
	}
	return c.current, true
}

// IsSelected reports whether ref is the current selection.
func (c *Controller) IsSelected(ref survey.Ref) bool {
	current, ok := c.Current()
	return ok && current == ref
}

// Rename re-points the selection from oldName to newName when oldName is
// selected. It reports whether the selection changed.
func (c *Controller) Rename(oldName, newName string) bool {
	if oldName == newName || !c.IsSelected(survey.NameRef(oldName)) {
		return false
	}
	c.Select(survey.NameRef(newName))
	return true
}

// Forget clears the selection when it references ref.
func (c *Controller) Forget(ref survey.Ref) bool {
	if !c.IsSelected(ref) {
		return false
	}
	c.Clear()
	return true
}

// Resolve returns the selected node within doc. A selection that no longer
// resolves reports false.
func (c *Controller) Resolve(doc survey.Document) (survey.Node, bool) {
	current, ok := c.Current()
	if !ok {
		return nil, false
	}
	return survey.Find(doc, current)
}
