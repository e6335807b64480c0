// Package pagenav tracks the page currently shown in the editor canvas.
package pagenav

// Navigator keeps the current page index within [0, pageCount-1].
type Navigator struct {
	current      int
	advanceOnAdd bool
}

// Option customises a Navigator.
type Option func(*Navigator)

// WithAdvanceOnAdd makes AfterAdd jump to the newly appended last page.
func WithAdvanceOnAdd(enabled bool) Option {
	return func(n *Navigator) {
		n.advanceOnAdd = enabled
	}
}

// New returns a navigator positioned on the first page.
func New(opts ...Option) *Navigator {
	n := &Navigator{}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Current returns the current page index.
func (n *Navigator) Current() int {
	if n == nil {
		return 0
	}
	return n.current
}

// Set moves to index, clamped to the valid range.
func (n *Navigator) Set(index, pageCount int) int {
	n.current = clamp(index, pageCount)
	return n.current
}

// Next advances one page, stopping at the last.
func (n *Navigator) Next(pageCount int) int {
	return n.Set(n.current+1, pageCount)
}

// Prev goes back one page, stopping at the first.
func (n *Navigator) Prev(pageCount int) int {
	return n.Set(n.current-1, pageCount)
}

// Clamp re-validates the index after the page count changed.
func (n *Navigator) Clamp(pageCount int) int {
	return n.Set(n.current, pageCount)
}

// AfterAdd applies the add-page policy: jump to the new last page when
// advancing is enabled, otherwise stay put.
func (n *Navigator) AfterAdd(pageCount int) int {
	if n.advanceOnAdd {
		return n.Set(pageCount-1, pageCount)
	}
	return n.Clamp(pageCount)
}

// AfterDelete adjusts the index after the page at deleted was removed. Pages
// before the current one shift it down so the same page stays in view.
func (n *Navigator) AfterDelete(deleted, pageCount int) int {
	if deleted < n.current {
		return n.Set(n.current-1, pageCount)
	}
	return n.Clamp(pageCount)
}

// AfterMove keeps the same page in view after a page reorder.
func (n *Navigator) AfterMove(from, to, pageCount int) int {
	current := n.current
	switch {
	case current == from:
		current = to
	case from < current && current <= to:
		current--
	case to <= current && current < from:
		current++
	}
	return n.Set(current, pageCount)
}

func clamp(index, pageCount int) int {
	if pageCount <= 0 || index < 0 {
		return 0
	}
	if index >= pageCount {
		return pageCount - 1
	}
	return index
}
