package editor

import (
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// DefaultCoalesceInterval groups rapid edits of the same node into one undo
// step.
const DefaultCoalesceInterval = 750 * time.Millisecond

// Option customises an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for command diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithAdvanceOnAddPage makes AddPage switch the canvas to the new page.
func WithAdvanceOnAddPage(enabled bool) Option {
	return func(e *Editor) {
		e.advanceOnAdd = enabled
	}
}

// WithHistoryLimit caps the number of undo steps kept. Zero is unlimited.
func WithHistoryLimit(limit int) Option {
	return func(e *Editor) {
		if limit >= 0 {
			e.historyLimit = limit
		}
	}
}

// WithCoalesceInterval overrides DefaultCoalesceInterval. Zero disables
// coalescing.
func WithCoalesceInterval(interval time.Duration) Option {
	return func(e *Editor) {
		if interval >= 0 {
			e.coalesce = interval
		}
	}
}

// WithNamePrefix sets the prefix of generated element names.
func WithNamePrefix(prefix string) Option {
	return func(e *Editor) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			e.namePrefix = prefix
		}
	}
}

// WithSanitize strips unsafe markup from titles, descriptions and choice
// texts of every loaded document.
func WithSanitize(enabled bool) Option {
	return func(e *Editor) {
		e.sanitize = enabled
	}
}

// OnSelectElement registers the hook fired when the selection changes. It
// receives nil when the selection is cleared.
func OnSelectElement(fn func(survey.Node)) Option {
	return func(e *Editor) {
		e.onSelect = fn
	}
}

// OnJSONChange registers the hook fired after every applied edit with the
// updated document.
func OnJSONChange(fn func(survey.Document)) Option {
	return func(e *Editor) {
		e.onJSONChange = fn
	}
}

// OnAddPage registers the hook fired after a page is appended.
func OnAddPage(fn func()) Option {
	return func(e *Editor) {
		e.onAddPage = fn
	}
}

// OnDeletePage registers the hook fired with the index of a removed page.
func OnDeletePage(fn func(int)) Option {
	return func(e *Editor) {
		e.onDeletePage = fn
	}
}
