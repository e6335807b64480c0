// Package editor routes every builder command through one dispatcher that
// updates the document, the selection and the current page together, records
// undo history and notifies the host.
package editor

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-formbuilder/internal/history"
	"github.com/goliatone/go-formbuilder/pkg/mutation"
	"github.com/goliatone/go-formbuilder/pkg/pagenav"
	"github.com/goliatone/go-formbuilder/pkg/selection"
	"github.com/goliatone/go-formbuilder/pkg/survey"
)

var (
	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("editor: nothing to undo")
	// ErrNothingToRedo is returned by Redo when nothing was undone.
	ErrNothingToRedo = errors.New("editor: nothing to redo")
)

// Editor owns the document being built. All methods are safe for concurrent
// use; hooks run synchronously after the state change, outside the lock, so
// they may call back into the editor.
type Editor struct {
	mu      sync.Mutex
	doc     survey.Document
	sel     *selection.Controller
	nav     *pagenav.Navigator
	history *history.Manager

	logger       *slog.Logger
	namePrefix   string
	advanceOnAdd bool
	historyLimit int
	coalesce     time.Duration
	sanitize     bool

	onSelect     func(survey.Node)
	onJSONChange func(survey.Document)
	onAddPage    func()
	onDeletePage func(int)
}

// New returns an editor for doc, normalised to the paged shape, with nothing
// selected and the first page current.
func New(doc survey.Document, opts ...Option) *Editor {
	e := &Editor{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		namePrefix: survey.DefaultElementPrefix,
		coalesce:   DefaultCoalesceInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.sel = selection.New()
	e.nav = pagenav.New(pagenav.WithAdvanceOnAdd(e.advanceOnAdd))
	e.history = history.NewManager(history.Config{MaxDepth: e.historyLimit, MinInterval: e.coalesce})
	e.doc = e.prepare(doc)
	return e
}

// Document returns the current document snapshot.
func (e *Editor) Document() survey.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

// Selection returns the selected reference.
func (e *Editor) Selection() (survey.Ref, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Current()
}

// SelectedNode resolves the selection against the current document.
func (e *Editor) SelectedNode() (survey.Node, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Resolve(e.doc)
}

// CurrentPage returns the index of the page shown in the canvas.
func (e *Editor) CurrentPage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nav.Current()
}

// Load replaces the document wholesale, as when the host opens another
// survey. Selection, page and history are reset; no hooks fire.
func (e *Editor) Load(doc survey.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = e.prepare(doc)
	e.sel.Clear()
	e.nav.Set(0, e.doc.PageCount())
	e.history.Clear()
	e.logger.Debug("document loaded", slog.Int("pages", e.doc.PageCount()))
}

func (e *Editor) prepare(doc survey.Document) survey.Document {
	doc = survey.EnsurePaged(doc)
	if e.sanitize {
		doc = survey.Sanitize(doc)
	}
	return doc
}

// Select opens ref for editing. A zero ref clears the selection. References
// that do not resolve return mutation.ErrNotFound and keep the selection.
func (e *Editor) Select(ref survey.Ref) error {
	if ref.IsZero() {
		e.ClearSelection()
		return nil
	}
	e.mu.Lock()
	node, ok := survey.Find(e.doc, ref)
	if !ok {
		e.mu.Unlock()
		return mutation.ErrNotFound
	}
	e.sel.Select(ref)
	var fire []func()
	fire = e.selectEvent(fire, node)
	e.mu.Unlock()
	run(fire)
	return nil
}

// ClearSelection drops the selection.
func (e *Editor) ClearSelection() {
	e.mu.Lock()
	_, had := e.sel.Current()
	e.sel.Clear()
	var fire []func()
	if had {
		fire = e.selectEvent(fire, nil)
	}
	e.mu.Unlock()
	run(fire)
}

// GoToPage makes index the current page, clamped to the valid range.
func (e *Editor) GoToPage(index int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nav.Set(index, e.doc.PageCount())
}

// NextPage advances one page.
func (e *Editor) NextPage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nav.Next(e.doc.PageCount())
}

// PrevPage goes back one page.
func (e *Editor) PrevPage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nav.Prev(e.doc.PageCount())
}

// CanUndo reports whether Undo has anything to restore.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo has anything to restore.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Undo restores the state before the latest edit.
func (e *Editor) Undo() error {
	return e.restore(e.history.Undo, ErrNothingToUndo, "undo")
}

// Redo reapplies the latest undone edit.
func (e *Editor) Redo() error {
	return e.restore(e.history.Redo, ErrNothingToRedo, "redo")
}

func (e *Editor) restore(pop func(history.Entry) (history.Entry, bool), empty error, op string) error {
	e.mu.Lock()
	entry, ok := pop(history.Entry{Doc: e.doc, Page: e.nav.Current(), TS: time.Now()})
	if !ok {
		e.mu.Unlock()
		return empty
	}
	e.doc = entry.Doc
	e.nav.Set(entry.Page, e.doc.PageCount())
	fire := e.reconcileSelection(nil)
	fire = e.jsonEvent(fire)
	e.logger.Debug("history restored", slog.String("op", op), slog.String("entry", entry.ID), slog.String("label", entry.Label))
	e.mu.Unlock()
	run(fire)
	return nil
}

type (
	applyFunc func(survey.Document) (survey.Document, error)
	afterFunc func(prev, next survey.Document, fire []func()) []func()
)

// commit applies fn to the current document. On success the previous state
// is recorded for undo, the selection is reconciled, the page index clamped
// and OnJSONChange queued. after runs under the lock with the new document
// and may queue further hooks. Every commit is its own undo step.
func (e *Editor) commit(label string, fn applyFunc, after afterFunc) error {
	return e.apply(label, false, fn, after)
}

// commitCoalesced is commit for edits that merge with an immediately
// preceding edit of the same label.
func (e *Editor) commitCoalesced(label string, fn applyFunc, after afterFunc) error {
	return e.apply(label, true, fn, after)
}

func (e *Editor) apply(label string, coalesce bool, fn applyFunc, after afterFunc) error {
	e.mu.Lock()
	prev := e.doc
	next, err := fn(prev)
	if err != nil {
		e.mu.Unlock()
		e.logger.Debug("command rejected", slog.String("command", label), slog.Any("error", err))
		return err
	}

	e.history.Record(history.Entry{Label: label, Doc: prev, Page: e.nav.Current(), TS: time.Now(), Coalesce: coalesce})
	e.doc = next

	var fire []func()
	if after != nil {
		fire = after(prev, next, fire)
	}
	e.nav.Clamp(next.PageCount())
	fire = e.reconcileSelection(fire)
	fire = e.jsonEvent(fire)
	e.logger.Debug("command applied", slog.String("command", label), slog.Int("pages", next.PageCount()))
	e.mu.Unlock()

	run(fire)
	return nil
}

// reconcileSelection clears a selection that no longer resolves, which
// covers deleted nodes and nodes inside deleted panels or pages.
func (e *Editor) reconcileSelection(fire []func()) []func() {
	if _, ok := e.sel.Current(); !ok {
		return fire
	}
	if _, ok := e.sel.Resolve(e.doc); ok {
		return fire
	}
	e.sel.Clear()
	return e.selectEvent(fire, nil)
}

func (e *Editor) selectEvent(fire []func(), node survey.Node) []func() {
	if e.onSelect == nil {
		return fire
	}
	hook := e.onSelect
	return append(fire, func() { hook(node) })
}

func (e *Editor) jsonEvent(fire []func()) []func() {
	if e.onJSONChange == nil {
		return fire
	}
	hook, doc := e.onJSONChange, e.doc
	return append(fire, func() { hook(doc) })
}

func run(fire []func()) {
	for _, fn := range fire {
		fn()
	}
}
