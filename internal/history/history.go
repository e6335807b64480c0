// Package history keeps the undo and redo stacks of the editor.
//
// Documents are persistent values, so an entry holds the document itself
// rather than a serialised blob; consecutive entries share every page the
// edit between them did not touch.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// Entry is one restorable editor state.
type Entry struct {
	ID    string
	Label string
	Doc   survey.Document
	Page  int
	TS    time.Time
	// Coalesce lets a following entry with the same label, recorded within
	// Config.MinInterval, merge into this one.
	Coalesce bool
}

// Config controls depth caps and coalescing.
type Config struct {
	// MaxDepth limits the undo stack; the oldest entries are dropped first.
	// Zero means unlimited.
	MaxDepth int
	// MinInterval merges coalescible entries with the same non-empty label
	// recorded within the interval, so a burst of property edits undoes in
	// one step.
	MinInterval time.Duration
}

// Manager is an in-memory undo/redo stack. It is safe for concurrent use.
type Manager struct {
	cfg  Config
	mu   sync.Mutex
	undo []Entry
	redo []Entry
}

// NewManager returns an empty manager.
func NewManager(cfg Config) *Manager {
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	return &Manager{cfg: cfg}
}

// Record pushes the state that existed before an edit. Any new edit
// invalidates the redo stack.
func (m *Manager) Record(e Entry) Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.TS.IsZero() {
		e.TS = time.Now()
	}
	m.redo = nil

	if n := len(m.undo); n > 0 && e.Coalesce && e.Label != "" && m.cfg.MinInterval > 0 {
		last := m.undo[n-1]
		if last.Coalesce && last.Label == e.Label && e.TS.Sub(last.TS) < m.cfg.MinInterval {
			// Keep the oldest state of the burst, extend its window.
			last.TS = e.TS
			m.undo[n-1] = last
			return last
		}
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	m.undo = append(m.undo, e)
	m.enforceCapLocked()
	return e
}

// Undo pops the latest recorded state and parks current on the redo stack.
func (m *Manager) Undo(current Entry) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.undo)
	if n == 0 {
		return Entry{}, false
	}
	e := m.undo[n-1]
	m.undo = m.undo[:n-1]
	m.redo = append(m.redo, withID(current, e.Label))
	return e, true
}

// Redo pops the latest undone state and parks current on the undo stack.
func (m *Manager) Redo(current Entry) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.redo)
	if n == 0 {
		return Entry{}, false
	}
	e := m.redo[n-1]
	m.redo = m.redo[:n-1]
	m.undo = append(m.undo, withID(current, e.Label))
	m.enforceCapLocked()
	return e, true
}

// CanUndo reports whether Undo would succeed.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

// CanRedo reports whether Redo would succeed.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = nil
	m.redo = nil
}

// Stats returns the stack depths for diagnostics.
func (m *Manager) Stats() (undo, redo int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo), len(m.redo)
}

func (m *Manager) enforceCapLocked() {
	if m.cfg.MaxDepth > 0 && len(m.undo) > m.cfg.MaxDepth {
		drop := len(m.undo) - m.cfg.MaxDepth
		m.undo = append([]Entry(nil), m.undo[drop:]...)
	}
}

func withID(e Entry, label string) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Label == "" {
		e.Label = label
	}
	if e.TS.IsZero() {
		e.TS = time.Now()
	}
	return e
}
