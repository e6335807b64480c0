package dnd

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// State is the drag session lifecycle. Dropped and Cancelled are transient:
// the coordinator passes through them on its way back to Idle.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateDropped
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateDropped:
		return "dropped"
	case StateCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

var (
	// ErrSessionActive is returned by Start while a gesture is in progress.
	ErrSessionActive = errors.New("dnd: drag session already active")
	// ErrNoSession is returned by Move, End and Cancel outside a gesture.
	ErrNoSession = errors.New("dnd: no active drag session")
	// ErrInvalidPayload is returned by Start for empty payloads.
	ErrInvalidPayload = errors.New("dnd: payload is empty")
)

// Payload is what is being dragged: NewElementPayload or
// ExistingElementPayload.
type Payload interface {
	activeID() string
}

// NewElementPayload is a palette item. Template carries optional preset
// properties; its Type is overridden by Type and an empty name is generated
// by the dispatcher.
type NewElementPayload struct {
	Type     string
	Template survey.Element
}

func (NewElementPayload) activeID() string { return "" }

// ExistingElementPayload is an element already on the canvas.
type ExistingElementPayload struct {
	Name string
}

func (p ExistingElementPayload) activeID() string { return p.Name }

// Dispatcher applies the single mutation a drop produces. pkg/editor
// implements it.
type Dispatcher interface {
	Document() survey.Document
	InsertElement(el survey.Element, page int, before string) error
	MoveElement(name string, page int, over string) error
}

// Session is the ephemeral state of one gesture.
type Session struct {
	ID        string
	Payload   Payload
	Hover     *Region
	StartedAt time.Time
}

// Outcome reports how a gesture ended.
type Outcome struct {
	SessionID string
	State     State
	Target    *Target
}

// Option customises a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for gesture diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTransitionHook registers a callback invoked on every state change.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(c *Coordinator) {
		c.onTransition = fn
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// Coordinator drives one drag gesture at a time through
// Idle -> Dragging -> {Dropped, Cancelled} -> Idle. Nothing is mutated until
// End resolves a target, and then exactly one dispatcher call is made.
type Coordinator struct {
	dispatcher   Dispatcher
	logger       *slog.Logger
	onTransition func(from, to State)
	now          func() time.Time

	state   State
	session *Session
}

// NewCoordinator builds a coordinator that drops into dispatcher.
func NewCoordinator(dispatcher Dispatcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		dispatcher: dispatcher,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State { return c.state }

// Session returns a copy of the active session.
func (c *Coordinator) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Start begins a gesture.
func (c *Coordinator) Start(payload Payload) (Session, error) {
	if c.state == StateDragging {
		return Session{}, ErrSessionActive
	}
	switch typed := payload.(type) {
	case NewElementPayload:
		if typed.Type == "" && typed.Template.Type == "" {
			return Session{}, ErrInvalidPayload
		}
	case ExistingElementPayload:
		if typed.Name == "" {
			return Session{}, ErrInvalidPayload
		}
	default:
		return Session{}, ErrInvalidPayload
	}

	c.session = &Session{
		ID:        uuid.NewString(),
		Payload:   payload,
		StartedAt: c.now(),
	}
	c.transition(StateDragging)
	c.logger.Debug("drag started", slog.String("session", c.session.ID), slog.String("active", payload.activeID()))
	return *c.session, nil
}

// Move updates the hovered region from the pointer position (nil when the
// gesture has no pointer) and the dragged item's current rectangle.
func (c *Coordinator) Move(pointer *Point, dragged Rect, regions []Region) (Region, bool, error) {
	if c.state != StateDragging || c.session == nil {
		return Region{}, false, ErrNoSession
	}
	region, ok := Detect(regions, pointer, dragged, c.session.Payload.activeID())
	if !ok {
		c.session.Hover = nil
		return Region{}, false, nil
	}
	c.session.Hover = &region
	return region, true, nil
}

// End finishes the gesture. Without a hovered region the gesture is
// cancelled and nothing happens; otherwise the target is resolved against
// the dispatcher's current document and one mutation is dispatched. The
// session is discarded in every case. The returned error is the
// dispatcher's.
func (c *Coordinator) End() (Outcome, error) {
	if c.state != StateDragging || c.session == nil {
		return Outcome{}, ErrNoSession
	}
	session := *c.session
	c.session = nil

	if session.Hover == nil {
		return c.finish(session, StateCancelled, nil), nil
	}

	doc := c.dispatcher.Document()
	switch payload := session.Payload.(type) {
	case NewElementPayload:
		target := ResolvePalette(doc, *session.Hover)
		el := payload.Template
		if payload.Type != "" {
			el.Type = payload.Type
		}
		err := c.dispatcher.InsertElement(el, target.Page, target.Before)
		return c.finish(session, StateDropped, &target), err
	case ExistingElementPayload:
		target, ok := ResolveExisting(doc, payload.Name, *session.Hover)
		if !ok {
			return c.finish(session, StateCancelled, nil), nil
		}
		err := c.dispatcher.MoveElement(payload.Name, target.Page, target.Before)
		return c.finish(session, StateDropped, &target), err
	}
	return c.finish(session, StateCancelled, nil), nil
}

// Cancel aborts the gesture without side effects.
func (c *Coordinator) Cancel() (Outcome, error) {
	if c.state != StateDragging || c.session == nil {
		return Outcome{}, ErrNoSession
	}
	session := *c.session
	c.session = nil
	return c.finish(session, StateCancelled, nil), nil
}

func (c *Coordinator) finish(session Session, state State, target *Target) Outcome {
	c.transition(state)
	attrs := []any{
		slog.String("session", session.ID),
		slog.String("outcome", state.String()),
		slog.Duration("elapsed", c.now().Sub(session.StartedAt)),
	}
	if target != nil {
		attrs = append(attrs, slog.Int("page", target.Page), slog.String("before", target.Before))
	}
	c.logger.Debug("drag finished", attrs...)
	c.transition(StateIdle)
	return Outcome{SessionID: session.ID, State: state, Target: target}
}

func (c *Coordinator) transition(to State) {
	from := c.state
	c.state = to
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}
