package dnd_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/dnd"
	"github.com/goliatone/go-formbuilder/pkg/mutation"
	"github.com/goliatone/go-formbuilder/pkg/survey"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

type recordingDispatcher struct {
	doc   survey.Document
	calls []string
}

func (d *recordingDispatcher) Document() survey.Document { return d.doc }

func (d *recordingDispatcher) InsertElement(el survey.Element, page int, before string) error {
	d.calls = append(d.calls, "insert")
	out, err := mutation.InsertElement(d.doc, el, page, before)
	if err != nil {
		return err
	}
	d.doc = out
	return nil
}

func (d *recordingDispatcher) MoveElement(name string, page int, over string) error {
	d.calls = append(d.calls, "move")
	out, err := mutation.MoveElement(d.doc, name, page, over)
	if err != nil {
		return err
	}
	d.doc = out
	return nil
}

func TestCoordinator_PaletteDropBeforeSibling(t *testing.T) {
	dispatcher := &recordingDispatcher{doc: testsupport.MustDecode(t, `{"pages":[{"name":"page1","elements":[{"type":"text","name":"q1"}]}]}`)}
	var transitions []string
	coord := dnd.NewCoordinator(dispatcher, dnd.WithTransitionHook(func(from, to dnd.State) {
		transitions = append(transitions, from.String()+">"+to.String())
	}))

	if _, err := coord.Start(dnd.NewElementPayload{Type: survey.TypeRating}); err != nil {
		t.Fatalf("start: %v", err)
	}
	regions := []dnd.Region{
		dnd.PageRegion(0, dnd.Rect{X: 0, Y: 0, Width: 400, Height: 400}),
		dnd.ElementRegion("q1", dnd.Rect{X: 10, Y: 10, Width: 380, Height: 40}),
	}
	hover, ok, err := coord.Move(&dnd.Point{X: 50, Y: 20}, dnd.Rect{}, regions)
	if err != nil || !ok || hover.ID != "q1" {
		t.Fatalf("expected hover on q1, got %+v ok=%v err=%v", hover, ok, err)
	}

	outcome, err := coord.End()
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if outcome.State != dnd.StateDropped {
		t.Fatalf("expected dropped, got %s", outcome.State)
	}
	if diff := cmp.Diff([]string{"question1", "q1"}, testsupport.ElementNames(t, dispatcher.doc, 0)); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
	if got := dispatcher.doc.Pages[0].Elements[0].Type; got != survey.TypeRating {
		t.Fatalf("expected rating, got %q", got)
	}
	if coord.State() != dnd.StateIdle {
		t.Fatalf("expected idle after drop, got %s", coord.State())
	}
	want := []string{"idle>dragging", "dragging>dropped", "dropped>idle"}
	if diff := cmp.Diff(want, transitions); diff != "" {
		t.Fatalf("transition mismatch (-want +got):\n%s", diff)
	}
}

func TestCoordinator_ReorderSamePage(t *testing.T) {
	dispatcher := &recordingDispatcher{doc: testsupport.LoadDocument(t, canvasFixture)}
	coord := dnd.NewCoordinator(dispatcher)

	if _, err := coord.Start(dnd.ExistingElementPayload{Name: "q1"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	regions := []dnd.Region{
		dnd.ElementRegion("q1", dnd.Rect{X: 0, Y: 0, Width: 100, Height: 40}),
		dnd.ElementRegion("q2", dnd.Rect{X: 0, Y: 50, Width: 100, Height: 40}),
		dnd.ElementRegion("q3", dnd.Rect{X: 0, Y: 100, Width: 100, Height: 40}),
	}
	if _, _, err := coord.Move(&dnd.Point{X: 10, Y: 110}, dnd.Rect{}, regions); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := coord.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if diff := cmp.Diff([]string{"q2", "q3", "q1"}, testsupport.ElementNames(t, dispatcher.doc, 0)); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestCoordinator_CrossPageToEmptyPage(t *testing.T) {
	dispatcher := &recordingDispatcher{doc: testsupport.LoadDocument(t, canvasFixture)}
	coord := dnd.NewCoordinator(dispatcher)

	if _, err := coord.Start(dnd.ExistingElementPayload{Name: "q2"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	regions := []dnd.Region{dnd.PageRegion(2, dnd.Rect{X: 0, Y: 0, Width: 300, Height: 300})}
	if _, _, err := coord.Move(&dnd.Point{X: 10, Y: 10}, dnd.Rect{}, regions); err != nil {
		t.Fatalf("move: %v", err)
	}
	outcome, err := coord.End()
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if outcome.Target == nil || outcome.Target.Page != 2 {
		t.Fatalf("expected target on page 2, got %+v", outcome.Target)
	}
	if diff := cmp.Diff([]string{"q1", "q3"}, testsupport.ElementNames(t, dispatcher.doc, 0)); diff != "" {
		t.Fatalf("page1 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"q2"}, testsupport.ElementNames(t, dispatcher.doc, 2)); diff != "" {
		t.Fatalf("page3 mismatch (-want +got):\n%s", diff)
	}
}

func TestCoordinator_EndWithoutHoverCancels(t *testing.T) {
	dispatcher := &recordingDispatcher{doc: testsupport.LoadDocument(t, canvasFixture)}
	coord := dnd.NewCoordinator(dispatcher)

	if _, err := coord.Start(dnd.NewElementPayload{Type: survey.TypeText}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, ok, err := coord.Move(&dnd.Point{}, dnd.Rect{}, nil); err != nil || ok {
		t.Fatalf("expected no hover, ok=%v err=%v", ok, err)
	}
	outcome, err := coord.End()
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if outcome.State != dnd.StateCancelled {
		t.Fatalf("expected cancelled, got %s", outcome.State)
	}
	if len(dispatcher.calls) != 0 {
		t.Fatalf("expected no dispatch, got %v", dispatcher.calls)
	}
}

func TestCoordinator_DropOnSelfCancels(t *testing.T) {
	dispatcher := &recordingDispatcher{doc: testsupport.LoadDocument(t, canvasFixture)}
	coord := dnd.NewCoordinator(dispatcher)

	if _, err := coord.Start(dnd.ExistingElementPayload{Name: "q1"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Only the dragged element is present, so detection finds nothing.
	regions := []dnd.Region{dnd.ElementRegion("q1", dnd.Rect{Width: 100, Height: 40})}
	if _, ok, _ := coord.Move(&dnd.Point{X: 5, Y: 5}, dnd.Rect{Width: 100, Height: 40}, regions); ok {
		t.Fatalf("dragged element must not be its own target")
	}
	outcome, err := coord.End()
	if err != nil || outcome.State != dnd.StateCancelled {
		t.Fatalf("expected cancelled, got %s err=%v", outcome.State, err)
	}
	if len(dispatcher.calls) != 0 {
		t.Fatalf("expected no dispatch, got %v", dispatcher.calls)
	}
}

func TestCoordinator_Lifecycle(t *testing.T) {
	coord := dnd.NewCoordinator(&recordingDispatcher{})

	if _, _, err := coord.Move(nil, dnd.Rect{}, nil); !errors.Is(err, dnd.ErrNoSession) {
		t.Fatalf("expected ErrNoSession from Move, got %v", err)
	}
	if _, err := coord.End(); !errors.Is(err, dnd.ErrNoSession) {
		t.Fatalf("expected ErrNoSession from End, got %v", err)
	}
	if _, err := coord.Cancel(); !errors.Is(err, dnd.ErrNoSession) {
		t.Fatalf("expected ErrNoSession from Cancel, got %v", err)
	}
	if _, err := coord.Start(dnd.ExistingElementPayload{}); !errors.Is(err, dnd.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	if _, err := coord.Start(nil); !errors.Is(err, dnd.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload for nil payload, got %v", err)
	}

	session, err := coord.Start(dnd.NewElementPayload{Type: survey.TypeText})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.ID == "" {
		t.Fatalf("expected session id")
	}
	if _, err := coord.Start(dnd.NewElementPayload{Type: survey.TypeText}); !errors.Is(err, dnd.ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
	if active, ok := coord.Session(); !ok || active.ID != session.ID {
		t.Fatalf("expected active session %q", session.ID)
	}

	outcome, err := coord.Cancel()
	if err != nil || outcome.State != dnd.StateCancelled || outcome.SessionID != session.ID {
		t.Fatalf("unexpected cancel outcome %+v err=%v", outcome, err)
	}
	if _, ok := coord.Session(); ok {
		t.Fatalf("session should be discarded after cancel")
	}
	if coord.State() != dnd.StateIdle {
		t.Fatalf("expected idle, got %s", coord.State())
	}
}

func TestCoordinator_DispatchErrorStillEndsSession(t *testing.T) {
	doc := testsupport.LoadDocument(t, canvasFixture)
	dispatcher := &recordingDispatcher{doc: doc}
	coord := dnd.NewCoordinator(dispatcher)

	template := survey.Element{Name: "q1"}
	if _, err := coord.Start(dnd.NewElementPayload{Type: survey.TypeText, Template: template}); err != nil {
		t.Fatalf("start: %v", err)
	}
	regions := []dnd.Region{dnd.PageRegion(0, dnd.Rect{Width: 100, Height: 100})}
	if _, _, err := coord.Move(&dnd.Point{X: 1, Y: 1}, dnd.Rect{}, regions); err != nil {
		t.Fatalf("move: %v", err)
	}
	_, err := coord.End()
	if !errors.Is(err, mutation.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if coord.State() != dnd.StateIdle {
		t.Fatalf("expected idle, got %s", coord.State())
	}
	if diff := testsupport.DiffDocuments(doc, dispatcher.doc); diff != "" {
		t.Fatalf("document changed (-want +got):\n%s", diff)
	}
}
