package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/survey"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

type scriptedDriver struct {
	t        *testing.T
	inputs   []string
	confirms []bool
	selects  []int
	infos    []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		d.t.Fatalf("unexpected input prompt %q", cfg.Message)
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	if v == "" {
		return cfg.Default, nil
	}
	return v, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		d.t.Fatalf("unexpected confirm prompt %q", cfg.Message)
	}
	v := d.confirms[0]
	d.confirms = d.confirms[1:]
	return v, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, ErrAborted
	}
	v := d.selects[0]
	d.selects = d.selects[1:]
	return v, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func action(name string) int {
	for idx, item := range menu {
		if item == name {
			return idx
		}
	}
	panic("unknown action " + name)
}

func paletteIndex(kind string) int {
	for idx, item := range Palette {
		if item == kind {
			return idx
		}
	}
	panic("unknown type " + kind)
}

func newEditor(t *testing.T) *editor.Editor {
	doc := testsupport.MustDecode(t, `{"pages":[{"name":"page1","elements":[{"type":"text","name":"q1"}]}]}`)
	return editor.New(doc, editor.WithCoalesceInterval(0))
}

func TestSession_AddMoveAndFinish(t *testing.T) {
	ed := newEditor(t)
	driver := &scriptedDriver{
		t: t,
		selects: []int{
			action(ActionAdd), paletteIndex(survey.TypeRating), 0, // rating before q1
			action(ActionAddPage),
			action(ActionMove), 1, 1, 0, // move q1 to page 2, end of page
			action(ActionFinish),
		},
		inputs: []string{"", "How likely?"},
	}

	if err := NewSession(ed, driver, nil).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	doc := ed.Document()
	if diff := cmp.Diff([]string{"question1"}, testsupport.ElementNames(t, doc, 0)); diff != "" {
		t.Fatalf("page1 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"q1"}, testsupport.ElementNames(t, doc, 1)); diff != "" {
		t.Fatalf("page2 mismatch (-want +got):\n%s", diff)
	}
	if got := doc.Pages[0].Elements[0].Title; got != "How likely?" {
		t.Fatalf("unexpected title %q", got)
	}
	if !strings.HasPrefix(driver.infos[0], "Page 1/1 page1: q1") {
		t.Fatalf("unexpected summary %q", driver.infos[0])
	}
}

func TestSession_EditDeleteAndUndo(t *testing.T) {
	ed := newEditor(t)
	driver := &scriptedDriver{
		t: t,
		selects: []int{
			action(ActionEdit), 0,
			action(ActionDelete), 0,
			action(ActionUndo),
			action(ActionFinish),
		},
		inputs:   []string{"email", "Email address"},
		confirms: []bool{true, true},
	}

	if err := NewSession(ed, driver, nil).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	doc := ed.Document()
	if diff := cmp.Diff([]string{"email"}, testsupport.ElementNames(t, doc, 0)); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
	el := doc.Pages[0].Elements[0]
	if el.Title != "Email address" || !el.IsRequired {
		t.Fatalf("unexpected element %+v", el)
	}
}

func TestSession_ReportsRejectedEdits(t *testing.T) {
	ed := newEditor(t)
	driver := &scriptedDriver{
		t:        t,
		selects:  []int{action(ActionDelPage), action(ActionRedo), action(ActionFinish)},
		confirms: []bool{true},
	}
	if err := NewSession(ed, driver, nil).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	var reported []string
	for _, msg := range driver.infos {
		if strings.HasPrefix(msg, "! ") {
			reported = append(reported, msg)
		}
	}
	if len(reported) != 2 {
		t.Fatalf("expected two rejected actions, got %v", reported)
	}
}

func TestSession_AbortPropagates(t *testing.T) {
	ed := newEditor(t)
	driver := &scriptedDriver{t: t}
	if err := NewSession(ed, driver, nil).Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
