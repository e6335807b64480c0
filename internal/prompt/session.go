package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/mutation"
	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// Palette lists the element types offered when adding a question.
var Palette = []string{
	survey.TypeText,
	survey.TypeComment,
	survey.TypeCheckbox,
	survey.TypeRadioGroup,
	survey.TypeDropdown,
	survey.TypeTagbox,
	survey.TypeRanking,
	survey.TypeBoolean,
	survey.TypeRating,
	survey.TypeHTML,
	survey.TypeExpression,
	survey.TypePanel,
}

// Menu actions, in display order.
const (
	ActionAdd       = "Add question"
	ActionEdit      = "Edit question"
	ActionMove      = "Move question"
	ActionDuplicate = "Duplicate question"
	ActionDelete    = "Delete question"
	ActionAddPage   = "Add page"
	ActionDelPage   = "Delete page"
	ActionNextPage  = "Next page"
	ActionPrevPage  = "Previous page"
	ActionUndo      = "Undo"
	ActionRedo      = "Redo"
	ActionFinish    = "Finish"
)

var menu = []string{
	ActionAdd, ActionEdit, ActionMove, ActionDuplicate, ActionDelete,
	ActionAddPage, ActionDelPage, ActionNextPage, ActionPrevPage,
	ActionUndo, ActionRedo, ActionFinish,
}

const endOfPage = "(end of page)"

// Session runs the interactive menu against an editor.
type Session struct {
	editor *editor.Editor
	driver Driver
	logger *slog.Logger
}

// NewSession binds driver to ed.
func NewSession(ed *editor.Editor, driver Driver, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{editor: ed, driver: driver, logger: logger}
}

// Run loops until the user picks Finish, the context ends or a prompt
// fails. Rejected edits are reported and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := s.driver.Info(ctx, s.summary()); err != nil {
			return err
		}
		choice, err := s.driver.Select(ctx, SelectConfig{Message: "Action", Options: menu})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(menu) {
			continue
		}
		action := menu[choice]
		if action == ActionFinish {
			return nil
		}
		if err := s.dispatch(ctx, action); err != nil {
			if !mutation.IsNoop(err) && !errors.Is(err, editor.ErrNothingToUndo) && !errors.Is(err, editor.ErrNothingToRedo) {
				return err
			}
			s.logger.Debug("action rejected", slog.String("action", action), slog.Any("error", err))
			if err := s.driver.Info(ctx, "! "+err.Error()); err != nil {
				return err
			}
		}
	}
}

func (s *Session) dispatch(ctx context.Context, action string) error {
	switch action {
	case ActionAdd:
		return s.add(ctx)
	case ActionEdit:
		return s.edit(ctx)
	case ActionMove:
		return s.move(ctx)
	case ActionDuplicate:
		name, ok, err := s.pickElement(ctx, "Duplicate which question?")
		if err != nil || !ok {
			return err
		}
		_, err = s.editor.Duplicate(name)
		return err
	case ActionDelete:
		return s.remove(ctx)
	case ActionAddPage:
		s.editor.AddPage()
		return nil
	case ActionDelPage:
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Delete the current page?"})
		if err != nil || !ok {
			return err
		}
		return s.editor.DeletePage(s.editor.CurrentPage())
	case ActionNextPage:
		s.editor.NextPage()
		return nil
	case ActionPrevPage:
		s.editor.PrevPage()
		return nil
	case ActionUndo:
		return s.editor.Undo()
	case ActionRedo:
		return s.editor.Redo()
	}
	return nil
}

func (s *Session) add(ctx context.Context) error {
	idx, err := s.driver.Select(ctx, SelectConfig{Message: "Question type", Options: Palette})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(Palette) {
		return nil
	}
	name, err := s.driver.Input(ctx, InputConfig{Message: "Name", Help: "Leave empty to generate one"})
	if err != nil {
		return err
	}
	title, err := s.driver.Input(ctx, InputConfig{Message: "Title"})
	if err != nil {
		return err
	}
	before, err := s.pickPosition(ctx, s.editor.CurrentPage(), "")
	if err != nil {
		return err
	}
	el := survey.Element{Type: Palette[idx], Name: strings.TrimSpace(name), Title: strings.TrimSpace(title)}
	if el.IsPanel() {
		el.Elements = []survey.Element{}
	}
	return s.editor.InsertElement(el, s.editor.CurrentPage(), before)
}

func (s *Session) edit(ctx context.Context) error {
	name, ok, err := s.pickElement(ctx, "Edit which question?")
	if err != nil || !ok {
		return err
	}
	node, found := survey.Find(s.editor.Document(), survey.NameRef(name))
	if !found {
		return mutation.ErrNotFound
	}
	el := node.(survey.Element)
	if err := s.editor.Select(survey.NameRef(name)); err != nil {
		return err
	}

	newName, err := s.driver.Input(ctx, InputConfig{Message: "Name", Default: el.Name})
	if err != nil {
		return err
	}
	title, err := s.driver.Input(ctx, InputConfig{Message: "Title", Default: el.Title})
	if err != nil {
		return err
	}
	required, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Required?", Default: el.IsRequired})
	if err != nil {
		return err
	}
	el.Name = strings.TrimSpace(newName)
	el.Title = strings.TrimSpace(title)
	el.IsRequired = required
	return s.editor.Update(survey.NameRef(name), el)
}

func (s *Session) move(ctx context.Context) error {
	name, ok, err := s.pickElement(ctx, "Move which question?")
	if err != nil || !ok {
		return err
	}
	doc := s.editor.Document()
	pages := make([]string, 0, len(doc.Pages))
	for idx, page := range doc.Pages {
		pages = append(pages, fmt.Sprintf("%d. %s", idx+1, page.Name))
	}
	page, err := s.driver.Select(ctx, SelectConfig{Message: "Target page", Options: pages, DefaultIndex: s.editor.CurrentPage()})
	if err != nil {
		return err
	}
	if page < 0 || page >= len(pages) {
		return nil
	}
	over, err := s.pickPosition(ctx, page, name)
	if err != nil {
		return err
	}
	return s.editor.MoveElement(name, page, over)
}

func (s *Session) remove(ctx context.Context) error {
	name, ok, err := s.pickElement(ctx, "Delete which question?")
	if err != nil || !ok {
		return err
	}
	confirmed, err := s.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Delete %q?", name)})
	if err != nil || !confirmed {
		return err
	}
	return s.editor.Delete(survey.NameRef(name))
}

// pickElement asks for a top-level element of the current page.
func (s *Session) pickElement(ctx context.Context, message string) (string, bool, error) {
	names := s.pageElements(s.editor.CurrentPage(), "")
	if len(names) == 0 {
		return "", false, s.driver.Info(ctx, "This page has no questions.")
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: names})
	if err != nil {
		return "", false, err
	}
	if idx < 0 || idx >= len(names) {
		return "", false, nil
	}
	return names[idx], true, nil
}

// pickPosition asks where on page to place an element; the empty string
// means the end of the page.
func (s *Session) pickPosition(ctx context.Context, page int, exclude string) (string, error) {
	names := s.pageElements(page, exclude)
	options := make([]string, 0, len(names)+1)
	for _, name := range names {
		options = append(options, "before "+name)
	}
	options = append(options, endOfPage)
	idx, err := s.driver.Select(ctx, SelectConfig{Message: "Position", Options: options, DefaultIndex: len(options) - 1})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(names) {
		return "", nil
	}
	return names[idx], nil
}

func (s *Session) pageElements(page int, exclude string) []string {
	doc := s.editor.Document()
	if page < 0 || page >= len(doc.Pages) {
		return nil
	}
	var names []string
	for _, el := range doc.Pages[page].Elements {
		if el.Name != exclude {
			names = append(names, el.Name)
		}
	}
	return names
}

func (s *Session) summary() string {
	doc := s.editor.Document()
	current := s.editor.CurrentPage()
	if len(doc.Pages) == 0 {
		return "Empty survey"
	}
	page := doc.Pages[current]
	names := s.pageElements(current, "")
	listing := "(no questions)"
	if len(names) > 0 {
		listing = strings.Join(names, ", ")
	}
	return fmt.Sprintf("Page %d/%d %s: %s", current+1, len(doc.Pages), page.Name, listing)
}
