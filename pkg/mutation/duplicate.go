package mutation

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// DuplicateElement inserts a copy of the element named name directly after
// it. The copy and each of its descendants receive fresh names derived from
// the originals (q1 -> q2, panel1 -> panel2, ...). The new element's name is
// returned alongside the document.
func DuplicateElement(doc survey.Document, name string) (survey.Document, string, error) {
	var created string
	out, err := withPaged(doc, func(paged survey.Document) (survey.Document, error) {
		loc, ok := survey.Locate(paged, name)
		if !ok {
			return paged, ErrNotFound
		}
		if loc.IsPage() {
			return paged, ErrKindMismatch
		}
		original, ok := survey.ElementAt(paged, loc)
		if !ok {
			return paged, ErrNotFound
		}

		clone := renameCopy(original, survey.Names(paged))
		created = clone.Name
		return editSequence(paged, loc.Parent(), func(seq []survey.Element) ([]survey.Element, error) {
			return insertAt(seq, loc.Index()+1, clone), nil
		})
	})
	if err != nil {
		return doc, "", err
	}
	return out, created, nil
}

func renameCopy(el survey.Element, used map[string]int) survey.Element {
	el.Name = survey.NextName(used, namePrefix(el))
	if len(el.Choices) > 0 {
		el.Choices = append([]survey.Choice(nil), el.Choices...)
	}
	if len(el.Extra) > 0 {
		extra := make(map[string]any, len(el.Extra))
		for key, value := range el.Extra {
			extra[key] = value
		}
		el.Extra = extra
	}
	if el.Elements != nil {
		children := make([]survey.Element, len(el.Elements))
		for idx, child := range el.Elements {
			children[idx] = renameCopy(child, used)
		}
		el.Elements = children
	}
	return el
}

// namePrefix strips trailing digits from an element name so copies continue
// its numbering; unnamed or all-digit names fall back to the type.
func namePrefix(el survey.Element) string {
	prefix := strings.TrimRightFunc(el.Name, unicode.IsDigit)
	if prefix != "" {
		return prefix
	}
	if el.Type != "" {
		return el.Type
	}
	return survey.DefaultElementPrefix
}
