package survey

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	// markupPattern matches the start of a tag, comment or declaration.
	markupPattern = regexp.MustCompile(`<[a-zA-Z!/?]`)
)

// Sanitize returns a copy of the document whose titles and descriptions have
// been passed through an HTML policy that keeps basic formatting and drops
// scripts, handlers and unknown markup. Plain text without markup, including
// bare "&" and "<", is left as written. Untouched subtrees are still copied;
// the input is never modified.
func Sanitize(doc Document) Document {
	policy := textSanitizer()
	out := doc
	out.Title = sanitizeText(policy, doc.Title)
	out.Description = sanitizeText(policy, doc.Description)
	if len(doc.Pages) > 0 {
		out.Pages = make([]Page, len(doc.Pages))
		for idx, page := range doc.Pages {
			page.Title = sanitizeText(policy, page.Title)
			page.Elements = sanitizeElements(policy, page.Elements)
			out.Pages[idx] = page
		}
	}
	if len(doc.Elements) > 0 {
		out.Elements = sanitizeElements(policy, doc.Elements)
	}
	return out
}

func sanitizeElements(policy *bluemonday.Policy, elements []Element) []Element {
	if elements == nil {
		return nil
	}
	out := make([]Element, len(elements))
	for idx, el := range elements {
		el.Title = sanitizeText(policy, el.Title)
		el.Description = sanitizeText(policy, el.Description)
		if len(el.Choices) > 0 {
			choices := make([]Choice, len(el.Choices))
			for cidx, choice := range el.Choices {
				choice.Text = sanitizeText(policy, choice.Text)
				choices[cidx] = choice
			}
			el.Choices = choices
		}
		el.Elements = sanitizeElements(policy, el.Elements)
		out[idx] = el
	}
	return out
}

func sanitizeText(policy *bluemonday.Policy, raw string) string {
	if raw == "" || !markupPattern.MatchString(raw) {
		return raw
	}
	return strings.TrimSpace(policy.Sanitize(raw))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "br", "p", "span", "small", "sup", "sub")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		textPolicy = policy
	})
	return textPolicy
}
