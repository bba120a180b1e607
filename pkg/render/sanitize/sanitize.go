// Package sanitize strips markup from inbound card text. Adaptive Card hosts
// render TextBlock content as plain text or Markdown, so HTML arriving in card
// data is never meaningful and is removed before a builder sees it.
package sanitize

import (
	"html"
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cardgen/pkg/carddata"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// elementTag matches a closing tag or an opening tag whose attributes all
// carry values, e.g. "</b>", "<br/>", `<a href="x">`. Comparison text such
// as "a<b and c>d" does not match.
var elementTag = regexp.MustCompile(`</[a-zA-Z][a-zA-Z0-9]*\s*>|<[a-zA-Z][a-zA-Z0-9]*(?:\s+[a-zA-Z_:][-a-zA-Z0-9_:.]*\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'<>=]+))*\s*/?>`)

// Text removes HTML elements from s. Strings without an element tag are
// returned untouched so symbols such as "SFO > JFK", "a<b" or "$$$" survive.
func Text(s string) string {
	if !elementTag.MatchString(s) {
		return s
	}
	cleaned := textSanitizer().Sanitize(s)
	return html.UnescapeString(cleaned)
}

// Value applies Text to every string leaf of v.
func Value(v carddata.Value) carddata.Value {
	return v.MapStrings(Text)
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
