package render

import "github.com/goliatone/go-cardgen/pkg/card"

// Fallback messages.
const (
	FallbackHeading     = card.ErrorHeading
	MessageInvalidJSON  = "Invalid JSON data provided."
	ActionRetry         = "retry"
	fallbackRetryTitle  = "Retry"
	fallbackHeadingSize = "Medium"
)

// FallbackDocument builds the error card returned instead of a rendered
// template. Its single retry action echoes template and originalData so the
// caller can resubmit corrected input.
func FallbackDocument(template, originalData, message string) card.Document {
	body := []card.Element{
		card.TextBlock(FallbackHeading, card.Bolder(), card.Sized(fallbackHeadingSize)),
		card.TextBlock(message, card.Wrapped()),
	}
	return card.New(body, card.Submit(fallbackRetryTitle, map[string]any{
		"action":       ActionRetry,
		"template":     template,
		"originalData": originalData,
	}))
}
