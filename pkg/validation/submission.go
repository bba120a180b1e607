// Package validation checks dynamic form submissions against the definition
// stored when the form was rendered.
package validation

import (
	"encoding/json"

	"github.com/goliatone/go-cardgen/pkg/carddata"
)

// ActionSubmitDynamicForm is the action discriminator carried by dynamic form
// submit buttons.
const ActionSubmitDynamicForm = "submit_dynamic_form"

// Submission is a decoded form submission: the form id plus the submitted
// values keyed by field id.
type Submission struct {
	FormID string
	Values carddata.Value
}

// ParseSubmission decodes data into a Submission. Text inputs must hold a
// JSON object; ok is false for anything that is not an object.
func ParseSubmission(data any) (Submission, bool) {
	var (
		value carddata.Value
		err   error
	)
	switch v := data.(type) {
	case string:
		value, err = carddata.Parse([]byte(v))
	case []byte:
		value, err = carddata.Parse(v)
	case json.RawMessage:
		value, err = carddata.Parse(v)
	default:
		value, err = carddata.FromAny(data)
	}
	if err != nil || !value.IsObject() {
		return Submission{}, false
	}
	return Submission{
		FormID: value.Get("form_id").Text(""),
		Values: value,
	}, true
}

// IsSubmission reports whether an inbound event is a dynamic form
// submission: it carries a form_id or the submit action discriminator.
func IsSubmission(event carddata.Value) bool {
	if !event.IsObject() {
		return false
	}
	if event.Has("form_id") {
		return true
	}
	action, _ := event.Get("action").Str()
	return action == ActionSubmitDynamicForm
}

// missing reports whether a submitted value counts as absent: not present,
// null or the empty string.
func missing(v carddata.Value) bool {
	if v.IsNull() {
		return true
	}
	s, ok := v.Str()
	return ok && s == ""
}
