package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-cardgen/internal/logger"
	"github.com/goliatone/go-cardgen/pkg/card"
	"github.com/goliatone/go-cardgen/pkg/carddata"
	"github.com/goliatone/go-cardgen/pkg/forms"
	"github.com/goliatone/go-cardgen/pkg/formstore"
	"github.com/goliatone/go-cardgen/pkg/render"
)

// Outcome classifies a validation result.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeInvalidSubmission Outcome = "invalid_submission"
	OutcomeSessionNotFound   Outcome = "session_not_found"
	OutcomeMissingFields     Outcome = "missing_fields"
)

// Messages shown to the submitter.
const (
	MessageInvalidSubmission = "Error: Invalid submission data received."
	headerMissingFields      = "Validation Failed:"
)

// Issue is a field-level validation failure.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures a validation outcome and the message rendered for it.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Valid   bool    `json:"valid"`
	Message string  `json:"message"`
	Issues  []Issue `json:"issues,omitempty"`
}

// Option configures a Validator.
type Option func(*Validator)

// WithDispatcher sets the dispatcher used by ValidateDocument.
func WithDispatcher(d *render.Dispatcher) Option {
	return func(v *Validator) {
		if d != nil {
			v.dispatcher = d
		}
	}
}

// WithLogger sets the validator logger.
func WithLogger(l *logger.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// Validator matches submissions with stored definitions.
type Validator struct {
	store      formstore.Store
	dispatcher *render.Dispatcher
	logger     *logger.Logger
}

// New returns a Validator reading definitions from store.
func New(store formstore.Store, options ...Option) *Validator {
	v := &Validator{
		store:  store,
		logger: logger.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	if v.dispatcher == nil {
		v.dispatcher = render.New(render.WithLogger(v.logger))
	}
	return v
}

// Validate checks every required field of the stored definition and reports
// all missing ones at once.
func (v *Validator) Validate(ctx context.Context, data any) Result {
	sub, ok := ParseSubmission(data)
	if !ok {
		v.logger.Warn("submission is not an object")
		return Result{Outcome: OutcomeInvalidSubmission, Message: MessageInvalidSubmission}
	}

	def, err := v.lookup(ctx, sub.FormID)
	if err != nil {
		if !errors.Is(err, formstore.ErrNotFound) {
			v.logger.Error("form store lookup failed", "form_id", sub.FormID, "error", err)
		} else {
			v.logger.Warn("form session not found", "form_id", sub.FormID)
		}
		return Result{
			Outcome: OutcomeSessionNotFound,
			Message: fmt.Sprintf("Error: Form session '%s' not found or expired.", sub.FormID),
		}
	}

	var issues []Issue
	for _, field := range def.Fields {
		if field.IsRequired && missing(sub.Values.Get(field.ID)) {
			issues = append(issues, Issue{Field: field.ID, Message: field.RequiredMessage()})
		}
	}

	if len(issues) > 0 {
		lines := make([]string, 0, len(issues)+1)
		lines = append(lines, headerMissingFields)
		for _, issue := range issues {
			lines = append(lines, "- "+issue.Message)
		}
		return Result{
			Outcome: OutcomeMissingFields,
			Message: strings.Join(lines, "\n"),
			Issues:  issues,
		}
	}

	return Result{
		Outcome: OutcomeSuccess,
		Valid:   true,
		Message: fmt.Sprintf("Success! Your submission for '%s' has been validated.", def.Title),
	}
}

// ValidateDocument validates data and renders the message as a simple card.
func (v *Validator) ValidateDocument(ctx context.Context, data any) card.Document {
	return v.Document(v.Validate(ctx, data))
}

// Document renders a result through the simple template.
func (v *Validator) Document(result Result) card.Document {
	return v.dispatcher.RenderValue("simple", carddata.Object(
		carddata.Field{Key: "message", Value: carddata.String(result.Message)},
	))
}

func (v *Validator) lookup(ctx context.Context, id string) (forms.Definition, error) {
	if strings.TrimSpace(id) == "" || v.store == nil {
		return forms.Definition{}, formstore.ErrNotFound
	}
	return v.store.Get(ctx, id)
}
