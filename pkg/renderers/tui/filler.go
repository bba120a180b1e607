// Package tui fills dynamic forms interactively in a terminal. Each field of a
// forms.Definition becomes a prompt; the answers are returned in the shape of
// an Adaptive Card submission so they can go straight to the validator.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-cardgen/pkg/builders"
	"github.com/goliatone/go-cardgen/pkg/forms"
)

const (
	defaultMaxAttempts = 3
	dateLayout         = "2006-01-02"
	noneOption         = "(none)"
)

// Filler prompts for the fields of a form definition.
type Filler struct {
	driver      PromptDriver
	prefill     map[string]string
	maxAttempts int
	theme       Theme
}

// New constructs a Filler with defaults (survey driver on stdout).
func New(options ...Option) *Filler {
	f := &Filler{
		driver:      NewSurveyDriver(nil),
		prefill:     make(map[string]string),
		maxAttempts: defaultMaxAttempts,
		theme:       Theme{RequiredSuffix: " *", ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Fill asks for every field in order and returns the submission payload.
// Optional fields left empty are omitted. The payload carries the form id and
// the dynamic form submit action.
func (f *Filler) Fill(ctx context.Context, def forms.Definition) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if f.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	title := strings.TrimSpace(def.Title)
	if title == "" {
		title = forms.DefaultTitle
	}
	if err := f.driver.Info(ctx, title); err != nil {
		return nil, err
	}
	if def.Instructions != "" {
		if err := f.driver.Info(ctx, def.Instructions); err != nil {
			return nil, err
		}
	}

	values := map[string]any{"action": builders.ActionSubmitDynamicForm}
	if def.FormID != "" {
		values["form_id"] = def.FormID
	}
	for _, field := range def.Fields {
		if field.ID == "" {
			continue
		}
		answer, err := f.promptField(ctx, field)
		if err != nil {
			return nil, fmt.Errorf("tui: field %q: %w", field.ID, err)
		}
		if answer != "" {
			values[field.ID] = answer
		}
	}
	return values, nil
}

func (f *Filler) promptField(ctx context.Context, field forms.FieldSpec) (string, error) {
	switch {
	case len(field.Options) > 0 && (field.Type == forms.FieldTypeCheckbox || field.IsMultiSelect):
		return f.promptMulti(ctx, field)
	case len(field.Options) > 0 && field.Type == forms.FieldTypeChoice:
		return f.promptChoice(ctx, field)
	case field.Type == forms.FieldTypeNumber:
		return f.promptInput(ctx, field, validateNumber)
	case field.Type == forms.FieldTypeDate:
		return f.promptInput(ctx, field, validateDate)
	default:
		return f.promptInput(ctx, field, nil)
	}
}

func (f *Filler) message(field forms.FieldSpec) string {
	if field.IsRequired {
		return field.DisplayLabel() + f.theme.RequiredSuffix
	}
	return field.DisplayLabel()
}

func (f *Filler) promptInput(ctx context.Context, field forms.FieldSpec, format func(string) error) (string, error) {
	validate := func(answer string) error {
		trimmed := strings.TrimSpace(answer)
		if trimmed == "" {
			if field.IsRequired {
				return errors.New(field.RequiredMessage())
			}
			return nil
		}
		if format != nil {
			return format(trimmed)
		}
		return nil
	}
	cfg := InputConfig{
		Message:   f.message(field),
		Default:   f.prefill[field.ID],
		Help:      strings.TrimSpace(field.Placeholder),
		Validator: validate,
	}

	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		answer, err := f.driver.Input(ctx, cfg)
		if err != nil {
			return "", err
		}
		if err := validate(answer); err != nil {
			if infoErr := f.driver.Info(ctx, f.theme.ErrorPrefix+err.Error()); infoErr != nil {
				return "", infoErr
			}
			continue
		}
		return strings.TrimSpace(answer), nil
	}
	return "", ErrTooManyAttempts
}

func (f *Filler) promptChoice(ctx context.Context, field forms.FieldSpec) (string, error) {
	titles := optionTitles(field)
	offset := 0
	if !field.IsRequired {
		titles = append([]string{noneOption}, titles...)
		offset = 1
	}
	cfg := SelectConfig{
		Message:      f.message(field),
		Options:      titles,
		DefaultIndex: f.defaultIndex(field) + offset,
		Help:         strings.TrimSpace(field.Placeholder),
	}

	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		idx, err := f.driver.Select(ctx, cfg)
		if err != nil {
			return "", err
		}
		if offset == 1 && idx == 0 {
			return "", nil
		}
		if pos := idx - offset; pos >= 0 && pos < len(field.Options) {
			return field.Options[pos].Value, nil
		}
		if err := f.driver.Info(ctx, f.theme.ErrorPrefix+field.RequiredMessage()); err != nil {
			return "", err
		}
	}
	return "", ErrTooManyAttempts
}

// promptMulti joins the selected values with commas, the encoding Adaptive
// Card hosts use for multi-select choice sets.
func (f *Filler) promptMulti(ctx context.Context, field forms.FieldSpec) (string, error) {
	cfg := SelectConfig{
		Message:  f.message(field),
		Options:  optionTitles(field),
		Defaults: f.defaultIndices(field),
		Help:     strings.TrimSpace(field.Placeholder),
	}

	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		picked, err := f.driver.MultiSelect(ctx, cfg)
		if err != nil {
			return "", err
		}
		selected := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(field.Options) {
				selected = append(selected, field.Options[idx].Value)
			}
		}
		if len(selected) > 0 || !field.IsRequired {
			return strings.Join(selected, ","), nil
		}
		if err := f.driver.Info(ctx, f.theme.ErrorPrefix+field.RequiredMessage()); err != nil {
			return "", err
		}
	}
	return "", ErrTooManyAttempts
}

func (f *Filler) defaultIndex(field forms.FieldSpec) int {
	want, ok := f.prefill[field.ID]
	if !ok {
		return -1
	}
	for i, opt := range field.Options {
		if opt.Value == want {
			return i
		}
	}
	return -1
}

func (f *Filler) defaultIndices(field forms.FieldSpec) []int {
	want, ok := f.prefill[field.ID]
	if !ok {
		return nil
	}
	selected := make(map[string]struct{})
	for _, v := range strings.Split(want, ",") {
		selected[strings.TrimSpace(v)] = struct{}{}
	}
	var out []int
	for i, opt := range field.Options {
		if _, hit := selected[opt.Value]; hit {
			out = append(out, i)
		}
	}
	return out
}

func optionTitles(field forms.FieldSpec) []string {
	titles := make([]string, 0, len(field.Options))
	for _, opt := range field.Options {
		titles = append(titles, opt.Title)
	}
	return titles
}

func validateNumber(answer string) error {
	if _, err := strconv.ParseFloat(answer, 64); err != nil {
		return fmt.Errorf("%q is not a number", answer)
	}
	return nil
}

func validateDate(answer string) error {
	if _, err := time.Parse(dateLayout, answer); err != nil {
		return fmt.Errorf("%q is not a date (YYYY-MM-DD)", answer)
	}
	return nil
}
