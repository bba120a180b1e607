package forms

import (
	"strings"

	"github.com/goliatone/go-cardgen/pkg/card"
)

// Choice set layouts.
const (
	ChoiceStyleCompact  = "compact"
	ChoiceStyleExpanded = "expanded"
)

var defaultRegistry = NewInputRegistry()

// RenderField renders one field specification with the default registry.
func RenderField(field FieldSpec) []card.Element {
	return defaultRegistry.Render(field)
}

// RenderFields renders every field in order.
func RenderFields(registry *InputRegistry, fields []FieldSpec) []card.Element {
	if registry == nil {
		registry = defaultRegistry
	}
	out := make([]card.Element, 0, len(fields))
	for _, field := range fields {
		out = append(out, registry.Render(field)...)
	}
	return out
}

func baseInput(kind string, field FieldSpec) card.Element {
	return card.Element{
		Type:         kind,
		ID:           field.ID,
		Label:        field.DisplayLabel(),
		Placeholder:  strings.TrimSpace(field.Placeholder),
		IsRequired:   field.IsRequired,
		ErrorMessage: field.RequiredMessage(),
	}
}

func renderText(field FieldSpec) []card.Element {
	return []card.Element{baseInput(card.InputText, field)}
}

func renderDate(field FieldSpec) []card.Element {
	return []card.Element{baseInput(card.InputDate, field)}
}

func renderNumber(field FieldSpec) []card.Element {
	return []card.Element{baseInput(card.InputNumber, field)}
}

func renderChoice(field FieldSpec) []card.Element {
	el := baseInput(card.InputChoiceSet, field)
	el.Style = ChoiceStyleCompact
	el.Choices = choicesOf(field)
	return []card.Element{el}
}

func renderMultiChoice(field FieldSpec) []card.Element {
	el := baseInput(card.InputChoiceSet, field)
	el.Style = ChoiceStyleExpanded
	el.IsMultiSelect = true
	el.Choices = choicesOf(field)
	return []card.Element{el}
}

func choicesOf(field FieldSpec) *[]card.Choice {
	choices := make([]card.Choice, 0, len(field.Options))
	for _, opt := range field.Options {
		choices = append(choices, card.Choice{Title: opt.Title, Value: opt.Value})
	}
	return &choices
}
