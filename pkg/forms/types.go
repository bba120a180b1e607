package forms

import (
	"strings"

	"github.com/goliatone/go-cardgen/pkg/carddata"
)

// FieldType enumerates the dynamic form field kinds.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeDate     FieldType = "date"
	FieldTypeNumber   FieldType = "number"
	FieldTypeChoice   FieldType = "choice"
	FieldTypeCheckbox FieldType = "checkbox"
)

// DefaultTitle is used when a definition omits its title.
const DefaultTitle = "Form"

// Option is a selectable (title, value) pair of a choice field.
type Option struct {
	Title string `json:"title" yaml:"title"`
	Value string `json:"value" yaml:"value"`
}

// FieldSpec describes one input of a dynamic form. IDs are unique within a
// form; choice and checkbox fields are expected to carry options.
type FieldSpec struct {
	ID            string    `json:"id" yaml:"id"`
	Type          FieldType `json:"type" yaml:"type"`
	Label         string    `json:"label" yaml:"label"`
	Placeholder   string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	IsRequired    bool      `json:"isRequired" yaml:"isRequired"`
	Options       []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	IsMultiSelect bool      `json:"isMultiSelect" yaml:"isMultiSelect"`
}

// DisplayLabel returns the label, falling back to the field id.
func (f FieldSpec) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.ID
}

// RequiredMessage is the validation message attached to the field.
func (f FieldSpec) RequiredMessage() string {
	return f.DisplayLabel() + " is required."
}

// Definition is a dynamic form as requested by the caller. FormID is set by
// the store when the definition is persisted.
type Definition struct {
	FormID       string      `json:"form_id,omitempty" yaml:"form_id,omitempty"`
	Title        string      `json:"title" yaml:"title"`
	Instructions string      `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Fields       []FieldSpec `json:"fields" yaml:"fields"`
}

// Decode reads a definition from card data. Missing members fall back to
// defaults; non-object fields entries are skipped.
func Decode(value carddata.Value) Definition {
	def := Definition{
		FormID:       value.Get("form_id").Text(""),
		Title:        value.Get("title").Text(DefaultTitle),
		Instructions: value.Get("instructions").Text(""),
		Fields:       []FieldSpec{},
	}
	for _, raw := range value.Get("fields").Items() {
		if !raw.IsObject() {
			continue
		}
		def.Fields = append(def.Fields, decodeField(raw))
	}
	return def
}

func decodeField(raw carddata.Value) FieldSpec {
	field := FieldSpec{
		ID:            raw.Get("id").Text(""),
		Type:          FieldType(strings.ToLower(strings.TrimSpace(raw.Get("type").Text(string(FieldTypeText))))),
		Label:         raw.Get("label").Text(""),
		Placeholder:   raw.Get("placeholder").Text(""),
		IsRequired:    raw.Get("isRequired").Truthy(false),
		IsMultiSelect: raw.Get("isMultiSelect").Truthy(false),
	}
	for _, opt := range raw.Get("options").Items() {
		if !opt.IsObject() {
			text := opt.Text("")
			field.Options = append(field.Options, Option{Title: text, Value: text})
			continue
		}
		title := opt.Get("title").Text("")
		field.Options = append(field.Options, Option{
			Title: title,
			Value: opt.Get("value").Text(title),
		})
	}
	return field
}

// Value converts the definition back into card data, keeping the canonical
// key order used on the wire.
func (d Definition) Value() carddata.Value {
	fields := make([]carddata.Value, 0, len(d.Fields))
	for _, field := range d.Fields {
		options := make([]carddata.Value, 0, len(field.Options))
		for _, opt := range field.Options {
			options = append(options, carddata.Object(
				carddata.Field{Key: "title", Value: carddata.String(opt.Title)},
				carddata.Field{Key: "value", Value: carddata.String(opt.Value)},
			))
		}
		entry := []carddata.Field{
			{Key: "id", Value: carddata.String(field.ID)},
			{Key: "type", Value: carddata.String(string(field.Type))},
			{Key: "label", Value: carddata.String(field.Label)},
		}
		if field.Placeholder != "" {
			entry = append(entry, carddata.Field{Key: "placeholder", Value: carddata.String(field.Placeholder)})
		}
		entry = append(entry,
			carddata.Field{Key: "isRequired", Value: carddata.Bool(field.IsRequired)},
			carddata.Field{Key: "options", Value: carddata.Array(options...)},
			carddata.Field{Key: "isMultiSelect", Value: carddata.Bool(field.IsMultiSelect)},
		)
		fields = append(fields, carddata.Object(entry...))
	}

	members := []carddata.Field{
		{Key: "title", Value: carddata.String(d.Title)},
	}
	if d.Instructions != "" {
		members = append(members, carddata.Field{Key: "instructions", Value: carddata.String(d.Instructions)})
	}
	members = append(members, carddata.Field{Key: "fields", Value: carddata.Array(fields...)})
	if d.FormID != "" {
		members = append(members, carddata.Field{Key: "form_id", Value: carddata.String(d.FormID)})
	}
	return carddata.Object(members...)
}
