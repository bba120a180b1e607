// Package card models the Adaptive Card documents produced by the builders.
// Struct field order fixes the serialised key order so identical inputs always
// encode to identical bytes.
package card

import (
	"bytes"
	"encoding/json"
)

const (
	// TypeAdaptiveCard is the top-level kind marker of every document.
	TypeAdaptiveCard = "AdaptiveCard"
	// SchemaURL is the schema reference embedded in every document.
	SchemaURL = "http://adaptivecards.io/schemas/adaptive-card.json"
	// Version is the Adaptive Card specification version targeted.
	Version = "1.5"
)

// Document is the render output.
type Document struct {
	Type    string    `json:"type"`
	Schema  string    `json:"$schema"`
	Version string    `json:"version"`
	Speak   string    `json:"speak,omitempty"`
	Body    []Element `json:"body"`
	Actions []Action  `json:"actions,omitempty"`
}

// New returns a document with the fixed header populated.
func New(body []Element, actions ...Action) Document {
	if body == nil {
		body = []Element{}
	}
	return Document{
		Type:    TypeAdaptiveCard,
		Schema:  SchemaURL,
		Version: Version,
		Body:    body,
		Actions: actions,
	}
}

// ErrorHeading titles error documents.
const ErrorHeading = "Adaptive Card Generation Error"

// JSON encodes the document without HTML escaping, so text such as
// "SFO > JFK" stays readable. A document that cannot be encoded (an action
// payload holding NaN, a channel, ...) is replaced by an error document.
func (d Document) JSON() []byte {
	out, err := encode(d)
	if err != nil {
		out, _ = encode(encodeFailure(err))
	}
	return out
}

func encode(d Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func encodeFailure(err error) Document {
	return New([]Element{
		TextBlock(ErrorHeading, Bolder(), Sized("Medium")),
		TextBlock("Card could not be serialized: "+err.Error(), Wrapped()),
	}, Submit("Retry", map[string]any{
		"action":       "retry",
		"template":     "",
		"originalData": "",
	}))
}

// Element is a body block or input. Only the fields relevant to Type are set.
type Element struct {
	Type                string    `json:"type"`
	ID                  string    `json:"id,omitempty"`
	Text                string    `json:"text,omitempty"`
	Label               string    `json:"label,omitempty"`
	URL                 string    `json:"url,omitempty"`
	AltText             string    `json:"altText,omitempty"`
	Size                string    `json:"size,omitempty"`
	Weight              string    `json:"weight,omitempty"`
	Color               string    `json:"color,omitempty"`
	Width               string    `json:"width,omitempty"`
	Style               string    `json:"style,omitempty"`
	Spacing             string    `json:"spacing,omitempty"`
	HorizontalAlignment string    `json:"horizontalAlignment,omitempty"`
	Wrap                bool      `json:"wrap,omitempty"`
	IsSubtle            bool      `json:"isSubtle,omitempty"`
	Separator           bool      `json:"separator,omitempty"`
	Placeholder         string    `json:"placeholder,omitempty"`
	IsMultiline         bool      `json:"isMultiline,omitempty"`
	IsMultiSelect       bool      `json:"isMultiSelect,omitempty"`
	IsRequired          bool      `json:"isRequired,omitempty"`
	ErrorMessage        string    `json:"errorMessage,omitempty"`
	Choices             *[]Choice `json:"choices,omitempty"`
	Facts               []Fact    `json:"facts,omitempty"`
	Items               []Element `json:"items,omitempty"`
	Columns             []Element `json:"columns,omitempty"`
	Actions             []Action  `json:"actions,omitempty"`
}

// Fact is a title/value row inside a FactSet.
type Fact struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Choice is an option inside an Input.ChoiceSet.
type Choice struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Action is an entry of the document (or ActionSet) action list.
type Action struct {
	Type  string         `json:"type"`
	Title string         `json:"title"`
	URL   string         `json:"url,omitempty"`
	Style string         `json:"style,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}
