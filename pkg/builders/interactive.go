package builders

import (
	"github.com/goliatone/go-cardgen/pkg/card"
	"github.com/goliatone/go-cardgen/pkg/carddata"
	"github.com/goliatone/go-cardgen/pkg/forms"
)

// Action discriminators carried by submit payloads.
const (
	ActionOpenPopup         = "open_popup"
	ActionSubmitDynamicForm = "submit_dynamic_form"
)

// Popup offers the same target twice: a task/fetch submit for hosts that
// open dialogs, and a plain link for everything else.
func Popup(data carddata.Value) card.Document {
	url := text(data, "url", "https://adaptivecards.io")
	buttonTitle := text(data, "buttonTitle", "Open")

	body := []card.Element{
		card.TextBlock(text(data, "title", "Popup"), card.Bolder(), card.Sized(sizeMedium)),
		card.TextBlock(text(data, "text", "Click the button below to open the popup."), card.Wrapped()),
	}
	fetch := card.Submit(buttonTitle, map[string]any{
		"msteams": map[string]any{"type": "task/fetch"},
		"action":  ActionOpenPopup,
		"url":     url,
	})
	return card.New(body, fetch, card.OpenURL(buttonTitle+" in Browser", url))
}

// DynamicForm renders a caller-defined form. Inputs come from the default
// field renderer registry.
func DynamicForm(data carddata.Value) card.Document {
	return DynamicFormWith(nil)(data)
}

// DynamicFormWith returns a dynamic form builder that resolves inputs with
// registry. A nil registry uses the package default.
func DynamicFormWith(registry *forms.InputRegistry) Builder {
	return func(data carddata.Value) card.Document {
		def := forms.Decode(data)

		body := []card.Element{
			card.TextBlock(def.Title, card.Bolder(), card.Sized(sizeMedium)),
		}
		if def.Instructions != "" {
			body = append(body, card.TextBlock(def.Instructions, card.Wrapped(), card.Subtle()))
		}
		body = append(body, forms.RenderFields(registry, def.Fields)...)

		payload := map[string]any{"action": ActionSubmitDynamicForm}
		if def.FormID != "" {
			payload["form_id"] = def.FormID
		}
		return card.New(body, card.Submit("Submit", payload))
	}
}
