package builders

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-cardgen/pkg/card"
	"github.com/goliatone/go-cardgen/pkg/carddata"
)

const dataSummaryChartURL = "https://quickchart.io/chart?c={type:'bar',data:{labels:['Q1','Q2','Q3','Q4'],datasets:[{label:'Users',data:[50,60,70,180]}]}}"

// Simple renders a single wrapped message.
func Simple(data carddata.Value) card.Document {
	return card.New([]card.Element{
		card.TextBlock(text(data, "message", "Content"), card.Wrapped()),
	})
}

// Hero renders an image banner with a title, description and link.
func Hero(data carddata.Value) card.Document {
	body := []card.Element{
		card.Container(
			card.Image(text(data, "imageUrl", "https://picsum.photos/400/200"), sizeStretch, "Hero Image"),
			card.TextBlock(text(data, "title", "Hero Card"), card.Bolder(), card.Sized(sizeLarge)),
			card.TextBlock(text(data, "description", "Description goes here..."), card.Wrapped()),
		),
	}
	return card.New(body, card.OpenURL("Learn More", text(data, "url", "https://adaptivecards.io")))
}

// Alert renders a status alert. Severity picks the colour tier; anything
// above low asks for an acknowledgement.
func Alert(data carddata.Value) card.Document {
	severity := strings.ToLower(strings.TrimSpace(text(data, "severity", "low")))
	if severity == "" {
		severity = "low"
	}

	body := []card.Element{
		card.TextBlock("Status Alert: "+strings.ToUpper(severity),
			card.Bolder(), card.Sized(sizeMedium), card.Colored(severityColor(severity))),
		card.FactSet(
			card.Fact{Title: "Value:", Value: text(data, "value", "0")},
			card.Fact{Title: "Severity:", Value: titleCase(severity)},
		),
		card.TextBlock(text(data, "detail", "No details provided."), card.Wrapped()),
	}

	if severity == "low" {
		return card.New(body)
	}
	return card.New(body, card.Submit("Acknowledge", map[string]any{"action": "acknowledge"}))
}

func severityColor(severity string) string {
	switch severity {
	case "low":
		return colorDefault
	case "medium":
		return colorWarning
	default:
		return colorAttention
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// DataSummary renders a headline figure with a chart.
func DataSummary(data carddata.Value) card.Document {
	return card.New([]card.Element{
		card.TextBlock(text(data, "title", "Data Summary"), card.Bolder(), card.Sized(sizeMedium)),
		card.Image(dataSummaryChartURL, sizeStretch, "Data Chart"),
		card.FactSet(
			card.Fact{Title: "Total:", Value: text(data, "total", "0")},
			card.Fact{Title: "Trend:", Value: text(data, "trend", "Stable")},
		),
	})
}

// Form renders the fixed feedback form.
func Form(data carddata.Value) card.Document {
	body := []card.Element{
		card.TextBlock(text(data, "title", "Feedback Form"), card.Bolder(), card.Sized(sizeMedium)),
		{Type: card.InputText, ID: "name", Placeholder: "Enter your name"},
		{Type: card.InputDate, ID: "date"},
		{Type: card.InputText, ID: "comment", Placeholder: "Comments...", IsMultiline: true},
	}
	return card.New(body, card.Submit("Submit", map[string]any{"action": "submit_form"}))
}

// List renders a titled list. Items come from the first present of items,
// tasks and checklist.
func List(data carddata.Value) card.Document {
	var items []carddata.Value
	for _, key := range []string{"items", "tasks", "checklist"} {
		if data.Has(key) {
			items = data.Get(key).Items()
			break
		}
	}

	rows := make([]card.Element, 0, len(items))
	for _, item := range items {
		rows = append(rows, listRow(item))
	}
	if len(rows) == 0 {
		rows = append(rows, card.TextBlock("No items to display.", card.Subtle(), card.Wrapped()))
	}

	return card.New([]card.Element{
		card.TextBlock(text(data, "title", "Item List"), card.Sized(sizeMedium), card.Bolder()),
		card.Container(rows...),
	})
}

func listRow(item carddata.Value) card.Element {
	var row card.Element
	if item.IsObject() {
		row = card.Container(
			card.TextBlock(item.Get("title").Text("Item"), card.Bolder()),
			card.TextBlock(item.Get("subtitle").Text("Details"), card.Subtle(), card.Spaced(spacingNone)),
		)
	} else {
		row = card.Container(card.TextBlock(item.Text("Item"), card.Bolder()))
	}
	row.Separator = true
	return row
}
