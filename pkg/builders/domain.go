package builders

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-cardgen/pkg/card"
	"github.com/goliatone/go-cardgen/pkg/carddata"
)

// FlightUpdate renders a flight status card. The status is only coloured
// good when it reads exactly "On Time".
func FlightUpdate(data carddata.Value) card.Document {
	status := text(data, "status", "On Time")
	statusColor := colorAttention
	if status == "On Time" {
		statusColor = colorGood
	}

	body := []card.Element{
		card.TextBlock("Flight Update", card.Sized(sizeMedium), card.Bolder(), card.Colored(colorAccent)),
		card.ColumnSet(
			card.Column(widthStretch,
				card.TextBlock(text(data, "flightNumber", "UA123"), card.Sized(sizeExtraLarge), card.Bolder()),
				card.TextBlock(text(data, "route", "SFO > JFK"), card.Subtle(), card.Spaced(spacingNone)),
			),
			card.Column(widthAuto,
				card.TextBlock(status, card.Colored(statusColor), card.Bolder()),
			),
		),
		card.FactSet(
			card.Fact{Title: "Passenger:", Value: text(data, "passenger", "John Doe")},
			card.Fact{Title: "Gate:", Value: text(data, "gate", "TBD")},
			card.Fact{Title: "Boarding:", Value: text(data, "boardingTime", "12:00 PM")},
		),
	}
	return card.New(body, card.OpenURL("Check In", "https://www.united.com"))
}

// Weather renders current conditions for a city.
func Weather(data carddata.Value) card.Document {
	body := []card.Element{
		card.TextBlock("Weather in "+text(data, "city", "Unknown"), card.Sized(sizeMedium), card.Bolder()),
		card.ColumnSet(
			card.Column(widthAuto,
				card.Image(text(data, "iconUrl", "https://openweathermap.org/img/wn/10d@2x.png"), sizeSmall, ""),
			),
			card.Column(widthStretch,
				card.TextBlock(text(data, "temperature", "72")+"°F", card.Sized(sizeExtraLarge), card.Lighter()),
				card.TextBlock(text(data, "condition", "Sunny"), card.Subtle(), card.Spaced(spacingNone)),
			),
		),
		card.FactSet(
			card.Fact{Title: "High:", Value: text(data, "high", "75") + "°F"},
			card.Fact{Title: "Low:", Value: text(data, "low", "60") + "°F"},
			card.Fact{Title: "Wind:", Value: text(data, "wind", "10 mph")},
		),
	}
	return card.New(body)
}

// StockUpdate renders a quote. A non-negative change is shown with an up
// arrow in the good colour, a negative one with a down arrow.
func StockUpdate(data carddata.Value) card.Document {
	change := data.Get("change").Float(0)
	arrow, color := "▲", colorGood
	if change < 0 {
		arrow, color = "▼", colorAttention
	}
	movement := arrow + " " + formatPercent(math.Abs(change)) + "% (" + text(data, "changePoints", "0.00") + ")"

	body := []card.Element{
		card.TextBlock("Market Update", card.Sized(sizeMedium), card.Bolder(), card.Colored(colorAccent)),
		card.Container(
			card.TextBlock(text(data, "symbol", "MSFT"), card.Sized(sizeLarge), card.Bolder()),
			card.ColumnSet(
				card.Column(widthAuto,
					card.TextBlock("$"+text(data, "price", "0.00"), card.Sized(sizeExtraLarge)),
				),
				card.Column(widthStretch,
					card.TextBlock(movement, card.Colored(color), card.Bolder(), card.Spaced(sizeMedium)),
				),
			),
		),
	}
	return card.New(body)
}

// formatPercent prints the shortest decimal form, keeping one fractional
// digit for whole numbers ("3.0", "2.5").
func formatPercent(f float64) string {
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

// CalendarInvite renders a meeting invitation with accept and decline
// actions that echo the event id.
func CalendarInvite(data carddata.Value) card.Document {
	eventID := data.Get("id").Interface()

	body := []card.Element{
		card.TextBlock("Calendar Invite", card.Sized(sizeMedium), card.Bolder(), card.Colored(colorAccent)),
		card.TextBlock(text(data, "title", "Team Meeting"), card.Sized(sizeLarge), card.Bolder(), card.Wrapped()),
		card.FactSet(
			card.Fact{Title: "Time:", Value: text(data, "time", "10:00 AM - 11:00 AM")},
			card.Fact{Title: "Location:", Value: text(data, "location", "Room 404")},
			card.Fact{Title: "Organizer:", Value: text(data, "organizer", "Alok Pandit")},
		),
		card.TextBlock(text(data, "description", "Agenda tbd..."), card.Wrapped()),
	}

	accept := card.Submit("Accept", map[string]any{"action": "accept", "eventId": eventID})
	accept.Style = "positive"
	decline := card.Submit("Decline", map[string]any{"action": "decline", "eventId": eventID})
	decline.Style = "destructive"
	return card.New(body, accept, decline)
}

// RestaurantDetails renders a venue summary with booking links.
func RestaurantDetails(data carddata.Value) card.Document {
	rating := "⭐ " + text(data, "rating", "4.5") + " (" + text(data, "reviews", "100") + ")"
	summary := text(data, "cuisine", "American") + " • " + text(data, "price", "$$$")

	body := []card.Element{
		card.Image(text(data, "imageUrl", "https://adaptivecards.io/content/cats/2.png"), sizeStretch, "Restaurant Image"),
		card.TextBlock(text(data, "name", "Restaurant Name"), card.Sized(sizeMedium), card.Bolder()),
		card.ColumnSet(
			card.Column(widthAuto, card.TextBlock(rating, card.Subtle())),
			card.Column(widthStretch, card.TextBlock(summary, card.Subtle(), card.Aligned("Right"))),
		),
		card.TextBlock(text(data, "address", "123 Main St, City"), card.Wrapped(), card.Subtle()),
	}
	return card.New(body,
		card.OpenURL("Book Table", text(data, "url", "https://opentable.com")),
		card.OpenURL("View Menu", text(data, "menuUrl", "https://opentable.com")),
	)
}
