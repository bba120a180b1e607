// Package samples provides canned card data for every built-in template. The
// providers back the get_* tools and the CLI demo mode; each takes one free
// text argument (a topic, a city, a symbol) and returns data ready to render.
package samples

import (
	"sort"
	"strings"

	"github.com/goliatone/go-cardgen/pkg/builders"
	"github.com/goliatone/go-cardgen/pkg/carddata"
)

// Provider describes one sample data source.
type Provider struct {
	// Name is the tool name, e.g. "get_weather_forecast".
	Name        string
	Description string
	// Param names the single string argument.
	Param    string
	Template builders.Kind
	Build    func(arg string) carddata.Value
}

type field = carddata.Field

func str(key, value string) field            { return field{Key: key, Value: carddata.String(value)} }
func num(key, literal string) field          { return field{Key: key, Value: carddata.Number(literal)} }
func obj(key string, v carddata.Value) field { return field{Key: key, Value: v} }

var providers = []Provider{
	{
		Name:        "get_hero_content",
		Description: "Returns content for a hero card based on a topic.",
		Param:       "topic",
		Template:    builders.KindHero,
		Build: func(topic string) carddata.Value {
			return carddata.Object(
				str("title", "Welcome to "+topic),
				str("description", "This is a demonstration of "+topic+"."),
				str("imageUrl", "https://adaptivecards.io/content/cats/1.png"),
				str("url", "https://adaptivecards.io"),
			)
		},
	},
	{
		Name:        "get_system_alert",
		Description: "Returns system alert data for a component.",
		Param:       "component",
		Template:    builders.KindAlert,
		Build: func(component string) carddata.Value {
			return carddata.Object(
				str("severity", "high"),
				num("value", "99.9"),
				str("detail", "Critical failure detected in "+component+" module."),
			)
		},
	},
	{
		Name:        "get_sales_report",
		Description: "Returns sales report data for a quarter.",
		Param:       "quarter",
		Template:    builders.KindDataSummary,
		Build: func(quarter string) carddata.Value {
			return carddata.Object(
				str("title", "Sales Report - "+quarter),
				num("total", "125000.0"),
				str("trend", "Up 15% YoY"),
			)
		},
	},
	{
		Name:        "get_feedback_form",
		Description: "Returns a feedback form structure.",
		Param:       "context",
		Template:    builders.KindForm,
		Build: func(context string) carddata.Value {
			return carddata.Object(str("title", "Feedback for "+context))
		},
	},
	{
		Name:        "get_task_list",
		Description: "Returns a list of tasks for a user.",
		Param:       "user",
		Template:    builders.KindList,
		Build: func(user string) carddata.Value {
			task := func(title, subtitle string) carddata.Value {
				return carddata.Object(str("title", title), str("subtitle", subtitle))
			}
			return carddata.Object(
				str("title", "Tasks for "+user),
				obj("items", carddata.Array(
					task("Review PR", "High Priority"),
					task("Team Sync", "10:00 AM"),
					task("Update Docs", "Low Priority"),
				)),
			)
		},
	},
	{
		Name:        "get_simple_message",
		Description: "Returns a simple message.",
		Param:       "text",
		Template:    builders.KindSimple,
		Build: func(text string) carddata.Value {
			return carddata.Object(str("message", text))
		},
	},
	{
		Name:        "get_flight_status",
		Description: "Returns flight status information.",
		Param:       "flight_number",
		Template:    builders.KindFlightUpdate,
		Build: func(flight string) carddata.Value {
			return carddata.Object(
				str("flightNumber", flight),
				str("status", "On Time"),
				str("gate", "G12"),
				str("passenger", "Jane Doe"),
				str("boardingTime", "14:30"),
				str("route", "SFO > LHR"),
			)
		},
	},
	{
		Name:        "get_weather_forecast",
		Description: "Returns the weather forecast for a city.",
		Param:       "city",
		Template:    builders.KindWeather,
		Build: func(city string) carddata.Value {
			return carddata.Object(
				str("city", city),
				num("temperature", "72"),
				str("condition", "Sunny"),
				num("high", "78"),
				num("low", "62"),
				str("wind", "10 mph"),
				str("iconUrl", "https://openweathermap.org/img/wn/01d@2x.png"),
			)
		},
	},
	{
		Name:        "get_stock_quote",
		Description: "Returns a stock quote for a symbol.",
		Param:       "symbol",
		Template:    builders.KindStockUpdate,
		Build: func(symbol string) carddata.Value {
			return carddata.Object(
				str("symbol", symbol),
				num("price", "350.25"),
				num("change", "1.25"),
				num("changePoints", "4.3"),
			)
		},
	},
	{
		Name:        "get_calendar_event",
		Description: "Returns calendar event details.",
		Param:       "event_type",
		Template:    builders.KindCalendarInvite,
		Build: func(eventType string) carddata.Value {
			return carddata.Object(
				str("title", eventType+" Sync"),
				str("time", "Tomorrow, 10:00 AM - 11:00 AM"),
				str("location", "Room 404"),
				str("organizer", "Alok Pandit"),
				str("description", "Discussing Q3 project roadmap."),
				str("id", "evt_12345"),
			)
		},
	},
	{
		Name:        "get_restaurant_recommendation",
		Description: "Returns a restaurant recommendation for a cuisine.",
		Param:       "cuisine",
		Template:    builders.KindRestaurantDetails,
		Build: func(cuisine string) carddata.Value {
			return carddata.Object(
				str("name", "The Best "+cuisine+" Place"),
				num("rating", "4.8"),
				num("reviews", "342"),
				str("cuisine", cuisine),
				str("price", "$$$"),
				str("address", "123 Flavor St, Food City"),
				str("imageUrl", "https://adaptivecards.io/content/cats/2.png"),
				str("url", "https://opentable.com"),
				str("menuUrl", "https://opentable.com/menu"),
			)
		},
	},
	{
		Name:        "get_popup_content",
		Description: "Returns popup card content for a city guide.",
		Param:       "city",
		Template:    builders.KindPopup,
		Build: func(city string) carddata.Value {
			return carddata.Object(
				str("title", "Explore "+city),
				str("text", "Open the guide for things to do in "+city+"."),
				str("url", "https://en.wikipedia.org/wiki/"+strings.ReplaceAll(city, " ", "_")),
				str("buttonTitle", "Open Guide"),
			)
		},
	},
}

// All returns the providers sorted by name.
func All() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a provider by tool name.
func Lookup(name string) (Provider, bool) {
	for _, p := range providers {
		if p.Name == name {
			return p, true
		}
	}
	return Provider{}, false
}

// ForTemplate returns the provider feeding a template kind.
func ForTemplate(kind builders.Kind) (Provider, bool) {
	for _, p := range providers {
		if p.Template == kind {
			return p, true
		}
	}
	return Provider{}, false
}
