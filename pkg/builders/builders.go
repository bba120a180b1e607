// Package builders turns loosely-typed card data into Adaptive Card documents.
// Every builder is a pure function: missing members fall back to literal
// defaults and no builder ever fails.
package builders

import (
	"github.com/goliatone/go-cardgen/pkg/card"
	"github.com/goliatone/go-cardgen/pkg/carddata"
)

// Builder renders one template kind.
type Builder func(data carddata.Value) card.Document

var table = map[Kind]Builder{
	KindHero:              Hero,
	KindAlert:             Alert,
	KindDataSummary:       DataSummary,
	KindForm:              Form,
	KindList:              List,
	KindSimple:            Simple,
	KindFlightUpdate:      FlightUpdate,
	KindWeather:           Weather,
	KindStockUpdate:       StockUpdate,
	KindCalendarInvite:    CalendarInvite,
	KindRestaurantDetails: RestaurantDetails,
	KindPopup:             Popup,
	KindDynamicForm:       DynamicForm,
}

// Lookup returns the builder for k, or Simple when k is not a known kind.
func Lookup(k Kind) Builder {
	if b, ok := table[k]; ok {
		return b
	}
	return Simple
}

// Build resolves the template name and renders data with it.
func Build(template string, data carddata.Value) card.Document {
	kind, _ := ParseKind(template)
	return Lookup(kind)(data)
}

// Colour and layout tokens shared by the builders.
const (
	colorDefault   = "Default"
	colorGood      = "Good"
	colorWarning   = "Warning"
	colorAttention = "Attention"
	colorAccent    = "Accent"

	sizeSmall      = "Small"
	sizeMedium     = "Medium"
	sizeLarge      = "Large"
	sizeExtraLarge = "ExtraLarge"
	sizeStretch    = "Stretch"

	widthAuto    = "auto"
	widthStretch = "stretch"

	spacingNone = "None"
)

func text(data carddata.Value, key, def string) string {
	return data.Get(key).Text(def)
}
