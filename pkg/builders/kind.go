package builders

import "strings"

// Kind identifies a card template.
type Kind string

const (
	KindHero              Kind = "hero"
	KindAlert             Kind = "alert"
	KindDataSummary       Kind = "data_summary"
	KindForm              Kind = "form"
	KindList              Kind = "list"
	KindSimple            Kind = "simple"
	KindFlightUpdate      Kind = "flight_update"
	KindWeather           Kind = "weather"
	KindStockUpdate       Kind = "stock_update"
	KindCalendarInvite    Kind = "calendar_invite"
	KindRestaurantDetails Kind = "restaurant_details"
	KindPopup             Kind = "popup"
	KindDynamicForm       Kind = "dynamic_form"
)

var kinds = []Kind{
	KindHero,
	KindAlert,
	KindDataSummary,
	KindForm,
	KindList,
	KindSimple,
	KindFlightUpdate,
	KindWeather,
	KindStockUpdate,
	KindCalendarInvite,
	KindRestaurantDetails,
	KindPopup,
	KindDynamicForm,
}

// Kinds lists every template identifier in declaration order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind resolves a template identifier case-insensitively. The boolean
// reports whether the name was recognised; unknown names resolve to
// KindSimple.
func ParseKind(name string) (Kind, bool) {
	candidate := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, k := range kinds {
		if k == candidate {
			return k, true
		}
	}
	return KindSimple, false
}

func (k Kind) String() string { return string(k) }
