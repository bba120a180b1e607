package render

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-cardgen/pkg/carddata"
)

// ErrInvalidData reports card data that could not be parsed.
var ErrInvalidData = errors.New("render: invalid card data")

// Normalize converts the accepted data shapes into an object value. Text
// inputs (string, []byte, json.RawMessage) must hold JSON. Arrays become
// {"items": [...]}, scalars {"message": "<text>"} and null an empty object.
func Normalize(data any) (carddata.Value, error) {
	var (
		value carddata.Value
		err   error
	)
	switch v := data.(type) {
	case string:
		value, err = carddata.Parse([]byte(v))
	case []byte:
		value, err = carddata.Parse(v)
	case json.RawMessage:
		value, err = carddata.Parse(v)
	case carddata.Value:
		value = v
	default:
		value, err = carddata.FromAny(data)
	}
	if err != nil {
		return carddata.Object(), fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return asObject(value), nil
}

func asObject(v carddata.Value) carddata.Value {
	switch v.Kind() {
	case carddata.KindObject:
		return v
	case carddata.KindArray:
		return carddata.Object(carddata.Field{Key: "items", Value: v})
	case carddata.KindNull:
		return carddata.Object()
	default:
		return carddata.Object(carddata.Field{Key: "message", Value: carddata.String(v.Text(""))})
	}
}

// rawText is the best-effort textual form of data echoed back in fallback
// documents.
func rawText(data any) string {
	switch v := data.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case json.RawMessage:
		return string(v)
	case nil:
		return ""
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprint(data)
	}
	return string(raw)
}

func payloadSize(data any) int {
	switch v := data.(type) {
	case string:
		return len(v)
	case []byte:
		return len(v)
	case json.RawMessage:
		return len(v)
	default:
		return -1
	}
}
