package carddata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
)

// ErrEmptyInput is returned by Parse when the payload holds no JSON value.
var ErrEmptyInput = errors.New("carddata: empty input")

// Parse decodes a single JSON document. Trailing data is rejected.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Null(), ErrEmptyInput
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return Null(), fmt.Errorf("carddata: parse: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Null(), errors.New("carddata: parse: unexpected data after top-level value")
	}
	return value, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Null(), io.ErrUnexpectedEOF
		}
		return Null(), err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Value{kind: KindNumber, s: t.String()}, nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Null(), err
			}
			return Value{kind: KindArray, arr: items}, nil
		case '{':
			obj := &object{fields: make(map[string]Value)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null(), err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null(), fmt.Errorf("unexpected object key %v", keyTok)
				}
				member, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				obj.set(key, member)
			}
			if _, err := dec.Token(); err != nil {
				return Null(), err
			}
			return Value{kind: KindObject, obj: obj}, nil
		}
	}
	return Null(), fmt.Errorf("unexpected token %v", tok)
}

// FromAny converts plain Go values into a Value. Strings are kept as string
// values (they are not parsed as JSON). Maps are ordered by sorted key so the
// result is deterministic. Other types round-trip through encoding/json.
func FromAny(in any) (Value, error) {
	switch t := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return *t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		number := Number(t.String())
		if number.IsNull() {
			return Null(), fmt.Errorf("carddata: invalid number %q", t.String())
		}
		return number, nil
	case float64:
		if !finite(t) {
			return Null(), fmt.Errorf("carddata: non-finite number %v", t)
		}
		return Float(t), nil
	case float32:
		if !finite(float64(t)) {
			return Null(), fmt.Errorf("carddata: non-finite number %v", t)
		}
		return Float(float64(t)), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Value{kind: KindNumber, s: strconv.FormatUint(uint64(t), 10)}, nil
	case uint64:
		return Value{kind: KindNumber, s: strconv.FormatUint(t, 10)}, nil
	case json.RawMessage:
		return Parse(t)
	case []any:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			converted, err := FromAny(item)
			if err != nil {
				return Null(), err
			}
			items = append(items, converted)
		}
		return Value{kind: KindArray, arr: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		obj := &object{fields: make(map[string]Value, len(t))}
		for _, key := range keys {
			converted, err := FromAny(t[key])
			if err != nil {
				return Null(), err
			}
			obj.set(key, converted)
		}
		return Value{kind: KindObject, obj: obj}, nil
	}

	if rv := reflect.ValueOf(in); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return Null(), nil
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return Null(), fmt.Errorf("carddata: encode %T: %w", in, err)
	}
	return Parse(raw)
}
