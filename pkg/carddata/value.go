package carddata

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind enumerates the variants a Value can hold.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is an immutable JSON-compatible value. Numbers keep their literal
// text so that rendering 55 yields "55" and 99.90 yields "99.90". Objects
// preserve key insertion order. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	s    string
	arr  []Value
	obj  *object
}

type object struct {
	keys   []string
	fields map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number wraps a numeric literal. Invalid literals become null.
func Number(literal string) Value {
	trimmed := strings.TrimSpace(literal)
	if trimmed == "" || !json.Valid([]byte(trimmed)) {
		return Null()
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return Null()
	}
	return Value{kind: KindNumber, s: trimmed}
}

// Float wraps a float64 using the shortest round-trip representation. NaN
// and infinities have no JSON form and become null.
func Float(f float64) Value {
	if !finite(f) {
		return Null()
	}
	return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Int wraps an integer.
func Int(i int64) Value {
	return Value{kind: KindNumber, s: strconv.FormatInt(i, 10)}
}

// Array builds an array from the provided values.
func Array(values ...Value) Value {
	out := make([]Value, len(values))
	copy(out, values)
	return Value{kind: KindArray, arr: out}
}

// Field is a single key/value pair used to build objects in order.
type Field struct {
	Key   string
	Value Value
}

// Object builds an object from ordered fields. Later duplicates replace the
// value but keep the first position.
func Object(fields ...Field) Value {
	obj := &object{fields: make(map[string]Value, len(fields))}
	for _, field := range fields {
		obj.set(field.Key, field.Value)
	}
	return Value{kind: KindObject, obj: obj}
}

func (o *object) set(key string, value Value) {
	if _, exists := o.fields[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = value
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsObject reports whether v is an object.
func (v Value) IsObject() bool { return v.kind == KindObject }

// Lookup returns the member stored under key. The second result is false for
// non-objects and missing keys.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject || v.obj == nil {
		return Null(), false
	}
	member, ok := v.obj.fields[key]
	return member, ok
}

// Get returns the member stored under key, or null.
func (v Value) Get(key string) Value {
	member, _ := v.Lookup(key)
	return member
}

// Has reports whether key is present with a non-null value.
func (v Value) Has(key string) bool {
	member, ok := v.Lookup(key)
	return ok && !member.IsNull()
}

// Keys returns object keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindObject || v.obj == nil {
		return nil
	}
	out := make([]string, len(v.obj.keys))
	copy(out, v.obj.keys)
	return out
}

// Items returns the elements of an array, or nil for other kinds.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	out := make([]Value, len(v.arr))
	copy(out, v.arr)
	return out
}

// Len reports the number of array elements or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		if v.obj == nil {
			return 0
		}
		return len(v.obj.keys)
	default:
		return 0
	}
}

// With returns a copy of the object with key set to member. Non-object
// receivers produce a single-member object.
func (v Value) With(key string, member Value) Value {
	obj := &object{fields: make(map[string]Value, v.Len()+1)}
	if v.kind == KindObject && v.obj != nil {
		for _, k := range v.obj.keys {
			obj.set(k, v.obj.fields[k])
		}
	}
	obj.set(key, member)
	return Value{kind: KindObject, obj: obj}
}

// Str returns the string payload when v is a string.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Text renders v as display text. Null yields def; numbers keep their
// literal; arrays and objects are rendered as compact JSON.
func (v Value) Text(def string) string {
	switch v.kind {
	case KindNull:
		return def
	case KindString, KindNumber:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		raw, err := v.MarshalJSON()
		if err != nil {
			return def
		}
		return string(raw)
	}
}

// Float coerces v to a float64. Null yields def; numeric strings are parsed;
// anything else that cannot be read as a finite number yields 0.
func (v Value) Float(def float64) float64 {
	switch v.kind {
	case KindNull:
		return def
	case KindNumber, KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil || !finite(f) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Truthy coerces v to a boolean. Null yields def; strings accept the usual
// spellings understood by strconv.ParseBool.
func (v Value) Truthy(def bool) bool {
	switch v.kind {
	case KindNull:
		return def
	case KindBool:
		return v.b
	case KindNumber:
		return v.Float(0) != 0
	case KindString:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v.s))
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

// MapStrings returns a deep copy of v with fn applied to every string leaf.
// Object keys are left untouched.
func (v Value) MapStrings(fn func(string) string) Value {
	if fn == nil {
		return v
	}
	switch v.kind {
	case KindString:
		return String(fn(v.s))
	case KindArray:
		out := make([]Value, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.MapStrings(fn)
		}
		return Value{kind: KindArray, arr: out}
	case KindObject:
		if v.obj == nil {
			return v
		}
		obj := &object{fields: make(map[string]Value, len(v.obj.keys))}
		for _, key := range v.obj.keys {
			obj.set(key, v.obj.fields[key].MapStrings(fn))
		}
		return Value{kind: KindObject, obj: obj}
	default:
		return v
	}
}

// Interface converts v to plain Go values: nil, bool, json.Number, string,
// []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(v.s)
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.Len())
		if v.obj != nil {
			for _, key := range v.obj.keys {
				out[key] = v.obj.fields[key].Interface()
			}
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v preserving object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		buf.WriteString(v.s)
	case KindString:
		raw, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(raw)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		if v.obj != nil {
			for i, key := range v.obj.keys {
				if i > 0 {
					buf.WriteByte(',')
				}
				raw, err := json.Marshal(key)
				if err != nil {
					return err
				}
				buf.Write(raw)
				buf.WriteByte(':')
				if err := v.obj.fields[key].encode(buf); err != nil {
					return err
				}
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// UnmarshalJSON decodes JSON text into v preserving object key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
