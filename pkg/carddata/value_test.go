package carddata_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardgen/pkg/carddata"
)

func TestParsePreservesOrderAndLiterals(t *testing.T) {
	raw := `{"zeta":1,"alpha":99.90,"nested":{"b":true,"a":null},"list":["x",2]}`
	value, err := carddata.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if diff := cmp.Diff([]string{"zeta", "alpha", "nested", "list"}, value.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	out, err := value.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != raw {
		t.Fatalf("expected %s, got %s", raw, out)
	}
	if got := value.Get("alpha").Text(""); got != "99.90" {
		t.Fatalf("expected literal 99.90, got %q", got)
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	cases := map[string]string{
		"truncated": `{"a":`,
		"trailing":  `{"a":1} {"b":2}`,
		"garbage":   `not json`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := carddata.Parse([]byte(raw)); err == nil {
				t.Fatalf("expected error for %q", raw)
			}
		})
	}

	if _, err := carddata.Parse([]byte("   ")); !errors.Is(err, carddata.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestTextDefaults(t *testing.T) {
	value := carddata.Object(
		carddata.Field{Key: "name", Value: carddata.String("Ada")},
		carddata.Field{Key: "empty", Value: carddata.Null()},
		carddata.Field{Key: "flag", Value: carddata.Bool(true)},
		carddata.Field{Key: "count", Value: carddata.Int(3)},
	)

	cases := []struct {
		key  string
		want string
	}{
		{"name", "Ada"},
		{"empty", "fallback"},
		{"missing", "fallback"},
		{"flag", "true"},
		{"count", "3"},
	}
	for _, tc := range cases {
		if got := value.Get(tc.key).Text("fallback"); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.key, tc.want, got)
		}
	}
	if value.Has("empty") {
		t.Fatalf("null member should not count as present")
	}
}

func TestFloatCoercion(t *testing.T) {
	cases := []struct {
		name  string
		value carddata.Value
		want  float64
	}{
		{"number", carddata.Number("-2.5"), -2.5},
		{"numeric string", carddata.String(" 3.1 "), 3.1},
		{"non numeric string", carddata.String("up a bit"), 0},
		{"null uses default", carddata.Null(), 7},
		{"object", carddata.Object(), 0},
		{"nan string", carddata.String("NaN"), 0},
		{"infinite string", carddata.String("-Inf"), 0},
		{"overflowing string", carddata.String("1e400"), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.Float(7); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFromAnyRejectsNonFiniteFloats(t *testing.T) {
	for _, f := range []any{math.NaN(), math.Inf(1), float32(math.Inf(-1))} {
		if _, err := carddata.FromAny(map[string]any{"id": f}); err == nil {
			t.Fatalf("expected error for %v", f)
		}
	}
	if !carddata.Float(math.NaN()).IsNull() {
		t.Fatalf("Float(NaN) should be null")
	}
}

func TestFromAnySortsMapKeys(t *testing.T) {
	value, err := carddata.FromAny(map[string]any{
		"b": 1,
		"a": []any{"x", 2.5, nil},
	})
	if err != nil {
		t.Fatalf("from any: %v", err)
	}
	out, _ := value.MarshalJSON()
	if string(out) != `{"a":["x",2.5,null],"b":1}` {
		t.Fatalf("unexpected encoding %s", out)
	}
}

func TestFromAnyStruct(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
		Total int    `json:"total"`
	}
	value, err := carddata.FromAny(payload{Title: "Sales", Total: 10})
	if err != nil {
		t.Fatalf("from any: %v", err)
	}
	if value.Get("title").Text("") != "Sales" || value.Get("total").Text("") != "10" {
		t.Fatalf("unexpected struct conversion: %s", value.Text(""))
	}
}

func TestWithAndMapStringsDoNotMutate(t *testing.T) {
	base := carddata.Object(carddata.Field{Key: "title", Value: carddata.String("<b>Hi</b>")})
	withID := base.With("form_id", carddata.String("abc"))
	if base.Has("form_id") {
		t.Fatalf("With mutated the receiver")
	}
	if withID.Get("form_id").Text("") != "abc" {
		t.Fatalf("expected form_id on copy")
	}

	upper := base.MapStrings(func(s string) string { return "x" + s })
	if base.Get("title").Text("") != "<b>Hi</b>" {
		t.Fatalf("MapStrings mutated the receiver")
	}
	if upper.Get("title").Text("") != "x<b>Hi</b>" {
		t.Fatalf("unexpected mapped value %q", upper.Get("title").Text(""))
	}
}
