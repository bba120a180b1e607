package toolschema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardgen/pkg/toolschema"
)

func TestDefaultNames(t *testing.T) {
	want := []string{
		"add",
		"divide",
		"generate_adaptive_card",
		"generate_dynamic_form_card",
		"multiply",
		"subtract",
		"validate_form_submission",
	}
	if diff := cmp.Diff(want, toolschema.Default().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	set := toolschema.Default()
	cases := []struct {
		name    string
		tool    string
		args    map[string]any
		wantErr error
	}{
		{"card ok", "generate_adaptive_card", map[string]any{"template": "hero", "data": "{}"}, nil},
		{"card object data", "generate_adaptive_card", map[string]any{"template": "hero", "data": map[string]any{"title": "x"}}, nil},
		{"card missing data", "generate_adaptive_card", map[string]any{"template": "hero"}, toolschema.ErrInvalidArguments},
		{"card template type", "generate_adaptive_card", map[string]any{"template": 3.0, "data": "{}"}, toolschema.ErrInvalidArguments},
		{"add ok", "add", map[string]any{"a": 1.5, "b": 2.0}, nil},
		{"add string operand", "add", map[string]any{"a": "1", "b": 2.0}, toolschema.ErrInvalidArguments},
		{"nil args", "divide", nil, toolschema.ErrInvalidArguments},
		{"unknown", "explode", map[string]any{}, toolschema.ErrUnknownTool},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := set.Validate(tc.tool, tc.args)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestJSONResolvesReferences(t *testing.T) {
	got, err := toolschema.Default().JSON("multiply")
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if got["type"] != "object" {
		t.Fatalf("expected object schema, got %v", got)
	}
	props, _ := got["properties"].(map[string]any)
	if _, ok := props["a"]; !ok {
		t.Fatalf("expected operand a in %v", got)
	}
	if diff := cmp.Diff([]any{"a", "b"}, got["required"]); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestAddStringArgs(t *testing.T) {
	set, err := toolschema.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := set.Add("get_weather_forecast", toolschema.StringArgs("Weather", "city")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := set.Validate("get_weather_forecast", map[string]any{"city": "Oslo"}); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := set.Validate("get_weather_forecast", map[string]any{}); !errors.Is(err, toolschema.ErrInvalidArguments) {
		t.Fatalf("missing city should fail, got %v", err)
	}
	if toolschema.Default().Has("get_weather_forecast") {
		t.Fatalf("loaded sets must not share schemas")
	}
	if err := set.Add("", toolschema.StringArgs("x")); err == nil {
		t.Fatalf("empty name should be rejected")
	}
}

func TestLoadFromDataRejectsEmpty(t *testing.T) {
	if _, err := toolschema.LoadFromData(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := toolschema.LoadFromData(context.Background(), []byte("openapi: [")); err == nil {
		t.Fatalf("expected error for malformed document")
	}
}
