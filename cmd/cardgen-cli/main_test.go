package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"message":"from file"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := readData("@" + path)
	if err != nil || got != `{"message":"from file"}` {
		t.Fatalf("readData(@file) = %q, %v", got, err)
	}
	if got, _ := readData(`{"a":1}`); got != `{"a":1}` {
		t.Fatalf("inline data should pass through, got %q", got)
	}
}

func TestRunRender(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), "", "render", []string{"-template", "simple", "-data", `{"message":"hello"}`}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `"text":"hello"`) {
		t.Fatalf("expected rendered message, got %s", out.String())
	}
}

func TestRunSamples(t *testing.T) {
	var list bytes.Buffer
	if err := run(context.Background(), "", "samples", nil, &list); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(list.String(), "get_weather_forecast") {
		t.Fatalf("expected provider listing, got %s", list.String())
	}

	var doc bytes.Buffer
	if err := run(context.Background(), "", "samples", []string{"-name", "get_weather_forecast", "-arg", "Oslo"}, &doc); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(doc.String(), "Weather in Oslo") {
		t.Fatalf("expected weather card, got %s", doc.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if err := run(context.Background(), "", "bogus", nil, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}
