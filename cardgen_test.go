package cardgen_test

import (
	"context"
	"encoding/json"
	"io/fs"
	"testing"

	cardgen "github.com/goliatone/go-cardgen"
)

func TestGenerateCard(t *testing.T) {
	var doc cardgen.Document
	if err := json.Unmarshal(cardgen.GenerateCard("hero", `{"title":"Hi"}`), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Body[0].Items[1].Text != "Hi" {
		t.Fatalf("unexpected hero card %+v", doc.Body)
	}
}

func TestGenerateDynamicFormKeepsStore(t *testing.T) {
	ctx := context.Background()
	raw, orch := cardgen.GenerateDynamicForm(ctx, `{"title":"T","fields":[{"id":"a","label":"A","isRequired":true}]}`)

	var doc cardgen.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	id, _ := doc.Actions[0].Data["form_id"].(string)
	result := orch.Validate(ctx, map[string]any{"form_id": id, "a": "x"})
	if !result.Valid {
		t.Fatalf("expected valid submission, got %+v", result)
	}
}

func TestSpeechTemplates(t *testing.T) {
	matches, err := fs.Glob(cardgen.SpeechTemplates(), "*.tpl")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected embedded speech templates")
	}
	if _, err := fs.Stat(cardgen.SpeechTemplates(), "weather.tpl"); err != nil {
		t.Fatalf("weather template missing: %v", err)
	}
}
