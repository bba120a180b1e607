package app_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/goliatone/go-cardgen/internal/app"
	"github.com/goliatone/go-cardgen/internal/config"
	"github.com/goliatone/go-cardgen/internal/logger"
	"github.com/goliatone/go-cardgen/pkg/card"
	"github.com/goliatone/go-cardgen/pkg/formstore"
)

func render(t *testing.T, cfg config.Config, template, data string) card.Document {
	t.Helper()
	dispatcher, err := app.NewDispatcher(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}
	var doc card.Document
	if err := json.Unmarshal(dispatcher.RenderJSON(template, data), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

func TestDispatcherToggles(t *testing.T) {
	cfg := config.Default()
	if doc := render(t, cfg, "weather", `{"city":"Oslo"}`); doc.Speak == "" {
		t.Fatalf("speech should be on by default")
	}

	if doc := render(t, cfg, "simple", `{"message":"<b>bold</b>"}`); doc.Body[0].Text != "<b>bold</b>" {
		t.Fatalf("sanitizer should be off by default, got %q", doc.Body[0].Text)
	}

	cfg.Render.Speech = false
	cfg.Render.Sanitize = true
	doc := render(t, cfg, "simple", `{"message":"<b>bold</b>"}`)
	if doc.Speak != "" || doc.Body[0].Text != "bold" {
		t.Fatalf("toggles not applied: %+v", doc)
	}
}

func TestCustomSpeechTemplates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "simple.tpl"), []byte("Says {{ message }}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg := config.Default()
	cfg.Render.SpeechTemplates = dir

	if doc := render(t, cfg, "simple", `{"message":"hi"}`); doc.Speak != "Says hi" {
		t.Fatalf("unexpected speak %q", doc.Speak)
	}

	cfg.Render.SpeechTemplates = filepath.Join(dir, "missing")
	if _, err := app.NewDispatcher(cfg, logger.Nop()); err == nil {
		t.Fatalf("expected error for missing template dir")
	}
}

func TestOrchestratorWithRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Store.Driver = formstore.DriverRedis
	cfg.Store.Redis.Addr = mr.Addr()

	ctx := context.Background()
	orch, err := app.NewOrchestrator(ctx, cfg, logger.Nop())
	if err != nil {
		t.Fatalf("orchestrator: %v", err)
	}
	defer orch.Close()

	_, id := orch.DynamicForm(ctx, `{"title":"Redis form","fields":[]}`)
	if id == "" {
		t.Fatalf("expected stored form")
	}
	if keys := mr.Keys(); len(keys) != 1 || keys[0] != formstore.DefaultPrefix+id {
		t.Fatalf("unexpected redis keys %v", keys)
	}
	if result := orch.Validate(ctx, map[string]any{"form_id": id}); !result.Valid {
		t.Fatalf("expected valid submission, got %+v", result)
	}
}
