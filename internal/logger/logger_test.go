package logger_test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-cardgen/internal/logger"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := logger.New("development", "loud"); err == nil {
		t.Fatalf("expected invalid level error")
	}
	l, err := logger.New("production", "warn")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if l.SugaredLogger.Desugar().Core().Enabled(zap.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := logger.FromZap(zap.New(core)).With("component", "render")

	l.Debug("rendered", "template", "hero")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "render" || fields["template"] != "hero" {
		t.Fatalf("unexpected fields %v", fields)
	}
}
