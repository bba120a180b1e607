// Package app wires the engine components from a loaded configuration. Both
// binaries build their orchestrator here.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-cardgen/internal/config"
	"github.com/goliatone/go-cardgen/internal/logger"
	"github.com/goliatone/go-cardgen/pkg/formstore"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/render/speak"
)

// NewLogger builds the logger described by cfg.Log.
func NewLogger(cfg config.Config) (*logger.Logger, error) {
	return logger.New(cfg.Log.Mode, cfg.Log.Level)
}

// NewDispatcher builds a dispatcher honouring the render toggles.
func NewDispatcher(cfg config.Config, log *logger.Logger) (*render.Dispatcher, error) {
	var engine *speak.Engine
	if cfg.Render.Speech {
		var opts []speak.Option
		if dir := cfg.Render.SpeechTemplates; dir != "" {
			if _, err := os.Stat(dir); err != nil {
				return nil, fmt.Errorf("app: speech templates: %w", err)
			}
			opts = append(opts, speak.WithFS(os.DirFS(dir)))
		}
		var err error
		if engine, err = speak.New(opts...); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}
	return render.New(
		render.WithLogger(log),
		render.WithSanitizer(cfg.Render.Sanitize),
		render.WithSpeech(engine),
	), nil
}

// NewOrchestrator connects the configured store and dispatcher. The caller
// owns the returned orchestrator and must Close it.
func NewOrchestrator(ctx context.Context, cfg config.Config, log *logger.Logger) (*orchestrator.Orchestrator, error) {
	dispatcher, err := NewDispatcher(cfg, log)
	if err != nil {
		return nil, err
	}
	store, err := formstore.New(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	log.Info("form store ready", "driver", cfg.Store.Driver, "ttl", cfg.Store.TTL, "max_entries", cfg.Store.MaxEntries)

	return orchestrator.New(
		orchestrator.WithDispatcher(dispatcher),
		orchestrator.WithStore(store),
		orchestrator.WithLogger(log),
	), nil
}
