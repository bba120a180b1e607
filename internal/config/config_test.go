package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardgen/internal/config"
	"github.com/goliatone/go-cardgen/pkg/formstore"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Store.Driver != formstore.DriverMemory || cfg.Store.MaxEntries != formstore.DefaultMaxEntries {
		t.Fatalf("unexpected store defaults %+v", cfg.Store)
	}
	if cfg.Render.Sanitize {
		t.Fatalf("sanitizer should be opt-in")
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cardgen.yaml")
	yamlDoc := `
log:
  mode: production
server:
  addr: ":9090"
  read_timeout: 5s
store:
  driver: redis
  ttl: 15m
  redis:
    addr: "redis:6379"
render:
  speech: false
  sanitize: true
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CARDGEN_SERVER_ADDR", ":7070")
	t.Setenv("CARDGEN_STORE_REDIS_DB", "2")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Log.Mode != "production" || cfg.Log.Level != "info" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Server.Addr != ":7070" || cfg.Server.ReadTimeout != 5*time.Second || cfg.Server.WriteTimeout != 10*time.Second {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	wantStore := formstore.Config{
		Driver:     formstore.DriverRedis,
		MaxEntries: formstore.DefaultMaxEntries,
		TTL:        15 * time.Minute,
		Redis: formstore.RedisConfig{
			Addr:   "redis:6379",
			DB:     2,
			Prefix: formstore.DefaultPrefix,
		},
	}
	if diff := cmp.Diff(wantStore, cfg.Store); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
	if cfg.Render.Speech || !cfg.Render.Sanitize {
		t.Fatalf("unexpected render config %+v", cfg.Render)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := config.Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"CARDGEN_MCP_ARGS":          "-transport mcp -config /etc/cardgen.yaml",
		"CARDGEN_MCP_CALL_TIMEOUT":  "2s",
		"CARDGEN_STORE_MAX_ENTRIES": "0",
		"CARDGEN_RENDER_SANITIZE":   "true",
	}))
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if diff := cmp.Diff([]string{"-transport", "mcp", "-config", "/etc/cardgen.yaml"}, cfg.MCP.Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
	if cfg.MCP.CallTimeout != 2*time.Second || cfg.Store.MaxEntries != 0 || !cfg.Render.Sanitize {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}

	bad := config.Default()
	err = bad.ApplyEnv(envMap(map[string]string{
		"CARDGEN_SERVER_READ_TIMEOUT": "soon",
		"CARDGEN_RENDER_SPEECH":       "maybe",
	}))
	if err == nil || !strings.Contains(err.Error(), "CARDGEN_SERVER_READ_TIMEOUT") || !strings.Contains(err.Error(), "CARDGEN_RENDER_SPEECH") {
		t.Fatalf("expected both parse errors, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"driver", func(c *config.Config) { c.Store.Driver = "etcd" }, "unknown store driver"},
		{"transport", func(c *config.Config) { c.Server.Transport = "grpc" }, "unknown server transport"},
		{"entries", func(c *config.Config) { c.Store.MaxEntries = -1 }, "max_entries"},
		{"ttl", func(c *config.Config) { c.Store.TTL = -time.Second }, "store.ttl"},
		{"body", func(c *config.Config) { c.Server.MaxBodyBytes = -1 }, "max_body_bytes"},
		{"redis addr", func(c *config.Config) {
			c.Store.Driver = formstore.DriverRedis
			c.Store.Redis.Addr = ""
		}, "redis.addr"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
