// Package config loads the runtime configuration of the cardgen binaries: an
// optional YAML file overridden by CARDGEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardgen/pkg/formstore"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CARDGEN_"

// Server transports.
const (
	TransportHTTP = "http"
	TransportMCP  = "mcp"
)

// Config is the full runtime configuration.
type Config struct {
	Log    LogConfig        `yaml:"log"`
	Server ServerConfig     `yaml:"server"`
	MCP    MCPConfig        `yaml:"mcp"`
	Store  formstore.Config `yaml:"store"`
	Render RenderConfig     `yaml:"render"`
}

// LogConfig selects the logger mode ("development" or "production") and
// level.
type LogConfig struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Transport    string        `yaml:"transport"`
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// MCPConfig configures the MCP client used by the CLI.
type MCPConfig struct {
	Command     string        `yaml:"command"`
	Args        []string      `yaml:"args"`
	CallTimeout time.Duration `yaml:"call_timeout"`
}

// RenderConfig toggles optional rendering stages.
type RenderConfig struct {
	Sanitize bool `yaml:"sanitize"`
	Speech   bool `yaml:"speech"`
	// SpeechTemplates replaces the embedded speech templates with a
	// directory when set.
	SpeechTemplates string `yaml:"speech_templates"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Mode: "development", Level: "info"},
		Server: ServerConfig{
			Transport:    TransportHTTP,
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		MCP: MCPConfig{
			Command:     "cardgen-server",
			Args:        []string{"-transport", TransportMCP},
			CallTimeout: 30 * time.Second,
		},
		Store:  formstore.DefaultConfig(),
		Render: RenderConfig{Speech: true},
	}
}

// Load reads path (when non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup is os.LookupEnv in
// production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}
	integer := func(name string, dst *int64) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	str("LOG_MODE", &c.Log.Mode)
	str("LOG_LEVEL", &c.Log.Level)

	str("SERVER_TRANSPORT", &c.Server.Transport)
	str("SERVER_ADDR", &c.Server.Addr)
	dur("SERVER_READ_TIMEOUT", &c.Server.ReadTimeout)
	dur("SERVER_WRITE_TIMEOUT", &c.Server.WriteTimeout)
	integer("SERVER_MAX_BODY_BYTES", &c.Server.MaxBodyBytes)

	str("MCP_COMMAND", &c.MCP.Command)
	if v, ok := lookup(EnvPrefix + "MCP_ARGS"); ok {
		c.MCP.Args = strings.Fields(v)
	}
	dur("MCP_CALL_TIMEOUT", &c.MCP.CallTimeout)

	str("STORE_DRIVER", &c.Store.Driver)
	dur("STORE_TTL", &c.Store.TTL)
	maxEntries := int64(c.Store.MaxEntries)
	integer("STORE_MAX_ENTRIES", &maxEntries)
	c.Store.MaxEntries = int(maxEntries)
	str("STORE_REDIS_ADDR", &c.Store.Redis.Addr)
	str("STORE_REDIS_PASSWORD", &c.Store.Redis.Password)
	db := int64(c.Store.Redis.DB)
	integer("STORE_REDIS_DB", &db)
	c.Store.Redis.DB = int(db)
	str("STORE_REDIS_PREFIX", &c.Store.Redis.Prefix)

	boolean("RENDER_SANITIZE", &c.Render.Sanitize)
	boolean("RENDER_SPEECH", &c.Render.Speech)
	str("RENDER_SPEECH_TEMPLATES", &c.Render.SpeechTemplates)

	return errors.Join(errs...)
}

// Validate rejects unknown drivers and transports and negative limits.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Store.Driver) {
	case formstore.DriverMemory, formstore.DriverRedis:
	default:
		errs = append(errs, fmt.Errorf("config: unknown store driver %q", c.Store.Driver))
	}
	switch c.Server.Transport {
	case TransportHTTP, TransportMCP:
	default:
		errs = append(errs, fmt.Errorf("config: unknown server transport %q", c.Server.Transport))
	}
	if c.Store.MaxEntries < 0 {
		errs = append(errs, errors.New("config: store.max_entries must not be negative"))
	}
	if c.Store.TTL < 0 {
		errs = append(errs, errors.New("config: store.ttl must not be negative"))
	}
	if c.Server.MaxBodyBytes < 0 {
		errs = append(errs, errors.New("config: server.max_body_bytes must not be negative"))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.MCP.CallTimeout < 0 {
		errs = append(errs, errors.New("config: timeouts must not be negative"))
	}
	if c.Store.Driver == formstore.DriverRedis && c.Store.Redis.Addr == "" {
		errs = append(errs, errors.New("config: store.redis.addr is required for the redis driver"))
	}
	return errors.Join(errs...)
}
