// Package formstore persists dynamic form definitions between the moment a
// form is rendered and the moment its submission is validated.
package formstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-cardgen/pkg/forms"
)

// ErrNotFound reports an unknown or expired form id.
var ErrNotFound = errors.New("formstore: form not found")

// Store saves definitions under freshly generated ids. Implementations are
// safe for concurrent use.
type Store interface {
	// Put stores def and returns its new id. The stored copy carries the id
	// in FormID.
	Put(ctx context.Context, def forms.Definition) (string, error)
	// Get returns the definition stored under id or ErrNotFound.
	Get(ctx context.Context, id string) (forms.Definition, error)
	Close() error
}

// Backend names accepted by Config.Driver.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Defaults applied by the memory backend.
const (
	DefaultMaxEntries = 1000
	DefaultTTL        = time.Hour
	DefaultPrefix     = "cardgen:form:"
)

// Config selects and tunes a backend.
type Config struct {
	Driver     string        `yaml:"driver"`
	MaxEntries int           `yaml:"max_entries"`
	TTL        time.Duration `yaml:"ttl"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds the connection settings of the Redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// DefaultConfig returns a bounded in-memory configuration.
func DefaultConfig() Config {
	return Config{
		Driver:     DriverMemory,
		MaxEntries: DefaultMaxEntries,
		TTL:        DefaultTTL,
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: DefaultPrefix,
		},
	}
}

// New builds the backend named by cfg.Driver. The Redis backend is pinged
// before it is returned.
func New(ctx context.Context, cfg Config, options ...Option) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverMemory:
		opts := append([]Option{WithMaxEntries(cfg.MaxEntries), WithTTL(cfg.TTL)}, options...)
		return NewMemory(opts...), nil
	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("formstore: connect redis %s: %w", cfg.Redis.Addr, err)
		}
		opts := append([]Option{WithTTL(cfg.TTL), WithPrefix(cfg.Redis.Prefix)}, options...)
		return NewRedis(client, opts...), nil
	default:
		return nil, fmt.Errorf("formstore: unknown driver %q", cfg.Driver)
	}
}

// Option tunes a backend. Options that do not apply to a backend are
// ignored by it.
type Option func(*settings)

type settings struct {
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	newID      func() string
	prefix     string
}

func defaultSettings() settings {
	return settings{
		maxEntries: DefaultMaxEntries,
		ttl:        DefaultTTL,
		now:        time.Now,
		newID:      uuid.NewString,
		prefix:     DefaultPrefix,
	}
}

func applyOptions(options []Option) settings {
	s := defaultSettings()
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// WithMaxEntries bounds the memory backend; the least recently used entry is
// evicted once the bound is reached. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.maxEntries = n
		}
	}
}

// WithTTL sets how long a definition stays valid. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now for expiry checks of the memory backend.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *settings) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithPrefix sets the key prefix of the Redis backend.
func WithPrefix(prefix string) Option {
	return func(s *settings) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			s.prefix = trimmed
		}
	}
}

// maxIDAttempts caps retries when a generator returns an id already in use.
const maxIDAttempts = 8

var errIDExhausted = errors.New("formstore: could not allocate a unique form id")
