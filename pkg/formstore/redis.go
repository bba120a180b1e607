package formstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-cardgen/pkg/forms"
)

// Redis stores JSON-encoded definitions under "<prefix><id>", letting Redis
// enforce expiry.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	newID  func() string
}

var _ Store = (*Redis)(nil)

// NewRedis wraps an existing client. The store owns the client and closes
// it on Close.
func NewRedis(client redis.UniversalClient, options ...Option) *Redis {
	s := applyOptions(options)
	return &Redis{
		client: client,
		prefix: s.prefix,
		ttl:    s.ttl,
		newID:  s.newID,
	}
}

// Put implements Store. Ids are claimed with SET NX so a colliding id is
// never overwritten.
func (r *Redis) Put(ctx context.Context, def forms.Definition) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := strings.TrimSpace(r.newID())
		if id == "" {
			continue
		}
		stored := def
		stored.FormID = id
		raw, err := json.Marshal(stored)
		if err != nil {
			return "", fmt.Errorf("formstore: encode definition: %w", err)
		}
		ok, err := r.client.SetNX(ctx, r.key(id), raw, r.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("formstore: store %s: %w", id, err)
		}
		if ok {
			return id, nil
		}
	}
	return "", errIDExhausted
}

// Get implements Store.
func (r *Redis) Get(ctx context.Context, id string) (forms.Definition, error) {
	if strings.TrimSpace(id) == "" {
		return forms.Definition{}, ErrNotFound
	}
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return forms.Definition{}, ErrNotFound
		}
		return forms.Definition{}, fmt.Errorf("formstore: load %s: %w", id, err)
	}
	var def forms.Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return forms.Definition{}, fmt.Errorf("formstore: decode %s: %w", id, err)
	}
	return def, nil
}

// Close implements Store.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(id string) string {
	return r.prefix + id
}
