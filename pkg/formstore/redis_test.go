package formstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-cardgen/pkg/formstore"
)

func newRedisStore(t *testing.T, options ...formstore.Option) (*formstore.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := formstore.NewRedis(client, options...)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, formstore.WithPrefix("test:"))

	id, err := store.Put(ctx, sampleDefinition())
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !mr.Exists("test:" + id) {
		t.Fatalf("expected key test:%s", id)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := sampleDefinition()
	want.FormID = id
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, formstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, formstore.WithTTL(30*time.Second))

	id, err := store.Put(ctx, sampleDefinition())
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	mr.FastForward(31 * time.Second)
	if _, err := store.Get(ctx, id); !errors.Is(err, formstore.ErrNotFound) {
		t.Fatalf("expected expired entry, got %v", err)
	}
}

func TestRedisDoesNotOverwriteCollidingID(t *testing.T) {
	ctx := context.Background()
	ids := []string{"same", "same", "other"}
	next := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	store, _ := newRedisStore(t, formstore.WithIDGenerator(next))

	first, _ := store.Put(ctx, sampleDefinition())
	second, err := store.Put(ctx, sampleDefinition())
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if first != "same" || second != "other" {
		t.Fatalf("expected same then other, got %s and %s", first, second)
	}
}

func TestNewRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := formstore.DefaultConfig()
	cfg.Driver = formstore.DriverRedis
	cfg.Redis.Addr = mr.Addr()

	store, err := formstore.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer store.Close()
	if _, ok := store.(*formstore.Redis); !ok {
		t.Fatalf("expected redis backend, got %T", store)
	}

	cfg.Redis.Addr = "127.0.0.1:1"
	if _, err := formstore.New(context.Background(), cfg); err == nil {
		t.Fatalf("expected connection error")
	}
}
