package formstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"

	"github.com/goliatone/go-cardgen/pkg/forms"
)

type memoryEntry struct {
	def     forms.Definition
	expires time.Time
}

// Memory keeps definitions in a bounded LRU with per-entry expiry.
type Memory struct {
	mu    sync.Mutex
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

var _ Store = (*Memory)(nil)

// NewMemory returns an in-memory store. Defaults: 1000 entries, one hour TTL.
func NewMemory(options ...Option) *Memory {
	s := applyOptions(options)
	return &Memory{
		cache: lru.New(s.maxEntries),
		ttl:   s.ttl,
		now:   s.now,
		newID: s.newID,
	}
}

// Put implements Store.
func (m *Memory) Put(ctx context.Context, def forms.Definition) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := strings.TrimSpace(m.newID())
		if id == "" {
			continue
		}
		if _, taken := m.lookup(id, now); taken {
			continue
		}
		stored := def
		stored.FormID = id
		entry := memoryEntry{def: stored}
		if m.ttl > 0 {
			entry.expires = now.Add(m.ttl)
		}
		m.cache.Add(id, entry)
		return id, nil
	}
	return "", errIDExhausted
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, id string) (forms.Definition, error) {
	if err := ctx.Err(); err != nil {
		return forms.Definition{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.lookup(id, m.now())
	if !ok {
		return forms.Definition{}, ErrNotFound
	}
	return entry.def, nil
}

// Len reports the number of entries held, including expired ones not yet
// collected.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

// lookup must be called with m.mu held. Expired entries are dropped.
func (m *Memory) lookup(id string, now time.Time) (memoryEntry, bool) {
	raw, ok := m.cache.Get(id)
	if !ok {
		return memoryEntry{}, false
	}
	entry := raw.(memoryEntry)
	if !entry.expires.IsZero() && !now.Before(entry.expires) {
		m.cache.Remove(id)
		return memoryEntry{}, false
	}
	return entry, true
}
