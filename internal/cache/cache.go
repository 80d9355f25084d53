package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is a byte-oriented response cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Memory is an in-process Store backed by go-cache.
type Memory struct {
	c *gocache.Cache
}

// NewMemory creates a Memory store whose expired entries are purged every
// cleanup interval.
func NewMemory(defaultTTL, cleanup time.Duration) *Memory {
	return &Memory{c: gocache.New(defaultTTL, cleanup)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.c.Set(key, value, ttl)
}

// Len reports the number of live entries.
func (m *Memory) Len() int {
	return m.c.ItemCount()
}

// Tiered reads through L1 then L2 and writes to both. A hit in L2 is
// promoted into L1 for promoteTTL.
type Tiered struct {
	l1         Store
	l2         Store
	promoteTTL time.Duration
}

// NewTiered combines two stores. A nil l2 makes Tiered behave like l1.
func NewTiered(l1, l2 Store, promoteTTL time.Duration) *Tiered {
	return &Tiered{l1: l1, l2: l2, promoteTTL: promoteTTL}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if b, ok := t.l1.Get(ctx, key); ok {
		return b, true
	}
	if t.l2 == nil {
		return nil, false
	}
	b, ok := t.l2.Get(ctx, key)
	if ok {
		t.l1.Set(ctx, key, b, t.promoteTTL)
	}
	return b, ok
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	t.l1.Set(ctx, key, value, ttl)
	if t.l2 != nil {
		t.l2.Set(ctx, key, value, ttl)
	}
}
