package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is the in-process cache tier.
type Memory struct {
	inner *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{inner: gocache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves a value.
func (m *Memory) Get(key string) ([]byte, bool) {
	if v, found := m.inner.Get(key); found {
		return v.([]byte), true
	}
	return nil, false
}

// Set stores a value; ttl 0 uses the default.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.inner.Set(key, value, ttl)
	return nil
}

// Delete removes a value.
func (m *Memory) Delete(key string) error {
	m.inner.Delete(key)
	return nil
}

// Clear removes all values.
func (m *Memory) Clear() error {
	m.inner.Flush()
	return nil
}
