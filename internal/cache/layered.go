package cache

import "time"

// Layered combines the memory and disk tiers: reads check memory first
// and promote disk hits; writes go to both.
type Layered struct {
	memory Cache
	disk   Cache
}

// NewLayered creates a layered cache.
func NewLayered(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *Layered {
	return &Layered{
		memory: NewMemory(memoryTTL, 10*time.Minute),
		disk:   NewDisk(diskDir, diskTTL),
	}
}

// Get checks memory, then disk.
func (l *Layered) Get(key string) ([]byte, bool) {
	if v, found := l.memory.Get(key); found {
		return v, true
	}
	if v, found := l.disk.Get(key); found {
		_ = l.memory.Set(key, v, 0)
		return v, true
	}
	return nil, false
}

// Set stores in both tiers.
func (l *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return l.disk.Set(key, value, ttl)
}

// Delete removes from both tiers.
func (l *Layered) Delete(key string) error {
	_ = l.memory.Delete(key)
	return l.disk.Delete(key)
}

// Clear empties both tiers.
func (l *Layered) Clear() error {
	_ = l.memory.Clear()
	return l.disk.Clear()
}
