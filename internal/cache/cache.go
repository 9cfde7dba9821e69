// Package cache holds the report cache implementations.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	portscache "github.com/SscSPs/mei_retail_app/internal/core/ports/cache"
)

// NoopReportCache never stores anything.
type NoopReportCache struct{}

var _ portscache.ReportCache = NoopReportCache{}

func (NoopReportCache) Get(_ context.Context, _ string, _ any) (bool, error) {
	return false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ any, _ time.Duration) error {
	return nil
}

func (NoopReportCache) InvalidateUser(_ context.Context, _ string) error {
	return nil
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryReportCache keeps JSON-encoded reports in process. Expired entries
// are dropped when read.
type MemoryReportCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ portscache.ReportCache = (*MemoryReportCache)(nil)

// NewMemoryReportCache creates an empty cache. now may be nil.
func NewMemoryReportCache(now func() time.Time) *MemoryReportCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryReportCache{entries: make(map[string]memoryEntry), now: now}
}

func (c *MemoryReportCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key. A ttl of zero never expires.
func (c *MemoryReportCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	e := memoryEntry{payload: payload}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *MemoryReportCache) InvalidateUser(_ context.Context, userEmail string) error {
	prefix := portscache.UserPrefix(userEmail)
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryReportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
