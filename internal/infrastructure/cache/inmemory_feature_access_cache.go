package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	enabled   bool
	expiresAt time.Time
}

// InMemoryFeatureAccessCache implements FeatureAccessCache in process
// memory. Suitable for tests and single-instance deployments; state is
// not shared across processes.
type InMemoryFeatureAccessCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewInMemoryFeatureAccessCache creates an in-memory cache
func NewInMemoryFeatureAccessCache(ttl time.Duration) *InMemoryFeatureAccessCache {
	if ttl == 0 {
		ttl = DefaultFeatureAccessTTL
	}
	return &InMemoryFeatureAccessCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get returns the cached decision and whether one was present
func (c *InMemoryFeatureAccessCache) Get(ctx context.Context, tenantID uuid.UUID, featureKey string) (bool, bool) {
	c.mu.RLock()
	entry, ok := c.entries[featureAccessKey(tenantID, featureKey)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return false, false
	}
	return entry.enabled, true
}

// Set stores a decision
func (c *InMemoryFeatureAccessCache) Set(ctx context.Context, tenantID uuid.UUID, featureKey string, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[featureAccessKey(tenantID, featureKey)] = memoryEntry{
		enabled:   enabled,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// InvalidateTenant drops all cached decisions for a complex
func (c *InMemoryFeatureAccessCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	prefix := featureAccessKey(tenantID, "")
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
	return nil
}
