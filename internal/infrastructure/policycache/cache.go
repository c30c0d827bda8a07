// Package policycache caches organization visibility policies and plan
// limitations with independent TTLs, so repeated provisioning requests
// do not hammer the GitHub API.
package policycache

import (
	"context"
	"sync"
	"time"

	"github.com/repoforge/repoforge/pkg/domain/visibility"
)

const (
	// PolicyTTL bounds how stale a cached visibility policy may be.
	PolicyTTL = 5 * time.Minute
	// PlanTTL bounds how stale cached plan limitations may be. Plans
	// change far less often than policies.
	PlanTTL = time.Hour
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// ttlMap is a mutex-guarded expiring map. An expired entry behaves
// exactly like a miss.
type ttlMap[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[V]
}

func newTTLMap[V any](ttl time.Duration, now func() time.Time) *ttlMap[V] {
	return &ttlMap[V]{ttl: ttl, now: now, entries: make(map[string]entry[V])}
}

func (m *ttlMap[V]) get(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok || !m.now().Before(e.expires) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (m *ttlMap[V]) put(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry[V]{value: value, expires: m.now().Add(m.ttl)}
}

func (m *ttlMap[V]) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// PolicyCache wraps a PolicyProvider with a TTL cache keyed by
// organization. Concurrent misses on the same key may each hit the
// inner provider; the last write wins, which is harmless for
// idempotent reads.
type PolicyCache struct {
	inner visibility.PolicyProvider
	cache *ttlMap[visibility.Policy]
}

// NewPolicyCache creates a policy cache with the default TTL.
func NewPolicyCache(inner visibility.PolicyProvider) *PolicyCache {
	return NewPolicyCacheWithClock(inner, PolicyTTL, time.Now)
}

// NewPolicyCacheWithClock creates a policy cache with an explicit TTL
// and clock, for tests.
func NewPolicyCacheWithClock(inner visibility.PolicyProvider, ttl time.Duration, now func() time.Time) *PolicyCache {
	return &PolicyCache{inner: inner, cache: newTTLMap[visibility.Policy](ttl, now)}
}

// OrganizationPolicy returns the cached policy or loads it. Lookup
// errors are never cached.
func (c *PolicyCache) OrganizationPolicy(ctx context.Context, org string) (visibility.Policy, error) {
	if p, ok := c.cache.get(org); ok {
		return p, nil
	}
	p, err := c.inner.OrganizationPolicy(ctx, org)
	if err != nil {
		return visibility.Policy{}, err
	}
	c.cache.put(org, p)
	return p, nil
}

// Invalidate drops the cached policy for an organization. Dropping an
// absent entry is a no-op.
func (c *PolicyCache) Invalidate(org string) {
	c.cache.delete(org)
}

// PlanCache wraps a PlanDetector with a TTL cache keyed by
// organization.
type PlanCache struct {
	inner visibility.PlanDetector
	cache *ttlMap[visibility.PlanLimitations]
}

// NewPlanCache creates a plan cache with the default TTL.
func NewPlanCache(inner visibility.PlanDetector) *PlanCache {
	return NewPlanCacheWithClock(inner, PlanTTL, time.Now)
}

// NewPlanCacheWithClock creates a plan cache with an explicit TTL and
// clock, for tests.
func NewPlanCacheWithClock(inner visibility.PlanDetector, ttl time.Duration, now func() time.Time) *PlanCache {
	return &PlanCache{inner: inner, cache: newTTLMap[visibility.PlanLimitations](ttl, now)}
}

// PlanLimitations returns the cached limitations or loads them.
func (c *PlanCache) PlanLimitations(ctx context.Context, org string) (visibility.PlanLimitations, error) {
	if p, ok := c.cache.get(org); ok {
		return p, nil
	}
	p, err := c.inner.PlanLimitations(ctx, org)
	if err != nil {
		return visibility.PlanLimitations{}, err
	}
	c.cache.put(org, p)
	return p, nil
}

// Invalidate drops the cached limitations for an organization.
func (c *PlanCache) Invalidate(org string) {
	c.cache.delete(org)
}
