package policycache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/repoforge/repoforge/pkg/domain/settings"
	"github.com/repoforge/repoforge/pkg/domain/visibility"
)

type countingPolicies struct {
	calls  int
	policy visibility.Policy
	err    error
}

func (c *countingPolicies) OrganizationPolicy(ctx context.Context, org string) (visibility.Policy, error) {
	c.calls++
	return c.policy, c.err
}

type countingPlans struct {
	calls int
	plan  visibility.PlanLimitations
	err   error
}

func (c *countingPlans) PlanLimitations(ctx context.Context, org string) (visibility.PlanLimitations, error) {
	c.calls++
	return c.plan, c.err
}

// fakeClock is an adjustable clock for TTL tests.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestPolicyCacheServesWithinTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	inner := &countingPolicies{policy: visibility.Required(settings.VisibilityPrivate)}
	cache := NewPolicyCacheWithClock(inner, PolicyTTL, clock.now)

	if _, err := cache.OrganizationPolicy(context.Background(), "acme"); err != nil {
		t.Fatalf("first load: %v", err)
	}
	clock.advance(4*time.Minute + 59*time.Second)
	p, err := cache.OrganizationPolicy(context.Background(), "acme")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (entry still fresh)", inner.calls)
	}
	if p.Kind != visibility.PolicyRequired {
		t.Errorf("policy kind = %q", p.Kind)
	}
}

func TestPolicyCacheReloadsAfterTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	inner := &countingPolicies{policy: visibility.Unrestricted()}
	cache := NewPolicyCacheWithClock(inner, PolicyTTL, clock.now)

	if _, err := cache.OrganizationPolicy(context.Background(), "acme"); err != nil {
		t.Fatalf("first load: %v", err)
	}
	clock.advance(5*time.Minute + 1*time.Second)
	if _, err := cache.OrganizationPolicy(context.Background(), "acme"); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 (entry expired)", inner.calls)
	}
}

func TestPolicyCacheDoesNotCacheErrors(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	inner := &countingPolicies{err: fmt.Errorf("boom")}
	cache := NewPolicyCacheWithClock(inner, PolicyTTL, clock.now)

	for i := 0; i < 2; i++ {
		if _, err := cache.OrganizationPolicy(context.Background(), "acme"); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 (errors must not be cached)", inner.calls)
	}
}

func TestPolicyCacheInvalidate(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	inner := &countingPolicies{policy: visibility.Unrestricted()}
	cache := NewPolicyCacheWithClock(inner, PolicyTTL, clock.now)

	// Invalidating a never-cached org is a no-op.
	cache.Invalidate("acme")

	if _, err := cache.OrganizationPolicy(context.Background(), "acme"); err != nil {
		t.Fatalf("load: %v", err)
	}
	cache.Invalidate("acme")
	if _, err := cache.OrganizationPolicy(context.Background(), "acme"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 after invalidation", inner.calls)
	}
}

func TestPolicyCacheIsPerOrganization(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	inner := &countingPolicies{policy: visibility.Unrestricted()}
	cache := NewPolicyCacheWithClock(inner, PolicyTTL, clock.now)

	cache.OrganizationPolicy(context.Background(), "acme")
	cache.OrganizationPolicy(context.Background(), "globex")
	cache.OrganizationPolicy(context.Background(), "acme")
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want one load per organization", inner.calls)
	}
}

func TestPlanCacheTTLIsOneHour(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	inner := &countingPlans{plan: visibility.EnterprisePlan()}
	cache := NewPlanCacheWithClock(inner, PlanTTL, clock.now)

	if _, err := cache.PlanLimitations(context.Background(), "acme"); err != nil {
		t.Fatalf("first load: %v", err)
	}
	clock.advance(59 * time.Minute)
	if _, err := cache.PlanLimitations(context.Background(), "acme"); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 within the hour", inner.calls)
	}
	clock.advance(2 * time.Minute)
	plan, err := cache.PlanLimitations(context.Background(), "acme")
	if err != nil {
		t.Fatalf("third load: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 after expiry", inner.calls)
	}
	if !plan.IsEnterprise {
		t.Error("plan should round-trip through the cache")
	}
}
