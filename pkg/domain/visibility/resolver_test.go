package visibility

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/repoforge/repoforge/pkg/domain/settings"
)

type fakePolicies struct {
	policy Policy
	err    error
}

func (f *fakePolicies) OrganizationPolicy(ctx context.Context, org string) (Policy, error) {
	return f.policy, f.err
}

type fakePlans struct {
	plan PlanLimitations
	err  error
}

func (f *fakePlans) PlanLimitations(ctx context.Context, org string) (PlanLimitations, error) {
	return f.plan, f.err
}

func newTestResolver(policy Policy, plan PlanLimitations) *Resolver {
	return NewResolver(&fakePolicies{policy: policy}, &fakePlans{plan: plan})
}

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name       string
		policy     Policy
		req        Request
		want       settings.Visibility
		wantSource DecisionSource
	}{
		{
			"required policy wins",
			Required(settings.VisibilityPrivate),
			Request{Organization: "acme"},
			settings.VisibilityPrivate,
			SourcePolicyRequired,
		},
		{
			"required policy with matching preference",
			Required(settings.VisibilityPrivate),
			Request{Organization: "acme", UserPreference: visPtr(settings.VisibilityPrivate)},
			settings.VisibilityPrivate,
			SourcePolicyRequired,
		},
		{
			"user preference beats template default",
			Unrestricted(),
			Request{
				Organization:    "acme",
				UserPreference:  visPtr(settings.VisibilityPublic),
				TemplateDefault: visPtr(settings.VisibilityPrivate),
			},
			settings.VisibilityPublic,
			SourceUserPreference,
		},
		{
			"template default when no preference",
			Unrestricted(),
			Request{Organization: "acme", TemplateDefault: visPtr(settings.VisibilityPublic)},
			settings.VisibilityPublic,
			SourceTemplateDefault,
		},
		{
			"system default is private",
			Unrestricted(),
			Request{Organization: "acme"},
			settings.VisibilityPrivate,
			SourceSystemDefault,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(tt.policy, EnterprisePlan())
			res, err := r.Resolve(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if res.Visibility != tt.want {
				t.Errorf("visibility = %s, want %s", res.Visibility, tt.want)
			}
			if res.Source != tt.wantSource {
				t.Errorf("source = %s, want %s", res.Source, tt.wantSource)
			}
		})
	}
}

func TestResolvePolicyViolations(t *testing.T) {
	t.Run("preference conflicts with required policy", func(t *testing.T) {
		r := newTestResolver(Required(settings.VisibilityPrivate), EnterprisePlan())
		_, err := r.Resolve(context.Background(), Request{
			Organization:   "acme",
			UserPreference: visPtr(settings.VisibilityPublic),
		})
		var pv *PolicyViolationError
		if !errors.As(err, &pv) {
			t.Fatalf("error = %v, want *PolicyViolationError", err)
		}
		if pv.Requested != settings.VisibilityPublic || pv.Source != SourceUserPreference {
			t.Errorf("violation = %+v", pv)
		}
	})

	t.Run("preference hits restricted list", func(t *testing.T) {
		r := newTestResolver(Restricted([]settings.Visibility{settings.VisibilityPublic}), EnterprisePlan())
		_, err := r.Resolve(context.Background(), Request{
			Organization:   "acme",
			UserPreference: visPtr(settings.VisibilityPublic),
		})
		var pv *PolicyViolationError
		if !errors.As(err, &pv) {
			t.Fatalf("error = %v, want *PolicyViolationError", err)
		}
	})

	t.Run("template default hits restricted list", func(t *testing.T) {
		r := newTestResolver(Restricted([]settings.Visibility{settings.VisibilityPublic}), EnterprisePlan())
		_, err := r.Resolve(context.Background(), Request{
			Organization:    "acme",
			TemplateDefault: visPtr(settings.VisibilityPublic),
		})
		var pv *PolicyViolationError
		if !errors.As(err, &pv) {
			t.Fatalf("error = %v, want *PolicyViolationError", err)
		}
		if pv.Source != SourceTemplateDefault {
			t.Errorf("source = %s, want template_default", pv.Source)
		}
	})
}

func TestResolvePlanConstraints(t *testing.T) {
	t.Run("internal on non-enterprise plan", func(t *testing.T) {
		r := newTestResolver(Unrestricted(), PaidPlan())
		_, err := r.Resolve(context.Background(), Request{
			Organization:   "acme",
			UserPreference: visPtr(settings.VisibilityInternal),
		})
		var gc *GitHubConstraintError
		if !errors.As(err, &gc) {
			t.Fatalf("error = %v, want *GitHubConstraintError", err)
		}
		var pv *PolicyViolationError
		if errors.As(err, &pv) {
			t.Error("plan constraint must not be reported as a policy violation")
		}
	})

	t.Run("internal on enterprise plan", func(t *testing.T) {
		r := newTestResolver(Unrestricted(), EnterprisePlan())
		res, err := r.Resolve(context.Background(), Request{
			Organization:   "acme",
			UserPreference: visPtr(settings.VisibilityInternal),
		})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if res.Visibility != settings.VisibilityInternal {
			t.Errorf("visibility = %s", res.Visibility)
		}
	})
}

func TestResolveProviderErrors(t *testing.T) {
	t.Run("policy provider failure", func(t *testing.T) {
		r := NewResolver(&fakePolicies{err: fmt.Errorf("boom")}, &fakePlans{plan: PaidPlan()})
		_, err := r.Resolve(context.Background(), Request{Organization: "acme"})
		var nf *PolicyNotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("error = %v, want *PolicyNotFoundError", err)
		}
		if nf.Organization != "acme" {
			t.Errorf("organization = %q", nf.Organization)
		}
	})
	t.Run("plan detector failure", func(t *testing.T) {
		r := NewResolver(&fakePolicies{policy: Unrestricted()}, &fakePlans{err: fmt.Errorf("boom")})
		_, err := r.Resolve(context.Background(), Request{Organization: "acme"})
		var ed *EnvironmentDetectionError
		if !errors.As(err, &ed) {
			t.Fatalf("error = %v, want *EnvironmentDetectionError", err)
		}
	})
}
