package visibility

import (
	"context"

	"github.com/repoforge/repoforge/pkg/domain/settings"
)

// DecisionSource says where a resolved visibility came from.
type DecisionSource string

const (
	SourcePolicyRequired  DecisionSource = "policy_required"
	SourceUserPreference  DecisionSource = "user_preference"
	SourceTemplateDefault DecisionSource = "template_default"
	SourceSystemDefault   DecisionSource = "system_default"
)

// PolicyProvider fetches the organization visibility policy.
type PolicyProvider interface {
	OrganizationPolicy(ctx context.Context, org string) (Policy, error)
}

// PlanDetector fetches the organization's billing plan limitations.
type PlanDetector interface {
	PlanLimitations(ctx context.Context, org string) (PlanLimitations, error)
}

// Request carries the inputs to one visibility decision.
type Request struct {
	Organization string
	// UserPreference is the caller's explicit choice, nil when absent.
	UserPreference *settings.Visibility
	// TemplateDefault is the template's suggested visibility, nil when
	// the template does not declare one.
	TemplateDefault *settings.Visibility
}

// Resolution is the outcome of a visibility decision.
type Resolution struct {
	Visibility settings.Visibility `json:"visibility"`
	Source     DecisionSource      `json:"source"`
	// Policy is the organization policy that was in force.
	Policy Policy `json:"policy"`
}

// SystemDefault is the visibility used when neither policy, caller,
// nor template expresses a choice.
const SystemDefault = settings.VisibilityPrivate

// Resolver decides repository visibility. Precedence: a required
// policy wins outright, then the caller's preference, then the
// template default, then the system default. Whatever is chosen must
// pass both the organization policy and the billing plan.
type Resolver struct {
	policies PolicyProvider
	plans    PlanDetector
}

// NewResolver creates a visibility resolver.
func NewResolver(policies PolicyProvider, plans PlanDetector) *Resolver {
	return &Resolver{policies: policies, plans: plans}
}

// Resolve decides the visibility for one provisioning request.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Resolution, error) {
	policy, err := r.policies.OrganizationPolicy(ctx, req.Organization)
	if err != nil {
		return Resolution{}, &PolicyNotFoundError{Organization: req.Organization, Err: err}
	}
	plan, err := r.plans.PlanLimitations(ctx, req.Organization)
	if err != nil {
		return Resolution{}, &EnvironmentDetectionError{Organization: req.Organization, Err: err}
	}

	chosen, source := choose(policy, req)
	if !policy.Allows(chosen) {
		return Resolution{}, &PolicyViolationError{Requested: chosen, Policy: policy, Source: source}
	}
	if !plan.Supports(chosen) {
		return Resolution{}, &GitHubConstraintError{Requested: chosen, Plan: plan}
	}
	return Resolution{Visibility: chosen, Source: source, Policy: policy}, nil
}

// choose picks the candidate visibility and its source. A required
// policy overrides everything, but an explicit caller preference that
// conflicts with it is still reported as the caller's violation rather
// than silently replaced.
func choose(policy Policy, req Request) (settings.Visibility, DecisionSource) {
	if policy.Kind == PolicyRequired {
		if req.UserPreference != nil && *req.UserPreference != policy.Required {
			return *req.UserPreference, SourceUserPreference
		}
		return policy.Required, SourcePolicyRequired
	}
	if req.UserPreference != nil {
		return *req.UserPreference, SourceUserPreference
	}
	if req.TemplateDefault != nil {
		return *req.TemplateDefault, SourceTemplateDefault
	}
	return SystemDefault, SourceSystemDefault
}
