package visibility

import "github.com/repoforge/repoforge/pkg/domain/settings"

// PlanLimitations describes what an organization's billing plan lets
// it create. Internal repositories exist only on enterprise plans.
type PlanLimitations struct {
	SupportsPrivateRepos  bool `json:"supports_private_repos"`
	SupportsInternalRepos bool `json:"supports_internal_repos"`
	// PrivateRepoLimit is the plan's cap on private repositories; nil
	// means unlimited.
	PrivateRepoLimit *int `json:"private_repo_limit,omitempty"`
	IsEnterprise     bool `json:"is_enterprise"`
}

// FreePlan returns the limitations of the free plan.
func FreePlan() PlanLimitations {
	return PlanLimitations{SupportsPrivateRepos: true}
}

// PaidPlan returns the limitations of Team and Pro plans.
func PaidPlan() PlanLimitations {
	return PlanLimitations{SupportsPrivateRepos: true}
}

// EnterprisePlan returns the limitations of enterprise plans.
func EnterprisePlan() PlanLimitations {
	return PlanLimitations{
		SupportsPrivateRepos:  true,
		SupportsInternalRepos: true,
		IsEnterprise:          true,
	}
}

// Supports reports whether the plan can create a repository with the
// given visibility.
func (p PlanLimitations) Supports(v settings.Visibility) bool {
	switch v {
	case settings.VisibilityPrivate:
		return p.SupportsPrivateRepos
	case settings.VisibilityInternal:
		return p.SupportsInternalRepos && p.IsEnterprise
	default:
		return true
	}
}
