package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v69/github"

	"github.com/repoforge/repoforge/pkg/domain/visibility"
)

// PlanDetector derives billing plan limitations from the organization
// profile.
type PlanDetector struct {
	client *github.Client
}

// NewPlanDetector creates a plan detector.
func NewPlanDetector(client *github.Client) *PlanDetector {
	return &PlanDetector{client: client}
}

// PlanLimitations fetches the organization and maps its plan name to
// limitations. Unknown plan names are treated as paid plans without
// internal repository support, the conservative reading.
func (d *PlanDetector) PlanLimitations(ctx context.Context, org string) (visibility.PlanLimitations, error) {
	o, _, err := d.client.Organizations.Get(ctx, org)
	if err != nil {
		return visibility.PlanLimitations{}, fmt.Errorf("fetching organization %s: %w", org, err)
	}
	plan := o.GetPlan()
	if plan == nil {
		return visibility.PaidPlan(), nil
	}
	limits := limitationsForPlan(plan.GetName())
	if !limits.IsEnterprise && plan.PrivateRepos != nil && *plan.PrivateRepos > 0 {
		n := int(*plan.PrivateRepos)
		limits.PrivateRepoLimit = &n
	}
	return limits, nil
}

func limitationsForPlan(name string) visibility.PlanLimitations {
	switch strings.ToLower(name) {
	case "free":
		return visibility.FreePlan()
	case "enterprise", "business":
		return visibility.EnterprisePlan()
	default:
		return visibility.PaidPlan()
	}
}
