package visibility

import (
	"fmt"

	"github.com/repoforge/repoforge/pkg/domain/settings"
)

// PolicyNotFoundError reports that the organization's visibility
// policy could not be loaded.
type PolicyNotFoundError struct {
	Organization string
	Err          error
}

func (e *PolicyNotFoundError) Error() string {
	return fmt.Sprintf("visibility policy for %s could not be loaded: %v", e.Organization, e.Err)
}

func (e *PolicyNotFoundError) Unwrap() error { return e.Err }

// EnvironmentDetectionError reports that the organization's plan
// limitations could not be determined.
type EnvironmentDetectionError struct {
	Organization string
	Err          error
}

func (e *EnvironmentDetectionError) Error() string {
	return fmt.Sprintf("plan limitations for %s could not be determined: %v", e.Organization, e.Err)
}

func (e *EnvironmentDetectionError) Unwrap() error { return e.Err }

// PolicyViolationError reports a visibility the organization policy
// forbids. The caller asked for something the policy rules out.
type PolicyViolationError struct {
	Requested settings.Visibility
	Policy    Policy
	Source    DecisionSource
}

func (e *PolicyViolationError) Error() string {
	switch e.Policy.Kind {
	case PolicyRequired:
		return fmt.Sprintf("visibility %s (from %s) violates organization policy: all repositories must be %s",
			e.Requested, e.Source, e.Policy.Required)
	case PolicyRestricted:
		return fmt.Sprintf("visibility %s (from %s) violates organization policy: %s repositories are not permitted",
			e.Requested, e.Source, e.Requested)
	default:
		return fmt.Sprintf("visibility %s (from %s) violates organization policy", e.Requested, e.Source)
	}
}

// GitHubConstraintError reports a visibility the billing plan cannot
// create, regardless of organization policy.
type GitHubConstraintError struct {
	Requested settings.Visibility
	Plan      PlanLimitations
}

func (e *GitHubConstraintError) Error() string {
	if e.Requested == settings.VisibilityInternal && !e.Plan.IsEnterprise {
		return "internal repositories require a GitHub Enterprise plan"
	}
	return fmt.Sprintf("the organization's plan cannot create %s repositories", e.Requested)
}
