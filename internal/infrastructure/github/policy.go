package github

import (
	"context"

	"github.com/repoforge/repoforge/pkg/domain/config"
	"github.com/repoforge/repoforge/pkg/domain/visibility"
)

// PolicyProvider extracts the organization visibility policy from
// global defaults.
type PolicyProvider struct {
	metadata config.MetadataProvider
}

// NewPolicyProvider creates a policy provider backed by a metadata
// provider.
func NewPolicyProvider(metadata config.MetadataProvider) *PolicyProvider {
	return &PolicyProvider{metadata: metadata}
}

// OrganizationPolicy loads global defaults and parses the visibility
// policy section. Organizations without a declared policy are
// unrestricted.
func (p *PolicyProvider) OrganizationPolicy(ctx context.Context, org string) (visibility.Policy, error) {
	defaults, err := p.metadata.LoadGlobalDefaults(ctx, org)
	if err != nil {
		return visibility.Policy{}, err
	}
	return visibility.ParsePolicy(defaults.RepositoryVisibility), nil
}
