// Package application orchestrates the domain: it wires metadata
// providers, template stores, and resolvers into the operations the
// CLI exposes.
package application

import (
	"context"
	"fmt"

	"github.com/repoforge/repoforge/pkg/domain/config"
	"github.com/repoforge/repoforge/pkg/domain/repotype"
	"github.com/repoforge/repoforge/pkg/domain/settings"
	"github.com/repoforge/repoforge/pkg/domain/visibility"
)

// SettingsService resolves the effective configuration for a
// repository across all four levels.
type SettingsService struct {
	metadata  config.MetadataProvider
	templates config.TemplateStore
	validator *repotype.Validator
	merger    *config.Merger
}

// NewSettingsService creates the settings orchestrator.
func NewSettingsService(metadata config.MetadataProvider, templates config.TemplateStore) *SettingsService {
	return &SettingsService{
		metadata:  metadata,
		templates: templates,
		validator: repotype.NewValidator(metadata),
		merger:    config.NewMerger(),
	}
}

// ResolveRequest names the template to resolve settings for and the
// optional team and repository type that scope it.
type ResolveRequest struct {
	Organization   string
	Template       string
	Team           string
	RepositoryType string
}

// Resolution bundles the merged configuration with what was resolved
// along the way.
type Resolution struct {
	Merged *config.MergedConfiguration
	// EffectiveType is the repository type that applied, empty when no
	// type level participated.
	EffectiveType repotype.Name
	// Template is the loaded template config.
	Template *config.TemplateConfig
}

// Resolve loads every level that applies and merges them. The
// template's repository type declaration is honored before the type
// level is loaded, so a fixed template type cannot be sidestepped by
// the caller.
func (s *SettingsService) Resolve(ctx context.Context, req ResolveRequest) (*Resolution, error) {
	rctx, err := config.NewContext(req.Organization, req.Template)
	if err != nil {
		return nil, err
	}

	global, err := s.metadata.LoadGlobalDefaults(ctx, req.Organization)
	if err != nil {
		return nil, fmt.Errorf("loading global defaults: %w", err)
	}

	exists, err := s.templates.TemplateExists(ctx, req.Organization, req.Template)
	if err != nil {
		return nil, fmt.Errorf("checking template %s: %w", req.Template, err)
	}
	if !exists {
		return nil, &config.NotFoundError{Kind: "template", Name: req.Template}
	}
	tmpl, err := s.templates.LoadTemplateConfig(ctx, req.Organization, req.Template)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", req.Template, err)
	}

	effectiveType, err := s.validator.ResolveEffectiveType(ctx, req.Organization, tmpl.RepositoryType, req.RepositoryType)
	if err != nil {
		return nil, err
	}

	var typeCfg *config.RepositoryTypeConfig
	if effectiveType != "" {
		typeCfg, err = s.metadata.LoadRepositoryTypeConfig(ctx, req.Organization, effectiveType.String())
		if err != nil {
			return nil, fmt.Errorf("loading repository type config %s: %w", effectiveType, err)
		}
		rctx = rctx.WithRepositoryType(effectiveType.String())
	}

	var teamCfg *config.TeamConfig
	if req.Team != "" {
		teamCfg, err = s.metadata.LoadTeamConfig(ctx, req.Organization, req.Team)
		if err != nil {
			return nil, fmt.Errorf("loading team config %s: %w", req.Team, err)
		}
		rctx = rctx.WithTeam(req.Team)
	}

	merged, err := s.merger.Merge(rctx, global, typeCfg, teamCfg, tmpl)
	if err != nil {
		return nil, err
	}
	return &Resolution{Merged: merged, EffectiveType: effectiveType, Template: tmpl}, nil
}

// ListRepositoryTypes returns the organization's type catalogue.
func (s *SettingsService) ListRepositoryTypes(ctx context.Context, org string) ([]string, error) {
	return s.metadata.ListRepositoryTypes(ctx, org)
}

// ValidateRepositoryType checks a name against format rules and the
// organization catalogue.
func (s *SettingsService) ValidateRepositoryType(ctx context.Context, org, name string) (repotype.Name, error) {
	return s.validator.Validate(ctx, org, name)
}

// TemplateDefaultVisibility extracts the template's suggested
// visibility from a resolution, nil when absent.
func TemplateDefaultVisibility(res *Resolution) *settings.Visibility {
	if res == nil || res.Template == nil {
		return nil
	}
	return res.Template.DefaultVisibility
}

// VisibilityService decides repository visibility for provisioning
// requests.
type VisibilityService struct {
	resolver *visibility.Resolver
}

// NewVisibilityService creates the visibility orchestrator.
func NewVisibilityService(policies visibility.PolicyProvider, plans visibility.PlanDetector) *VisibilityService {
	return &VisibilityService{resolver: visibility.NewResolver(policies, plans)}
}

// Decide resolves the visibility for one repository.
func (s *VisibilityService) Decide(ctx context.Context, org string, preference, templateDefault *settings.Visibility) (visibility.Resolution, error) {
	return s.resolver.Resolve(ctx, visibility.Request{
		Organization:    org,
		UserPreference:  preference,
		TemplateDefault: templateDefault,
	})
}
