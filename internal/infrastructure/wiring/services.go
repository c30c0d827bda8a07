// Package wiring builds the application service graph from process
// settings.
package wiring

import (
	"context"
	"fmt"
	"path/filepath"

	appcfg "github.com/repoforge/repoforge/internal/infrastructure/config"
	ghinfra "github.com/repoforge/repoforge/internal/infrastructure/github"
	"github.com/repoforge/repoforge/internal/infrastructure/notify"
	"github.com/repoforge/repoforge/internal/infrastructure/policycache"
	"github.com/repoforge/repoforge/internal/infrastructure/storage"
	"github.com/repoforge/repoforge/pkg/application"
	"github.com/repoforge/repoforge/pkg/domain/config"
	"github.com/repoforge/repoforge/pkg/domain/visibility"
)

// AppServices exposes the application layer wired to its providers.
type AppServices struct {
	Settings      *appcfg.Settings
	Metadata      config.MetadataProvider
	Templates     config.TemplateStore
	SettingsSvc   *application.SettingsService
	VisibilitySvc *application.VisibilityService
	Notifications *application.NotificationService
	PolicyCache   *policycache.PolicyCache
	PlanCache     *policycache.PlanCache
}

// localPlanDetector stands in when commands run against a local
// metadata tree: plan limits cannot be read from disk, so the paid
// tier is assumed.
type localPlanDetector struct{}

func (localPlanDetector) PlanLimitations(ctx context.Context, org string) (visibility.PlanLimitations, error) {
	return visibility.PaidPlan(), nil
}

// BuildAppServices constructs the service graph. A configured metadata
// path wires the filesystem providers; otherwise everything reads from
// the GitHub API.
func BuildAppServices(ctx context.Context, s *appcfg.Settings) (*AppServices, error) {
	var (
		metadata  config.MetadataProvider
		templates config.TemplateStore
		plans     visibility.PlanDetector
	)

	if s.MetadataPath != "" {
		metadata = storage.NewFilesystemProvider(s.MetadataPath)
		templates = storage.NewFilesystemTemplateStore(s.MetadataPath)
		plans = localPlanDetector{}
	} else {
		client, err := ghinfra.NewClient(ctx, s.Token, s.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("building GitHub client: %w", err)
		}
		metadata = ghinfra.NewMetadataProvider(client, s.MetadataRepo)
		templates = ghinfra.NewTemplateStore(client)
		plans = ghinfra.NewPlanDetector(client)
	}

	policyCache := policycache.NewPolicyCache(ghinfra.NewPolicyProvider(metadata))
	planCache := policycache.NewPlanCache(plans)

	deadLetterPath := s.DeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = filepath.Join(".repoforge", "dead-letter.jsonl")
	}
	notifier := notify.NewNotifier(notify.NewDeadLetterStore(deadLetterPath))

	return &AppServices{
		Settings:      s,
		Metadata:      metadata,
		Templates:     templates,
		SettingsSvc:   application.NewSettingsService(metadata, templates),
		VisibilitySvc: application.NewVisibilityService(policyCache, planCache),
		Notifications: application.NewNotificationService(notifier),
		PolicyCache:   policyCache,
		PlanCache:     planCache,
	}, nil
}
