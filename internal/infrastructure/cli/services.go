package cli

import (
	"context"
	"fmt"

	appcfg "github.com/repoforge/repoforge/internal/infrastructure/config"
	"github.com/repoforge/repoforge/internal/infrastructure/wiring"
)

func loadServices(ctx context.Context) (*wiring.AppServices, error) {
	settings, err := appcfg.Load(settingsPath)
	if err != nil {
		return nil, err
	}
	if orgFlag != "" {
		settings.Organization = orgFlag
	}
	services, err := wiring.BuildAppServices(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to build services: %w", err)
	}
	return services, nil
}

func requireOrg(services *wiring.AppServices) (string, error) {
	if services.Settings.Organization == "" {
		return "", fmt.Errorf("no organization configured; pass --org or set REPOFORGE_ORG")
	}
	return services.Settings.Organization, nil
}
