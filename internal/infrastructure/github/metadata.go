package github

import (
	"context"
	"fmt"
	"path"

	"github.com/google/go-github/v69/github"
	"gopkg.in/yaml.v3"

	"github.com/repoforge/repoforge/internal/infrastructure/schema"
	"github.com/repoforge/repoforge/pkg/domain/config"
)

// Metadata repository layout.
const (
	GlobalDefaultsPath = "global/defaults.yaml"
	TeamsDir           = "teams"
	TypesDir           = "types"
	LevelConfigFile    = "config.yaml"
)

// MetadataProvider reads configuration documents from an
// organization's metadata repository on GitHub.
type MetadataProvider struct {
	client *github.Client
	// repoName is the configured metadata repository name. Empty means
	// discover by the <org>-config convention.
	repoName string
}

// NewMetadataProvider creates a provider. repoName may be empty to use
// convention-based discovery.
func NewMetadataProvider(client *github.Client, repoName string) *MetadataProvider {
	return &MetadataProvider{client: client, repoName: repoName}
}

// DiscoverMetadataRepository returns the metadata repository name. A
// configured name is trusted as-is; otherwise the <org>-config
// convention is probed.
func (p *MetadataProvider) DiscoverMetadataRepository(ctx context.Context, org string) (string, error) {
	if p.repoName != "" {
		return p.repoName, nil
	}
	candidate := org + "-config"
	_, _, err := p.client.Repositories.Get(ctx, org, candidate)
	if err != nil {
		if isNotFound(err) {
			return "", &config.NotFoundError{Kind: "metadata repository", Name: candidate}
		}
		return "", fmt.Errorf("probing metadata repository %s/%s: %w", org, candidate, err)
	}
	return candidate, nil
}

// fetchFile downloads one file from the metadata repository. A missing
// file returns (nil, nil).
func (p *MetadataProvider) fetchFile(ctx context.Context, org, filePath string) ([]byte, error) {
	repo, err := p.DiscoverMetadataRepository(ctx, org)
	if err != nil {
		return nil, err
	}
	content, _, _, err := p.client.Repositories.GetContents(ctx, org, repo, filePath, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching %s from %s/%s: %w", filePath, org, repo, err)
	}
	if content == nil {
		return nil, fmt.Errorf("%s in %s/%s is a directory, expected a file", filePath, org, repo)
	}
	raw, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding %s from %s/%s: %w", filePath, org, repo, err)
	}
	return []byte(raw), nil
}

// LoadGlobalDefaults loads the organization baseline. A missing global
// defaults file is an error: the hierarchy has no floor without it.
func (p *MetadataProvider) LoadGlobalDefaults(ctx context.Context, org string) (*config.GlobalDefaults, error) {
	data, err := p.fetchFile(ctx, org, GlobalDefaultsPath)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, &config.NotFoundError{Kind: "global defaults", Name: GlobalDefaultsPath}
	}
	if err := schema.Validate(schema.KindGlobalDefaults, data); err != nil {
		return nil, err
	}
	var defaults config.GlobalDefaults
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("decoding global defaults: %w", err)
	}
	return &defaults, nil
}

// LoadTeamConfig loads a team's configuration. Missing documents mean
// the team level does not contribute.
func (p *MetadataProvider) LoadTeamConfig(ctx context.Context, org, team string) (*config.TeamConfig, error) {
	data, err := p.fetchFile(ctx, org, path.Join(TeamsDir, team, LevelConfigFile))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	if err := schema.Validate(schema.KindTeamConfig, data); err != nil {
		return nil, err
	}
	var cfg config.TeamConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding team config for %s: %w", team, err)
	}
	return &cfg, nil
}

// LoadRepositoryTypeConfig loads a repository type's configuration.
// Missing documents mean the type level does not contribute.
func (p *MetadataProvider) LoadRepositoryTypeConfig(ctx context.Context, org, repoType string) (*config.RepositoryTypeConfig, error) {
	data, err := p.fetchFile(ctx, org, path.Join(TypesDir, repoType, LevelConfigFile))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	if err := schema.Validate(schema.KindTypeConfig, data); err != nil {
		return nil, err
	}
	var cfg config.RepositoryTypeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding repository type config for %s: %w", repoType, err)
	}
	return &cfg, nil
}

// ListRepositoryTypes returns the type names defined under types/. An
// absent directory means the organization defines no types.
func (p *MetadataProvider) ListRepositoryTypes(ctx context.Context, org string) ([]string, error) {
	repo, err := p.DiscoverMetadataRepository(ctx, org)
	if err != nil {
		return nil, err
	}
	_, entries, _, err := p.client.Repositories.GetContents(ctx, org, repo, TypesDir, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s in %s/%s: %w", TypesDir, org, repo, err)
	}
	var types []string
	for _, e := range entries {
		if e.GetType() == "dir" {
			types = append(types, e.GetName())
		}
	}
	return types, nil
}
