package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v69/github"
	"gopkg.in/yaml.v3"

	"github.com/repoforge/repoforge/internal/infrastructure/schema"
	"github.com/repoforge/repoforge/pkg/domain/config"
)

// TemplateConfigPath is where a template repository declares its
// configuration.
const TemplateConfigPath = ".repoforge/template.yaml"

// TemplateStore loads template configuration from template
// repositories on GitHub.
type TemplateStore struct {
	client *github.Client
}

// NewTemplateStore creates a template store.
func NewTemplateStore(client *github.Client) *TemplateStore {
	return &TemplateStore{client: client}
}

// TemplateExists reports whether the template repository exists. Only
// a confirmed 404 yields (false, nil); transport failures surface as
// errors so callers do not mistake an outage for absence.
func (s *TemplateStore) TemplateExists(ctx context.Context, org, template string) (bool, error) {
	_, _, err := s.client.Repositories.Get(ctx, org, template)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking template %s/%s: %w", org, template, err)
	}
	return true, nil
}

// LoadTemplateConfig loads the template's embedded configuration. A
// template repository without the config file is an error: templates
// must declare at least their metadata.
func (s *TemplateStore) LoadTemplateConfig(ctx context.Context, org, template string) (*config.TemplateConfig, error) {
	content, _, _, err := s.client.Repositories.GetContents(ctx, org, template, TemplateConfigPath, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, &config.NotFoundError{Kind: "template config", Name: org + "/" + template}
		}
		return nil, fmt.Errorf("fetching %s from %s/%s: %w", TemplateConfigPath, org, template, err)
	}
	if content == nil {
		return nil, fmt.Errorf("%s in %s/%s is a directory, expected a file", TemplateConfigPath, org, template)
	}
	raw, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding %s from %s/%s: %w", TemplateConfigPath, org, template, err)
	}
	if err := schema.Validate(schema.KindTemplateConfig, []byte(raw)); err != nil {
		return nil, err
	}
	var cfg config.TemplateConfig
	if err := yaml.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("decoding template config for %s/%s: %w", org, template, err)
	}
	return &cfg, nil
}
