package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"

	"github.com/repoforge/repoforge/internal/infrastructure/schema"
	"github.com/repoforge/repoforge/pkg/domain/config"
)

const (
	TemplatesDir       = "templates"
	TemplateConfigFile = "template.yaml"
)

// FilesystemTemplateStore loads template configuration from a local
// templates/ tree, mirroring the template repository layout for
// offline validation.
type FilesystemTemplateStore struct {
	root        string
	retryConfig retry.Config
}

// NewFilesystemTemplateStore creates a store rooted at a metadata
// tree.
func NewFilesystemTemplateStore(root string) *FilesystemTemplateStore {
	return &FilesystemTemplateStore{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// TemplateExists reports whether the template directory is present.
func (s *FilesystemTemplateStore) TemplateExists(ctx context.Context, org, template string) (bool, error) {
	info, err := os.Stat(filepath.Join(s.root, TemplatesDir, template))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking template %s: %w", template, err)
	}
	return info.IsDir(), nil
}

// LoadTemplateConfig loads templates/<name>/template.yaml.
func (s *FilesystemTemplateStore) LoadTemplateConfig(ctx context.Context, org, template string) (*config.TemplateConfig, error) {
	path := filepath.Join(s.root, TemplatesDir, template, TemplateConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &config.NotFoundError{Kind: "template config", Name: template}
	}
	retryer := retry.New[[]byte](s.retryConfig)
	data, err := retryer.Do(ctx, func(ctx context.Context) ([]byte, error) {
		// #nosec G304 -- Path is built from the store root and template name
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template config for %s: %w", template, err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(schema.KindTemplateConfig, data); err != nil {
		return nil, err
	}
	var cfg config.TemplateConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template config for %s: %w", template, err)
	}
	return &cfg, nil
}
