// Package storage implements the metadata provider against a local
// directory tree with the same layout as a metadata repository, used
// for offline validation and tests of organization configuration.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"

	"github.com/repoforge/repoforge/internal/infrastructure/schema"
	"github.com/repoforge/repoforge/pkg/domain/config"
)

const (
	GlobalDefaultsFile = "global/defaults.yaml"
	TeamsDir           = "teams"
	TypesDir           = "types"
	LevelConfigFile    = "config.yaml"
)

// FilesystemProvider reads configuration documents from a checked-out
// metadata repository on disk.
type FilesystemProvider struct {
	root        string
	retryConfig retry.Config
}

// NewFilesystemProvider creates a provider rooted at a local metadata
// tree.
func NewFilesystemProvider(root string) *FilesystemProvider {
	return &FilesystemProvider{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// resolvePath confines relative paths to the metadata root.
func (p *FilesystemProvider) resolvePath(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	full := filepath.Clean(filepath.Join(p.root, filepath.FromSlash(rel)))
	if !strings.HasPrefix(full, filepath.Clean(p.root)+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid path: %s", rel)
	}
	return full, nil
}

// readFile loads one document with retry. Missing files return
// (nil, nil) so callers can distinguish absence from failure.
func (p *FilesystemProvider) readFile(ctx context.Context, rel string) ([]byte, error) {
	path, err := p.resolvePath(rel)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	retryer := retry.New[[]byte](p.retryConfig)
	return retryer.Do(ctx, func(ctx context.Context) ([]byte, error) {
		// #nosec G304 -- Path is resolved and validated via resolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", rel, err)
		}
		return data, nil
	})
}

// DiscoverMetadataRepository returns the root directory name; on disk
// the tree is already located.
func (p *FilesystemProvider) DiscoverMetadataRepository(ctx context.Context, org string) (string, error) {
	if _, err := os.Stat(p.root); err != nil {
		return "", fmt.Errorf("metadata root %s: %w", p.root, err)
	}
	return filepath.Base(p.root), nil
}

// LoadGlobalDefaults loads the organization baseline from disk.
func (p *FilesystemProvider) LoadGlobalDefaults(ctx context.Context, org string) (*config.GlobalDefaults, error) {
	data, err := p.readFile(ctx, GlobalDefaultsFile)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, &config.NotFoundError{Kind: "global defaults", Name: GlobalDefaultsFile}
	}
	if err := schema.Validate(schema.KindGlobalDefaults, data); err != nil {
		return nil, err
	}
	var defaults config.GlobalDefaults
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("failed to unmarshal global defaults: %w", err)
	}
	return &defaults, nil
}

// LoadTeamConfig loads a team document; a missing file means the team
// level does not contribute.
func (p *FilesystemProvider) LoadTeamConfig(ctx context.Context, org, team string) (*config.TeamConfig, error) {
	data, err := p.readFile(ctx, TeamsDir+"/"+team+"/"+LevelConfigFile)
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
		return nil, fmt.Errorf("failed to unmarshal team config for %s: %w", team, err)
	}
	return &cfg, nil
}

// LoadRepositoryTypeConfig loads a type document; a missing file means
// the type level does not contribute.
func (p *FilesystemProvider) LoadRepositoryTypeConfig(ctx context.Context, org, repoType string) (*config.RepositoryTypeConfig, error) {
	data, err := p.readFile(ctx, TypesDir+"/"+repoType+"/"+LevelConfigFile)
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
		return nil, fmt.Errorf("failed to unmarshal repository type config for %s: %w", repoType, err)
	}
	return &cfg, nil
}

// ListRepositoryTypes lists the subdirectories of types/, sorted for
// stable output.
func (p *FilesystemProvider) ListRepositoryTypes(ctx context.Context, org string) ([]string, error) {
	dir, err := p.resolvePath(TypesDir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list repository types: %w", err)
	}
	var types []string
	for _, e := range entries {
		if e.IsDir() {
			types = append(types, e.Name())
		}
	}
	sort.Strings(types)
	return types, nil
}
