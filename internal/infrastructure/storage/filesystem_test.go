package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/repoforge/repoforge/pkg/domain/config"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func TestFilesystemLoadGlobalDefaults(t *testing.T) {
	root := writeTree(t, map[string]string{
		"global/defaults.yaml": `
repository:
  wiki:
    value: false
    override_allowed: false
labels:
  - name: bug
    color: d73a4a
`,
	})
	p := NewFilesystemProvider(root)

	defaults, err := p.LoadGlobalDefaults(context.Background(), "acme")
	if err != nil {
		t.Fatalf("LoadGlobalDefaults: %v", err)
	}
	if defaults.Repository == nil || defaults.Repository.Wiki == nil || defaults.Repository.Wiki.OverrideAllowed {
		t.Errorf("wiki = %+v", defaults.Repository)
	}
	if len(defaults.Labels) != 1 {
		t.Errorf("labels = %+v", defaults.Labels)
	}
}

func TestFilesystemMissingGlobalDefaults(t *testing.T) {
	p := NewFilesystemProvider(t.TempDir())
	_, err := p.LoadGlobalDefaults(context.Background(), "acme")
	var nf *config.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *config.NotFoundError", err)
	}
}

func TestFilesystemMissingLevelsReturnNil(t *testing.T) {
	p := NewFilesystemProvider(t.TempDir())

	team, err := p.LoadTeamConfig(context.Background(), "acme", "platform")
	if err != nil || team != nil {
		t.Errorf("team = %+v, err = %v, want nil, nil", team, err)
	}
	repoType, err := p.LoadRepositoryTypeConfig(context.Background(), "acme", "library")
	if err != nil || repoType != nil {
		t.Errorf("type = %+v, err = %v, want nil, nil", repoType, err)
	}
}

func TestFilesystemLoadTeamConfig(t *testing.T) {
	root := writeTree(t, map[string]string{
		"teams/platform/config.yaml": `
pull_requests:
  required_approving_review_count: 3
notification_endpoints:
  - url: https://hooks.example.com/platform
    events: [repository.created]
`,
	})
	p := NewFilesystemProvider(root)

	cfg, err := p.LoadTeamConfig(context.Background(), "acme", "platform")
	if err != nil {
		t.Fatalf("LoadTeamConfig: %v", err)
	}
	if cfg.PullRequests == nil || *cfg.PullRequests.RequiredApprovingReviewCount != 3 {
		t.Errorf("pull requests = %+v", cfg.PullRequests)
	}
	if len(cfg.NotificationEndpoints) != 1 {
		t.Errorf("endpoints = %+v", cfg.NotificationEndpoints)
	}
}

func TestFilesystemRejectsInvalidDocument(t *testing.T) {
	root := writeTree(t, map[string]string{
		"teams/platform/config.yaml": "labels:\n  - name: bug\n",
	})
	p := NewFilesystemProvider(root)
	if _, err := p.LoadTeamConfig(context.Background(), "acme", "platform"); err == nil {
		t.Fatal("label without color accepted")
	}
}

func TestFilesystemListRepositoryTypes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"types/service/config.yaml": "{}\n",
		"types/library/config.yaml": "{}\n",
	})
	p := NewFilesystemProvider(root)

	types, err := p.ListRepositoryTypes(context.Background(), "acme")
	if err != nil {
		t.Fatalf("ListRepositoryTypes: %v", err)
	}
	if len(types) != 2 || types[0] != "library" || types[1] != "service" {
		t.Errorf("types = %v, want sorted [library service]", types)
	}
}

func TestFilesystemListRepositoryTypesAbsentDir(t *testing.T) {
	p := NewFilesystemProvider(t.TempDir())
	types, err := p.ListRepositoryTypes(context.Background(), "acme")
	if err != nil {
		t.Fatalf("ListRepositoryTypes: %v", err)
	}
	if types != nil {
		t.Errorf("types = %v, want none", types)
	}
}

func TestFilesystemPathTraversalRejected(t *testing.T) {
	p := NewFilesystemProvider(t.TempDir())
	if _, err := p.LoadTeamConfig(context.Background(), "acme", "../../etc"); err == nil {
		t.Fatal("path traversal accepted")
	}
}
