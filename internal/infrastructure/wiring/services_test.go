package wiring

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	appcfg "github.com/repoforge/repoforge/internal/infrastructure/config"
	"github.com/repoforge/repoforge/pkg/application"
)

func TestBuildAppServicesLocalMode(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "global"), 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	doc := "repository:\n  issues: true\n"
	if err := os.WriteFile(filepath.Join(root, "global", "defaults.yaml"), []byte(doc), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "templates", "bare"), 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	tmpl := "template:\n  name: bare\n"
	if err := os.WriteFile(filepath.Join(root, "templates", "bare", "template.yaml"), []byte(tmpl), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	svcs, err := BuildAppServices(context.Background(), &appcfg.Settings{MetadataPath: root})
	if err != nil {
		t.Fatalf("BuildAppServices: %v", err)
	}
	if svcs.SettingsSvc == nil || svcs.VisibilitySvc == nil || svcs.Notifications == nil {
		t.Fatal("services not wired")
	}

	res, err := svcs.SettingsSvc.Resolve(context.Background(), application.ResolveRequest{
		Organization: "acme",
		Template:     "bare",
	})
	if err != nil {
		t.Fatalf("Resolve through wired services: %v", err)
	}
	if res.Merged.Repository.Issues == nil || !*res.Merged.Repository.Issues {
		t.Errorf("issues = %v", res.Merged.Repository.Issues)
	}
}

func TestBuildAppServicesGitHubModeRequiresToken(t *testing.T) {
	if _, err := BuildAppServices(context.Background(), &appcfg.Settings{}); err == nil {
		t.Fatal("missing token accepted")
	}
}

func TestBuildAppServicesGitHubMode(t *testing.T) {
	svcs, err := BuildAppServices(context.Background(), &appcfg.Settings{Token: "ghp_test"})
	if err != nil {
		t.Fatalf("BuildAppServices: %v", err)
	}
	if svcs.PolicyCache == nil || svcs.PlanCache == nil {
		t.Fatal("caches not wired")
	}
}
