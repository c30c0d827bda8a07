package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/repoforge/repoforge/pkg/domain/config"
)

func TestFilesystemTemplateStore(t *testing.T) {
	root := writeTree(t, map[string]string{
		"templates/go-service/template.yaml": `
template:
  name: go-service
repository_type:
  type: service
  policy: preferable
default_visibility: private
`,
	})
	s := NewFilesystemTemplateStore(root)

	ok, err := s.TemplateExists(context.Background(), "acme", "go-service")
	if err != nil || !ok {
		t.Fatalf("TemplateExists: ok=%v err=%v", ok, err)
	}
	ok, err = s.TemplateExists(context.Background(), "acme", "missing")
	if err != nil || ok {
		t.Fatalf("missing template: ok=%v err=%v", ok, err)
	}

	cfg, err := s.LoadTemplateConfig(context.Background(), "acme", "go-service")
	if err != nil {
		t.Fatalf("LoadTemplateConfig: %v", err)
	}
	if cfg.Template.Name != "go-service" || cfg.RepositoryType.Policy != config.TypePolicyPreferable {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestFilesystemTemplateStoreMissingConfig(t *testing.T) {
	root := writeTree(t, map[string]string{
		"templates/go-service/README.md": "scaffold\n",
	})
	s := NewFilesystemTemplateStore(root)
	_, err := s.LoadTemplateConfig(context.Background(), "acme", "go-service")
	var nf *config.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *config.NotFoundError", err)
	}
}
