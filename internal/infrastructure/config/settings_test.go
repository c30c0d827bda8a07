package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s == nil {
		t.Fatal("settings should default, not be nil")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".repoforge.yaml")
	doc := "token: file-token\norganization: acme\nmetadata_repo: platform-config\n"
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("REPOFORGE_ORG", "")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Token != "env-token" {
		t.Errorf("token = %q, environment must win", s.Token)
	}
	if s.Organization != "acme" {
		t.Errorf("organization = %q, file value must survive empty env", s.Organization)
	}
	if s.MetadataRepo != "platform-config" {
		t.Errorf("metadata repo = %q", s.MetadataRepo)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".repoforge.yaml")
	if err := os.WriteFile(path, []byte("token: [unclosed"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed file accepted")
	}
}
