// Package config loads process configuration from a YAML file and the
// environment. Environment variables win over file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds everything the CLI needs to reach GitHub and the
// metadata repository.
type Settings struct {
	// Token authenticates against the GitHub API.
	Token string `yaml:"token"`
	// BaseURL targets a GitHub Enterprise Server; empty means
	// github.com.
	BaseURL string `yaml:"base_url"`
	// Organization is the default organization for commands.
	Organization string `yaml:"organization"`
	// MetadataRepo names the metadata repository; empty uses the
	// <org>-config convention.
	MetadataRepo string `yaml:"metadata_repo"`
	// MetadataPath points at a local metadata tree. When set, commands
	// read configuration from disk instead of the GitHub API.
	MetadataPath string `yaml:"metadata_path"`
	// DeadLetterPath is where failed notification deliveries are
	// recorded.
	DeadLetterPath string `yaml:"dead_letter_path"`
}

// DefaultPath is the conventional settings file location.
const DefaultPath = ".repoforge.yaml"

// Load reads settings from the given file, then applies environment
// overrides. A missing file yields environment-only settings.
func Load(path string) (*Settings, error) {
	s := &Settings{}
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings file %s: %w", path, err)
	}
	applyEnv(s)
	return s, nil
}

func applyEnv(s *Settings) {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		s.Token = v
	}
	if v := os.Getenv("GITHUB_BASE_URL"); v != "" {
		s.BaseURL = v
	}
	if v := os.Getenv("REPOFORGE_ORG"); v != "" {
		s.Organization = v
	}
	if v := os.Getenv("REPOFORGE_METADATA_REPO"); v != "" {
		s.MetadataRepo = v
	}
	if v := os.Getenv("REPOFORGE_METADATA_PATH"); v != "" {
		s.MetadataPath = v
	}
	if v := os.Getenv("REPOFORGE_DEAD_LETTER_PATH"); v != "" {
		s.DeadLetterPath = v
	}
}
