package config

import "context"

// MetadataProvider loads configuration documents from an organization's
// metadata repository. Implementations fetch from GitHub or a local
// filesystem tree with the same layout.
type MetadataProvider interface {
	// DiscoverMetadataRepository returns the name of the repository that
	// holds the organization's configuration.
	DiscoverMetadataRepository(ctx context.Context, org string) (string, error)
	// LoadGlobalDefaults loads the organization baseline.
	LoadGlobalDefaults(ctx context.Context, org string) (*GlobalDefaults, error)
	// LoadTeamConfig loads a team's configuration. A missing document
	// returns (nil, nil); the team level simply does not contribute.
	LoadTeamConfig(ctx context.Context, org, team string) (*TeamConfig, error)
	// LoadRepositoryTypeConfig loads a repository type's configuration.
	// A missing document returns (nil, nil).
	LoadRepositoryTypeConfig(ctx context.Context, org, repoType string) (*RepositoryTypeConfig, error)
	// ListRepositoryTypes returns the names of all repository types the
	// organization defines.
	ListRepositoryTypes(ctx context.Context, org string) ([]string, error)
}

// TemplateStore loads template-level configuration.
type TemplateStore interface {
	// LoadTemplateConfig loads the configuration embedded in a template
	// repository.
	LoadTemplateConfig(ctx context.Context, org, template string) (*TemplateConfig, error)
	// TemplateExists reports whether the template repository exists.
	// A confirmed absence is (false, nil); errors mean the answer is
	// unknown.
	TemplateExists(ctx context.Context, org, template string) (bool, error)
}
