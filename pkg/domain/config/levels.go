package config

import "github.com/repoforge/repoforge/pkg/domain/settings"

// LevelSettings is the settings surface shared by the repository type,
// team, and template levels. Every field is optional; absent fields do
// not participate in merging.
type LevelSettings struct {
	Repository       *settings.Repository       `yaml:"repository,omitempty" json:"repository,omitempty"`
	PullRequests     *settings.PullRequests     `yaml:"pull_requests,omitempty" json:"pull_requests,omitempty"`
	BranchProtection *settings.BranchProtection `yaml:"branch_protection,omitempty" json:"branch_protection,omitempty"`
	Actions          *settings.Actions          `yaml:"actions,omitempty" json:"actions,omitempty"`
	Push             *settings.Push             `yaml:"push,omitempty" json:"push,omitempty"`

	Labels                []settings.Label                `yaml:"labels,omitempty" json:"labels,omitempty"`
	Webhooks              []settings.Webhook              `yaml:"webhooks,omitempty" json:"webhooks,omitempty"`
	Environments          []settings.Environment          `yaml:"environments,omitempty" json:"environments,omitempty"`
	GitHubApps            []settings.GitHubApp            `yaml:"github_apps,omitempty" json:"github_apps,omitempty"`
	CustomProperties      []settings.CustomProperty       `yaml:"custom_properties,omitempty" json:"custom_properties,omitempty"`
	Rulesets              []settings.Ruleset              `yaml:"rulesets,omitempty" json:"rulesets,omitempty"`
	NotificationEndpoints []settings.NotificationEndpoint `yaml:"notification_endpoints,omitempty" json:"notification_endpoints,omitempty"`
}

// TeamConfig is the team-level configuration document.
type TeamConfig struct {
	LevelSettings `yaml:",inline" json:",inline"`
}

// RepositoryTypeConfig is the repository-type-level configuration
// document.
type RepositoryTypeConfig struct {
	LevelSettings `yaml:",inline" json:",inline"`
}

// TemplateTypePolicy says how strongly a template binds to its
// repository type.
type TemplateTypePolicy string

const (
	// TypePolicyFixed forbids provisioning the template under any other
	// repository type.
	TypePolicyFixed TemplateTypePolicy = "fixed"
	// TypePolicyPreferable suggests a type but accepts a caller choice.
	TypePolicyPreferable TemplateTypePolicy = "preferable"
)

// IsValid checks if the policy is a recognized value.
func (p TemplateTypePolicy) IsValid() bool {
	return p == TypePolicyFixed || p == TypePolicyPreferable
}

// RepositoryTypeSpec declares the repository type a template belongs to.
type RepositoryTypeSpec struct {
	Type   string             `yaml:"type" json:"type"`
	Policy TemplateTypePolicy `yaml:"policy" json:"policy"`
}

// TemplateMetadata describes a template for catalogues and tooling.
type TemplateMetadata struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string   `yaml:"author,omitempty" json:"author,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// TemplateVariable declares a substitution variable a template accepts.
type TemplateVariable struct {
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Required    *bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Default     *string  `yaml:"default,omitempty" json:"default,omitempty"`
	Example     *string  `yaml:"example,omitempty" json:"example,omitempty"`
	Pattern     *string  `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	MinLength   *int     `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	MaxLength   *int     `yaml:"max_length,omitempty" json:"max_length,omitempty"`
	Options     []string `yaml:"options,omitempty" json:"options,omitempty"`
}

// TemplateConfig is the template-level configuration document, the
// highest precedence level.
type TemplateConfig struct {
	Template          TemplateMetadata            `yaml:"template" json:"template"`
	RepositoryType    *RepositoryTypeSpec         `yaml:"repository_type,omitempty" json:"repository_type,omitempty"`
	Variables         map[string]TemplateVariable `yaml:"variables,omitempty" json:"variables,omitempty"`
	DefaultVisibility *settings.Visibility        `yaml:"default_visibility,omitempty" json:"default_visibility,omitempty"`

	LevelSettings `yaml:",inline" json:",inline"`
}
