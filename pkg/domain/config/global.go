package config

import "github.com/repoforge/repoforge/pkg/domain/settings"

// GlobalDefaults is the organization-wide baseline, the lowest
// precedence level. Scalar fields carry an override policy; collection
// fields are additive and never conflict.
type GlobalDefaults struct {
	Repository       *GlobalRepository       `yaml:"repository,omitempty" json:"repository,omitempty"`
	PullRequests     *GlobalPullRequests     `yaml:"pull_requests,omitempty" json:"pull_requests,omitempty"`
	BranchProtection *GlobalBranchProtection `yaml:"branch_protection,omitempty" json:"branch_protection,omitempty"`
	Actions          *GlobalActions          `yaml:"actions,omitempty" json:"actions,omitempty"`
	Push             *GlobalPush             `yaml:"push,omitempty" json:"push,omitempty"`

	RepositoryVisibility *VisibilityPolicyConfig `yaml:"repository_visibility,omitempty" json:"repository_visibility,omitempty"`

	Labels                []settings.Label                `yaml:"labels,omitempty" json:"labels,omitempty"`
	Webhooks              []settings.Webhook              `yaml:"webhooks,omitempty" json:"webhooks,omitempty"`
	Environments          []settings.Environment          `yaml:"environments,omitempty" json:"environments,omitempty"`
	GitHubApps            []settings.GitHubApp            `yaml:"github_apps,omitempty" json:"github_apps,omitempty"`
	CustomProperties      []settings.CustomProperty       `yaml:"custom_properties,omitempty" json:"custom_properties,omitempty"`
	Rulesets              []settings.Ruleset              `yaml:"rulesets,omitempty" json:"rulesets,omitempty"`
	NotificationEndpoints []settings.NotificationEndpoint `yaml:"notification_endpoints,omitempty" json:"notification_endpoints,omitempty"`
}

// VisibilityPolicyConfig is the serialized form of the organization
// visibility policy inside global defaults.
type VisibilityPolicyConfig struct {
	EnforcementLevel       string                `yaml:"enforcement_level" json:"enforcement_level"`
	RequiredVisibility     *settings.Visibility  `yaml:"required_visibility,omitempty" json:"required_visibility,omitempty"`
	RestrictedVisibilities []settings.Visibility `yaml:"restricted_visibilities,omitempty" json:"restricted_visibilities,omitempty"`
}

// GlobalRepository mirrors settings.Repository with per-field override
// policy attached.
type GlobalRepository struct {
	Issues                 *Overridable[bool] `yaml:"issues,omitempty" json:"issues,omitempty"`
	Projects               *Overridable[bool] `yaml:"projects,omitempty" json:"projects,omitempty"`
	Discussions            *Overridable[bool] `yaml:"discussions,omitempty" json:"discussions,omitempty"`
	Wiki                   *Overridable[bool] `yaml:"wiki,omitempty" json:"wiki,omitempty"`
	Pages                  *Overridable[bool] `yaml:"pages,omitempty" json:"pages,omitempty"`
	SecurityAdvisories     *Overridable[bool] `yaml:"security_advisories,omitempty" json:"security_advisories,omitempty"`
	VulnerabilityReporting *Overridable[bool] `yaml:"vulnerability_reporting,omitempty" json:"vulnerability_reporting,omitempty"`
	AutoCloseIssues        *Overridable[bool] `yaml:"auto_close_issues,omitempty" json:"auto_close_issues,omitempty"`
}

// GlobalPullRequests mirrors settings.PullRequests with override policy.
type GlobalPullRequests struct {
	AllowMergeCommit              *Overridable[bool]   `yaml:"allow_merge_commit,omitempty" json:"allow_merge_commit,omitempty"`
	AllowSquashMerge              *Overridable[bool]   `yaml:"allow_squash_merge,omitempty" json:"allow_squash_merge,omitempty"`
	AllowRebaseMerge              *Overridable[bool]   `yaml:"allow_rebase_merge,omitempty" json:"allow_rebase_merge,omitempty"`
	DeleteBranchOnMerge           *Overridable[bool]   `yaml:"delete_branch_on_merge,omitempty" json:"delete_branch_on_merge,omitempty"`
	RequiredApprovingReviewCount  *Overridable[int]    `yaml:"required_approving_review_count,omitempty" json:"required_approving_review_count,omitempty"`
	RequireCodeOwnerReviews       *Overridable[bool]   `yaml:"require_code_owner_reviews,omitempty" json:"require_code_owner_reviews,omitempty"`
	RequireConversationResolution *Overridable[bool]   `yaml:"require_conversation_resolution,omitempty" json:"require_conversation_resolution,omitempty"`
	AllowAutoMerge                *Overridable[bool]   `yaml:"allow_auto_merge,omitempty" json:"allow_auto_merge,omitempty"`
	MergeCommitTitle              *Overridable[string] `yaml:"merge_commit_title,omitempty" json:"merge_commit_title,omitempty"`
	MergeCommitMessage            *Overridable[string] `yaml:"merge_commit_message,omitempty" json:"merge_commit_message,omitempty"`
	SquashMergeCommitTitle        *Overridable[string] `yaml:"squash_merge_commit_title,omitempty" json:"squash_merge_commit_title,omitempty"`
	SquashMergeCommitMessage      *Overridable[string] `yaml:"squash_merge_commit_message,omitempty" json:"squash_merge_commit_message,omitempty"`
}

// GlobalBranchProtection mirrors settings.BranchProtection with
// override policy. The status check list is a scalar for merge
// purposes: the highest level that declares it wins wholesale.
type GlobalBranchProtection struct {
	DefaultBranch                *Overridable[string]   `yaml:"default_branch,omitempty" json:"default_branch,omitempty"`
	RequirePullRequestReviews    *Overridable[bool]     `yaml:"require_pull_request_reviews,omitempty" json:"require_pull_request_reviews,omitempty"`
	RequiredApprovingReviewCount *Overridable[int]      `yaml:"required_approving_review_count,omitempty" json:"required_approving_review_count,omitempty"`
	DismissStaleReviews          *Overridable[bool]     `yaml:"dismiss_stale_reviews,omitempty" json:"dismiss_stale_reviews,omitempty"`
	RequireCodeOwnerReviews      *Overridable[bool]     `yaml:"require_code_owner_reviews,omitempty" json:"require_code_owner_reviews,omitempty"`
	RequireStatusChecks          *Overridable[bool]     `yaml:"require_status_checks,omitempty" json:"require_status_checks,omitempty"`
	RequiredStatusChecks         *Overridable[[]string] `yaml:"required_status_checks_list,omitempty" json:"required_status_checks_list,omitempty"`
	StrictRequiredStatusChecks   *Overridable[bool]     `yaml:"strict_required_status_checks,omitempty" json:"strict_required_status_checks,omitempty"`
	RestrictPushes               *Overridable[bool]     `yaml:"restrict_pushes,omitempty" json:"restrict_pushes,omitempty"`
	AllowForcePushes             *Overridable[bool]     `yaml:"allow_force_pushes,omitempty" json:"allow_force_pushes,omitempty"`
	AllowDeletions               *Overridable[bool]     `yaml:"allow_deletions,omitempty" json:"allow_deletions,omitempty"`
	AdditionalProtectedPatterns  *Overridable[[]string] `yaml:"additional_protected_patterns,omitempty" json:"additional_protected_patterns,omitempty"`
}

// GlobalActions mirrors settings.Actions with override policy.
type GlobalActions struct {
	Enabled            *Overridable[bool]     `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	AllowedActions     *Overridable[string]   `yaml:"allowed_actions,omitempty" json:"allowed_actions,omitempty"`
	GitHubOwnedAllowed *Overridable[bool]     `yaml:"github_owned_allowed,omitempty" json:"github_owned_allowed,omitempty"`
	VerifiedAllowed    *Overridable[bool]     `yaml:"verified_allowed,omitempty" json:"verified_allowed,omitempty"`
	PatternsAllowed    *Overridable[[]string] `yaml:"patterns_allowed,omitempty" json:"patterns_allowed,omitempty"`
}

// GlobalPush mirrors settings.Push with override policy.
type GlobalPush struct {
	MaxBranchesPerPush *Overridable[int] `yaml:"max_branches_per_push,omitempty" json:"max_branches_per_push,omitempty"`
	MaxTagsPerPush     *Overridable[int] `yaml:"max_tags_per_push,omitempty" json:"max_tags_per_push,omitempty"`
}
