// Package settings defines the repository settings vocabulary shared by
// every configuration level: feature toggles, pull request behavior,
// branch protection, GitHub Actions policy, and push limits.
package settings

// Visibility is a repository visibility value as GitHub understands it.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityInternal Visibility = "internal"
)

// ValidVisibilities returns all recognized visibility values.
func ValidVisibilities() []Visibility {
	return []Visibility{VisibilityPublic, VisibilityPrivate, VisibilityInternal}
}

// IsValid checks if the visibility is a recognized value.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityInternal:
		return true
	}
	return false
}

// ParseVisibility converts a string into a Visibility, reporting whether
// the value was recognized. It never normalizes the input.
func ParseVisibility(s string) (Visibility, bool) {
	v := Visibility(s)
	return v, v.IsValid()
}

// Repository holds repository feature toggles. Nil fields are unset and
// do not participate in merging.
type Repository struct {
	Issues                 *bool `yaml:"issues,omitempty" json:"issues,omitempty"`
	Projects               *bool `yaml:"projects,omitempty" json:"projects,omitempty"`
	Discussions            *bool `yaml:"discussions,omitempty" json:"discussions,omitempty"`
	Wiki                   *bool `yaml:"wiki,omitempty" json:"wiki,omitempty"`
	Pages                  *bool `yaml:"pages,omitempty" json:"pages,omitempty"`
	SecurityAdvisories     *bool `yaml:"security_advisories,omitempty" json:"security_advisories,omitempty"`
	VulnerabilityReporting *bool `yaml:"vulnerability_reporting,omitempty" json:"vulnerability_reporting,omitempty"`
	AutoCloseIssues        *bool `yaml:"auto_close_issues,omitempty" json:"auto_close_issues,omitempty"`
}

// PullRequests holds pull request merge behavior settings.
type PullRequests struct {
	AllowMergeCommit              *bool   `yaml:"allow_merge_commit,omitempty" json:"allow_merge_commit,omitempty"`
	AllowSquashMerge              *bool   `yaml:"allow_squash_merge,omitempty" json:"allow_squash_merge,omitempty"`
	AllowRebaseMerge              *bool   `yaml:"allow_rebase_merge,omitempty" json:"allow_rebase_merge,omitempty"`
	DeleteBranchOnMerge           *bool   `yaml:"delete_branch_on_merge,omitempty" json:"delete_branch_on_merge,omitempty"`
	RequiredApprovingReviewCount  *int    `yaml:"required_approving_review_count,omitempty" json:"required_approving_review_count,omitempty"`
	RequireCodeOwnerReviews       *bool   `yaml:"require_code_owner_reviews,omitempty" json:"require_code_owner_reviews,omitempty"`
	RequireConversationResolution *bool   `yaml:"require_conversation_resolution,omitempty" json:"require_conversation_resolution,omitempty"`
	AllowAutoMerge                *bool   `yaml:"allow_auto_merge,omitempty" json:"allow_auto_merge,omitempty"`
	MergeCommitTitle              *string `yaml:"merge_commit_title,omitempty" json:"merge_commit_title,omitempty"`
	MergeCommitMessage            *string `yaml:"merge_commit_message,omitempty" json:"merge_commit_message,omitempty"`
	SquashMergeCommitTitle        *string `yaml:"squash_merge_commit_title,omitempty" json:"squash_merge_commit_title,omitempty"`
	SquashMergeCommitMessage      *string `yaml:"squash_merge_commit_message,omitempty" json:"squash_merge_commit_message,omitempty"`
}

// BranchProtection holds default branch protection settings.
type BranchProtection struct {
	DefaultBranch                *string  `yaml:"default_branch,omitempty" json:"default_branch,omitempty"`
	RequirePullRequestReviews    *bool    `yaml:"require_pull_request_reviews,omitempty" json:"require_pull_request_reviews,omitempty"`
	RequiredApprovingReviewCount *int     `yaml:"required_approving_review_count,omitempty" json:"required_approving_review_count,omitempty"`
	DismissStaleReviews          *bool    `yaml:"dismiss_stale_reviews,omitempty" json:"dismiss_stale_reviews,omitempty"`
	RequireCodeOwnerReviews      *bool    `yaml:"require_code_owner_reviews,omitempty" json:"require_code_owner_reviews,omitempty"`
	RequireStatusChecks          *bool    `yaml:"require_status_checks,omitempty" json:"require_status_checks,omitempty"`
	RequiredStatusChecks         []string `yaml:"required_status_checks_list,omitempty" json:"required_status_checks_list,omitempty"`
	StrictRequiredStatusChecks   *bool    `yaml:"strict_required_status_checks,omitempty" json:"strict_required_status_checks,omitempty"`
	RestrictPushes               *bool    `yaml:"restrict_pushes,omitempty" json:"restrict_pushes,omitempty"`
	AllowForcePushes             *bool    `yaml:"allow_force_pushes,omitempty" json:"allow_force_pushes,omitempty"`
	AllowDeletions               *bool    `yaml:"allow_deletions,omitempty" json:"allow_deletions,omitempty"`
	AdditionalProtectedPatterns  []string `yaml:"additional_protected_patterns,omitempty" json:"additional_protected_patterns,omitempty"`
}

// Actions holds GitHub Actions policy settings.
type Actions struct {
	Enabled            *bool    `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	AllowedActions     *string  `yaml:"allowed_actions,omitempty" json:"allowed_actions,omitempty"`
	GitHubOwnedAllowed *bool    `yaml:"github_owned_allowed,omitempty" json:"github_owned_allowed,omitempty"`
	VerifiedAllowed    *bool    `yaml:"verified_allowed,omitempty" json:"verified_allowed,omitempty"`
	PatternsAllowed    []string `yaml:"patterns_allowed,omitempty" json:"patterns_allowed,omitempty"`
}

// Push holds push limit settings.
type Push struct {
	MaxBranchesPerPush *int `yaml:"max_branches_per_push,omitempty" json:"max_branches_per_push,omitempty"`
	MaxTagsPerPush     *int `yaml:"max_tags_per_push,omitempty" json:"max_tags_per_push,omitempty"`
}
