package config

import (
	"strconv"
	"strings"

	"github.com/repoforge/repoforge/pkg/domain/settings"
)

// SourceTrace records where each merged value came from, for audit
// output and debugging surprising results.
type SourceTrace struct {
	// Fields maps a scalar field path (e.g. "repository.wiki") to the
	// level whose value won.
	Fields map[string]Level `json:"fields"`
	// Collections maps a collection name to the levels that contributed
	// items, in merge order.
	Collections map[string][]Level `json:"collections"`
}

// NewSourceTrace returns an empty trace ready for recording.
func NewSourceTrace() SourceTrace {
	return SourceTrace{
		Fields:      make(map[string]Level),
		Collections: make(map[string][]Level),
	}
}

func (t SourceTrace) recordField(field string, level Level) {
	t.Fields[field] = level
}

func (t SourceTrace) recordCollection(name string, level Level) {
	t.Collections[name] = append(t.Collections[name], level)
}

// MergedConfiguration is the final resolved settings for one
// repository, with every override conflict already rejected.
type MergedConfiguration struct {
	Context Context `json:"context"`

	Repository       settings.Repository       `json:"repository"`
	PullRequests     settings.PullRequests     `json:"pull_requests"`
	BranchProtection settings.BranchProtection `json:"branch_protection"`
	Actions          settings.Actions          `json:"actions"`
	Push             settings.Push             `json:"push"`

	Labels                []settings.Label                `json:"labels,omitempty"`
	Webhooks              []settings.Webhook              `json:"webhooks,omitempty"`
	Environments          []settings.Environment          `json:"environments,omitempty"`
	GitHubApps            []settings.GitHubApp            `json:"github_apps,omitempty"`
	CustomProperties      []settings.CustomProperty       `json:"custom_properties,omitempty"`
	Rulesets              []settings.Ruleset              `json:"rulesets,omitempty"`
	NotificationEndpoints []settings.NotificationEndpoint `json:"notification_endpoints,omitempty"`

	Trace SourceTrace `json:"trace"`
}

// ScalarValues renders every set scalar field as a string, keyed by the
// same paths the trace uses. Intended for display and audit output.
func (m *MergedConfiguration) ScalarValues() map[string]string {
	out := make(map[string]string)
	putBool := func(path string, v *bool) {
		if v != nil {
			out[path] = strconv.FormatBool(*v)
		}
	}
	putInt := func(path string, v *int) {
		if v != nil {
			out[path] = strconv.Itoa(*v)
		}
	}
	putStr := func(path string, v *string) {
		if v != nil {
			out[path] = *v
		}
	}
	putList := func(path string, v []string) {
		if v != nil {
			out[path] = strings.Join(v, ", ")
		}
	}

	r := m.Repository
	putBool("repository.issues", r.Issues)
	putBool("repository.projects", r.Projects)
	putBool("repository.discussions", r.Discussions)
	putBool("repository.wiki", r.Wiki)
	putBool("repository.pages", r.Pages)
	putBool("repository.security_advisories", r.SecurityAdvisories)
	putBool("repository.vulnerability_reporting", r.VulnerabilityReporting)
	putBool("repository.auto_close_issues", r.AutoCloseIssues)

	pr := m.PullRequests
	putBool("pull_requests.allow_merge_commit", pr.AllowMergeCommit)
	putBool("pull_requests.allow_squash_merge", pr.AllowSquashMerge)
	putBool("pull_requests.allow_rebase_merge", pr.AllowRebaseMerge)
	putBool("pull_requests.delete_branch_on_merge", pr.DeleteBranchOnMerge)
	putInt("pull_requests.required_approving_review_count", pr.RequiredApprovingReviewCount)
	putBool("pull_requests.require_code_owner_reviews", pr.RequireCodeOwnerReviews)
	putBool("pull_requests.require_conversation_resolution", pr.RequireConversationResolution)
	putBool("pull_requests.allow_auto_merge", pr.AllowAutoMerge)
	putStr("pull_requests.merge_commit_title", pr.MergeCommitTitle)
	putStr("pull_requests.merge_commit_message", pr.MergeCommitMessage)
	putStr("pull_requests.squash_merge_commit_title", pr.SquashMergeCommitTitle)
	putStr("pull_requests.squash_merge_commit_message", pr.SquashMergeCommitMessage)

	bp := m.BranchProtection
	putStr("branch_protection.default_branch", bp.DefaultBranch)
	putBool("branch_protection.require_pull_request_reviews", bp.RequirePullRequestReviews)
	putInt("branch_protection.required_approving_review_count", bp.RequiredApprovingReviewCount)
	putBool("branch_protection.dismiss_stale_reviews", bp.DismissStaleReviews)
	putBool("branch_protection.require_code_owner_reviews", bp.RequireCodeOwnerReviews)
	putBool("branch_protection.require_status_checks", bp.RequireStatusChecks)
	putList("branch_protection.required_status_checks_list", bp.RequiredStatusChecks)
	putBool("branch_protection.strict_required_status_checks", bp.StrictRequiredStatusChecks)
	putBool("branch_protection.restrict_pushes", bp.RestrictPushes)
	putBool("branch_protection.allow_force_pushes", bp.AllowForcePushes)
	putBool("branch_protection.allow_deletions", bp.AllowDeletions)
	putList("branch_protection.additional_protected_patterns", bp.AdditionalProtectedPatterns)

	a := m.Actions
	putBool("actions.enabled", a.Enabled)
	putStr("actions.allowed_actions", a.AllowedActions)
	putBool("actions.github_owned_allowed", a.GitHubOwnedAllowed)
	putBool("actions.verified_allowed", a.VerifiedAllowed)
	putList("actions.patterns_allowed", a.PatternsAllowed)

	p := m.Push
	putInt("push.max_branches_per_push", p.MaxBranchesPerPush)
	putInt("push.max_tags_per_push", p.MaxTagsPerPush)

	return out
}

// ActiveNotificationEndpoints returns the endpoints that should receive
// deliveries, preserving merge order.
func (m *MergedConfiguration) ActiveNotificationEndpoints() []settings.NotificationEndpoint {
	var active []settings.NotificationEndpoint
	for _, ep := range m.NotificationEndpoints {
		if ep.IsActive() {
			active = append(active, ep)
		}
	}
	return active
}
