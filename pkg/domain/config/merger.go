package config

import (
	"fmt"

	"github.com/repoforge/repoforge/pkg/domain/settings"
)

// Merger resolves the four configuration levels into a single
// MergedConfiguration. Scalar fields are won by the highest level that
// declares them, subject to the global override policy; collections are
// concatenated in ascending level order without deduplication.
type Merger struct{}

// NewMerger creates a configuration merger.
func NewMerger() *Merger {
	return &Merger{}
}

type levelInput struct {
	level Level
	ls    *LevelSettings
}

type mergeState struct {
	// levels holds the non-global inputs in descending precedence:
	// template, team, repository type. Absent levels carry a nil
	// LevelSettings.
	levels []levelInput
	trace  SourceTrace
	err    error
}

// pick returns the highest-precedence declared value for a field.
func pick[T any](s *mergeState, get func(*LevelSettings) *T) (Level, *T) {
	for _, l := range s.levels {
		if l.ls == nil {
			continue
		}
		if v := get(l.ls); v != nil {
			return l.level, v
		}
	}
	return "", nil
}

// resolveField merges one scalar field. Declaring a value for a field
// whose global default forbids overriding fails the whole merge, even
// when the declared value equals the global one.
func resolveField[T any](s *mergeState, field string, global *Overridable[T], get func(*LevelSettings) *T) *T {
	if s.err != nil {
		return nil
	}
	if lvl, v := pick(s, get); v != nil {
		if global != nil && !global.OverrideAllowed {
			s.err = &OverrideNotAllowedError{
				Field:          field,
				Level:          lvl,
				AttemptedValue: fmt.Sprint(*v),
				GlobalValue:    fmt.Sprint(global.Value),
			}
			return nil
		}
		s.trace.recordField(field, lvl)
		return v
	}
	if global != nil {
		s.trace.recordField(field, LevelGlobal)
		v := global.Value
		return &v
	}
	return nil
}

// mergeCollection concatenates a collection across levels in ascending
// precedence order. Items are never deduplicated; downstream appliers
// see exactly what each level declared.
func mergeCollection[T any](s *mergeState, name string, global []T, get func(*LevelSettings) []T) []T {
	var out []T
	if len(global) > 0 {
		out = append(out, global...)
		s.trace.recordCollection(name, LevelGlobal)
	}
	for i := len(s.levels) - 1; i >= 0; i-- {
		l := s.levels[i]
		if l.ls == nil {
			continue
		}
		if items := get(l.ls); len(items) > 0 {
			out = append(out, items...)
			s.trace.recordCollection(name, l.level)
		}
	}
	return out
}

// Merge resolves the configuration for one repository. Any of the
// non-global levels may be nil; a nil global is treated as empty.
func (m *Merger) Merge(ctx Context, global *GlobalDefaults, repoType *RepositoryTypeConfig, team *TeamConfig, tmpl *TemplateConfig) (*MergedConfiguration, error) {
	if global == nil {
		global = &GlobalDefaults{}
	}
	s := &mergeState{trace: NewSourceTrace()}
	if tmpl != nil {
		s.levels = append(s.levels, levelInput{LevelTemplate, &tmpl.LevelSettings})
	}
	if team != nil {
		s.levels = append(s.levels, levelInput{LevelTeam, &team.LevelSettings})
	}
	if repoType != nil {
		s.levels = append(s.levels, levelInput{LevelRepositoryType, &repoType.LevelSettings})
	}

	out := &MergedConfiguration{Context: ctx}
	m.mergeRepository(s, global.Repository, out)
	m.mergePullRequests(s, global.PullRequests, out)
	m.mergeBranchProtection(s, global.BranchProtection, out)
	m.mergeActions(s, global.Actions, out)
	m.mergePush(s, global.Push, out)
	m.mergeCollections(s, global, out)
	if s.err != nil {
		return nil, s.err
	}
	out.Trace = s.trace
	return out, nil
}

func repoField[T any](get func(*settings.Repository) *T) func(*LevelSettings) *T {
	return func(ls *LevelSettings) *T {
		if ls.Repository == nil {
			return nil
		}
		return get(ls.Repository)
	}
}

func (m *Merger) mergeRepository(s *mergeState, g *GlobalRepository, out *MergedConfiguration) {
	if g == nil {
		g = &GlobalRepository{}
	}
	out.Repository.Issues = resolveField(s, "repository.issues", g.Issues,
		repoField(func(r *settings.Repository) *bool { return r.Issues }))
	out.Repository.Projects = resolveField(s, "repository.projects", g.Projects,
		repoField(func(r *settings.Repository) *bool { return r.Projects }))
	out.Repository.Discussions = resolveField(s, "repository.discussions", g.Discussions,
		repoField(func(r *settings.Repository) *bool { return r.Discussions }))
	out.Repository.Wiki = resolveField(s, "repository.wiki", g.Wiki,
		repoField(func(r *settings.Repository) *bool { return r.Wiki }))
	out.Repository.Pages = resolveField(s, "repository.pages", g.Pages,
		repoField(func(r *settings.Repository) *bool { return r.Pages }))
	out.Repository.SecurityAdvisories = resolveField(s, "repository.security_advisories", g.SecurityAdvisories,
		repoField(func(r *settings.Repository) *bool { return r.SecurityAdvisories }))
	out.Repository.VulnerabilityReporting = resolveField(s, "repository.vulnerability_reporting", g.VulnerabilityReporting,
		repoField(func(r *settings.Repository) *bool { return r.VulnerabilityReporting }))
	out.Repository.AutoCloseIssues = resolveField(s, "repository.auto_close_issues", g.AutoCloseIssues,
		repoField(func(r *settings.Repository) *bool { return r.AutoCloseIssues }))
}

func prField[T any](get func(*settings.PullRequests) *T) func(*LevelSettings) *T {
	return func(ls *LevelSettings) *T {
		if ls.PullRequests == nil {
			return nil
		}
		return get(ls.PullRequests)
	}
}

func (m *Merger) mergePullRequests(s *mergeState, g *GlobalPullRequests, out *MergedConfiguration) {
	if g == nil {
		g = &GlobalPullRequests{}
	}
	out.PullRequests.AllowMergeCommit = resolveField(s, "pull_requests.allow_merge_commit", g.AllowMergeCommit,
		prField(func(p *settings.PullRequests) *bool { return p.AllowMergeCommit }))
	out.PullRequests.AllowSquashMerge = resolveField(s, "pull_requests.allow_squash_merge", g.AllowSquashMerge,
		prField(func(p *settings.PullRequests) *bool { return p.AllowSquashMerge }))
	out.PullRequests.AllowRebaseMerge = resolveField(s, "pull_requests.allow_rebase_merge", g.AllowRebaseMerge,
		prField(func(p *settings.PullRequests) *bool { return p.AllowRebaseMerge }))
	out.PullRequests.DeleteBranchOnMerge = resolveField(s, "pull_requests.delete_branch_on_merge", g.DeleteBranchOnMerge,
		prField(func(p *settings.PullRequests) *bool { return p.DeleteBranchOnMerge }))
	out.PullRequests.RequiredApprovingReviewCount = resolveField(s, "pull_requests.required_approving_review_count", g.RequiredApprovingReviewCount,
		prField(func(p *settings.PullRequests) *int { return p.RequiredApprovingReviewCount }))
	out.PullRequests.RequireCodeOwnerReviews = resolveField(s, "pull_requests.require_code_owner_reviews", g.RequireCodeOwnerReviews,
		prField(func(p *settings.PullRequests) *bool { return p.RequireCodeOwnerReviews }))
	out.PullRequests.RequireConversationResolution = resolveField(s, "pull_requests.require_conversation_resolution", g.RequireConversationResolution,
		prField(func(p *settings.PullRequests) *bool { return p.RequireConversationResolution }))
	out.PullRequests.AllowAutoMerge = resolveField(s, "pull_requests.allow_auto_merge", g.AllowAutoMerge,
		prField(func(p *settings.PullRequests) *bool { return p.AllowAutoMerge }))
	out.PullRequests.MergeCommitTitle = resolveField(s, "pull_requests.merge_commit_title", g.MergeCommitTitle,
		prField(func(p *settings.PullRequests) *string { return p.MergeCommitTitle }))
	out.PullRequests.MergeCommitMessage = resolveField(s, "pull_requests.merge_commit_message", g.MergeCommitMessage,
		prField(func(p *settings.PullRequests) *string { return p.MergeCommitMessage }))
	out.PullRequests.SquashMergeCommitTitle = resolveField(s, "pull_requests.squash_merge_commit_title", g.SquashMergeCommitTitle,
		prField(func(p *settings.PullRequests) *string { return p.SquashMergeCommitTitle }))
	out.PullRequests.SquashMergeCommitMessage = resolveField(s, "pull_requests.squash_merge_commit_message", g.SquashMergeCommitMessage,
		prField(func(p *settings.PullRequests) *string { return p.SquashMergeCommitMessage }))
}

func bpField[T any](get func(*settings.BranchProtection) *T) func(*LevelSettings) *T {
	return func(ls *LevelSettings) *T {
		if ls.BranchProtection == nil {
			return nil
		}
		return get(ls.BranchProtection)
	}
}

// bpList adapts a slice field to scalar-style resolution: the highest
// declaring level wins the whole list.
func bpList(get func(*settings.BranchProtection) []string) func(*LevelSettings) *[]string {
	return func(ls *LevelSettings) *[]string {
		if ls.BranchProtection == nil {
			return nil
		}
		v := get(ls.BranchProtection)
		if v == nil {
			return nil
		}
		return &v
	}
}

func (m *Merger) mergeBranchProtection(s *mergeState, g *GlobalBranchProtection, out *MergedConfiguration) {
	if g == nil {
		g = &GlobalBranchProtection{}
	}
	out.BranchProtection.DefaultBranch = resolveField(s, "branch_protection.default_branch", g.DefaultBranch,
		bpField(func(b *settings.BranchProtection) *string { return b.DefaultBranch }))
	out.BranchProtection.RequirePullRequestReviews = resolveField(s, "branch_protection.require_pull_request_reviews", g.RequirePullRequestReviews,
		bpField(func(b *settings.BranchProtection) *bool { return b.RequirePullRequestReviews }))
	out.BranchProtection.RequiredApprovingReviewCount = resolveField(s, "branch_protection.required_approving_review_count", g.RequiredApprovingReviewCount,
		bpField(func(b *settings.BranchProtection) *int { return b.RequiredApprovingReviewCount }))
	out.BranchProtection.DismissStaleReviews = resolveField(s, "branch_protection.dismiss_stale_reviews", g.DismissStaleReviews,
		bpField(func(b *settings.BranchProtection) *bool { return b.DismissStaleReviews }))
	out.BranchProtection.RequireCodeOwnerReviews = resolveField(s, "branch_protection.require_code_owner_reviews", g.RequireCodeOwnerReviews,
		bpField(func(b *settings.BranchProtection) *bool { return b.RequireCodeOwnerReviews }))
	out.BranchProtection.RequireStatusChecks = resolveField(s, "branch_protection.require_status_checks", g.RequireStatusChecks,
		bpField(func(b *settings.BranchProtection) *bool { return b.RequireStatusChecks }))
	if v := resolveField(s, "branch_protection.required_status_checks_list", g.RequiredStatusChecks,
		bpList(func(b *settings.BranchProtection) []string { return b.RequiredStatusChecks })); v != nil {
		out.BranchProtection.RequiredStatusChecks = *v
	}
	out.BranchProtection.StrictRequiredStatusChecks = resolveField(s, "branch_protection.strict_required_status_checks", g.StrictRequiredStatusChecks,
		bpField(func(b *settings.BranchProtection) *bool { return b.StrictRequiredStatusChecks }))
	out.BranchProtection.RestrictPushes = resolveField(s, "branch_protection.restrict_pushes", g.RestrictPushes,
		bpField(func(b *settings.BranchProtection) *bool { return b.RestrictPushes }))
	out.BranchProtection.AllowForcePushes = resolveField(s, "branch_protection.allow_force_pushes", g.AllowForcePushes,
		bpField(func(b *settings.BranchProtection) *bool { return b.AllowForcePushes }))
	out.BranchProtection.AllowDeletions = resolveField(s, "branch_protection.allow_deletions", g.AllowDeletions,
		bpField(func(b *settings.BranchProtection) *bool { return b.AllowDeletions }))
	if v := resolveField(s, "branch_protection.additional_protected_patterns", g.AdditionalProtectedPatterns,
		bpList(func(b *settings.BranchProtection) []string { return b.AdditionalProtectedPatterns })); v != nil {
		out.BranchProtection.AdditionalProtectedPatterns = *v
	}
}

func actionsField[T any](get func(*settings.Actions) *T) func(*LevelSettings) *T {
	return func(ls *LevelSettings) *T {
		if ls.Actions == nil {
			return nil
		}
		return get(ls.Actions)
	}
}

func (m *Merger) mergeActions(s *mergeState, g *GlobalActions, out *MergedConfiguration) {
	if g == nil {
		g = &GlobalActions{}
	}
	out.Actions.Enabled = resolveField(s, "actions.enabled", g.Enabled,
		actionsField(func(a *settings.Actions) *bool { return a.Enabled }))
	out.Actions.AllowedActions = resolveField(s, "actions.allowed_actions", g.AllowedActions,
		actionsField(func(a *settings.Actions) *string { return a.AllowedActions }))
	out.Actions.GitHubOwnedAllowed = resolveField(s, "actions.github_owned_allowed", g.GitHubOwnedAllowed,
		actionsField(func(a *settings.Actions) *bool { return a.GitHubOwnedAllowed }))
	out.Actions.VerifiedAllowed = resolveField(s, "actions.verified_allowed", g.VerifiedAllowed,
		actionsField(func(a *settings.Actions) *bool { return a.VerifiedAllowed }))
	if v := resolveField(s, "actions.patterns_allowed", g.PatternsAllowed,
		func(ls *LevelSettings) *[]string {
			if ls.Actions == nil || ls.Actions.PatternsAllowed == nil {
				return nil
			}
			return &ls.Actions.PatternsAllowed
		}); v != nil {
		out.Actions.PatternsAllowed = *v
	}
}

func (m *Merger) mergePush(s *mergeState, g *GlobalPush, out *MergedConfiguration) {
	if g == nil {
		g = &GlobalPush{}
	}
	out.Push.MaxBranchesPerPush = resolveField(s, "push.max_branches_per_push", g.MaxBranchesPerPush,
		func(ls *LevelSettings) *int {
			if ls.Push == nil {
				return nil
			}
			return ls.Push.MaxBranchesPerPush
		})
	out.Push.MaxTagsPerPush = resolveField(s, "push.max_tags_per_push", g.MaxTagsPerPush,
		func(ls *LevelSettings) *int {
			if ls.Push == nil {
				return nil
			}
			return ls.Push.MaxTagsPerPush
		})
}

func (m *Merger) mergeCollections(s *mergeState, global *GlobalDefaults, out *MergedConfiguration) {
	out.Labels = mergeCollection(s, "labels", global.Labels,
		func(ls *LevelSettings) []settings.Label { return ls.Labels })
	out.Webhooks = mergeCollection(s, "webhooks", global.Webhooks,
		func(ls *LevelSettings) []settings.Webhook { return ls.Webhooks })
	out.Environments = mergeCollection(s, "environments", global.Environments,
		func(ls *LevelSettings) []settings.Environment { return ls.Environments })
	out.GitHubApps = mergeCollection(s, "github_apps", global.GitHubApps,
		func(ls *LevelSettings) []settings.GitHubApp { return ls.GitHubApps })
	out.CustomProperties = mergeCollection(s, "custom_properties", global.CustomProperties,
		func(ls *LevelSettings) []settings.CustomProperty { return ls.CustomProperties })
	out.Rulesets = mergeCollection(s, "rulesets", global.Rulesets,
		func(ls *LevelSettings) []settings.Ruleset { return ls.Rulesets })
	out.NotificationEndpoints = mergeCollection(s, "notification_endpoints", global.NotificationEndpoints,
		func(ls *LevelSettings) []settings.NotificationEndpoint { return ls.NotificationEndpoints })
}
