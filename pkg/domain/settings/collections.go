package settings

import (
	"fmt"
	"strings"
)

// Label is an issue/PR label to create on the repository.
type Label struct {
	Name        string `yaml:"name" json:"name"`
	Color       string `yaml:"color" json:"color"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Webhook is a repository webhook subscription.
type Webhook struct {
	URL         string   `yaml:"url" json:"url"`
	ContentType string   `yaml:"content_type,omitempty" json:"content_type,omitempty"`
	Secret      string   `yaml:"secret,omitempty" json:"secret,omitempty"`
	Active      *bool    `yaml:"active,omitempty" json:"active,omitempty"`
	Events      []string `yaml:"events" json:"events"`
}

// Validate checks the webhook has a URL and at least one event.
func (w Webhook) Validate() error {
	if w.URL == "" {
		return fmt.Errorf("webhook url cannot be empty")
	}
	if len(w.Events) == 0 {
		return fmt.Errorf("webhook %s must subscribe to at least one event", w.URL)
	}
	return nil
}

// EnvironmentProtection holds reviewer and wait timer rules for an environment.
type EnvironmentProtection struct {
	RequiredReviewers []string `yaml:"required_reviewers,omitempty" json:"required_reviewers,omitempty"`
	WaitTimer         *int     `yaml:"wait_timer,omitempty" json:"wait_timer,omitempty"`
}

// DeploymentBranchPolicy restricts which branches may deploy to an environment.
type DeploymentBranchPolicy struct {
	ProtectedBranches    *bool    `yaml:"protected_branches,omitempty" json:"protected_branches,omitempty"`
	CustomBranchPatterns []string `yaml:"custom_branch_patterns,omitempty" json:"custom_branch_patterns,omitempty"`
}

// Environment is a deployment environment to create on the repository.
type Environment struct {
	Name                   string                  `yaml:"name" json:"name"`
	ProtectionRules        *EnvironmentProtection  `yaml:"protection_rules,omitempty" json:"protection_rules,omitempty"`
	DeploymentBranchPolicy *DeploymentBranchPolicy `yaml:"deployment_branch_policy,omitempty" json:"deployment_branch_policy,omitempty"`
}

// GitHubApp is a GitHub App installation request with its permission grants.
type GitHubApp struct {
	AppID       int64             `yaml:"app_id" json:"app_id"`
	Permissions map[string]string `yaml:"permissions,omitempty" json:"permissions,omitempty"`
}

// CustomPropertyKind identifies the value shape of a custom property.
type CustomPropertyKind string

const (
	PropertyString       CustomPropertyKind = "string"
	PropertySingleSelect CustomPropertyKind = "single_select"
	PropertyMultiSelect  CustomPropertyKind = "multi_select"
	PropertyBoolean      CustomPropertyKind = "true_false"
)

// CustomPropertyValue is a tagged custom property value. Exactly one of
// the value fields is meaningful for a given kind.
type CustomPropertyValue struct {
	Kind    CustomPropertyKind `yaml:"kind" json:"kind"`
	Value   string             `yaml:"value,omitempty" json:"value,omitempty"`
	Values  []string           `yaml:"values,omitempty" json:"values,omitempty"`
	Boolean bool               `yaml:"boolean,omitempty" json:"boolean,omitempty"`
}

// StringProperty builds a string-valued custom property value.
func StringProperty(value string) CustomPropertyValue {
	return CustomPropertyValue{Kind: PropertyString, Value: value}
}

// SingleSelectProperty builds a single-select custom property value.
func SingleSelectProperty(value string) CustomPropertyValue {
	return CustomPropertyValue{Kind: PropertySingleSelect, Value: value}
}

// MultiSelectProperty builds a multi-select custom property value.
func MultiSelectProperty(values []string) CustomPropertyValue {
	return CustomPropertyValue{Kind: PropertyMultiSelect, Values: values}
}

// BooleanProperty builds a true/false custom property value.
func BooleanProperty(value bool) CustomPropertyValue {
	return CustomPropertyValue{Kind: PropertyBoolean, Boolean: value}
}

// CustomProperty assigns an organization custom property on the repository.
type CustomProperty struct {
	PropertyName string              `yaml:"property_name" json:"property_name"`
	Value        CustomPropertyValue `yaml:"value" json:"value"`
}

// RulesetConditions scope a ruleset to matching refs.
type RulesetConditions struct {
	RefName RefNameCondition `yaml:"ref_name" json:"ref_name"`
}

// RefNameCondition holds include/exclude ref patterns for a ruleset.
type RefNameCondition struct {
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// RulesetRule is a single rule within a ruleset. Type names follow the
// GitHub REST API (pull_request, required_status_checks, deletion, ...).
// Parameters carries the rule-specific options verbatim.
type RulesetRule struct {
	Type       string         `yaml:"type" json:"type"`
	Parameters map[string]any `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// BypassActor grants a role, team, or integration bypass on a ruleset.
type BypassActor struct {
	ActorID    int64  `yaml:"actor_id" json:"actor_id"`
	ActorType  string `yaml:"actor_type" json:"actor_type"`
	BypassMode string `yaml:"bypass_mode,omitempty" json:"bypass_mode,omitempty"`
}

// Ruleset is a repository ruleset to create.
type Ruleset struct {
	Name         string            `yaml:"name" json:"name"`
	Target       string            `yaml:"target,omitempty" json:"target,omitempty"`
	Enforcement  string            `yaml:"enforcement,omitempty" json:"enforcement,omitempty"`
	BypassActors []BypassActor     `yaml:"bypass_actors,omitempty" json:"bypass_actors,omitempty"`
	Conditions   RulesetConditions `yaml:"conditions" json:"conditions"`
	Rules        []RulesetRule     `yaml:"rules" json:"rules"`
}

// NotificationEndpoint is an outbound HTTPS endpoint that receives
// provisioning event notifications.
type NotificationEndpoint struct {
	URL            string   `yaml:"url" json:"url"`
	Secret         string   `yaml:"secret,omitempty" json:"secret,omitempty"`
	Events         []string `yaml:"events" json:"events"`
	Active         *bool    `yaml:"active,omitempty" json:"active,omitempty"`
	TimeoutSeconds *int     `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`
	Description    string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// Validate checks the endpoint URL is HTTPS and events are declared.
func (n NotificationEndpoint) Validate() error {
	if n.URL == "" {
		return fmt.Errorf("notification endpoint url cannot be empty")
	}
	if !strings.HasPrefix(n.URL, "https://") {
		return fmt.Errorf("notification endpoint %s must use https", n.URL)
	}
	if len(n.Events) == 0 {
		return fmt.Errorf("notification endpoint %s must subscribe to at least one event", n.URL)
	}
	return nil
}

// IsActive reports whether the endpoint should receive deliveries.
// Endpoints default to active when the field is omitted.
func (n NotificationEndpoint) IsActive() bool {
	return n.Active == nil || *n.Active
}
