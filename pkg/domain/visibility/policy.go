// Package visibility decides the visibility of provisioned
// repositories from organization policy, billing plan limits, and
// caller or template preferences.
package visibility

import (
	"github.com/repoforge/repoforge/pkg/domain/config"
	"github.com/repoforge/repoforge/pkg/domain/settings"
)

// PolicyKind identifies the shape of an organization visibility policy.
type PolicyKind string

const (
	// PolicyUnrestricted places no constraint on visibility.
	PolicyUnrestricted PolicyKind = "unrestricted"
	// PolicyRequired forces every repository to one visibility.
	PolicyRequired PolicyKind = "required"
	// PolicyRestricted forbids a set of visibilities.
	PolicyRestricted PolicyKind = "restricted"
)

// Policy is an organization visibility policy.
type Policy struct {
	Kind       PolicyKind            `json:"kind"`
	Required   settings.Visibility   `json:"required,omitempty"`
	Restricted []settings.Visibility `json:"restricted,omitempty"`
}

// Unrestricted builds a policy that allows any visibility.
func Unrestricted() Policy {
	return Policy{Kind: PolicyUnrestricted}
}

// Required builds a policy that forces one visibility.
func Required(v settings.Visibility) Policy {
	return Policy{Kind: PolicyRequired, Required: v}
}

// Restricted builds a policy that forbids the given visibilities.
func Restricted(forbidden []settings.Visibility) Policy {
	return Policy{Kind: PolicyRestricted, Restricted: forbidden}
}

// Allows reports whether the policy permits the visibility.
func (p Policy) Allows(v settings.Visibility) bool {
	switch p.Kind {
	case PolicyRequired:
		return v == p.Required
	case PolicyRestricted:
		for _, forbidden := range p.Restricted {
			if v == forbidden {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// ParsePolicy converts the serialized policy from global defaults into
// a Policy. Unknown enforcement levels and incomplete declarations fall
// back to unrestricted rather than failing the whole configuration.
func ParsePolicy(cfg *config.VisibilityPolicyConfig) Policy {
	if cfg == nil {
		return Unrestricted()
	}
	switch cfg.EnforcementLevel {
	case "required":
		if cfg.RequiredVisibility == nil || !cfg.RequiredVisibility.IsValid() {
			return Unrestricted()
		}
		return Required(*cfg.RequiredVisibility)
	case "restricted":
		var forbidden []settings.Visibility
		for _, v := range cfg.RestrictedVisibilities {
			if v.IsValid() {
				forbidden = append(forbidden, v)
			}
		}
		if len(forbidden) == 0 {
			return Unrestricted()
		}
		return Restricted(forbidden)
	default:
		return Unrestricted()
	}
}
