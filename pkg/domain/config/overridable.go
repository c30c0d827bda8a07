// Package config implements the four-level configuration hierarchy:
// global defaults, repository type, team, and template, merged in
// ascending precedence into a single repository configuration.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Overridable wraps a global default value together with the policy
// flag saying whether lower levels may replace it.
type Overridable[T any] struct {
	Value           T    `yaml:"value" json:"value"`
	OverrideAllowed bool `yaml:"override_allowed" json:"override_allowed"`
}

// Fixed builds a value that lower levels must not override.
func Fixed[T any](value T) *Overridable[T] {
	return &Overridable[T]{Value: value, OverrideAllowed: false}
}

// CanOverride builds a value that lower levels may override.
func CanOverride[T any](value T) *Overridable[T] {
	return &Overridable[T]{Value: value, OverrideAllowed: true}
}

// TryOverride returns a copy carrying the new value when overriding is
// allowed, and an unchanged copy otherwise. The merge pipeline does
// not use this: there an attempted override of a locked field is an
// error, not a no-op.
func (o Overridable[T]) TryOverride(value T) Overridable[T] {
	if !o.OverrideAllowed {
		return o
	}
	o.Value = value
	return o
}

// UnmarshalYAML accepts either the explicit mapping form
// {value: v, override_allowed: b} or a bare value. A bare value is
// treated as overridable, so global files only need the mapping form
// to lock a field down.
func (o *Overridable[T]) UnmarshalYAML(node *yaml.Node) error {
	if isOverridableMapping(node) {
		var raw struct {
			Value           T    `yaml:"value"`
			OverrideAllowed bool `yaml:"override_allowed"`
		}
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("decoding overridable value: %w", err)
		}
		o.Value = raw.Value
		o.OverrideAllowed = raw.OverrideAllowed
		return nil
	}
	var value T
	if err := node.Decode(&value); err != nil {
		return fmt.Errorf("decoding bare value: %w", err)
	}
	o.Value = value
	o.OverrideAllowed = true
	return nil
}

// isOverridableMapping reports whether the node is a mapping carrying
// the explicit overridable form, identified by its "value" key.
func isOverridableMapping(node *yaml.Node) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "value" {
			return true
		}
	}
	return false
}
