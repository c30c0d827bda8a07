package repotype

import (
	"context"
	"fmt"
	"strings"

	"github.com/repoforge/repoforge/pkg/domain/config"
	"github.com/repoforge/repoforge/pkg/domain/settings"
)

// Catalogue lists the repository types an organization defines.
// config.MetadataProvider satisfies this.
type Catalogue interface {
	ListRepositoryTypes(ctx context.Context, org string) ([]string, error)
}

// UnknownTypeError reports a well-formed name the organization does not
// define.
type UnknownTypeError struct {
	Org  string
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("repository type %q is not defined by organization %s", e.Name, e.Org)
}

// TypePolicyError reports a caller choice that conflicts with a
// template's fixed repository type.
type TypePolicyError struct {
	TemplateType string
	Requested    string
}

func (e *TypePolicyError) Error() string {
	return fmt.Sprintf("template fixes repository type to %q; requested type %q is not allowed", e.TemplateType, e.Requested)
}

// Validator checks repository type names against the organization's
// catalogue and resolves the effective type for provisioning.
type Validator struct {
	catalogue Catalogue
}

// NewValidator creates a repository type validator.
func NewValidator(catalogue Catalogue) *Validator {
	return &Validator{catalogue: catalogue}
}

// Validate parses the name and confirms the organization defines it.
// The existence check is case-insensitive, but the returned name is the
// caller's input unchanged.
func (v *Validator) Validate(ctx context.Context, org, input string) (Name, error) {
	name, err := ParseName(input)
	if err != nil {
		return "", err
	}
	types, err := v.catalogue.ListRepositoryTypes(ctx, org)
	if err != nil {
		return "", fmt.Errorf("listing repository types for %s: %w", org, err)
	}
	for _, t := range types {
		if strings.EqualFold(t, input) {
			return name, nil
		}
	}
	return "", &UnknownTypeError{Org: org, Name: input}
}

// ResolveEffectiveType decides which repository type applies to a
// provisioning request. A template with a fixed type wins and rejects
// any conflicting caller choice; a preferable type yields to the
// caller. The resolved name is validated against the catalogue. An
// empty result means no type level applies.
func (v *Validator) ResolveEffectiveType(ctx context.Context, org string, spec *config.RepositoryTypeSpec, requested string) (Name, error) {
	effective := requested
	if spec != nil {
		switch spec.Policy {
		case config.TypePolicyFixed:
			// A fixed type admits no caller choice at all, even one that
			// names the same type.
			if requested != "" {
				return "", &TypePolicyError{TemplateType: spec.Type, Requested: requested}
			}
			effective = spec.Type
		case config.TypePolicyPreferable:
			if requested == "" {
				effective = spec.Type
			}
		default:
			return "", fmt.Errorf("template declares unknown repository type policy %q", spec.Policy)
		}
	}
	if effective == "" {
		return "", nil
	}
	return v.Validate(ctx, org, effective)
}

// PropertyName is the GitHub custom property that records a
// repository's type.
const PropertyName = "repository_type"

// TypeCustomProperty materializes a validated type as the single-select
// custom property applied to the created repository.
func TypeCustomProperty(name Name) settings.CustomProperty {
	return settings.CustomProperty{
		PropertyName: PropertyName,
		Value:        settings.SingleSelectProperty(name.String()),
	}
}
