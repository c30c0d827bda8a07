// Package schema validates configuration documents against JSON
// schemas before they are decoded, so malformed metadata files fail
// with a precise message instead of a zero-valued struct.
package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Kind identifies which document schema applies.
type Kind string

const (
	KindGlobalDefaults Kind = "global defaults"
	KindTeamConfig     Kind = "team config"
	KindTypeConfig     Kind = "repository type config"
	KindTemplateConfig Kind = "template config"
)

// ValidationError carries every schema violation found in a document.
type ValidationError struct {
	Kind     Kind
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s document is invalid: %s", e.Kind, strings.Join(e.Problems, "; "))
}

var schemas = map[Kind]string{
	KindGlobalDefaults: globalDefaultsSchema,
	KindTeamConfig:     levelSettingsSchema,
	KindTypeConfig:     levelSettingsSchema,
	KindTemplateConfig: templateConfigSchema,
}

// Validate checks a YAML document against the schema for its kind.
func Validate(kind Kind, data []byte) error {
	schemaJSON, ok := schemas[kind]
	if !ok {
		return fmt.Errorf("no schema registered for document kind %q", kind)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s document: %w", kind, err)
	}
	if doc == nil {
		// Empty documents are valid; every field is optional.
		return nil
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validating %s document: %w", kind, err)
	}
	if result.Valid() {
		return nil
	}
	ve := &ValidationError{Kind: kind}
	for _, p := range result.Errors() {
		ve.Problems = append(ve.Problems, fmt.Sprintf("%s: %s", p.Field(), p.Description()))
	}
	return ve
}

// commonDefs holds the shared definitions. The overridable* forms
// accept either a bare value or the explicit {value, override_allowed}
// mapping.
const commonDefs = `
	"definitions": {
		"overridableBool": {
			"oneOf": [
				{"type": "boolean"},
				{"type": "object", "required": ["value"], "properties": {
					"value": {"type": "boolean"},
					"override_allowed": {"type": "boolean"}
				}, "additionalProperties": false}
			]
		},
		"overridableInt": {
			"oneOf": [
				{"type": "integer"},
				{"type": "object", "required": ["value"], "properties": {
					"value": {"type": "integer"},
					"override_allowed": {"type": "boolean"}
				}, "additionalProperties": false}
			]
		},
		"overridableString": {
			"oneOf": [
				{"type": "string"},
				{"type": "object", "required": ["value"], "properties": {
					"value": {"type": "string"},
					"override_allowed": {"type": "boolean"}
				}, "additionalProperties": false}
			]
		},
		"overridableStringList": {
			"oneOf": [
				{"type": "array", "items": {"type": "string"}},
				{"type": "object", "required": ["value"], "properties": {
					"value": {"type": "array", "items": {"type": "string"}},
					"override_allowed": {"type": "boolean"}
				}, "additionalProperties": false}
			]
		},
		"labels": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "color"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"color": {"type": "string"},
					"description": {"type": "string"}
				}
			}
		},
		"webhooks": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["url", "events"],
				"properties": {
					"url": {"type": "string", "minLength": 1},
					"content_type": {"type": "string"},
					"secret": {"type": "string"},
					"active": {"type": "boolean"},
					"events": {"type": "array", "items": {"type": "string"}, "minItems": 1}
				}
			}
		},
		"environments": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name"],
				"properties": {"name": {"type": "string", "minLength": 1}}
			}
		},
		"githubApps": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["app_id"],
				"properties": {
					"app_id": {"type": "integer"},
					"permissions": {"type": "object"}
				}
			}
		},
		"customProperties": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["property_name", "value"],
				"properties": {
					"property_name": {"type": "string", "minLength": 1},
					"value": {"type": "object"}
				}
			}
		},
		"rulesets": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"target": {"type": "string"},
					"enforcement": {"type": "string"}
				}
			}
		},
		"notificationEndpoints": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["url", "events"],
				"properties": {
					"url": {"type": "string", "pattern": "^https://"},
					"secret": {"type": "string"},
					"events": {"type": "array", "items": {"type": "string"}, "minItems": 1},
					"active": {"type": "boolean"},
					"timeout_seconds": {"type": "integer", "minimum": 1},
					"description": {"type": "string"}
				}
			}
		},
		"collections": {
			"type": "object",
			"properties": {
				"labels": {"$ref": "#/definitions/labels"},
				"webhooks": {"$ref": "#/definitions/webhooks"},
				"environments": {"$ref": "#/definitions/environments"},
				"github_apps": {"$ref": "#/definitions/githubApps"},
				"custom_properties": {"$ref": "#/definitions/customProperties"},
				"rulesets": {"$ref": "#/definitions/rulesets"},
				"notification_endpoints": {"$ref": "#/definitions/notificationEndpoints"}
			}
		}
	}`

const globalDefaultsSchema = `{
	"type": "object",
	"properties": {
		"repository": {
			"type": "object",
			"properties": {
				"issues": {"$ref": "#/definitions/overridableBool"},
				"projects": {"$ref": "#/definitions/overridableBool"},
				"discussions": {"$ref": "#/definitions/overridableBool"},
				"wiki": {"$ref": "#/definitions/overridableBool"},
				"pages": {"$ref": "#/definitions/overridableBool"},
				"security_advisories": {"$ref": "#/definitions/overridableBool"},
				"vulnerability_reporting": {"$ref": "#/definitions/overridableBool"},
				"auto_close_issues": {"$ref": "#/definitions/overridableBool"}
			},
			"additionalProperties": false
		},
		"pull_requests": {"type": "object"},
		"branch_protection": {"type": "object"},
		"actions": {"type": "object"},
		"push": {
			"type": "object",
			"properties": {
				"max_branches_per_push": {"$ref": "#/definitions/overridableInt"},
				"max_tags_per_push": {"$ref": "#/definitions/overridableInt"}
			},
			"additionalProperties": false
		},
		"repository_visibility": {
			"type": "object",
			"required": ["enforcement_level"],
			"properties": {
				"enforcement_level": {"type": "string"},
				"required_visibility": {"type": "string", "enum": ["public", "private", "internal"]},
				"restricted_visibilities": {"type": "array", "items": {"type": "string", "enum": ["public", "private", "internal"]}}
			}
		},
		"labels": {"$ref": "#/definitions/labels"},
		"webhooks": {"$ref": "#/definitions/webhooks"},
		"environments": {"$ref": "#/definitions/environments"},
		"github_apps": {"$ref": "#/definitions/githubApps"},
		"custom_properties": {"$ref": "#/definitions/customProperties"},
		"rulesets": {"$ref": "#/definitions/rulesets"},
		"notification_endpoints": {"$ref": "#/definitions/notificationEndpoints"}
	},` + commonDefs + `
}`

const levelSettingsSchema = `{
	"type": "object",
	"properties": {
		"repository": {"type": "object"},
		"pull_requests": {"type": "object"},
		"branch_protection": {"type": "object"},
		"actions": {"type": "object"},
		"push": {"type": "object"},
		"labels": {"$ref": "#/definitions/labels"},
		"webhooks": {"$ref": "#/definitions/webhooks"},
		"environments": {"$ref": "#/definitions/environments"},
		"github_apps": {"$ref": "#/definitions/githubApps"},
		"custom_properties": {"$ref": "#/definitions/customProperties"},
		"rulesets": {"$ref": "#/definitions/rulesets"},
		"notification_endpoints": {"$ref": "#/definitions/notificationEndpoints"}
	},` + commonDefs + `
}`

const templateConfigSchema = `{
	"type": "object",
	"required": ["template"],
	"properties": {
		"template": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string", "minLength": 1},
				"description": {"type": "string"},
				"author": {"type": "string"},
				"tags": {"type": "array", "items": {"type": "string"}}
			}
		},
		"repository_type": {
			"type": "object",
			"required": ["type", "policy"],
			"properties": {
				"type": {"type": "string", "minLength": 1},
				"policy": {"type": "string", "enum": ["fixed", "preferable"]}
			}
		},
		"variables": {"type": "object"},
		"default_visibility": {"type": "string", "enum": ["public", "private", "internal"]},
		"repository": {"type": "object"},
		"pull_requests": {"type": "object"},
		"branch_protection": {"type": "object"},
		"actions": {"type": "object"},
		"push": {"type": "object"},
		"labels": {"$ref": "#/definitions/labels"},
		"webhooks": {"$ref": "#/definitions/webhooks"},
		"environments": {"$ref": "#/definitions/environments"},
		"github_apps": {"$ref": "#/definitions/githubApps"},
		"custom_properties": {"$ref": "#/definitions/customProperties"},
		"rulesets": {"$ref": "#/definitions/rulesets"},
		"notification_endpoints": {"$ref": "#/definitions/notificationEndpoints"}
	},` + commonDefs + `
}`
