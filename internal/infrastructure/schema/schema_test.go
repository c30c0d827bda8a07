package schema

import (
	"errors"
	"testing"
)

func TestValidateGlobalDefaults(t *testing.T) {
	valid := []byte(`
repository:
  wiki:
    value: false
    override_allowed: false
  issues: true
repository_visibility:
  enforcement_level: restricted
  restricted_visibilities: [public]
labels:
  - name: bug
    color: d73a4a
`)
	if err := Validate(KindGlobalDefaults, valid); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
}

func TestValidateRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		doc  string
	}{
		{"wiki as string", KindGlobalDefaults, "repository:\n  wiki: \"yes\"\n"},
		{"unknown repository field", KindGlobalDefaults, "repository:\n  stars: true\n"},
		{"bad visibility enum", KindGlobalDefaults, "repository_visibility:\n  enforcement_level: required\n  required_visibility: secret\n"},
		{"label without color", KindTeamConfig, "labels:\n  - name: bug\n"},
		{"webhook without events", KindTypeConfig, "webhooks:\n  - url: https://ci.example.com\n"},
		{"http notification endpoint", KindTeamConfig, "notification_endpoints:\n  - url: http://hooks.example.com\n    events: [repository.created]\n"},
		{"template without name", KindTemplateConfig, "template:\n  description: a template\n"},
		{"bad template type policy", KindTemplateConfig, "template:\n  name: svc\nrepository_type:\n  type: library\n  policy: mandatory\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.kind, []byte(tt.doc))
			if err == nil {
				t.Fatal("document accepted, want validation error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("error type = %T, want *ValidationError", err)
			}
		})
	}
}

func TestValidateAcceptsEmptyDocument(t *testing.T) {
	if err := Validate(KindTeamConfig, nil); err != nil {
		t.Errorf("empty team config rejected: %v", err)
	}
}

func TestValidateRejectsMalformedYAML(t *testing.T) {
	if err := Validate(KindGlobalDefaults, []byte("repository: [unclosed")); err == nil {
		t.Error("malformed YAML accepted")
	}
}
