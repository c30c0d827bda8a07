package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestOverridableUnmarshalExplicitForm(t *testing.T) {
	var doc struct {
		Wiki *Overridable[bool] `yaml:"wiki"`
	}
	input := "wiki:\n  value: true\n  override_allowed: false\n"
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Wiki == nil {
		t.Fatal("wiki not decoded")
	}
	if doc.Wiki.Value != true || doc.Wiki.OverrideAllowed != false {
		t.Errorf("got %+v, want value=true override_allowed=false", doc.Wiki)
	}
}

func TestOverridableUnmarshalBareValue(t *testing.T) {
	var doc struct {
		Branch *Overridable[string] `yaml:"branch"`
		Count  *Overridable[int]    `yaml:"count"`
	}
	input := "branch: main\ncount: 2\n"
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Branch.Value != "main" || !doc.Branch.OverrideAllowed {
		t.Errorf("bare string should decode as overridable, got %+v", doc.Branch)
	}
	if doc.Count.Value != 2 || !doc.Count.OverrideAllowed {
		t.Errorf("bare int should decode as overridable, got %+v", doc.Count)
	}
}

func TestOverridableUnmarshalExplicitFormOmittedFlag(t *testing.T) {
	var doc struct {
		Wiki *Overridable[bool] `yaml:"wiki"`
	}
	// Mapping form with the flag omitted locks the field down: the
	// zero value of override_allowed is false.
	input := "wiki:\n  value: false\n"
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Wiki.Value != false || doc.Wiki.OverrideAllowed {
		t.Errorf("got %+v, want value=false override_allowed=false", doc.Wiki)
	}
}

func TestOverridableUnmarshalListValue(t *testing.T) {
	var doc struct {
		Checks *Overridable[[]string] `yaml:"checks"`
	}
	input := "checks:\n  value: [build, test]\n  override_allowed: true\n"
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Checks.Value) != 2 || doc.Checks.Value[0] != "build" {
		t.Errorf("got %+v", doc.Checks)
	}
	if !doc.Checks.OverrideAllowed {
		t.Error("override_allowed should be true")
	}
}

func TestTryOverride(t *testing.T) {
	locked := Fixed("main").TryOverride("develop")
	if locked.Value != "main" || locked.OverrideAllowed {
		t.Errorf("locked value changed: %+v", locked)
	}
	open := CanOverride("main").TryOverride("develop")
	if open.Value != "develop" || !open.OverrideAllowed {
		t.Errorf("open value not replaced: %+v", open)
	}
}

func TestOverridableConstructors(t *testing.T) {
	f := Fixed(3)
	if f.Value != 3 || f.OverrideAllowed {
		t.Errorf("Fixed(3) = %+v", f)
	}
	c := CanOverride("main")
	if c.Value != "main" || !c.OverrideAllowed {
		t.Errorf("CanOverride(main) = %+v", c)
	}
}
