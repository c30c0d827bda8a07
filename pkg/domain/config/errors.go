package config

import "fmt"

// Level identifies one of the four configuration levels, ordered by
// ascending precedence.
type Level string

const (
	LevelGlobal         Level = "global"
	LevelRepositoryType Level = "repository_type"
	LevelTeam           Level = "team"
	LevelTemplate       Level = "template"
)

// OverrideNotAllowedError reports that a lower level declared a value
// for a field the global defaults lock down. Declaring the field at all
// is the violation; matching the global value does not excuse it.
type OverrideNotAllowedError struct {
	Field          string
	Level          Level
	AttemptedValue string
	GlobalValue    string
}

func (e *OverrideNotAllowedError) Error() string {
	return fmt.Sprintf("field %s is fixed by global defaults (value %s) and cannot be overridden at %s level (attempted %s)",
		e.Field, e.GlobalValue, e.Level, e.AttemptedValue)
}

// NotFoundError reports a missing configuration document.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s configuration not found: %s", e.Kind, e.Name)
}
