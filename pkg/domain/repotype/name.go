// Package repotype validates repository type names and resolves the
// effective type for a repository from template and caller input.
package repotype

import "fmt"

// MaxNameLength is the longest accepted repository type name.
const MaxNameLength = 50

// Name is a validated repository type name.
type Name string

// InvalidFormatError reports a name that violates the format rules.
type InvalidFormatError struct {
	Input  string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid repository type name %q: %s", e.Input, e.Reason)
}

// ParseName validates a repository type name. Names are 1-50 characters
// of lowercase ASCII letters, digits, hyphens, and underscores, and may
// not start or end with a hyphen. The input is never normalized;
// "Library" is rejected, not lowered.
func ParseName(input string) (Name, error) {
	if input == "" {
		return "", &InvalidFormatError{Input: input, Reason: "name cannot be empty"}
	}
	if len(input) > MaxNameLength {
		return "", &InvalidFormatError{Input: input, Reason: fmt.Sprintf("name exceeds %d characters", MaxNameLength)}
	}
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return "", &InvalidFormatError{Input: input, Reason: fmt.Sprintf("character %q is not allowed", c)}
		}
	}
	if input[0] == '-' {
		return "", &InvalidFormatError{Input: input, Reason: "name cannot start with a hyphen"}
	}
	if input[len(input)-1] == '-' {
		return "", &InvalidFormatError{Input: input, Reason: "name cannot end with a hyphen"}
	}
	return Name(input), nil
}

func (n Name) String() string { return string(n) }
