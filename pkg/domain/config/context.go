package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Context identifies one resolution request: which organization's
// hierarchy applies and which template sits at the top of it. Team and
// RepositoryType are optional; an empty value means the level is
// skipped during resolution.
type Context struct {
	Organization   string    `yaml:"organization" json:"organization"`
	Template       string    `yaml:"template" json:"template"`
	Team           string    `yaml:"team,omitempty" json:"team,omitempty"`
	RepositoryType string    `yaml:"repository_type,omitempty" json:"repository_type,omitempty"`
	RequestID      string    `yaml:"request_id" json:"request_id"`
	CreatedAt      time.Time `yaml:"created_at" json:"created_at"`
}

// NewContext builds a resolution context. Organization and template
// are required and non-empty by construction.
func NewContext(organization, template string) (Context, error) {
	if organization == "" {
		return Context{}, fmt.Errorf("organization cannot be empty")
	}
	if template == "" {
		return Context{}, fmt.Errorf("template cannot be empty")
	}
	return Context{
		Organization: organization,
		Template:     template,
		RequestID:    uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// WithTeam returns a copy of the context scoped to a team.
func (c Context) WithTeam(team string) Context {
	c.Team = team
	return c
}

// WithRepositoryType returns a copy of the context scoped to a
// repository type.
func (c Context) WithRepositoryType(repoType string) Context {
	c.RepositoryType = repoType
	return c
}

// HasTeam reports whether the team level participates in resolution.
func (c Context) HasTeam() bool { return c.Team != "" }

// HasRepositoryType reports whether the repository type level
// participates in resolution.
func (c Context) HasRepositoryType() bool { return c.RepositoryType != "" }

func (c Context) String() string {
	return fmt.Sprintf("%s/%s (team=%q, type=%q)", c.Organization, c.Template, c.Team, c.RepositoryType)
}
