// Package github implements the configuration providers against the
// GitHub API: metadata repository access, template lookup, and billing
// plan detection.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"
)

// NewClient builds an authenticated GitHub API client. An empty
// baseURL targets github.com; otherwise the client talks to a GitHub
// Enterprise Server instance.
func NewClient(ctx context.Context, token, baseURL string) (*github.Client, error) {
	if token == "" {
		return nil, fmt.Errorf("github token cannot be empty")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise base URL: %w", err)
		}
	}
	return client, nil
}

// isNotFound reports whether an API error is a confirmed 404, as
// opposed to a transport failure where the answer is unknown.
func isNotFound(err error) bool {
	var ge *github.ErrorResponse
	return errors.As(err, &ge) && ge.Response != nil && ge.Response.StatusCode == http.StatusNotFound
}
