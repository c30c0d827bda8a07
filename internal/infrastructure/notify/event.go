// Package notify delivers provisioning event notifications to the
// HTTPS endpoints declared in merged configuration, with HMAC-SHA256
// payload signing and retry on failure.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted during provisioning.
const (
	EventRepositoryCreated    = "repository.created"
	EventRepositoryConfigured = "repository.configured"
	EventSettingsApplied      = "settings.applied"
	EventProvisioningFailed   = "provisioning.failed"
)

// Event is one provisioning event. The ID is unique per event, not per
// delivery, so receivers can deduplicate across endpoint retries.
type Event struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	Organization string         `json:"organization"`
	Repository   string         `json:"repository"`
	Timestamp    time.Time      `json:"timestamp"`
	Data         map[string]any `json:"data,omitempty"`
}

// NewEvent builds an event with a fresh ID and timestamp.
func NewEvent(eventType, org, repo string, data map[string]any) Event {
	return Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		Organization: org,
		Repository:   repo,
		Timestamp:    time.Now().UTC(),
		Data:         data,
	}
}
