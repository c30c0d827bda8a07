package application

import (
	"context"

	"github.com/repoforge/repoforge/internal/infrastructure/notify"
	"github.com/repoforge/repoforge/pkg/domain/config"
)

// NotificationService publishes provisioning events to the endpoints a
// merged configuration declares.
type NotificationService struct {
	notifier *notify.Notifier
}

// NewNotificationService creates the notification orchestrator.
func NewNotificationService(notifier *notify.Notifier) *NotificationService {
	return &NotificationService{notifier: notifier}
}

// Publish sends one event about a repository to every active endpoint
// in the merged configuration. Delivery problems are dead-lettered by
// the notifier and never surface here.
func (s *NotificationService) Publish(ctx context.Context, merged *config.MergedConfiguration, repository, eventType string, data map[string]any) {
	endpoints := merged.ActiveNotificationEndpoints()
	if len(endpoints) == 0 {
		return
	}
	event := notify.NewEvent(eventType, merged.Context.Organization, repository, data)
	s.notifier.Notify(ctx, endpoints, event)
}
