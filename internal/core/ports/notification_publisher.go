package ports

import (
	"context"

	"rental/internal/core/domain/services"
)

// NotificationPublisher hands a status notification to the external
// multi-channel notification collaborator. Publishing is best-effort:
// a failure is logged by the caller and never rolls back the status
// change that produced the notification.
type NotificationPublisher interface {
	// Publish sends one notification payload.
	Publish(ctx context.Context, notification services.StatusNotification) error

	// Close releases the underlying transport.
	Close() error
}
