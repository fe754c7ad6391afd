package notification

import (
	"context"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
)

// Service defines the notification service interface
type Service interface {
	// Queue notification (async processing via background workers)
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error

	// Subscribe streams the notifications visible to the session
	Subscribe(ctx context.Context, session user.Session) (<-chan NotificationResponse, func())

	// Lifecycle
	Stop()
}
