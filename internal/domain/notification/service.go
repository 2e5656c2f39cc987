package notification

import (
	"context"

	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/sse"
)

// NotificationService defines the interface for notification business logic
type NotificationService interface {
	// QueueNotification enqueues a notification for asynchronous delivery.
	// It never blocks the caller; when the queue is full the notification
	// is persisted synchronously instead.
	QueueNotification(ctx context.Context, req CreateNotificationRequest)

	// QueueBulkNotification enqueues the same notification for many recipients.
	QueueBulkNotification(ctx context.Context, recipientIDs []string, req CreateNotificationRequest)

	GetNotifications(ctx context.Context, recipientID string, unreadOnly bool, page, pageSize int) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, recipientID string) (*UnreadCountResponse, error)
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, recipientID, notificationID string) error

	GetPreferences(ctx context.Context, recipientID string) ([]PreferenceResponse, error)
	UpdatePreference(ctx context.Context, recipientID string, req UpdatePreferenceRequest) error

	// Subscribe registers a live event channel for the recipient. The
	// returned cleanup must be called when the consumer disconnects.
	Subscribe(recipientID string) (<-chan sse.Event, func())

	// Stop drains the queue workers. Called on shutdown.
	Stop()
}
