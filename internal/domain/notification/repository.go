package notification

import (
	"context"
)

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	List(ctx context.Context, recipientID string, unreadOnly bool, page, pageSize int) ([]*Notification, int, error)
	UnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, recipientID string, notificationIDs []string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, recipientID, notificationID string) error

	IsNotificationEnabled(ctx context.Context, recipientID string, notifType NotificationType) (bool, error)
	ListPreferences(ctx context.Context, recipientID string) ([]*Preference, error)
	UpsertPreference(ctx context.Context, p *Preference) error
}
