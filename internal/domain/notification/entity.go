package notification

import (
	"time"
)

// NotificationType classifies a notification for preferences and display.
type NotificationType string

const (
	TypeLeaveStatus NotificationType = "LeaveStatus"
	TypeSystemAlert NotificationType = "SystemAlert"
	TypeGeneral     NotificationType = "General"
	TypeAttendance  NotificationType = "Attendance"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeLeaveStatus,
		TypeSystemAlert,
		TypeGeneral,
		TypeAttendance,
	}
}

// Notification is the durable record. Persistence is at-least-once; the
// live push that may follow is best-effort.
type Notification struct {
	ID             string
	RecipientID    string
	SenderID       *string
	Type           NotificationType
	Title          string
	Message        string
	RelatedLeaveID *string
	SentInApp      bool
	SentEmail      bool
	IsRead         bool
	ReadAt         *time.Time
	CreatedAt      time.Time
}

// Preference is a per-user toggle per notification type.
type Preference struct {
	ID           string
	UserID       string
	Type         NotificationType
	InAppEnabled bool
	EmailEnabled bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
