package notification

import "time"

type NotificationType string

const (
	TypeAttendance NotificationType = "attendance"
)

// Notification is one in-app notification row.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
