package notification

import "time"

// CreateNotificationRequest carries one notification to be stored and,
// when an email address is known, mailed best-effort.
type CreateNotificationRequest struct {
	RecipientID string
	Email       *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}

// NotificationResponse is the wire shape of one notification.
type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// MarkAsReadRequest lists notification IDs to mark read.
type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}
