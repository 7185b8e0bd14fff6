package notification

import "context"

// Repository defines the notification store.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByRecipientID(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	MarkAsRead(ctx context.Context, ids []string, recipientID string) error
}
