package notification

import "context"

// Service dispatches and reads notifications. Dispatch is synchronous
// and in caller order so a run's sends stay deterministic.
type Service interface {
	// Dispatch stores one notification row and best-effort sends one
	// email when the request carries an address. Email failures are
	// logged and swallowed; only the row insert can fail.
	Dispatch(ctx context.Context, req CreateNotificationRequest) error

	// GetNotifications retrieves paginated notifications for a user.
	GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]NotificationResponse, int, error)

	// MarkAsRead marks the given notifications read.
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error
}
