package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/wathiq-erp/attendance-engine/internal/domain/notification"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/email"
)

type service struct {
	repo  notification.Repository
	email email.EmailService
}

// NewNotificationService creates a new notification service. Dispatch is
// synchronous so callers observe a stable send order.
func NewNotificationService(repo notification.Repository, emailSvc email.EmailService) notification.Service {
	return &service{
		repo:  repo,
		email: emailSvc,
	}
}

// Dispatch stores the in-app notification row and then sends the email
// best-effort. Only the row insert can fail the call.
func (s *service) Dispatch(ctx context.Context, req notification.CreateNotificationRequest) error {
	n := &notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
		IsRead:      false,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if req.Email != nil && *req.Email != "" {
		date, _ := req.Data["date"].(string)
		if err := s.email.SendAttendanceNotice(*req.Email, req.Title, req.Message, date); err != nil {
			slog.Error("failed to send notification email",
				"recipient_id", req.RecipientID,
				"error", err)
		}
	}

	return nil
}

// GetNotifications retrieves paginated notifications for a user
func (s *service) GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]notification.NotificationResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByRecipientID(ctx, recipientID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			Data:      n.Data,
			IsRead:    n.IsRead,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		}
	}

	return responses, total, nil
}

// MarkAsRead marks specified notifications as read
func (s *service) MarkAsRead(ctx context.Context, recipientID string, req notification.MarkAsReadRequest) error {
	if len(req.NotificationIDs) == 0 {
		return nil
	}
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, recipientID)
}
