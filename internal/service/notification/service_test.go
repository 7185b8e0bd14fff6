package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wathiq-erp/attendance-engine/internal/domain/notification"
)

type fakeRepo struct {
	created   []*notification.Notification
	createErr error
	marked    [][]string
}

func (f *fakeRepo) Create(ctx context.Context, n *notification.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeRepo) GetByRecipientID(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	return f.created, len(f.created), nil
}

func (f *fakeRepo) MarkAsRead(ctx context.Context, ids []string, recipientID string) error {
	f.marked = append(f.marked, ids)
	return nil
}

type fakeEmail struct {
	sent    []string
	sendErr error
}

func (f *fakeEmail) SendAttendanceNotice(to, title, message, date string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	return nil
}

func strPtr(s string) *string { return &s }

func TestDispatch_StoresRowAndSendsEmail(t *testing.T) {
	repo := &fakeRepo{}
	mail := &fakeEmail{}
	svc := NewNotificationService(repo, mail)

	err := svc.Dispatch(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Email:       strPtr("e1@example.com"),
		Type:        notification.TypeAttendance,
		Title:       "تسجيل الحضور",
		Message:     "تم تسجيل حضورك",
		Data:        map[string]interface{}{"date": "2025-04-07"},
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "user-1", n.RecipientID)
	assert.False(t, n.IsRead)
	assert.Equal(t, []string{"e1@example.com"}, mail.sent)
}

func TestDispatch_EmailFailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{}
	mail := &fakeEmail{sendErr: errors.New("connection refused")}
	svc := NewNotificationService(repo, mail)

	err := svc.Dispatch(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Email:       strPtr("e1@example.com"),
		Type:        notification.TypeAttendance,
		Title:       "t",
		Message:     "m",
	})
	require.NoError(t, err)
	assert.Len(t, repo.created, 1)
}

func TestDispatch_NoEmailAddressSkipsSend(t *testing.T) {
	repo := &fakeRepo{}
	mail := &fakeEmail{}
	svc := NewNotificationService(repo, mail)

	err := svc.Dispatch(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Type:        notification.TypeAttendance,
		Title:       "t",
		Message:     "m",
	})
	require.NoError(t, err)
	assert.Empty(t, mail.sent)
}

func TestDispatch_CreateFailurePropagates(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("insert failed")}
	mail := &fakeEmail{}
	svc := NewNotificationService(repo, mail)

	err := svc.Dispatch(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Email:       strPtr("e1@example.com"),
		Type:        notification.TypeAttendance,
		Title:       "t",
		Message:     "m",
	})
	require.Error(t, err)
	assert.Empty(t, mail.sent)
}

func TestGetNotifications_ClampsPaging(t *testing.T) {
	repo := &fakeRepo{created: []*notification.Notification{
		{ID: "n1", RecipientID: "user-1", Type: notification.TypeAttendance, CreatedAt: time.Now()},
	}}
	svc := NewNotificationService(repo, &fakeEmail{})

	responses, total, err := svc.GetNotifications(context.Background(), "user-1", 0, 500, false)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, responses, 1)
	assert.Equal(t, "n1", responses[0].ID)
}

func TestMarkAsRead_EmptyIsNoop(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, &fakeEmail{})

	err := svc.MarkAsRead(context.Background(), "user-1", notification.MarkAsReadRequest{})
	require.NoError(t, err)
	assert.Empty(t, repo.marked)
}
