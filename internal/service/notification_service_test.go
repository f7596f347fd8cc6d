package service

import (
	"context"
	"testing"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestNotification(t *testing.T, db *gorm.DB, user *models.User, msg string) *models.Notification {
	t.Helper()
	notif := &models.Notification{UserID: user.ID, Msg: msg}
	require.NoError(t, db.Create(notif).Error)
	return notif
}

func TestMarkNotificationReadOwnerOnly(t *testing.T) {
	db := setupServiceTestDB(t)
	notifs := NewNotificationService(repository.NewNotificationRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	notif := createTestNotification(t, db, alice, "hello")

	err := notifs.MarkRead(context.Background(), bob.ID, notif.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, errCode(t, err))

	require.NoError(t, notifs.MarkRead(context.Background(), alice.ID, notif.ID))

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", notif.ID).Error)
	assert.True(t, stored.Read)
}

func TestMarkAllNotificationsReadIdempotent(t *testing.T) {
	db := setupServiceTestDB(t)
	notifs := NewNotificationService(repository.NewNotificationRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestNotification(t, db, alice, "one")
	createTestNotification(t, db, alice, "two")
	other := createTestNotification(t, db, bob, "not yours")

	require.NoError(t, notifs.MarkAllRead(context.Background(), alice.ID))
	// Running it again on an all-read inbox is a no-op, not an error.
	require.NoError(t, notifs.MarkAllRead(context.Background(), alice.ID))

	var unread int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", alice.ID, false).Count(&unread).Error)
	assert.Zero(t, unread)

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", other.ID).Error)
	assert.False(t, stored.Read)
}

func TestListNotificationsForUser(t *testing.T) {
	db := setupServiceTestDB(t)
	notifs := NewNotificationService(repository.NewNotificationRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestNotification(t, db, alice, "for alice")
	createTestNotification(t, db, bob, "for bob")

	listed, err := notifs.ListForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "for alice", listed[0].Msg)
}
