package services

import (
	"testing"

	"bnb-ops-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyDefaultsToInfo(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, testConfig())

	user := createTestUser(t, db, "utente@test.it", models.RoleWorker)

	require.NoError(t, svc.Notify(user.ID, "Titolo", "Messaggio", "", "/activities/1"))

	notifications, err := svc.GetUserNotifications(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationInfo, notifications[0].Type)
	assert.False(t, notifications[0].IsRead)
	assert.Equal(t, "/activities/1", notifications[0].Link)
}

func TestMarkAsReadOwnershipScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, testConfig())

	owner := createTestUser(t, db, "owner@test.it", models.RoleWorker)
	other := createTestUser(t, db, "other@test.it", models.RoleWorker)

	require.NoError(t, svc.Notify(owner.ID, "Titolo", "Messaggio", models.NotificationInfo, ""))
	var notification models.Notification
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&notification).Error)

	// 别人的通知无法标记
	err := svc.MarkAsRead(notification.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, svc.MarkAsRead(notification.ID, owner.ID))

	count, err := svc.CountUnread(owner.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkAllAsRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, testConfig())

	user := createTestUser(t, db, "utente@test.it", models.RoleWorker)
	other := createTestUser(t, db, "other@test.it", models.RoleWorker)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(user.ID, "Titolo", "Messaggio", models.NotificationInfo, ""))
	}
	require.NoError(t, svc.Notify(other.ID, "Titolo", "Messaggio", models.NotificationInfo, ""))

	require.NoError(t, svc.MarkAllAsRead(user.ID))

	count, err := svc.CountUnread(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// 其他用户的未读数不受影响
	count, err = svc.CountUnread(other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
