package services

import (
	"testing"
	"time"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	user := &models.User{
		Email:    "nuovo@test.it",
		Password: "password123",
		Name:     "Nuovo Operatore",
		Role:     models.RoleWorker,
	}
	require.NoError(t, svc.CreateUser(user))

	assert.NotEqual(t, "password123", user.Password)
	assert.True(t, utils.CheckPasswordHash("password123", user.Password))
	assert.True(t, user.IsActive)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	createTestUser(t, db, "preso@test.it", models.RoleWorker)

	err := svc.CreateUser(&models.User{
		Email:    "preso@test.it",
		Password: "password123",
		Name:     "Duplicato",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateUserEmailUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	createTestUser(t, db, "occupata@test.it", models.RoleWorker)
	user := createTestUser(t, db, "libera@test.it", models.RoleWorker)

	_, err := svc.UpdateUser(user.ID, map[string]interface{}{"email": "occupata@test.it"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	updated, err := svc.UpdateUser(user.ID, map[string]interface{}{"name": "Nome Nuovo"})
	require.NoError(t, err)
	assert.Equal(t, "Nome Nuovo", updated.Name)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	user := createTestUser(t, db, "utente@test.it", models.RoleWorker)

	updated, err := svc.UpdateUser(user.ID, map[string]interface{}{"password": "nuova-password"})
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("nuova-password", updated.Password))

	// 空密码不触发更新
	before := updated.Password
	updated, err = svc.UpdateUser(user.ID, map[string]interface{}{"password": "", "name": "Aggiornato"})
	require.NoError(t, err)
	assert.Equal(t, before, updated.Password)
}

func TestDeleteUserSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	admin := createTestUser(t, db, "admin@test.it", models.RoleAdmin)

	err := svc.DeleteUser(asActor(admin), admin.ID)
	assert.ErrorIs(t, err, ErrDeleteSelf)
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	admin := createTestUser(t, db, "admin@test.it", models.RoleAdmin)
	victim := createTestUser(t, db, "victim@test.it", models.RoleOperator)
	colleague := createTestUser(t, db, "collega@test.it", models.RoleWorker)
	location := createTestLocation(t, db, "Casa Centro", "LOC-001-CENTRO")

	// victim 创建的活动，带清单项，colleague 的考勤引用该活动
	created := models.Activity{
		Title:       "Creata da victim",
		Type:        models.ActivityTypeCleaning,
		Status:      models.StatusPending,
		LocationID:  location.ID,
		CreatedByID: victim.ID,
	}
	require.NoError(t, db.Create(&created).Error)
	require.NoError(t, db.Create(&models.ChecklistItem{
		Text: "passo", ActivityID: created.ID,
	}).Error)
	require.NoError(t, db.Create(&models.Attendance{
		UserID:     colleague.ID,
		LocationID: location.ID,
		ActivityID: &created.ID,
		CheckInAt:  time.Now(),
	}).Error)

	// admin 创建但分配给 victim 的活动
	assigned := models.Activity{
		Title:        "Assegnata a victim",
		Type:         models.ActivityTypeMaintenance,
		Status:       models.StatusPending,
		LocationID:   location.ID,
		CreatedByID:  admin.ID,
		AssignedToID: &victim.ID,
	}
	require.NoError(t, db.Create(&assigned).Error)

	// victim 自己的考勤和通知
	require.NoError(t, db.Create(&models.Attendance{
		UserID: victim.ID, LocationID: location.ID, CheckInAt: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.Notification{
		Title: "test", Message: "test", UserID: victim.ID,
	}).Error)

	require.NoError(t, svc.DeleteUser(asActor(admin), victim.ID))

	// 用户本体已删除
	_, err := svc.GetUserByID(victim.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// victim 创建的活动连同清单项被删除
	var count int64
	db.Model(&models.Activity{}).Where("id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.ChecklistItem{}).Where("activity_id = ?", created.ID).Count(&count)
	assert.Zero(t, count)

	// colleague 的考勤保留，但活动引用被解除
	var attendance models.Attendance
	require.NoError(t, db.Where("user_id = ?", colleague.ID).First(&attendance).Error)
	assert.Nil(t, attendance.ActivityID)

	// 分配给 victim 的活动保留，分配被解除
	var survivor models.Activity
	require.NoError(t, db.First(&survivor, assigned.ID).Error)
	assert.Nil(t, survivor.AssignedToID)

	// victim 的考勤和通知被删除
	db.Model(&models.Attendance{}).Where("user_id = ?", victim.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Notification{}).Where("user_id = ?", victim.ID).Count(&count)
	assert.Zero(t, count)
}

func TestGetAllUsersPaginationAndCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	admin := createTestUser(t, db, "admin@test.it", models.RoleAdmin)
	worker := createTestUser(t, db, "mario@test.it", models.RoleWorker)
	createTestUser(t, db, "lucia@test.it", models.RoleHousekeeper)
	location := createTestLocation(t, db, "Casa Centro", "LOC-001-CENTRO")

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Activity{
			Title:        "Attività",
			Type:         models.ActivityTypeCleaning,
			Status:       models.StatusPending,
			LocationID:   location.ID,
			CreatedByID:  admin.ID,
			AssignedToID: &worker.ID,
		}).Error)
	}

	items, total, err := svc.GetAllUsers(1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 3)

	counts := make(map[string]int64)
	for _, item := range items {
		counts[item.Email] = item.AssignedCount
	}
	assert.Equal(t, int64(2), counts["mario@test.it"])
	assert.Zero(t, counts["admin@test.it"])

	// 搜索过滤
	items, total, err = svc.GetAllUsers(1, 10, "mario")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "mario@test.it", items[0].Email)

	// 分页
	items, total, err = svc.GetAllUsers(2, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 1)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	hashed, err := utils.HashPassword("vecchia-password")
	require.NoError(t, err)
	user := &models.User{
		Email:    "utente@test.it",
		Password: hashed,
		Name:     "Utente",
		Role:     models.RoleWorker,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	// 当前密码错误
	err = svc.ChangePassword(user.ID, "sbagliata", "nuova-password")
	assert.ErrorIs(t, err, ErrWrongPassword)

	// 当前密码正确
	require.NoError(t, svc.ChangePassword(user.ID, "vecchia-password", "nuova-password"))

	reloaded, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("nuova-password", reloaded.Password))
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	user := createTestUser(t, db, "utente@test.it", models.RoleWorker)

	updated, err := svc.UpdateProfile(user.ID, "Mario Rossi", "+39 333 1234567")
	require.NoError(t, err)
	assert.Equal(t, "Mario Rossi", updated.Name)
	assert.Equal(t, "+39 333 1234567", updated.Phone)

	// 空字段不覆盖已有值
	updated, err = svc.UpdateProfile(user.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Mario Rossi", updated.Name)
}
