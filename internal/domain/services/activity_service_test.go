package services

import (
	"testing"
	"time"

	"bnb-ops-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newActivityService(t *testing.T) (InterfaceActivityService, *testActivityDeps) {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	deps := &testActivityDeps{
		db:       db,
		admin:    createTestUser(t, db, "admin@test.it", models.RoleAdmin),
		worker:   createTestUser(t, db, "worker@test.it", models.RoleWorker),
		location: createTestLocation(t, db, "Casa Centro", "LOC-001-CENTRO"),
	}
	return NewActivityService(db, cfg, NewNotificationService(db, cfg)), deps
}

type testActivityDeps struct {
	db       *gorm.DB
	admin    *models.User
	worker   *models.User
	location *models.Location
}

func (d *testActivityDeps) notificationsFor(userID uint) []models.Notification {
	var out []models.Notification
	d.db.Where("user_id = ?", userID).Find(&out)
	return out
}

func TestCreateActivityWithChecklist(t *testing.T) {
	svc, deps := newActivityService(t)

	activity, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:          "Manutenzione caldaia",
		Type:           models.ActivityTypeMaintenance,
		LocationID:     deps.location.ID,
		ChecklistItems: []string{"Spegnere caldaia", "Sostituire filtro", "Riaccendere"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, activity.Status)
	assert.Equal(t, models.PriorityMedium, activity.Priority)
	assert.Equal(t, deps.admin.ID, activity.CreatedByID)
	require.Len(t, activity.ChecklistItems, 3)
	// 清单项按输入顺序保存
	assert.Equal(t, "Spegnere caldaia", activity.ChecklistItems[0].Text)
	assert.Equal(t, 0, activity.ChecklistItems[0].ItemOrder)
	assert.Equal(t, "Riaccendere", activity.ChecklistItems[2].Text)
	assert.Equal(t, 2, activity.ChecklistItems[2].ItemOrder)
}

func TestCreateActivityFromTemplate(t *testing.T) {
	svc, deps := newActivityService(t)

	template := models.ActivityTemplate{
		Name: "Pulizia standard",
		Type: models.ActivityTypeCleaning,
		Role: models.RoleHousekeeper,
	}
	require.NoError(t, deps.db.Create(&template).Error)
	for i, title := range []string{"Cambiare lenzuola", "Pulire bagno"} {
		require.NoError(t, deps.db.Create(&models.TemplateStep{
			Title:      title,
			StepOrder:  i,
			IsRequired: true,
			TemplateID: template.ID,
		}).Error)
	}

	activity, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:      "Pulizia camera 2",
		Type:       models.ActivityTypeCleaning,
		LocationID: deps.location.ID,
		TemplateID: &template.ID,
	})
	require.NoError(t, err)

	require.Len(t, activity.ChecklistItems, 2)
	assert.Equal(t, "Cambiare lenzuola", activity.ChecklistItems[0].Text)
	assert.Equal(t, "Pulire bagno", activity.ChecklistItems[1].Text)
}

func TestCreateActivityValidation(t *testing.T) {
	svc, deps := newActivityService(t)

	_, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:      "Attività",
		Type:       "INVALID",
		LocationID: deps.location.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:      "Attività",
		Type:       models.ActivityTypeCleaning,
		LocationID: 999,
	})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestCreateActivityNotifiesAssignee(t *testing.T) {
	svc, deps := newActivityService(t)

	// 未分配时不产生通知
	_, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:      "Senza assegnatario",
		Type:       models.ActivityTypeOther,
		LocationID: deps.location.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, deps.notificationsFor(deps.worker.ID))

	// 分配给员工时通知员工
	_, err = svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:        "Riparare rubinetto",
		Type:         models.ActivityTypeMaintenance,
		LocationID:   deps.location.ID,
		AssignedToID: &deps.worker.ID,
	})
	require.NoError(t, err)

	notifications := deps.notificationsFor(deps.worker.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Nuova attività assegnata", notifications[0].Title)
	assert.Contains(t, notifications[0].Message, "Riparare rubinetto")
	assert.Equal(t, models.NotificationInfo, notifications[0].Type)
}

func TestUpdateActivityStatusTimestamps(t *testing.T) {
	svc, deps := newActivityService(t)

	activity, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:      "Ispezione annuale",
		Type:       models.ActivityTypeInspection,
		LocationID: deps.location.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, activity.StartedAt)
	assert.Nil(t, activity.CompletedAt)

	// 进入 IN_PROGRESS 时写入 started_at
	updated, err := svc.UpdateActivity(asActor(deps.admin), activity.ID, map[string]interface{}{
		"status": "IN_PROGRESS",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.StartedAt)
	assert.Nil(t, updated.CompletedAt)
	firstStart := *updated.StartedAt

	// 完成时写入 completed_at，started_at 保持不变
	updated, err = svc.UpdateActivity(asActor(deps.admin), activity.ID, map[string]interface{}{
		"status": "COMPLETED",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	require.NotNil(t, updated.StartedAt)
	assert.WithinDuration(t, firstStart, *updated.StartedAt, time.Second)
	firstCompleted := *updated.CompletedAt

	// 重新打开再完成，两个时间戳都不被覆盖
	_, err = svc.UpdateActivity(asActor(deps.admin), activity.ID, map[string]interface{}{
		"status": "IN_PROGRESS",
	})
	require.NoError(t, err)
	updated, err = svc.UpdateActivity(asActor(deps.admin), activity.ID, map[string]interface{}{
		"status": "COMPLETED",
	})
	require.NoError(t, err)
	assert.WithinDuration(t, firstStart, *updated.StartedAt, time.Second)
	assert.WithinDuration(t, firstCompleted, *updated.CompletedAt, time.Second)
}

func TestUpdateActivityInvalidStatus(t *testing.T) {
	svc, deps := newActivityService(t)

	activity, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:      "Attività",
		Type:       models.ActivityTypeOther,
		LocationID: deps.location.ID,
	})
	require.NoError(t, err)

	_, err = svc.UpdateActivity(asActor(deps.admin), activity.ID, map[string]interface{}{
		"status": "DONE",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateActivityStatusNotifications(t *testing.T) {
	svc, deps := newActivityService(t)

	activity, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:        "Lavanderia settimanale",
		Type:         models.ActivityTypeLaundry,
		LocationID:   deps.location.ID,
		AssignedToID: &deps.worker.ID,
	})
	require.NoError(t, err)

	// 员工自己完成活动：不通知自己，但通知创建者
	_, err = svc.UpdateActivity(asActor(deps.worker), activity.ID, map[string]interface{}{
		"status": "COMPLETED",
	})
	require.NoError(t, err)

	// 员工只有创建时的分配通知，没有状态变更通知
	workerNotifications := deps.notificationsFor(deps.worker.ID)
	require.Len(t, workerNotifications, 1)
	assert.Equal(t, "Nuova attività assegnata", workerNotifications[0].Title)

	adminNotifications := deps.notificationsFor(deps.admin.ID)
	require.Len(t, adminNotifications, 1)
	assert.Equal(t, "Attività completata", adminNotifications[0].Title)
	assert.Equal(t, models.NotificationSuccess, adminNotifications[0].Type)
}

func TestUpdateActivitySameStatusNoDuplicateNotification(t *testing.T) {
	svc, deps := newActivityService(t)

	activity, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:        "Controllo caldaia",
		Type:         models.ActivityTypeMaintenance,
		LocationID:   deps.location.ID,
		AssignedToID: &deps.worker.ID,
	})
	require.NoError(t, err)

	// 管理员完成活动：分配人收到状态变更通知
	_, err = svc.UpdateActivity(asActor(deps.admin), activity.ID, map[string]interface{}{
		"status": "COMPLETED",
	})
	require.NoError(t, err)
	require.Len(t, deps.notificationsFor(deps.worker.ID), 2)

	// 重复提交相同状态：状态未变化，不产生新通知
	_, err = svc.UpdateActivity(asActor(deps.admin), activity.ID, map[string]interface{}{
		"status": "COMPLETED",
	})
	require.NoError(t, err)
	assert.Len(t, deps.notificationsFor(deps.worker.ID), 2)
}

func TestUpdateActivityReassignmentNotifies(t *testing.T) {
	svc, deps := newActivityService(t)
	other := createTestUser(t, deps.db, "hk@test.it", models.RoleHousekeeper)

	activity, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:      "Pulizia terrazzo",
		Type:       models.ActivityTypeCleaning,
		LocationID: deps.location.ID,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateActivity(asActor(deps.admin), activity.ID, map[string]interface{}{
		"assigned_to_id": other.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedToID)
	assert.Equal(t, other.ID, *updated.AssignedToID)

	notifications := deps.notificationsFor(other.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Nuova attività assegnata", notifications[0].Title)
}

func TestUpdateActivityCreatorImmutable(t *testing.T) {
	svc, deps := newActivityService(t)

	activity, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:      "Attività",
		Type:       models.ActivityTypeOther,
		LocationID: deps.location.ID,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateActivity(asActor(deps.admin), activity.ID, map[string]interface{}{
		"created_by_id": deps.worker.ID,
		"title":         "Titolo aggiornato",
	})
	require.NoError(t, err)
	assert.Equal(t, deps.admin.ID, updated.CreatedByID)
	assert.Equal(t, "Titolo aggiornato", updated.Title)
}

func TestDeleteActivityCascades(t *testing.T) {
	svc, deps := newActivityService(t)

	activity, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:          "Da eliminare",
		Type:           models.ActivityTypeOther,
		LocationID:     deps.location.ID,
		ChecklistItems: []string{"passo 1", "passo 2"},
	})
	require.NoError(t, err)

	require.NoError(t, deps.db.Create(&models.Attendance{
		UserID:     deps.worker.ID,
		LocationID: deps.location.ID,
		ActivityID: &activity.ID,
		CheckInAt:  time.Now(),
	}).Error)

	require.NoError(t, svc.DeleteActivity(activity.ID))

	_, err = svc.GetActivityByID(activity.ID)
	assert.ErrorIs(t, err, ErrActivityNotFound)

	var checklistCount, attendanceCount int64
	deps.db.Model(&models.ChecklistItem{}).Where("activity_id = ?", activity.ID).Count(&checklistCount)
	deps.db.Model(&models.Attendance{}).Where("activity_id = ?", activity.ID).Count(&attendanceCount)
	assert.Zero(t, checklistCount)
	assert.Zero(t, attendanceCount)
}

func TestGetActivitiesScopedByRole(t *testing.T) {
	svc, deps := newActivityService(t)

	mine, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:        "Assegnata a me",
		Type:         models.ActivityTypeCleaning,
		LocationID:   deps.location.ID,
		AssignedToID: &deps.worker.ID,
	})
	require.NoError(t, err)
	_, err = svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
		Title:      "Non assegnata",
		Type:       models.ActivityTypeOther,
		LocationID: deps.location.ID,
	})
	require.NoError(t, err)

	// 普通员工只能看到分配给自己的活动
	activities, err := svc.GetActivities(asActor(deps.worker), ActivityFilter{})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, mine.ID, activities[0].ID)

	// 管理员可以看到全部
	activities, err = svc.GetActivities(asActor(deps.admin), ActivityFilter{})
	require.NoError(t, err)
	assert.Len(t, activities, 2)

	// 按状态过滤
	status := models.StatusCompleted
	activities, err = svc.GetActivities(asActor(deps.admin), ActivityFilter{Status: &status})
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestGetActivitiesPriorityOrder(t *testing.T) {
	svc, deps := newActivityService(t)

	for _, p := range []models.ActivityPriority{models.PriorityLow, models.PriorityUrgent, models.PriorityMedium} {
		_, err := svc.CreateActivity(asActor(deps.admin), CreateActivityRequest{
			Title:      "Attività " + string(p),
			Type:       models.ActivityTypeOther,
			Priority:   p,
			LocationID: deps.location.ID,
		})
		require.NoError(t, err)
	}

	activities, err := svc.GetActivities(asActor(deps.admin), ActivityFilter{})
	require.NoError(t, err)
	require.Len(t, activities, 3)
	// URGENT 排在最前，LOW 排在最后
	assert.Equal(t, models.PriorityUrgent, activities[0].Priority)
	assert.Equal(t, models.PriorityLow, activities[2].Priority)
}
