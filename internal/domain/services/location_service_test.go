package services

import (
	"strings"
	"testing"
	"time"

	"bnb-ops-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLocationGeneratesQRCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db, testConfig())

	location := &models.Location{
		Name:    "Casa Centro",
		Address: "Via Roma 1",
		City:    "Milano",
	}
	require.NoError(t, svc.CreateLocation(location))

	assert.True(t, strings.HasPrefix(location.QRCode, "LOC-"))
	assert.True(t, location.IsActive)
	// 未提供的数值字段回退为1
	assert.Equal(t, 1, location.Capacity)
	assert.Equal(t, 1, location.Rooms)
	assert.Equal(t, 1, location.Bathrooms)

	// 每个房源的二维码唯一
	second := &models.Location{Name: "Casa Mare", City: "Genova"}
	require.NoError(t, svc.CreateLocation(second))
	assert.NotEqual(t, location.QRCode, second.QRCode)
}

func TestUpdateLocationQRCodeImmutable(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db, testConfig())

	location := createTestLocation(t, db, "Casa Centro", "LOC-001-CENTRO")

	updated, err := svc.UpdateLocation(location.ID, map[string]interface{}{
		"name":    "Casa Centro Rinnovata",
		"qr_code": "LOC-HACKED",
	})
	require.NoError(t, err)
	assert.Equal(t, "Casa Centro Rinnovata", updated.Name)
	assert.Equal(t, "LOC-001-CENTRO", updated.QRCode)
}

func TestGetAllLocationsWithActivityCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db, testConfig())

	admin := createTestUser(t, db, "admin@test.it", models.RoleAdmin)
	busy := createTestLocation(t, db, "Casa Centro", "LOC-001-CENTRO")
	createTestLocation(t, db, "Casa Mare", "LOC-002-MARE")

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Activity{
			Title:       "Attività",
			Type:        models.ActivityTypeCleaning,
			Status:      models.StatusPending,
			LocationID:  busy.ID,
			CreatedByID: admin.ID,
		}).Error)
	}

	items, err := svc.GetAllLocations()
	require.NoError(t, err)
	require.Len(t, items, 2)
	// 按名称排序
	assert.Equal(t, "Casa Centro", items[0].Name)
	assert.Equal(t, int64(2), items[0].ActivityCount)
	assert.Zero(t, items[1].ActivityCount)
}

func TestDeleteLocationCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db, testConfig())

	admin := createTestUser(t, db, "admin@test.it", models.RoleAdmin)
	worker := createTestUser(t, db, "worker@test.it", models.RoleWorker)
	location := createTestLocation(t, db, "Casa Centro", "LOC-001-CENTRO")

	activity := models.Activity{
		Title:       "Attività",
		Type:        models.ActivityTypeCleaning,
		Status:      models.StatusPending,
		LocationID:  location.ID,
		CreatedByID: admin.ID,
	}
	require.NoError(t, db.Create(&activity).Error)
	require.NoError(t, db.Create(&models.ChecklistItem{Text: "passo", ActivityID: activity.ID}).Error)
	require.NoError(t, db.Create(&models.Inventory{Name: "Asciugamani", LocationID: location.ID}).Error)
	require.NoError(t, db.Create(&models.Attendance{
		UserID: worker.ID, LocationID: location.ID, CheckInAt: time.Now(),
	}).Error)

	require.NoError(t, svc.DeleteLocation(location.ID))

	_, err := svc.GetLocationByID(location.ID)
	assert.ErrorIs(t, err, ErrLocationNotFound)

	var count int64
	for _, model := range []interface{}{
		&models.Activity{}, &models.Inventory{}, &models.Attendance{},
	} {
		db.Model(model).Where("location_id = ?", location.ID).Count(&count)
		assert.Zero(t, count)
	}
	db.Model(&models.ChecklistItem{}).Where("activity_id = ?", activity.ID).Count(&count)
	assert.Zero(t, count)
}
