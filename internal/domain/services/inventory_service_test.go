package services

import (
	"testing"

	"bnb-ops-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemRequiresLocation(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db, testConfig())

	err := svc.CreateItem(&models.Inventory{Name: "Asciugamani", LocationID: 999})
	assert.ErrorIs(t, err, ErrLocationNotFound)

	location := createTestLocation(t, db, "Casa Centro", "LOC-001-CENTRO")
	item := &models.Inventory{Name: "Asciugamani", LocationID: location.ID}
	require.NoError(t, svc.CreateItem(item))
	// 未指定单位时默认为 pz
	assert.Equal(t, "pz", item.Unit)
}

func TestGetAllItemsFilterByLocation(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db, testConfig())

	first := createTestLocation(t, db, "Casa Centro", "LOC-001-CENTRO")
	second := createTestLocation(t, db, "Casa Mare", "LOC-002-MARE")

	require.NoError(t, svc.CreateItem(&models.Inventory{Name: "Asciugamani", Category: "Bagno", LocationID: first.ID}))
	require.NoError(t, svc.CreateItem(&models.Inventory{Name: "Lenzuola", Category: "Camera", LocationID: first.ID}))
	require.NoError(t, svc.CreateItem(&models.Inventory{Name: "Sapone", Category: "Bagno", LocationID: second.ID}))

	items, err := svc.GetAllItems(nil)
	require.NoError(t, err)
	require.Len(t, items, 3)
	// 按分类再按名称排序
	assert.Equal(t, "Asciugamani", items[0].Name)
	assert.Equal(t, "Sapone", items[1].Name)
	assert.Equal(t, "Lenzuola", items[2].Name)

	items, err = svc.GetAllItems(&second.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Sapone", items[0].Name)
}

func TestUpdateAndDeleteItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db, testConfig())

	location := createTestLocation(t, db, "Casa Centro", "LOC-001-CENTRO")
	item := &models.Inventory{Name: "Asciugamani", Quantity: 10, MinQuantity: 3, LocationID: location.ID}
	require.NoError(t, svc.CreateItem(item))

	updated, err := svc.UpdateItem(item.ID, map[string]interface{}{"quantity": 2})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)
	assert.True(t, updated.IsLowStock())

	require.NoError(t, svc.DeleteItem(item.ID))
	_, err = svc.GetItemByID(item.ID)
	assert.ErrorIs(t, err, ErrInventoryNotFound)
}

func TestCountLowStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db, testConfig())

	location := createTestLocation(t, db, "Casa Centro", "LOC-001-CENTRO")
	require.NoError(t, svc.CreateItem(&models.Inventory{Name: "Asciugamani", Quantity: 2, MinQuantity: 5, LocationID: location.ID}))
	require.NoError(t, svc.CreateItem(&models.Inventory{Name: "Sapone", Quantity: 5, MinQuantity: 5, LocationID: location.ID}))
	require.NoError(t, svc.CreateItem(&models.Inventory{Name: "Lenzuola", Quantity: 20, MinQuantity: 5, LocationID: location.ID}))

	// quantity <= min_quantity 计为低库存
	count, err := svc.CountLowStock()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
