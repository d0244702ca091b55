package services

import (
	"errors"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// 库存相关的业务错误
var (
	ErrInventoryNotFound = errors.New("库存物品不存在")
)

// InterfaceInventoryService defines the inventory service interface
type InterfaceInventoryService interface {
	GetAllItems(locationID *uint) ([]models.Inventory, error)
	GetItemByID(id uint) (*models.Inventory, error)
	CreateItem(item *models.Inventory) error
	UpdateItem(id uint, updates map[string]interface{}) (*models.Inventory, error)
	DeleteItem(id uint) error
	CountLowStock() (int64, error)
}

// InventoryService 提供库存相关的服务
type InventoryService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewInventoryService 创建一个新的库存服务
func NewInventoryService(db *gorm.DB, cfg *config.Config) InterfaceInventoryService {
	return &InventoryService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllItems 获取库存物品列表，按分类和名称排序
func (s *InventoryService) GetAllItems(locationID *uint) ([]models.Inventory, error) {
	query := s.DB.Model(&models.Inventory{})
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}

	var items []models.Inventory
	if err := query.
		Preload("Location").
		Order("category ASC").
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// 2 GetItemByID 获取单个库存物品
func (s *InventoryService) GetItemByID(id uint) (*models.Inventory, error) {
	var item models.Inventory
	if err := s.DB.Preload("Location").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return &item, nil
}

// 3 CreateItem 创建库存物品
func (s *InventoryService) CreateItem(item *models.Inventory) error {
	// 房源必须存在
	var count int64
	if err := s.DB.Model(&models.Location{}).Where("id = ?", item.LocationID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrLocationNotFound
	}

	if item.Unit == "" {
		item.Unit = "pz"
	}

	return s.DB.Create(item).Error
}

// 4 UpdateItem 更新库存物品
func (s *InventoryService) UpdateItem(id uint, updates map[string]interface{}) (*models.Inventory, error) {
	item, err := s.GetItemByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(item).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetItemByID(id)
}

// 5 DeleteItem 删除库存物品
func (s *InventoryService) DeleteItem(id uint) error {
	item, err := s.GetItemByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(item).Error
}

// 6 CountLowStock 统计低于警戒线的库存物品数
func (s *InventoryService) CountLowStock() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Inventory{}).
		Where("quantity <= min_quantity").
		Count(&count).Error
	return count, err
}
