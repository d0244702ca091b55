package services

import (
	"errors"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/infrastructure/config"
	"bnb-ops-service/pkg/utils"

	"gorm.io/gorm"
)

// 房源相关的业务错误
var (
	ErrLocationNotFound = errors.New("房源不存在")
)

// LocationListItem 房源列表项，附带活动数
type LocationListItem struct {
	models.Location
	ActivityCount int64 `json:"activity_count"`
}

// InterfaceLocationService defines the location service interface
type InterfaceLocationService interface {
	GetAllLocations() ([]LocationListItem, error)
	GetLocationByID(id uint) (*models.Location, error)
	CreateLocation(location *models.Location) error
	UpdateLocation(id uint, updates map[string]interface{}) (*models.Location, error)
	DeleteLocation(id uint) error
}

// LocationService 提供房源相关的服务
type LocationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewLocationService 创建一个新的房源服务
func NewLocationService(db *gorm.DB, cfg *config.Config) InterfaceLocationService {
	return &LocationService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllLocations 获取所有房源，按名称排序，附带活动数
func (s *LocationService) GetAllLocations() ([]LocationListItem, error) {
	var locations []models.Location
	if err := s.DB.Order("name ASC").Find(&locations).Error; err != nil {
		return nil, err
	}

	// 统计每个房源的活动数
	type activityCount struct {
		LocationID uint
		Count      int64
	}
	var counts []activityCount
	if err := s.DB.Model(&models.Activity{}).
		Select("location_id, COUNT(*) as count").
		Group("location_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	countByLocation := make(map[uint]int64, len(counts))
	for _, c := range counts {
		countByLocation[c.LocationID] = c.Count
	}

	items := make([]LocationListItem, 0, len(locations))
	for _, l := range locations {
		items = append(items, LocationListItem{Location: l, ActivityCount: countByLocation[l.ID]})
	}

	return items, nil
}

// 2 GetLocationByID 获取房源详情，附带最近的活动、考勤和库存
func (s *LocationService) GetLocationByID(id uint) (*models.Location, error) {
	var location models.Location
	if err := s.DB.
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Preload("Activities.AssignedTo").
		Preload("Inventories").
		Preload("Attendances", func(db *gorm.DB) *gorm.DB {
			return db.Order("check_in_at DESC").Limit(10)
		}).
		Preload("Attendances.User").
		First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &location, nil
}

// 3 CreateLocation 创建新房源并生成唯一的签到二维码
func (s *LocationService) CreateLocation(location *models.Location) error {
	if location.Capacity <= 0 {
		location.Capacity = 1
	}
	if location.Rooms <= 0 {
		location.Rooms = 1
	}
	if location.Bathrooms <= 0 {
		location.Bathrooms = 1
	}
	location.IsActive = true

	// 生成唯一二维码，极小概率冲突时重试
	for attempt := 0; attempt < 3; attempt++ {
		location.QRCode = utils.GenerateQRCodeToken()
		var count int64
		if err := s.DB.Model(&models.Location{}).Where("qr_code = ?", location.QRCode).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			break
		}
	}

	return s.DB.Create(location).Error
}

// 4 UpdateLocation 更新房源信息，二维码不可变更
func (s *LocationService) UpdateLocation(id uint, updates map[string]interface{}) (*models.Location, error) {
	location, err := s.getPlain(id)
	if err != nil {
		return nil, err
	}

	delete(updates, "qr_code")

	if err := s.DB.Model(location).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.getPlain(id)
}

// 5 DeleteLocation 删除房源及其全部关联数据，整体在一个事务内完成：
// 库存、考勤、活动（连同清单项）、房源本身
func (s *LocationService) DeleteLocation(id uint) error {
	location, err := s.getPlain(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 删除关联库存
		if err := tx.Where("location_id = ?", id).Delete(&models.Inventory{}).Error; err != nil {
			return err
		}

		// 删除关联考勤
		if err := tx.Where("location_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}

		// 找出该房源的所有活动，删除它们的清单项
		var activityIDs []uint
		if err := tx.Model(&models.Activity{}).
			Where("location_id = ?", id).
			Pluck("id", &activityIDs).Error; err != nil {
			return err
		}
		if len(activityIDs) > 0 {
			if err := tx.Where("activity_id IN ?", activityIDs).Delete(&models.ChecklistItem{}).Error; err != nil {
				return err
			}
		}

		// 删除关联活动
		if err := tx.Where("location_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
			return err
		}

		// 最后删除房源
		return tx.Delete(location).Error
	})
}

// getPlain 不带关联地加载房源
func (s *LocationService) getPlain(id uint) (*models.Location, error) {
	var location models.Location
	if err := s.DB.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &location, nil
}
