package services

import (
	"errors"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// 通知相关的业务错误
var (
	ErrNotificationNotFound = errors.New("通知不存在")
)

// InterfaceNotificationService defines the notification service interface
type InterfaceNotificationService interface {
	Notify(userID uint, title, message string, ntype models.NotificationType, link string) error
	GetUserNotifications(userID uint, limit int) ([]models.Notification, error)
	CreateNotification(notification *models.Notification) error
	MarkAsRead(id, userID uint) error
	MarkAllAsRead(userID uint) error
	CountUnread(userID uint) (int64, error)
}

// NotificationService 提供通知相关的服务
type NotificationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewNotificationService 创建一个新的通知服务
func NewNotificationService(db *gorm.DB, cfg *config.Config) InterfaceNotificationService {
	return &NotificationService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Notify 为目标用户追加一条通知记录
// 通知是建议性的，调用方应自行吞掉错误，不让通知失败影响主操作
func (s *NotificationService) Notify(userID uint, title, message string, ntype models.NotificationType, link string) error {
	if ntype == "" {
		ntype = models.NotificationInfo
	}
	notification := &models.Notification{
		Title:   title,
		Message: message,
		Type:    ntype,
		Link:    link,
		UserID:  userID,
	}
	return s.DB.Create(notification).Error
}

// 2 GetUserNotifications 获取用户的通知列表，按时间倒序
func (s *NotificationService) GetUserNotifications(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var notifications []models.Notification
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// 3 CreateNotification 创建一条通知
func (s *NotificationService) CreateNotification(notification *models.Notification) error {
	if notification.Type == "" {
		notification.Type = models.NotificationInfo
	}
	return s.DB.Create(notification).Error
}

// 4 MarkAsRead 将单条通知标记为已读，只能操作自己的通知
func (s *NotificationService) MarkAsRead(id, userID uint) error {
	var notification models.Notification
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return s.DB.Model(&notification).Update("is_read", true).Error
}

// 5 MarkAllAsRead 将用户的全部未读通知标记为已读
func (s *NotificationService) MarkAllAsRead(userID uint) error {
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// 6 CountUnread 统计用户未读通知数
func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
