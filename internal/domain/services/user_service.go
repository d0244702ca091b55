package services

import (
	"errors"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/infrastructure/config"
	"bnb-ops-service/pkg/utils"

	"gorm.io/gorm"
)

// 用户相关的业务错误
var (
	ErrUserNotFound  = errors.New("用户不存在")
	ErrEmailTaken    = errors.New("邮箱已被使用")
	ErrDeleteSelf    = errors.New("不能删除自己的账户")
	ErrPasswordHash  = errors.New("密码加密失败")
	ErrWrongPassword = errors.New("当前密码不正确")
)

// UserListItem 用户列表项，附带分配给该用户的活动数
type UserListItem struct {
	models.User
	AssignedCount int64 `json:"assigned_count"`
}

// InterfaceUserService defines the user service interface
type InterfaceUserService interface {
	GetAllUsers(page, pageSize int, search string) ([]UserListItem, int64, error)
	GetUserByID(id uint) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(id uint, updates map[string]interface{}) (*models.User, error)
	DeleteUser(actor ActingUser, id uint) error
	UpdateProfile(userID uint, name, phone string) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

// UserService 提供员工账户相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllUsers 获取用户列表，支持分页和搜索，附带分配活动数
func (s *UserService) GetAllUsers(page, pageSize int, search string) ([]UserListItem, int64, error) {
	var users []models.User
	var total int64

	query := s.DB.Model(&models.User{})

	// 如果有搜索关键词，添加搜索条件
	if search != "" {
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Order("name ASC").Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	// 统计每个用户被分配的活动数
	type assignedCount struct {
		AssignedToID uint
		Count        int64
	}
	var counts []assignedCount
	if err := s.DB.Model(&models.Activity{}).
		Select("assigned_to_id, COUNT(*) as count").
		Where("assigned_to_id IS NOT NULL").
		Group("assigned_to_id").
		Scan(&counts).Error; err != nil {
		return nil, 0, err
	}
	countByUser := make(map[uint]int64, len(counts))
	for _, c := range counts {
		countByUser[c.AssignedToID] = c.Count
	}

	items := make([]UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, UserListItem{User: u, AssignedCount: countByUser[u.ID]})
	}

	return items, total, nil
}

// 2 GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// 3 CreateUser 创建新用户
func (s *UserService) CreateUser(user *models.User) error {
	// 验证邮箱唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	// 密码哈希处理
	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		return ErrPasswordHash
	}
	user.Password = hashedPassword
	user.IsActive = true

	return s.DB.Create(user).Error
}

// 4 UpdateUser 更新用户信息
func (s *UserService) UpdateUser(id uint, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新邮箱，需要检查唯一性
	if email, ok := updates["email"].(string); ok && email != user.Email {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("email = ? AND id != ?", email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
	}

	// 如果更新密码，需要进行哈希处理
	if password, ok := updates["password"].(string); ok {
		if password == "" {
			delete(updates, "password")
		} else {
			hashedPassword, err := utils.HashPassword(password)
			if err != nil {
				return nil, ErrPasswordHash
			}
			updates["password"] = hashedPassword
		}
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(id)
}

// 5 DeleteUser 删除用户及其关联数据，整体在一个事务内完成：
// 删除其通知和考勤，删除其创建的活动（连同清单项），解除分配给他的活动
func (s *UserService) DeleteUser(actor ActingUser, id uint) error {
	if actor.ID == id {
		return ErrDeleteSelf
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 删除该用户的通知
		if err := tx.Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		// 删除该用户的考勤记录
		if err := tx.Where("user_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}

		// 找出该用户创建的活动
		var createdIDs []uint
		if err := tx.Model(&models.Activity{}).
			Where("created_by_id = ?", id).
			Pluck("id", &createdIDs).Error; err != nil {
			return err
		}

		if len(createdIDs) > 0 {
			// 删除这些活动的清单项
			if err := tx.Where("activity_id IN ?", createdIDs).Delete(&models.ChecklistItem{}).Error; err != nil {
				return err
			}
			// 其他用户的考勤可能引用这些活动，先解除引用
			if err := tx.Model(&models.Attendance{}).
				Where("activity_id IN ?", createdIDs).
				Update("activity_id", nil).Error; err != nil {
				return err
			}
			// 删除该用户创建的活动
			if err := tx.Where("created_by_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
				return err
			}
		}

		// 解除分配给该用户的活动（不删除活动本身）
		if err := tx.Model(&models.Activity{}).
			Where("assigned_to_id = ?", id).
			Update("assigned_to_id", nil).Error; err != nil {
			return err
		}

		// 最后删除用户
		return tx.Delete(user).Error
	})
}

// 6 UpdateProfile 更新当前用户的姓名和电话
func (s *UserService) UpdateProfile(userID uint, name, phone string) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if phone != "" {
		updates["phone"] = phone
	}
	if len(updates) > 0 {
		if err := s.DB.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetUserByID(userID)
}

// 7 ChangePassword 修改当前用户密码，需要校验当前密码
func (s *UserService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(currentPassword, user.Password) {
		return ErrWrongPassword
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return ErrPasswordHash
	}

	return s.DB.Model(user).Update("password", hashedPassword).Error
}
