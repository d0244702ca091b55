package services

import (
	"errors"
	"fmt"
	"time"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/infrastructure/config"
	"bnb-ops-service/pkg/logger"

	"gorm.io/gorm"
)

// 活动相关的业务错误
var (
	ErrActivityNotFound = errors.New("活动不存在")
	ErrInvalidType      = errors.New("活动类型无效")
	ErrInvalidStatus    = errors.New("活动状态无效")
)

// CreateActivityRequest 创建活动的参数
type CreateActivityRequest struct {
	Title          string
	Description    string
	Type           models.ActivityType
	Priority       models.ActivityPriority
	LocationID     uint
	AssignedToID   *uint
	ScheduledAt    *time.Time
	DueDate        *time.Time
	Notes          string
	Cost           *float64
	ChecklistItems []string
	TemplateID     *uint // 提供时从模板复制步骤作为清单（不与 ChecklistItems 同时生效）
}

// ActivityFilter 活动列表查询条件
type ActivityFilter struct {
	Status       *models.ActivityStatus
	Type         *models.ActivityType
	LocationID   *uint
	AssignedToID *uint
}

// InterfaceActivityService defines the activity service interface
type InterfaceActivityService interface {
	GetActivities(actor ActingUser, filter ActivityFilter) ([]models.Activity, error)
	GetActivityByID(id uint) (*models.Activity, error)
	CreateActivity(actor ActingUser, req CreateActivityRequest) (*models.Activity, error)
	UpdateActivity(actor ActingUser, id uint, updates map[string]interface{}) (*models.Activity, error)
	DeleteActivity(id uint) error
}

// ActivityService 提供活动生命周期相关的服务
type ActivityService struct {
	DB       *gorm.DB
	Config   *config.Config
	Notifier InterfaceNotificationService
}

// NewActivityService 创建一个新的活动服务
func NewActivityService(db *gorm.DB, cfg *config.Config, notifier InterfaceNotificationService) InterfaceActivityService {
	return &ActivityService{
		DB:       db,
		Config:   cfg,
		Notifier: notifier,
	}
}

// 优先级排序表达式，URGENT 在前
const priorityOrderExpr = "CASE priority WHEN 'URGENT' THEN 0 WHEN 'HIGH' THEN 1 WHEN 'MEDIUM' THEN 2 ELSE 3 END"

// 1 GetActivities 查询活动列表，非管理员/运营只能看到分配给自己的活动
func (s *ActivityService) GetActivities(actor ActingUser, filter ActivityFilter) ([]models.Activity, error) {
	query := s.DB.Model(&models.Activity{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.AssignedToID != nil {
		query = query.Where("assigned_to_id = ?", *filter.AssignedToID)
	}

	// 非后台角色只能看到分配给自己的活动
	if !actor.IsBackOffice() {
		query = query.Where("assigned_to_id = ?", actor.ID)
	}

	var activities []models.Activity
	if err := query.
		Preload("Location").
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("ChecklistItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_order ASC")
		}).
		Order(priorityOrderExpr).
		Order("created_at DESC").
		Find(&activities).Error; err != nil {
		return nil, err
	}

	return activities, nil
}

// 2 GetActivityByID 获取单个活动详情
func (s *ActivityService) GetActivityByID(id uint) (*models.Activity, error) {
	var activity models.Activity
	if err := s.DB.
		Preload("Location").
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("ChecklistItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_order ASC")
		}).
		Preload("Attendances", func(db *gorm.DB) *gorm.DB {
			return db.Order("check_in_at DESC")
		}).
		Preload("Attendances.User").
		First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return &activity, nil
}

// 3 CreateActivity 创建新活动，初始状态固定为 PENDING
// 提供清单时按数组下标写入顺序；提供模板时复制模板步骤；分配人存在时发送分配通知
func (s *ActivityService) CreateActivity(actor ActingUser, req CreateActivityRequest) (*models.Activity, error) {
	if !models.ValidType(req.Type) {
		return nil, ErrInvalidType
	}

	// 房源必须存在
	var location models.Location
	if err := s.DB.First(&location, req.LocationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	// 未显式提供清单时，从模板复制步骤
	checklist := req.ChecklistItems
	if len(checklist) == 0 && req.TemplateID != nil {
		var template models.ActivityTemplate
		if err := s.DB.Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).First(&template, *req.TemplateID).Error; err == nil {
			for _, step := range template.Steps {
				checklist = append(checklist, step.Title)
			}
		}
	}

	activity := models.Activity{
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		Priority:     req.Priority,
		Status:       models.StatusPending,
		ScheduledAt:  req.ScheduledAt,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
		Cost:         req.Cost,
		LocationID:   req.LocationID,
		CreatedByID:  actor.ID,
		AssignedToID: req.AssignedToID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		for i, text := range checklist {
			item := models.ChecklistItem{
				Text:       text,
				ItemOrder:  i,
				ActivityID: activity.ID,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 主事务提交后发送分配通知，失败只记录日志
	if req.AssignedToID != nil {
		s.notify(*req.AssignedToID, "Nuova attività assegnata",
			fmt.Sprintf("Ti è stata assegnata l'attività: %s", activity.Title),
			models.NotificationInfo, activity.ID)
	}

	return s.GetActivityByID(activity.ID)
}

// 4 UpdateActivity 对活动应用部分更新
// 首次进入 IN_PROGRESS 时写入 started_at，首次进入 COMPLETED 时写入 completed_at，
// 之后的状态变更不清除已有时间戳；不强制状态转移图，任何状态可以改成任何状态
func (s *ActivityService) UpdateActivity(actor ActingUser, id uint, updates map[string]interface{}) (*models.Activity, error) {
	var current models.Activity
	if err := s.DB.First(&current, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	// 创建者不可变更
	delete(updates, "created_by_id")

	// 状态变更时派生时间戳
	statusChanged := false
	var newStatus models.ActivityStatus
	if raw, ok := updates["status"]; ok {
		newStatus = models.ActivityStatus(fmt.Sprint(raw))
		if !models.ValidStatus(newStatus) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = newStatus
		statusChanged = newStatus != current.Status

		now := time.Now()
		if newStatus == models.StatusInProgress && current.StartedAt == nil {
			updates["started_at"] = now
		}
		if newStatus == models.StatusCompleted && current.CompletedAt == nil {
			updates["completed_at"] = now
		}
	}

	if raw, ok := updates["type"]; ok {
		t := models.ActivityType(fmt.Sprint(raw))
		if !models.ValidType(t) {
			return nil, ErrInvalidType
		}
		updates["type"] = t
	}

	// 记录分配人是否发生变化
	prevAssignee := current.AssignedToID
	assigneeChanged := false
	var newAssignee *uint
	if raw, ok := updates["assigned_to_id"]; ok {
		if raw != nil {
			if v, ok := raw.(uint); ok {
				newAssignee = &v
			} else if v, ok := raw.(*uint); ok {
				newAssignee = v
			}
		}
		if newAssignee != nil && (prevAssignee == nil || *prevAssignee != *newAssignee) {
			assigneeChanged = true
		}
	}

	if err := s.DB.Model(&current).Updates(updates).Error; err != nil {
		return nil, err
	}

	updated, err := s.GetActivityByID(id)
	if err != nil {
		return nil, err
	}

	// 主写入完成后发送通知，三个条件相互独立，失败只记录日志
	if statusChanged {
		label := models.StatusLabel(newStatus)
		ntype := models.NotificationInfo
		if newStatus == models.StatusCompleted {
			ntype = models.NotificationSuccess
		}

		// 通知分配人状态变化（分配人不是操作者本人时）
		if updated.AssignedToID != nil && *updated.AssignedToID != actor.ID {
			s.notify(*updated.AssignedToID, fmt.Sprintf("Attività %s", label),
				fmt.Sprintf("L'attività \"%s\" è stata aggiornata a: %s", updated.Title, label),
				ntype, updated.ID)
		}

		// 活动完成时通知创建者（创建者不是操作者本人时）
		if newStatus == models.StatusCompleted && current.CreatedByID != actor.ID {
			s.notify(current.CreatedByID, "Attività completata",
				fmt.Sprintf("L'attività \"%s\" è stata completata", updated.Title),
				models.NotificationSuccess, updated.ID)
		}
	}

	// 通知新的分配人
	if assigneeChanged {
		s.notify(*newAssignee, "Nuova attività assegnata",
			fmt.Sprintf("Ti è stata assegnata l'attività: %s", updated.Title),
			models.NotificationInfo, updated.ID)
	}

	return updated, nil
}

// 5 DeleteActivity 删除活动及其清单项和关联考勤记录，整体在一个事务内完成
func (s *ActivityService) DeleteActivity(id uint) error {
	var activity models.Activity
	if err := s.DB.First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", id).Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("activity_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&activity).Error
	})
}

// notify 发送通知，错误只记录日志不上抛
func (s *ActivityService) notify(userID uint, title, message string, ntype models.NotificationType, activityID uint) {
	link := fmt.Sprintf("/activities/%d", activityID)
	if err := s.Notifier.Notify(userID, title, message, ntype, link); err != nil {
		logger.Error("发送通知失败: user_id=%d, title=%s, err=%v", userID, title, err)
	}
}
