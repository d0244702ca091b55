package services

import (
	"errors"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// 模板相关的业务错误
var (
	ErrTemplateNotFound = errors.New("模板不存在")
)

// TemplateStepInput 模板步骤输入
type TemplateStepInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsRequired  *bool  `json:"is_required"`
}

// TemplateRequest 创建/更新模板的参数
type TemplateRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Type        models.ActivityType `json:"type" binding:"required"`
	Role        models.UserRole     `json:"role" binding:"required"`
	IsDefault   bool                `json:"is_default"`
	Steps       []TemplateStepInput `json:"steps"`
}

// InterfaceTemplateService defines the activity template service interface
type InterfaceTemplateService interface {
	GetTemplates() ([]models.ActivityTemplate, error)
	GetTemplateByID(id uint) (*models.ActivityTemplate, error)
	CreateTemplate(req TemplateRequest) (*models.ActivityTemplate, error)
	UpdateTemplate(id uint, req TemplateRequest) (*models.ActivityTemplate, error)
	DeleteTemplate(id uint) error
}

// TemplateService 提供活动模板相关的服务
type TemplateService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewTemplateService 创建一个新的模板服务
func NewTemplateService(db *gorm.DB, cfg *config.Config) InterfaceTemplateService {
	return &TemplateService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetTemplates 获取全部模板，按角色、类型、名称排序
func (s *TemplateService) GetTemplates() ([]models.ActivityTemplate, error) {
	var templates []models.ActivityTemplate
	if err := s.DB.
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Order("role ASC").
		Order("type ASC").
		Order("name ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// 2 GetTemplateByID 获取单个模板
func (s *TemplateService) GetTemplateByID(id uint) (*models.ActivityTemplate, error) {
	var template models.ActivityTemplate
	if err := s.DB.
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

// 3 CreateTemplate 创建模板
// 同一 (type, role) 最多一个默认模板，在同一事务内清除竞争者的默认标记
func (s *TemplateService) CreateTemplate(req TemplateRequest) (*models.ActivityTemplate, error) {
	if !models.ValidType(req.Type) {
		return nil, ErrInvalidType
	}

	template := models.ActivityTemplate{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Role:        req.Role,
		IsDefault:   req.IsDefault,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.ActivityTemplate{}).
				Where("type = ? AND role = ? AND is_default = ?", req.Type, req.Role, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&template).Error; err != nil {
			return err
		}

		return s.createSteps(tx, template.ID, req.Steps)
	})
	if err != nil {
		return nil, err
	}

	return s.GetTemplateByID(template.ID)
}

// 4 UpdateTemplate 更新模板并重建步骤，整体在一个事务内完成
func (s *TemplateService) UpdateTemplate(id uint, req TemplateRequest) (*models.ActivityTemplate, error) {
	if !models.ValidType(req.Type) {
		return nil, ErrInvalidType
	}

	template, err := s.GetTemplateByID(id)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// 设为默认时清除其它模板的默认标记
		if req.IsDefault {
			if err := tx.Model(&models.ActivityTemplate{}).
				Where("type = ? AND role = ? AND is_default = ? AND id != ?", req.Type, req.Role, true, id).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		// 删除现有步骤后重建
		if err := tx.Where("template_id = ?", id).Delete(&models.TemplateStep{}).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":        req.Name,
			"description": req.Description,
			"type":        req.Type,
			"role":        req.Role,
			"is_default":  req.IsDefault,
		}
		if err := tx.Model(template).Updates(updates).Error; err != nil {
			return err
		}

		return s.createSteps(tx, id, req.Steps)
	})
	if err != nil {
		return nil, err
	}

	return s.GetTemplateByID(id)
}

// 5 DeleteTemplate 删除模板及其步骤
func (s *TemplateService) DeleteTemplate(id uint) error {
	template, err := s.GetTemplateByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&models.TemplateStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(template).Error
	})
}

// createSteps 按数组下标写入步骤顺序
func (s *TemplateService) createSteps(tx *gorm.DB, templateID uint, steps []TemplateStepInput) error {
	for i, input := range steps {
		required := true
		if input.IsRequired != nil {
			required = *input.IsRequired
		}
		step := models.TemplateStep{
			Title:       input.Title,
			Description: input.Description,
			StepOrder:   i,
			IsRequired:  required,
			TemplateID:  templateID,
		}
		if err := tx.Create(&step).Error; err != nil {
			return err
		}
	}
	return nil
}
