package models

// ActivityTemplate represents a reusable checklist blueprint copied into
// new activities of a matching type/role
type ActivityTemplate struct {
	BaseModel
	Name        string       `gorm:"type:varchar(100);not null" json:"name"`
	Description string       `gorm:"type:varchar(500)" json:"description"`
	Type        ActivityType `gorm:"type:varchar(20);not null" json:"type"`
	Role        UserRole     `gorm:"type:varchar(20);not null" json:"role"`
	IsDefault   bool         `gorm:"default:false" json:"is_default"` // 同一 (type, role) 最多一个默认模板，写入时清除其它

	// Relations - 关联关系
	Steps []TemplateStep `gorm:"foreignKey:TemplateID" json:"steps,omitempty"`
}

// TemplateStep represents one ordered step of a template
type TemplateStep struct {
	BaseModel
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:varchar(500)" json:"description"`
	StepOrder   int    `gorm:"column:step_order;not null;default:0" json:"order"`
	IsRequired  bool   `gorm:"default:true" json:"is_required"`
	TemplateID  uint   `gorm:"not null" json:"template_id"`
}
