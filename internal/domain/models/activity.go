package models

import "time"

// ActivityType represents the kind of operational work
type ActivityType string

const (
	ActivityTypeMaintenance ActivityType = "MAINTENANCE"
	ActivityTypeLaundry     ActivityType = "LAUNDRY"
	ActivityTypeCleaning    ActivityType = "CLEANING"
	ActivityTypeEmergency   ActivityType = "EMERGENCY"
	ActivityTypeInspection  ActivityType = "INSPECTION"
	ActivityTypeOther       ActivityType = "OTHER"
)

// ActivityPriority represents the urgency of an activity
type ActivityPriority string

const (
	PriorityLow    ActivityPriority = "LOW"
	PriorityMedium ActivityPriority = "MEDIUM"
	PriorityHigh   ActivityPriority = "HIGH"
	PriorityUrgent ActivityPriority = "URGENT"
)

// ActivityStatus represents the lifecycle state of an activity
type ActivityStatus string

const (
	StatusPending    ActivityStatus = "PENDING"
	StatusInProgress ActivityStatus = "IN_PROGRESS"
	StatusCompleted  ActivityStatus = "COMPLETED"
	StatusCancelled  ActivityStatus = "CANCELLED"
)

// Activity represents a unit of operational work tied to a location
type Activity struct {
	BaseModel
	Title        string           `gorm:"type:varchar(200);not null" json:"title"`
	Description  string           `gorm:"type:varchar(1000)" json:"description"`
	Type         ActivityType     `gorm:"type:varchar(20);not null" json:"type"`
	Priority     ActivityPriority `gorm:"type:varchar(20);default:'MEDIUM'" json:"priority"`
	Status       ActivityStatus   `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	ScheduledAt  *time.Time       `json:"scheduled_at"`
	StartedAt    *time.Time       `json:"started_at"`   // 首次进入 IN_PROGRESS 时写入，之后不再变更
	CompletedAt  *time.Time       `json:"completed_at"` // 首次进入 COMPLETED 时写入，之后不再变更
	DueDate      *time.Time       `json:"due_date"`
	Notes        string           `gorm:"type:varchar(1000)" json:"notes"`
	Cost         *float64         `json:"cost"`
	LocationID   uint             `gorm:"not null" json:"location_id"`
	CreatedByID  uint             `gorm:"not null" json:"created_by_id"` // 创建者，创建后不可变更
	AssignedToID *uint            `json:"assigned_to_id"`

	// Relations - 关联关系
	Location       *Location       `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	CreatedBy      *User           `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	AssignedTo     *User           `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	ChecklistItems []ChecklistItem `gorm:"foreignKey:ActivityID" json:"checklist_items,omitempty"`
	Attendances    []Attendance    `gorm:"foreignKey:ActivityID" json:"attendances,omitempty"`
}

// ValidType 校验活动类型取值
func ValidType(t ActivityType) bool {
	switch t {
	case ActivityTypeMaintenance, ActivityTypeLaundry, ActivityTypeCleaning,
		ActivityTypeEmergency, ActivityTypeInspection, ActivityTypeOther:
		return true
	}
	return false
}

// ValidStatus 校验活动状态取值
func ValidStatus(s ActivityStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// StatusLabel 返回状态的意大利语显示名，用于通知文案
func StatusLabel(s ActivityStatus) string {
	switch s {
	case StatusPending:
		return "In attesa"
	case StatusInProgress:
		return "In corso"
	case StatusCompleted:
		return "Completata"
	case StatusCancelled:
		return "Annullata"
	}
	return string(s)
}
