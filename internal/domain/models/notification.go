package models

// NotificationType 通知严重程度标签: info, success, warning, error
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification represents an advisory inbox message for a user
type Notification struct {
	BaseModel
	Title   string           `gorm:"type:varchar(200);not null" json:"title"`
	Message string           `gorm:"type:varchar(1000);not null" json:"message"`
	Type    NotificationType `gorm:"type:varchar(20);default:'info'" json:"type"`
	IsRead  bool             `gorm:"default:false" json:"is_read"`
	Link    string           `gorm:"type:varchar(200)" json:"link"`
	UserID  uint             `gorm:"not null;index" json:"user_id"`

	// Relations - 关联关系
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
