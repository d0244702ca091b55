package models

// UserRole represents the role of a staff user
type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleOperator    UserRole = "OPERATOR"
	RoleWorker      UserRole = "WORKER"
	RoleHousekeeper UserRole = "HOUSEKEEPER"
)

// User represents staff accounts of the property business
type User struct {
	BaseModel
	Email    string   `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password string   `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	Name     string   `gorm:"type:varchar(100);not null" json:"name"`
	Phone    string   `gorm:"type:varchar(30)" json:"phone"`
	Role     UserRole `gorm:"type:varchar(20);default:'WORKER'" json:"role"`
	IsActive bool     `gorm:"default:true" json:"is_active"`

	// Relations - 关联关系
	AssignedActivities []Activity     `gorm:"foreignKey:AssignedToID" json:"assigned_activities,omitempty"` // 分配给该用户的活动
	CreatedActivities  []Activity     `gorm:"foreignKey:CreatedByID" json:"created_activities,omitempty"`   // 该用户创建的活动
	Attendances        []Attendance   `gorm:"foreignKey:UserID" json:"attendances,omitempty"`
	Notifications      []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}

// IsBackOffice 判断用户是否拥有后台管理权限
func (u *User) IsBackOffice() bool {
	return u.Role == RoleAdmin || u.Role == RoleOperator
}

// ValidRole 判断角色是否合法
func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleWorker, RoleHousekeeper:
		return true
	}
	return false
}
