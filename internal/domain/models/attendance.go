package models

import "time"

// Attendance represents a staff presence record bounded by a check-in
// and (eventually) a check-out timestamp at a location.
// CheckOutAt 为空表示该条考勤处于打开状态；同一 (用户, 房源) 最多存在一条打开记录
type Attendance struct {
	BaseModel
	UserID     uint       `gorm:"not null;index:idx_attendance_user_location" json:"user_id"`
	LocationID uint       `gorm:"not null;index:idx_attendance_user_location" json:"location_id"`
	ActivityID *uint      `json:"activity_id"`
	CheckInAt  time.Time  `gorm:"not null" json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at"`
	Latitude   *float64   `json:"latitude"`
	Longitude  *float64   `json:"longitude"`
	Notes      string     `gorm:"type:varchar(500)" json:"notes"`

	// Relations - 关联关系
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Activity *Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
}
