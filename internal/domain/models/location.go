package models

// Location represents a managed property (B&B unit)
type Location struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Address     string `gorm:"type:varchar(200)" json:"address"`
	City        string `gorm:"type:varchar(100)" json:"city"`
	PostalCode  string `gorm:"type:varchar(20)" json:"postal_code"`
	Phone       string `gorm:"type:varchar(30)" json:"phone"`
	Email       string `gorm:"type:varchar(100)" json:"email"`
	Description string `gorm:"type:varchar(500)" json:"description"`
	Capacity    int    `gorm:"default:1" json:"capacity"`
	Rooms       int    `gorm:"default:1" json:"rooms"`
	Bathrooms   int    `gorm:"default:1" json:"bathrooms"`
	HasWifi     bool   `gorm:"default:false" json:"has_wifi"`
	HasParking  bool   `gorm:"default:false" json:"has_parking"`
	HasAC       bool   `gorm:"default:false" json:"has_ac"`
	Notes       string `gorm:"type:varchar(500)" json:"notes"`
	QRCode      string `gorm:"type:varchar(50);unique;not null" json:"qr_code"` // 打印张贴在房源内的签到二维码
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	// Relations - 关联关系
	Activities  []Activity   `gorm:"foreignKey:LocationID" json:"activities,omitempty"`
	Inventories []Inventory  `gorm:"foreignKey:LocationID" json:"inventories,omitempty"`
	Attendances []Attendance `gorm:"foreignKey:LocationID" json:"attendances,omitempty"`
}
