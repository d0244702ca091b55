package models

// Inventory represents a stocked supply item of a location
type Inventory struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Category    string `gorm:"type:varchar(50)" json:"category"`
	Quantity    int    `gorm:"default:0" json:"quantity"`
	MinQuantity int    `gorm:"default:0" json:"min_quantity"`
	Unit        string `gorm:"type:varchar(20);default:'pz'" json:"unit"`
	LocationID  uint   `gorm:"not null" json:"location_id"`

	// Relations - 关联关系
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// IsLowStock 判断库存是否低于警戒线
func (i *Inventory) IsLowStock() bool {
	return i.Quantity <= i.MinQuantity
}
