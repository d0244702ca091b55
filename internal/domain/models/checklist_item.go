package models

// ChecklistItem represents one ordered step within an activity's to-do list
type ChecklistItem struct {
	BaseModel
	Text        string `gorm:"type:varchar(500);not null" json:"text"`
	ItemOrder   int    `gorm:"column:item_order;not null;default:0" json:"order"` // order 是MySQL保留字，列名用 item_order
	IsCompleted bool   `gorm:"default:false" json:"is_completed"`
	ActivityID  uint   `gorm:"not null" json:"activity_id"`
}
