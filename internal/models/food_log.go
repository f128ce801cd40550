package models

import "time"

// Food log impact labels
const (
	ImpactLow     = "Low"
	ImpactMedium  = "Medium"
	ImpactHigh    = "High"
	ImpactUnknown = "Unknown"
)

// FoodLog is a meal a user recorded, with its estimated blood sugar impact
type FoodLog struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	Meal      string    `gorm:"size:255;not null" json:"meal"`
	Impact    string    `gorm:"size:50;not null" json:"impact"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name for FoodLog
func (FoodLog) TableName() string {
	return "food_logs"
}
