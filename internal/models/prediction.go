package models

import "time"

// Risk level labels
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Prediction is a stored diabetes risk assessment for a user
type Prediction struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string    `gorm:"size:64;not null;index" json:"user_id"`
	Probability float64   `gorm:"not null" json:"probability"`
	RiskLevel   string    `gorm:"size:20;not null" json:"risk_level"`
	Inputs      JSON      `json:"inputs,omitempty"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// TableName overrides the table name for Prediction
func (Prediction) TableName() string {
	return "diabetes_predictions"
}
