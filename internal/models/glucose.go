package models

import "time"

// Glucose status labels
const (
	GlucoseLow    = "Low"
	GlucoseNormal = "Normal"
	GlucoseHigh   = "High"
)

// GlucoseRecord is a single blood glucose reading in mmol/L
type GlucoseRecord struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Value     float64   `gorm:"not null" json:"value"`
	Time      time.Time `gorm:"not null;index" json:"time"`
	Notes     string    `gorm:"size:500" json:"notes"`
	Status    string    `gorm:"size:10;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for GlucoseRecord
func (GlucoseRecord) TableName() string {
	return "glucose"
}
