package models

import "time"

// Feedback is a crossword player's rating and comment
type Feedback struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Accuracy  int       `gorm:"not null" json:"accuracy"`
	Comment   string    `gorm:"size:500;not null" json:"comment"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// TableName overrides the table name for Feedback
func (Feedback) TableName() string {
	return "feedback"
}
