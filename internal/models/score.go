package models

import "time"

// Score is a game result posted by a user
type Score struct {
	ID      uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string    `gorm:"size:64;not null;index" json:"user_id"`
	Points  int       `gorm:"not null;index" json:"points"`
	Level   int       `gorm:"not null" json:"level"`
	Created time.Time `gorm:"not null;autoCreateTime" json:"created"`
	Version string    `gorm:"size:20;default:1.0" json:"version"`
}

// TableName overrides the table name for Score
func (Score) TableName() string {
	return "scores"
}
