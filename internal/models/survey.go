package models

import (
	"fmt"
	"time"
)

// Survey is a free-text survey response, optionally signed
type Survey struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Name      *string   `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for Survey
func (Survey) TableName() string {
	return "surveys"
}

// Author renders the response as a quote attributed to its author
func (s Survey) Author() string {
	name := "Anonymous"
	if s.Name != nil && *s.Name != "" {
		name = *s.Name
	}
	return fmt.Sprintf("\"%s\" - %s", s.Message, name)
}
