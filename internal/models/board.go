package models

import "time"

// Board names
const (
	BoardMatching = "matching"
	BoardRacing   = "racing"
)

// BoardEntry is a timed game result; lower times rank higher
type BoardEntry struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Board     string    `gorm:"size:32;not null;index:idx_board_time" json:"-"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Time      int       `gorm:"not null;index:idx_board_time" json:"time"`
	Date      string    `gorm:"size:16;not null" json:"date"`
	CreatedAt time.Time `json:"-"`
}

// TableName overrides the table name for BoardEntry
func (BoardEntry) TableName() string {
	return "leaderboard_entries"
}
