package models

// Flashcard is a glossary term and its definition
type Flashcard struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Term       string `gorm:"size:100;not null;uniqueIndex" json:"term"`
	Definition string `gorm:"size:300;not null" json:"definition"`
}

// TableName overrides the table name for Flashcard
func (Flashcard) TableName() string {
	return "flashcards"
}
