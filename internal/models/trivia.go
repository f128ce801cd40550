package models

import "gorm.io/gorm"

// TriviaQuestion is a multiple choice question; CorrectAnswer holds an answer key (a-d)
type TriviaQuestion struct {
	ID            uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Question      string         `gorm:"size:500;not null;uniqueIndex" json:"question"`
	CorrectAnswer string         `gorm:"size:1;not null" json:"correct_answer"`
	Answers       []TriviaAnswer `gorm:"foreignKey:TriviaID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// TriviaAnswer is one option of a TriviaQuestion
type TriviaAnswer struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	AnswerID string `gorm:"size:1;not null" json:"answer_id"`
	Answer   string `gorm:"size:500;not null" json:"answer"`
	TriviaID uint64 `gorm:"not null;index" json:"-"`
}

// TableName overrides the table name for TriviaQuestion
func (TriviaQuestion) TableName() string {
	return "trivia"
}

// TableName overrides the table name for TriviaAnswer
func (TriviaAnswer) TableName() string {
	return "answers"
}

// BeforeDelete removes the question's answers in the same transaction; SQLite does not
// enforce the cascade unless foreign keys are switched on.
func (q *TriviaQuestion) BeforeDelete(tx *gorm.DB) error {
	if q.ID == 0 {
		return nil
	}
	return tx.Where("trivia_id = ?", q.ID).Delete(&TriviaAnswer{}).Error
}
