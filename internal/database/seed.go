package database

import (
	"encoding/json"

	"github.com/localnerve/glucodb/data"
	"github.com/localnerve/glucodb/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SeedResult counts the reference rows inserted by Seed
type SeedResult struct {
	Flashcards int `json:"flashcards"`
	Trivia     int `json:"trivia"`
	Foods      int `json:"foods"`
}

// Seed inserts the embedded reference data (flashcards, trivia, foods) that is not already
// present. It is safe to run on every start.
func Seed(db *gorm.DB) (SeedResult, error) {
	var result SeedResult

	var cards []models.Flashcard
	if err := json.Unmarshal(data.SeedFlashcards, &cards); err != nil {
		return result, errors.Wrap(err, "invalid flashcard seed")
	}
	var questions []models.TriviaQuestion
	if err := json.Unmarshal(data.SeedTrivia, &questions); err != nil {
		return result, errors.Wrap(err, "invalid trivia seed")
	}
	var foods []models.Food
	if err := json.Unmarshal(data.SeedFoods, &foods); err != nil {
		return result, errors.Wrap(err, "invalid food seed")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range cards {
			created, err := insertMissing(tx, &cards[i], "term = ?", cards[i].Term)
			if err != nil {
				return err
			}
			if created {
				result.Flashcards++
			}
		}

		for i := range questions {
			// Answers are created with their question through the association
			created, err := insertMissing(tx, &questions[i], "question = ?", questions[i].Question)
			if err != nil {
				return err
			}
			if created {
				result.Trivia++
			}
		}

		for i := range foods {
			created, err := insertMissing(tx, &foods[i], "food = ?", foods[i].Food)
			if err != nil {
				return err
			}
			if created {
				result.Foods++
			}
		}
		return nil
	})

	return result, errors.Wrap(err, "seed failed")
}

func insertMissing[T any](tx *gorm.DB, row *T, query string, arg interface{}) (bool, error) {
	var count int64
	if err := tx.Model(new(T)).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	return true, tx.Create(row).Error
}
