package services

import (
	"strings"

	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/pmezard/go-difflib/difflib"
)

// SimilarityThreshold is the lowest ratio graded as correct
const SimilarityThreshold = 0.7

// GradeResult is the outcome of grading a typed answer against a flashcard term
type GradeResult struct {
	IsCorrect  bool    `json:"is_correct"`
	Similarity float64 `json:"similarity"`
	Term       string  `json:"term"`
}

// Similarity is the sequence matcher ratio of two strings, compared rune by rune
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// Grade compares answer with term ignoring case and surrounding space.
// A containment either way is also correct, so "prick test" passes for "Finger Prick Test".
func Grade(answer, term string) GradeResult {
	a := strings.ToLower(strings.TrimSpace(answer))
	t := strings.ToLower(strings.TrimSpace(term))

	ratio := Similarity(a, t)
	correct := ratio >= SimilarityThreshold
	if !correct && a != "" && t != "" {
		correct = strings.Contains(t, a) || strings.Contains(a, t)
	}

	return GradeResult{IsCorrect: correct, Similarity: ratio, Term: term}
}

// FlashcardInput is the create and update payload for a flashcard
type FlashcardInput struct {
	Term       *string `json:"term"`
	Definition *string `json:"definition"`
}

// GradeInput is the payload for grading a flashcard
type GradeInput struct {
	Answer *string `json:"answer"`
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func emptied(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}

// FlashcardSchema is the resource schema for flashcards
func FlashcardSchema() Schema[models.Flashcard, FlashcardInput, FlashcardInput] {
	return Schema[models.Flashcard, FlashcardInput, FlashcardInput]{
		Name:  "Flashcard",
		Order: "id asc",

		Build: func(in FlashcardInput) (models.Flashcard, error) {
			v := &types.ValidationError{}
			if blank(in.Term) {
				v.Missing("term")
			}
			if blank(in.Definition) {
				v.Missing("definition")
			}
			if err := v.Err(); err != nil {
				return models.Flashcard{}, err
			}
			return models.Flashcard{
				Term:       strings.TrimSpace(*in.Term),
				Definition: strings.TrimSpace(*in.Definition),
			}, nil
		},

		Check: func(in FlashcardInput) error {
			v := &types.ValidationError{}
			if emptied(in.Term) {
				v.Add("term", "Term must not be empty")
			}
			if emptied(in.Definition) {
				v.Add("definition", "Definition must not be empty")
			}
			return v.Err()
		},

		Apply: func(rec *models.Flashcard, in FlashcardInput) {
			if in.Term != nil {
				rec.Term = strings.TrimSpace(*in.Term)
			}
			if in.Definition != nil {
				rec.Definition = strings.TrimSpace(*in.Definition)
			}
		},
	}
}
