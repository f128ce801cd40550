package services

import (
	"strings"

	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/types"
)

// AnswerInput is one choice of a trivia question
type AnswerInput struct {
	AnswerID string `json:"answer_id"`
	Answer   string `json:"answer"`
}

// TriviaInput creates a question together with its choices
type TriviaInput struct {
	Question      *string       `json:"question"`
	CorrectAnswer *string       `json:"correct_answer"`
	Answers       []AnswerInput `json:"answers"`
}

// TriviaPatch updates a question; choices are fixed once created
type TriviaPatch struct {
	Question      *string `json:"question"`
	CorrectAnswer *string `json:"correct_answer"`
}

// CheckInput is the payload for checking a trivia answer
type CheckInput struct {
	Answer *string `json:"answer"`
}

// CheckResult is the outcome of a trivia answer check
type CheckResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

func answerKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validKey(key string) bool {
	return len(key) == 1 && key[0] >= 'a' && key[0] <= 'd'
}

// CheckAnswer grades an answer key against a question
func CheckAnswer(q *models.TriviaQuestion, answer string) CheckResult {
	return CheckResult{
		Correct:       answerKey(answer) == q.CorrectAnswer,
		CorrectAnswer: q.CorrectAnswer,
	}
}

// TriviaSchema is the resource schema for trivia questions
func TriviaSchema() Schema[models.TriviaQuestion, TriviaInput, TriviaPatch] {
	return Schema[models.TriviaQuestion, TriviaInput, TriviaPatch]{
		Name:    "Trivia question",
		Order:   "id asc",
		Preload: []string{"Answers"},

		Build: func(in TriviaInput) (models.TriviaQuestion, error) {
			v := &types.ValidationError{}
			if blank(in.Question) {
				v.Missing("question")
			}

			key := ""
			if blank(in.CorrectAnswer) {
				v.Missing("correct_answer")
			} else if key = answerKey(*in.CorrectAnswer); !validKey(key) {
				v.Add("correct_answer", "Correct answer must be one of a, b, c or d")
			}

			seen := make(map[string]bool, len(in.Answers))
			answers := make([]models.TriviaAnswer, 0, len(in.Answers))
			for _, a := range in.Answers {
				id := answerKey(a.AnswerID)
				if !validKey(id) || strings.TrimSpace(a.Answer) == "" || seen[id] {
					v.Add("answers", "Each answer needs a unique answer_id from a to d and non-empty text")
					break
				}
				seen[id] = true
				answers = append(answers, models.TriviaAnswer{AnswerID: id, Answer: strings.TrimSpace(a.Answer)})
			}
			if len(in.Answers) > 0 && validKey(key) && !seen[key] {
				v.Add("correct_answer", "Correct answer must name one of the answers")
			}

			if err := v.Err(); err != nil {
				return models.TriviaQuestion{}, err
			}
			return models.TriviaQuestion{
				Question:      strings.TrimSpace(*in.Question),
				CorrectAnswer: key,
				Answers:       answers,
			}, nil
		},

		Check: func(in TriviaPatch) error {
			v := &types.ValidationError{}
			if emptied(in.Question) {
				v.Add("question", "Question must not be empty")
			}
			if in.CorrectAnswer != nil && !validKey(answerKey(*in.CorrectAnswer)) {
				v.Add("correct_answer", "Correct answer must be one of a, b, c or d")
			}
			return v.Err()
		},

		Apply: func(rec *models.TriviaQuestion, in TriviaPatch) {
			if in.Question != nil {
				rec.Question = strings.TrimSpace(*in.Question)
			}
			if in.CorrectAnswer != nil {
				rec.CorrectAnswer = answerKey(*in.CorrectAnswer)
			}
		},
	}
}
