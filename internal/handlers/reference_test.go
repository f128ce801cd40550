package handlers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/localnerve/glucodb/internal/database"
	"github.com/localnerve/glucodb/internal/models"
)

// TestFlashcardGrade tests fuzzy grading against a stored term
func TestFlashcardGrade(t *testing.T) {
	env := setupApp(t, false)

	card := models.Flashcard{Term: "Finger Prick Test", Definition: "A tiny poke to check blood sugar."}
	if err := env.db.Create(&card).Error; err != nil {
		t.Fatalf("Failed to create flashcard: %v", err)
	}
	path := "/api/flashcards/" + strconv.FormatUint(card.ID, 10) + "/grade"

	status, body := env.object(t, http.MethodPost, path, map[string]interface{}{"answer": "prick test"}, "")
	if status != http.StatusOK {
		t.Fatalf("Expected status 200, got %d %v", status, body)
	}
	if body["is_correct"] != true || body["term"] != "Finger Prick Test" {
		t.Errorf("Unexpected grade: %v", body)
	}

	_, body = env.object(t, http.MethodPost, path, map[string]interface{}{"answer": "insulin"}, "")
	if body["is_correct"] != false {
		t.Errorf("Expected incorrect grade, got %v", body)
	}

	status, _ = env.object(t, http.MethodPost, "/api/flashcards/999/grade", map[string]interface{}{"answer": "x"}, "")
	if status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", status)
	}

	status, _ = env.object(t, http.MethodPost, path, map[string]interface{}{}, "")
	if status != http.StatusBadRequest {
		t.Errorf("Expected status 400 without answer, got %d", status)
	}
}

// TestReferenceMutationsNeedAuth tests public reads and guarded writes
func TestReferenceMutationsNeedAuth(t *testing.T) {
	env := setupApp(t, false)
	card := map[string]interface{}{"term": "Glucose", "definition": "Sugar in the blood."}

	status, _ := env.object(t, http.MethodPost, "/api/flashcards", card, "")
	if status != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", status)
	}

	status, created := env.object(t, http.MethodPost, "/api/flashcards", card, tokenFor(t, "editor"))
	if status != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d %v", status, created)
	}

	status, list := env.list(t, http.MethodGet, "/api/flashcards", "")
	if status != http.StatusOK || len(list) != 1 {
		t.Errorf("Expected one public flashcard, got %d %d", status, len(list))
	}
}

// TestSeededTriviaAndFood tests trivia checks and food pairs over the seed data
func TestSeededTriviaAndFood(t *testing.T) {
	env := setupApp(t, false)
	if _, err := database.Seed(env.db); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	status, questions := env.list(t, http.MethodGet, "/api/trivia", "")
	if status != http.StatusOK || len(questions) == 0 {
		t.Fatalf("Expected seeded trivia, got %d %d", status, len(questions))
	}
	first := questions[0]
	if answers, _ := first["answers"].([]interface{}); len(answers) == 0 {
		t.Errorf("Expected answers with question, got %v", first)
	}

	path := "/api/trivia/" + idOf(t, first) + "/check"
	status, body := env.object(t, http.MethodPost, path, map[string]interface{}{"answer": first["correct_answer"]}, "")
	if status != http.StatusOK || body["correct"] != true {
		t.Errorf("Expected correct answer, got %d %v", status, body)
	}

	status, pairs := env.list(t, http.MethodGet, "/api/food/pairs", "")
	if status != http.StatusOK || len(pairs) == 0 {
		t.Fatalf("Expected food pairs, got %d %d", status, len(pairs))
	}
	number := pairs[0]["number"].(float64)
	foods := pairs[0]["foods"].([]interface{})

	_, group := env.list(t, http.MethodGet, "/api/food?number="+strconv.Itoa(int(number)), "")
	if len(group) != len(foods) {
		t.Errorf("Expected %d foods in group, got %d", len(foods), len(group))
	}

	status, _ = env.object(t, http.MethodGet, "/api/food?number=abc", nil, "")
	if status != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad number, got %d", status)
	}
}
