package handlers_test

import (
	"net/http"
	"testing"
)

// TestSurveyViews tests the author line on authenticated and public views
func TestSurveyViews(t *testing.T) {
	env := setupApp(t, false)
	alice := tokenFor(t, "alice")
	bob := tokenFor(t, "bob")

	status, created := env.object(t, http.MethodPost, "/api/surveys", map[string]interface{}{
		"message": "Great games", "name": "Alice",
	}, alice)
	if status != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d %v", status, created)
	}
	if created["author"] != `"Great games" - Alice` {
		t.Errorf("Unexpected author: %v", created["author"])
	}

	env.object(t, http.MethodPost, "/api/surveys", map[string]interface{}{"message": "Need more levels"}, bob)

	status, public := env.list(t, http.MethodGet, "/api/surveys/public", "")
	if status != http.StatusOK || len(public) != 2 {
		t.Fatalf("Expected 2 public surveys, got %d %d", status, len(public))
	}
	if public[1]["content"] != `"Need more levels" - Anonymous` {
		t.Errorf("Unexpected public content: %v", public[1]["content"])
	}

	status, _ = env.object(t, http.MethodGet, "/api/surveys", nil, "")
	if status != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for unauthenticated list, got %d", status)
	}

	_, all := env.list(t, http.MethodGet, "/api/surveys", bob)
	if len(all) != 2 {
		t.Errorf("Expected bob to see all surveys, got %d", len(all))
	}

	_, mine := env.list(t, http.MethodGet, "/api/surveys/user", bob)
	if len(mine) != 1 || mine[0]["author"] != `"Need more levels" - Anonymous` {
		t.Errorf("Unexpected surveys for bob: %v", mine)
	}

	path := "/api/surveys/" + idOf(t, created)
	status, _ = env.object(t, http.MethodPut, path, map[string]interface{}{"message": "Changed"}, bob)
	if status != http.StatusNotFound {
		t.Errorf("Expected status 404 for bob editing alice's survey, got %d", status)
	}

	status, updated := env.object(t, http.MethodPut, path, map[string]interface{}{"message": "Changed"}, alice)
	if status != http.StatusOK || updated["author"] != `"Changed" - Alice` {
		t.Errorf("Unexpected update result: %d %v", status, updated)
	}
}
