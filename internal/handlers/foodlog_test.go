package handlers_test

import (
	"net/http"
	"testing"
)

// TestFoodLogRequiresAuth tests 401 without or with a bad credential
func TestFoodLogRequiresAuth(t *testing.T) {
	env := setupApp(t, false)

	status, body := env.object(t, http.MethodGet, "/api/foodlog", nil, "")
	if status != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", status)
	}
	if body["type"] != "auth.missing" {
		t.Errorf("Expected auth.missing, got %v", body["type"])
	}

	status, _ = env.object(t, http.MethodGet, "/api/foodlog", nil, "not-a-token")
	if status != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for bad token, got %d", status)
	}
}

// TestFoodLogImpactAndScope tests impact derivation and per-user isolation
func TestFoodLogImpactAndScope(t *testing.T) {
	env := setupApp(t, false)
	alice := tokenFor(t, "alice")
	bob := tokenFor(t, "bob")

	status, created := env.object(t, http.MethodPost, "/api/foodlog", map[string]interface{}{"meal": "ice cream and salad"}, alice)
	if status != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", status)
	}
	if created["impact"] != "High" {
		t.Errorf("Expected High impact, got %v", created["impact"])
	}
	if created["user_id"] != "alice" {
		t.Errorf("Expected owner alice, got %v", created["user_id"])
	}

	_, toast := env.object(t, http.MethodPost, "/api/foodlog", map[string]interface{}{"meal": "plain toast"}, alice)
	if toast["impact"] != "Unknown" {
		t.Errorf("Expected Unknown impact, got %v", toast["impact"])
	}

	path := "/api/foodlog/" + idOf(t, created)
	status, _ = env.object(t, http.MethodGet, path, nil, bob)
	if status != http.StatusNotFound {
		t.Errorf("Expected status 404 for another user's entry, got %d", status)
	}

	status, list := env.list(t, http.MethodGet, "/api/foodlog", bob)
	if status != http.StatusOK || len(list) != 0 {
		t.Errorf("Expected empty list for bob, got %d %v", status, list)
	}

	_, list = env.list(t, http.MethodGet, "/api/foodlog", alice)
	if len(list) != 2 {
		t.Errorf("Expected 2 entries for alice, got %d", len(list))
	}

	status, updated := env.object(t, http.MethodPut, path, map[string]interface{}{"meal": "banana"}, alice)
	if status != http.StatusOK || updated["impact"] != "Medium" {
		t.Errorf("Expected Medium after update, got %d %v", status, updated["impact"])
	}
}
