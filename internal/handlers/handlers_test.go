package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/data"
	"github.com/localnerve/glucodb/internal/classifier"
	"github.com/localnerve/glucodb/internal/config"
	"github.com/localnerve/glucodb/internal/handlers"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/localnerve/glucodb/internal/testutil"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const testSecret = "handler-test-secret"

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	model *classifier.Service
}

// setupApp builds the full route table over an in-memory database.
// The model is trained unless untrained is set.
func setupApp(t *testing.T, untrained bool) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	model := classifier.NewService(classifier.DefaultOptions())
	if !untrained {
		if _, err := model.Bootstrap("", data.TrainingIndicators); err != nil {
			t.Fatalf("Failed to train model: %v", err)
		}
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(zerolog.Nop())})
	handlers.Register(app, handlers.Deps{
		Config: &config.Config{DBType: "sqlite", AuthMode: "jwt", JWTSecret: testSecret},
		DB:     db,
		Auth:   services.NewJWTAuthenticator(testSecret),
		Model:  model,
		Log:    zerolog.Nop(),
	})
	app.Use(handlers.NotFound)

	return &testEnv{app: app, db: db, model: model}
}

func tokenFor(t *testing.T, user string) string {
	t.Helper()
	token, err := services.IssueToken(testSecret, user, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

func newJSONRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// send executes req and decodes a JSON object response
func (e *testEnv) send(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	status, raw := e.do(t, req)
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", raw, err)
	}
	return status, out
}

func (e *testEnv) do(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}
	return resp.StatusCode, raw
}

// call performs a request and returns the status and raw body
func (e *testEnv) call(t *testing.T, method, path string, body interface{}, token string) (int, []byte) {
	t.Helper()
	return e.do(t, newJSONRequest(t, method, path, body, token))
}

// object performs a request and decodes a JSON object response
func (e *testEnv) object(t *testing.T, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	status, raw := e.call(t, method, path, body, token)
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Failed to decode %s %s response %q: %v", method, path, raw, err)
	}
	return status, out
}

// list performs a request and decodes a JSON array response
func (e *testEnv) list(t *testing.T, method, path string, token string) (int, []map[string]interface{}) {
	t.Helper()
	status, raw := e.call(t, method, path, nil, token)
	var out []map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Failed to decode %s %s response %q: %v", method, path, raw, err)
	}
	return status, out
}

func fieldNames(body map[string]interface{}) []string {
	fields, _ := body["fields"].([]interface{})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if m, ok := f.(map[string]interface{}); ok {
			names = append(names, m["field"].(string))
		}
	}
	return names
}

func idOf(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	id, ok := body["id"].(float64)
	if !ok {
		t.Fatalf("Expected id in %v", body)
	}
	return strconv.FormatInt(int64(id), 10)
}

// TestUnknownRoute tests the 404 fallback envelope
func TestUnknownRoute(t *testing.T) {
	env := setupApp(t, false)

	status, body := env.object(t, http.MethodGet, "/api/nothing-here", nil, "")
	if status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", status)
	}
	if body["ok"] != false {
		t.Error("Expected ok=false in response")
	}
	if body["url"] != "/api/nothing-here" {
		t.Errorf("Expected url in envelope, got %v", body["url"])
	}
}

// TestHealth tests liveness and readiness
func TestHealth(t *testing.T) {
	env := setupApp(t, false)

	status, body := env.object(t, http.MethodGet, "/api/health", nil, "")
	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if body["database"] != "ok" || body["model"] != "ready" {
		t.Errorf("Unexpected health body: %v", body)
	}

	status, body = env.object(t, http.MethodGet, "/api/health/ready", nil, "")
	if status != http.StatusOK || body["ready"] != true {
		t.Errorf("Expected ready model, got %d %v", status, body)
	}

	cold := setupApp(t, true)
	status, _ = cold.object(t, http.MethodGet, "/api/health/ready", nil, "")
	if status != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503 before training, got %d", status)
	}
}

// TestMalformedBody tests that unparsable JSON is a 400
func TestMalformedBody(t *testing.T) {
	env := setupApp(t, false)

	status, body := env.object(t, http.MethodPost, "/api/glucose", "{not json", "")
	if status != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", status)
	}
	if names := fieldNames(body); len(names) != 1 || names[0] != "body" {
		t.Errorf("Expected body field error, got %v", names)
	}

	status, _ = env.object(t, http.MethodPost, "/api/glucose", "", "")
	if status != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty body, got %d", status)
	}
}

// TestInvalidID tests that a non-numeric id is rejected
func TestInvalidID(t *testing.T) {
	env := setupApp(t, false)

	status, body := env.object(t, http.MethodGet, "/api/glucose/abc", nil, "")
	if status != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", status)
	}
	if names := fieldNames(body); len(names) != 1 || names[0] != "id" {
		t.Errorf("Expected id field error, got %v", names)
	}
}
