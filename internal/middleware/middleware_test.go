package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/handlers"
	"github.com/localnerve/glucodb/internal/middleware"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// sessionAuth accepts the session "good" and rejects every other session
type sessionAuth struct{}

func (sessionAuth) Mode() string { return "authorizer" }

func (sessionAuth) Authenticate(_ context.Context, creds services.Credentials) (string, error) {
	switch creds.Session {
	case "":
		return "", services.ErrNoCredentials
	case "good":
		return "user-1", nil
	}
	return "", errors.Wrap(services.ErrSessionRejected, "expired")
}

func setupApp(auth services.Authenticator) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(zerolog.Nop())})
	app.Use(middleware.VersionMiddleware("1.0"))
	app.Get("/me", middleware.RequireUser(auth), func(c *fiber.Ctx) error {
		id, _ := middleware.UserID(c)
		return c.SendString(id + "@" + middleware.ClientVersion(c))
	})
	return app
}

// TestRequireUserSession tests the status for each session outcome
func TestRequireUserSession(t *testing.T) {
	app := setupApp(sessionAuth{})

	cases := []struct {
		cookie string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"good", http.StatusOK},
		{"stale", http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.cookie != "" {
			req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: tc.cookie})
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		if resp.StatusCode != tc.want {
			t.Errorf("Cookie %q: expected status %d, got %d", tc.cookie, tc.want, resp.StatusCode)
		}
	}
}

// TestRequireUserJWT tests bearer token handling and the client version default
func TestRequireUserJWT(t *testing.T) {
	app := setupApp(services.NewJWTAuthenticator("secret"))

	token, err := services.IssueToken("secret", "user-9", time.Minute)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Client-Version", "3.1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if got := string(body); got != "user-9@3.1" {
		t.Errorf("Expected user-9@3.1, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
}
