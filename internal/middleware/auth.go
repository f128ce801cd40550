package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/pkg/errors"
)

// UserIDKey is the Locals key holding the authenticated caller id
const UserIDKey = "userID"

// SessionCookie is the Authorizer session cookie name
const SessionCookie = "cookie_session"

// RequireUser resolves the caller from a Bearer token or session cookie and
// stores the id under UserIDKey. Missing or invalid credentials are 401, a
// rejected session is 403.
func RequireUser(auth services.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		creds := services.Credentials{
			Bearer:  services.BearerToken(c.Get(fiber.HeaderAuthorization)),
			Session: c.Cookies(SessionCookie),
		}

		userID, err := auth.Authenticate(c.UserContext(), creds)
		if err != nil {
			return authError(err)
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

func authError(err error) error {
	switch {
	case errors.Is(err, services.ErrNoCredentials):
		return &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Authentication required",
			Type:    "auth.missing",
		}
	case errors.Is(err, services.ErrSessionRejected):
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Invalid session: " + err.Error(),
			Type:    "auth.session",
		}
	}
	return &types.CustomError{
		Code:    fiber.StatusUnauthorized,
		Message: "Invalid credentials: " + err.Error(),
		Type:    "auth.token",
	}
}

// UserID returns the caller id stored by RequireUser
func UserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(UserIDKey).(string)
	return id, ok && id != ""
}
