package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientVersionKey is the Locals key holding the calling game's version
const ClientVersionKey = "clientVersion"

// VersionMiddleware reads the X-Client-Version header into context. Scores
// submitted without a version are stamped with it.
func VersionMiddleware(defaultVersion string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := strings.TrimSpace(c.Get("X-Client-Version"))
		if version == "" || len(version) > 20 {
			version = defaultVersion
		}

		c.Locals(ClientVersionKey, version)

		return c.Next()
	}
}

// ClientVersion returns the version stored by VersionMiddleware, or "" when absent
func ClientVersion(c *fiber.Ctx) string {
	v, _ := c.Locals(ClientVersionKey).(string)
	return v
}
