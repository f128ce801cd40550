package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

func errorBody(c *fiber.Ctx, message string, status int, errorType string) fiber.Map {
	return fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	}
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(errorBody(c, message, status, errorType))
}

// ValidationErrorResponse sends a 400 naming every rejected field
func ValidationErrorResponse(c *fiber.Ctx, v *types.ValidationError, errorType string) error {
	body := errorBody(c, v.Error(), fiber.StatusBadRequest, errorType)
	body["fields"] = v.Fields
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(errorBody(c, message, fiber.StatusNotFound, "notFound"))
}

// DeletedResponse confirms a delete
func DeletedResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   message,
		"ok":        true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int                `json:"status"`
	Message   string             `json:"message"`
	Ok        bool               `json:"ok"`
	Timestamp string             `json:"timestamp"`
	URL       string             `json:"url"`
	Type      string             `json:"type,omitempty"`
	Fields    []types.FieldError `json:"fields,omitempty"`
}

// DeletedResponseStruct defines the schema for delete confirmations
type DeletedResponseStruct struct {
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
}
