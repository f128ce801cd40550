// common.go
//
// glucodb, a diabetes education data service with a glucose risk classifier
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of glucodb.
// glucodb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// glucodb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with glucodb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/classifier"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/localnerve/glucodb/internal/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// respondError maps a service error onto the error envelope. Store failures
// are logged with their stack and reported without detail.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error, errorType string) error {
	if v, ok := types.IsValidation(err); ok {
		return utils.ValidationErrorResponse(c, v, errorType)
	}
	if errors.Is(err, types.ErrNotFound) {
		return utils.NotFoundResponse(c, err.Error())
	}
	if errors.Is(err, classifier.ErrNotReady) {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusServiceUnavailable, errorType)
	}

	var ce *types.CustomError
	if errors.As(err, &ce) {
		return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type)
	}

	log.Error().Stack().Err(err).
		Str("method", c.Method()).
		Str("url", c.OriginalURL()).
		Str("type", errorType).
		Msg("Request failed")
	return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, errorType)
}

// parseID reads the :id route parameter
func parseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, types.Invalid("id", "Id must be a positive integer")
	}
	return id, nil
}

// decodeBody unmarshals the JSON request body into out. Malformed JSON is a
// validation error on "body" so it reaches the client as a 400.
func decodeBody(c *fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return types.Invalid("body", "Request body is required")
	}
	if err := json.Unmarshal(body, out); err != nil {
		if v, ok := types.IsValidation(err); ok {
			return v
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return types.Invalid(typeErr.Field, "Expected "+typeErr.Type.String())
		}
		return types.Invalid("body", "Malformed request body: "+err.Error())
	}
	return nil
}

// ErrorHandler renders errors returned by handlers and middleware in the error envelope
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()
		errorType := "unknown"

		var fe *fiber.Error
		var ce *types.CustomError
		switch {
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
		case errors.As(err, &ce):
			code = ce.Code
			message = ce.Message
			errorType = ce.Type
		default:
			log.Error().Stack().Err(err).Str("url", c.OriginalURL()).Msg("Unhandled error")
			message = "Internal server error"
		}

		return c.Status(code).JSON(fiber.Map{
			"status":    code,
			"message":   message,
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
			"type":      errorType,
		})
	}
}

// NotFound is the fallback for unmatched routes
func NotFound(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, "[404] Resource Not Found", fiber.StatusNotFound, "route")
}
