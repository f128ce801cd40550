// resource.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/middleware"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/localnerve/glucodb/internal/utils"
	"github.com/rs/zerolog"
)

// ResourceHandler serves the five CRUD routes of one resource
type ResourceHandler[T any, C any, U any] struct {
	Resource *services.Resource[T, C, U]
	Log      zerolog.Logger

	// Noun prefixes error types, e.g. "glucose" gives "glucose.create"
	Noun string

	// Owned resources take the caller id from the auth middleware
	Owned bool

	// Prepare adjusts a create payload with request context before validation
	Prepare func(c *fiber.Ctx, in *C)

	// Filters reads list filters from the query string
	Filters func(c *fiber.Ctx) (map[string]interface{}, error)

	// View shapes a record for output; the record itself is sent when nil
	View func(rec *T) interface{}

	// Saved runs after a successful create or update
	Saved func(rec *T)
}

func (h *ResourceHandler[T, C, U]) owner(c *fiber.Ctx) string {
	if !h.Owned {
		return ""
	}
	id, _ := middleware.UserID(c)
	return id
}

func (h *ResourceHandler[T, C, U]) view(rec *T) interface{} {
	if h.View == nil {
		return rec
	}
	return h.View(rec)
}

func (h *ResourceHandler[T, C, U]) saved(rec *T) {
	if h.Saved != nil {
		h.Saved(rec)
	}
}

// Create handles POST /api/{resource}
// @Summary Create a record
// @Description Validates the payload, derives computed fields and stores a new record
// @Tags Resources
// @Accept json
// @Produce json
// @Param resource path string true "Resource" Enums(glucose, foodlog, scores, surveys, flashcards, trivia, food, predictions)
// @Param payload body object true "Record fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /{resource} [post]
func (h *ResourceHandler[T, C, U]) Create(c *fiber.Ctx) error {
	var in C
	if err := decodeBody(c, &in); err != nil {
		return respondError(c, h.Log, err, h.Noun+".create")
	}
	if h.Prepare != nil {
		h.Prepare(c, &in)
	}

	rec, err := h.Resource.Create(c.UserContext(), h.owner(c), in)
	if err != nil {
		return respondError(c, h.Log, err, h.Noun+".create")
	}
	h.saved(rec)

	return utils.SuccessResponse(c, h.view(rec), fiber.StatusCreated)
}

// List handles GET /api/{resource}
// @Summary List records
// @Description Lists records in the resource's default order; owner-scoped resources list only the caller's records
// @Tags Resources
// @Produce json
// @Param resource path string true "Resource" Enums(glucose, foodlog, scores, surveys, flashcards, trivia, food, predictions)
// @Param limit query int false "Maximum records, at most 100"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /{resource} [get]
func (h *ResourceHandler[T, C, U]) List(c *fiber.Ctx) error {
	q := services.ListQuery{Owner: h.owner(c)}
	if limit := c.QueryInt("limit", 0); limit > 0 {
		q.Limit = services.ClampLimit(limit, services.DefaultListLimit, services.MaxListLimit)
	}
	if h.Filters != nil {
		filters, err := h.Filters(c)
		if err != nil {
			return respondError(c, h.Log, err, h.Noun+".list")
		}
		q.Filters = filters
	}

	records, err := h.Resource.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.Log, err, h.Noun+".list")
	}

	if h.View == nil {
		return utils.SuccessResponse(c, records, fiber.StatusOK)
	}
	out := make([]interface{}, 0, len(records))
	for i := range records {
		out = append(out, h.View(&records[i]))
	}
	return utils.SuccessResponse(c, out, fiber.StatusOK)
}

// Get handles GET /api/{resource}/:id
// @Summary Get a record
// @Tags Resources
// @Produce json
// @Param resource path string true "Resource" Enums(glucose, foodlog, scores, surveys, flashcards, trivia, food, predictions)
// @Param id path int true "Record ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /{resource}/{id} [get]
func (h *ResourceHandler[T, C, U]) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err, h.Noun+".get")
	}

	rec, err := h.Resource.Get(c.UserContext(), h.owner(c), id)
	if err != nil {
		return respondError(c, h.Log, err, h.Noun+".get")
	}

	return utils.SuccessResponse(c, h.view(rec), fiber.StatusOK)
}

// Update handles PUT /api/{resource}/:id
// @Summary Update a record
// @Description Changes only the fields present in the payload and recomputes derived fields
// @Tags Resources
// @Accept json
// @Produce json
// @Param resource path string true "Resource" Enums(glucose, foodlog, scores, surveys, flashcards, trivia, food, predictions)
// @Param id path int true "Record ID"
// @Param payload body object true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /{resource}/{id} [put]
func (h *ResourceHandler[T, C, U]) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err, h.Noun+".update")
	}

	var in U
	if err := decodeBody(c, &in); err != nil {
		return respondError(c, h.Log, err, h.Noun+".update")
	}

	rec, err := h.Resource.Update(c.UserContext(), h.owner(c), id, in)
	if err != nil {
		return respondError(c, h.Log, err, h.Noun+".update")
	}
	h.saved(rec)

	return utils.SuccessResponse(c, h.view(rec), fiber.StatusOK)
}

// Delete handles DELETE /api/{resource}/:id
// @Summary Delete a record
// @Tags Resources
// @Produce json
// @Param resource path string true "Resource" Enums(glucose, foodlog, scores, surveys, flashcards, trivia, food, predictions)
// @Param id path int true "Record ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /{resource}/{id} [delete]
func (h *ResourceHandler[T, C, U]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err, h.Noun+".delete")
	}

	if err := h.Resource.Delete(c.UserContext(), h.owner(c), id); err != nil {
		return respondError(c, h.Log, err, h.Noun+".delete")
	}

	return utils.DeletedResponse(c, h.Resource.Schema.Name+" deleted")
}

// Mount registers the CRUD routes on router. guard, when not nil, runs before
// mutations; reads also go through it when guardReads is set.
func (h *ResourceHandler[T, C, U]) Mount(router fiber.Router, guard fiber.Handler, guardReads bool) {
	chain := func(handler fiber.Handler, guarded bool) []fiber.Handler {
		if guard != nil && guarded {
			return []fiber.Handler{guard, handler}
		}
		return []fiber.Handler{handler}
	}

	router.Get("/", chain(h.List, guardReads)...)
	router.Post("/", chain(h.Create, true)...)
	router.Get("/:id", chain(h.Get, guardReads)...)
	router.Put("/:id", chain(h.Update, true)...)
	router.Delete("/:id", chain(h.Delete, true)...)
}
