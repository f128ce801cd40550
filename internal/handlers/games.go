package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/localnerve/glucodb/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// GameHandler serves the matching and racing leaderboards and crossword feedback
type GameHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

// BoardEntries handles GET /api/leaderboards/:board
// @Summary Game leaderboard
// @Description Fastest finishes first
// @Tags Games
// @Produce json
// @Param board path string true "Board" Enums(matching, racing)
// @Param limit query int false "Entries to return, default 20, at most 100"
// @Success 200 {array} models.BoardEntry
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /leaderboards/{board} [get]
func (h *GameHandler) BoardEntries(c *fiber.Ctx) error {
	entries, err := services.BoardEntries(c.UserContext(), h.DB, c.Params("board"), c.QueryInt("limit", services.DefaultBoardLimit))
	if err != nil {
		return respondError(c, h.Log, err, "leaderboards.list")
	}
	return utils.SuccessResponse(c, entries, fiber.StatusOK)
}

// SubmitBoardEntry handles POST /api/leaderboards/:board
// @Summary Submit a finished game
// @Tags Games
// @Accept json
// @Produce json
// @Param board path string true "Board" Enums(matching, racing)
// @Param payload body services.BoardInput true "Finish"
// @Success 201 {object} models.BoardEntry
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /leaderboards/{board} [post]
func (h *GameHandler) SubmitBoardEntry(c *fiber.Ctx) error {
	board := c.Params("board")
	if !services.IsBoard(board) {
		return utils.NotFoundResponse(c, "Unknown leaderboard "+board)
	}

	var in services.BoardInput
	if err := decodeBody(c, &in); err != nil {
		return respondError(c, h.Log, err, "leaderboards.create")
	}

	entry, err := services.SubmitBoardEntry(c.UserContext(), h.DB, board, in)
	if err != nil {
		return respondError(c, h.Log, err, "leaderboards.create")
	}
	return utils.SuccessResponse(c, entry, fiber.StatusCreated)
}

// ListFeedback handles GET /api/feedback
// @Summary Crossword feedback
// @Description Newest first
// @Tags Games
// @Produce json
// @Success 200 {array} models.Feedback
// @Router /feedback [get]
func (h *GameHandler) ListFeedback(c *fiber.Ctx) error {
	items, err := services.ListFeedback(c.UserContext(), h.DB)
	if err != nil {
		return respondError(c, h.Log, err, "feedback.list")
	}
	return utils.SuccessResponse(c, items, fiber.StatusOK)
}

// SubmitFeedback handles POST /api/feedback
// @Summary Submit crossword feedback
// @Tags Games
// @Accept json
// @Produce json
// @Param payload body services.FeedbackInput true "Feedback"
// @Success 201 {object} models.Feedback
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /feedback [post]
func (h *GameHandler) SubmitFeedback(c *fiber.Ctx) error {
	var in services.FeedbackInput
	if err := decodeBody(c, &in); err != nil {
		return respondError(c, h.Log, err, "feedback.create")
	}

	fb, err := services.SubmitFeedback(c.UserContext(), h.DB, in)
	if err != nil {
		return respondError(c, h.Log, err, "feedback.create")
	}
	return utils.SuccessResponse(c, fb, fiber.StatusCreated)
}
