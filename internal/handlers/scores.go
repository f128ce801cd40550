package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/middleware"
	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/localnerve/glucodb/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ScoreHandler handles the score views
type ScoreHandler struct {
	DB       *gorm.DB
	Log      zerolog.Logger
	Resource *services.Resource[models.Score, services.ScoreInput, services.ScoreInput]
}

// NewScoreResource builds the CRUD handler for scores. A score without a version
// takes the client's X-Client-Version.
func NewScoreResource(db *gorm.DB, log zerolog.Logger) *ResourceHandler[models.Score, services.ScoreInput, services.ScoreInput] {
	return &ResourceHandler[models.Score, services.ScoreInput, services.ScoreInput]{
		Resource: services.NewResource(db, services.ScoreSchema()),
		Log:      log,
		Noun:     "scores",
		Owned:    true,
		Prepare: func(c *fiber.Ctx, in *services.ScoreInput) {
			if in.Version == nil {
				if v := middleware.ClientVersion(c); v != "" {
					in.Version = &v
				}
			}
		},
	}
}

// Leaderboard handles GET /api/scores/leaderboard
// @Summary Score leaderboard
// @Description Highest scores first
// @Tags Scores
// @Produce json
// @Param limit query int false "Entries to return, default 10, at most 100"
// @Success 200 {array} models.Score
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /scores/leaderboard [get]
func (h *ScoreHandler) Leaderboard(c *fiber.Ctx) error {
	scores, err := services.Leaderboard(c.UserContext(), h.DB, c.QueryInt("limit", services.DefaultListLimit))
	if err != nil {
		return respondError(c, h.Log, err, "scores.leaderboard")
	}
	return utils.SuccessResponse(c, scores, fiber.StatusOK)
}

// Mine handles GET /api/scores/user
// @Summary Caller's scores
// @Tags Scores
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Score
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /scores/user [get]
func (h *ScoreHandler) Mine(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	scores, err := h.Resource.List(c.UserContext(), services.ListQuery{
		Filters: map[string]interface{}{"user_id": userID},
	})
	if err != nil {
		return respondError(c, h.Log, err, "scores.user")
	}
	return utils.SuccessResponse(c, scores, fiber.StatusOK)
}
