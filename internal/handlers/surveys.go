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

// SurveyHandler handles the survey views
type SurveyHandler struct {
	Log      zerolog.Logger
	Resource *services.Resource[models.Survey, services.SurveyInput, services.SurveyInput]
}

// NewSurveyResource builds the CRUD handler for survey responses
func NewSurveyResource(db *gorm.DB, log zerolog.Logger) *ResourceHandler[models.Survey, services.SurveyInput, services.SurveyInput] {
	return &ResourceHandler[models.Survey, services.SurveyInput, services.SurveyInput]{
		Resource: services.NewResource(db, services.SurveySchema()),
		Log:      log,
		Noun:     "surveys",
		Owned:    true,
		View: func(rec *models.Survey) interface{} {
			return services.NewSurveyView(rec)
		},
	}
}

// Public handles GET /api/surveys/public
// @Summary Public survey responses
// @Description The first 100 responses with their formatted attribution; no authentication
// @Tags Surveys
// @Produce json
// @Success 200 {array} services.PublicSurvey
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /surveys/public [get]
func (h *SurveyHandler) Public(c *fiber.Ctx) error {
	surveys, err := h.Resource.List(c.UserContext(), services.ListQuery{Limit: services.PublicSurveyLimit})
	if err != nil {
		return respondError(c, h.Log, err, "surveys.public")
	}

	out := make([]services.PublicSurvey, 0, len(surveys))
	for i := range surveys {
		out = append(out, services.NewPublicSurvey(&surveys[i]))
	}
	return utils.SuccessResponse(c, out, fiber.StatusOK)
}

// Mine handles GET /api/surveys/user
// @Summary Caller's survey responses
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.SurveyView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /surveys/user [get]
func (h *SurveyHandler) Mine(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	surveys, err := h.Resource.List(c.UserContext(), services.ListQuery{
		Filters: map[string]interface{}{"user_id": userID},
	})
	if err != nil {
		return respondError(c, h.Log, err, "surveys.user")
	}

	out := make([]services.SurveyView, 0, len(surveys))
	for i := range surveys {
		out = append(out, services.NewSurveyView(&surveys[i]))
	}
	return utils.SuccessResponse(c, out, fiber.StatusOK)
}
