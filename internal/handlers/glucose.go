package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/localnerve/glucodb/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// GlucoseHandler handles the glucose routes beyond plain CRUD
type GlucoseHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

// NewGlucoseResource builds the CRUD handler for glucose readings
func NewGlucoseResource(db *gorm.DB, log zerolog.Logger) *ResourceHandler[models.GlucoseRecord, services.GlucoseInput, services.GlucoseInput] {
	return &ResourceHandler[models.GlucoseRecord, services.GlucoseInput, services.GlucoseInput]{
		Resource: services.NewResource(db, services.GlucoseSchema()),
		Log:      log,
		Noun:     "glucose",
		Saved: func(rec *models.GlucoseRecord) {
			services.GlucoseReadings.WithLabelValues(rec.Status).Inc()
		},
	}
}

// Restore handles POST /api/glucose/restore
// @Summary Restore glucose readings
// @Description Imports one reading or an array of readings, skipping exact duplicates. Nothing is stored if any reading is invalid.
// @Tags Glucose
// @Accept json
// @Produce json
// @Param payload body []services.GlucoseInput true "Readings"
// @Success 200 {object} services.RestoreResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /glucose/restore [post]
func (h *GlucoseHandler) Restore(c *fiber.Ctx) error {
	var items types.FlexList[services.GlucoseInput]
	if err := decodeBody(c, &items); err != nil {
		return respondError(c, h.Log, err, "glucose.restore")
	}

	result, err := services.RestoreGlucose(c.UserContext(), h.DB, items.Slice())
	if err != nil {
		return respondError(c, h.Log, err, "glucose.restore")
	}

	h.Log.Info().Int("created", result.Created).Int("skipped", result.Skipped).Msg("Glucose restore complete")
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}
