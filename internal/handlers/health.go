package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/classifier"
	"github.com/localnerve/glucodb/internal/config"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/localnerve/glucodb/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// HealthHandler serves liveness and readiness
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
	Auth   services.Authenticator
	Model  *classifier.Service
	Log    zerolog.Logger
}

// Health handles GET /api/health
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB, h.Auth, h.Model, h.Log)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}

// Ready handles GET /api/health/ready
// @Summary Model readiness
// @Description 200 once the diabetes model is trained, 503 before
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	model, err := h.Model.Model()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusServiceUnavailable, "health.ready")
	}
	return utils.SuccessResponse(c, fiber.Map{
		"ready":      true,
		"accuracy":   model.Accuracy,
		"train_size": model.TrainSize,
		"test_size":  model.TestSize,
	}, fiber.StatusOK)
}
