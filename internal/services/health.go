package services

import (
	"context"

	"github.com/localnerve/glucodb/internal/classifier"
	"github.com/localnerve/glucodb/internal/config"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Pinger is implemented by authenticators backed by a remote service
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer"`
	Model        string            `json:"model"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(component, detail string, err error) {
	r.Status = "unhealthy"
	r.Details[detail] = err.Error()
	if r.ErrorMessage == "" {
		r.ErrorMessage = component + ": " + err.Error()
	} else {
		r.ErrorMessage += "; " + component + ": " + err.Error()
	}
}

// HealthCheck reports on the store, the remote authenticator when there is one,
// and the diabetes model. A missing model does not make the service unhealthy.
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, auth Authenticator, model *classifier.Service, log zerolog.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		result.Database = "unreachable"
		result.fail("database", "database_error", err)
		log.Warn().Err(err).Msg("Health check failed - database")
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
	}

	if p, ok := auth.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			result.Authorizer = "unreachable"
			result.fail("authorizer", "authorizer_error", err)
			log.Warn().Err(err).Msg("Health check failed - authorizer")
		} else {
			result.Authorizer = "ok"
			result.Details["authorizer_url"] = cfg.AuthzURL
		}
	} else {
		result.Authorizer = "not used"
	}
	result.Details["auth_mode"] = auth.Mode()

	if model != nil && model.Ready() {
		result.Model = "ready"
	} else {
		result.Model = "not ready"
	}

	return result
}
