package services

import (
	"context"
	"testing"

	"github.com/localnerve/glucodb/internal/classifier"
	"github.com/localnerve/glucodb/internal/config"
	"github.com/localnerve/glucodb/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := &config.Config{DBType: "sqlite", AuthMode: "jwt"}
	model := classifier.NewService(classifier.DefaultOptions())

	result := HealthCheck(context.Background(), cfg, db, NewJWTAuthenticator(testSecret), model, zerolog.Nop())
	assert.Equal(t, "healthy", result.Status)
	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, "not used", result.Authorizer)
	assert.Equal(t, "not ready", result.Model)
	assert.Equal(t, "jwt", result.Details["auth_mode"])

	model.Replace(&classifier.Model{})
	result = HealthCheck(context.Background(), cfg, db, NewJWTAuthenticator(testSecret), model, zerolog.Nop())
	assert.Equal(t, "ready", result.Model)
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.Close()

	result := HealthCheck(context.Background(), &config.Config{AuthMode: "jwt"}, db, NewJWTAuthenticator(testSecret), nil, zerolog.Nop())
	assert.Equal(t, "unhealthy", result.Status)
	assert.Equal(t, "unreachable", result.Database)
	assert.Contains(t, result.ErrorMessage, "database")
}
