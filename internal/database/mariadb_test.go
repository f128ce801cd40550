package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/glucodb/internal/database"
	"github.com/localnerve/glucodb/internal/devdb"
	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

// TestMariaDB runs migrations, seeding and a glucose round trip against a real server.
func TestMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	containers, err := devdb.Start(ctx, devdb.DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := containers.Terminate(context.Background()); err != nil {
			t.Logf("terminate: %v", err)
		}
	})

	db, err := database.Connect(containers.Config(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.Ping(db))

	first, err := database.Seed(db)
	require.NoError(t, err)
	assert.Positive(t, first.Flashcards)
	assert.Positive(t, first.Trivia)
	assert.Positive(t, first.Foods)

	again, err := database.Seed(db)
	require.NoError(t, err)
	assert.Zero(t, again.Flashcards+again.Trivia+again.Foods)

	glucose := services.NewResource(db, services.GlucoseSchema())
	value := types.FlexFloat64(9.2)
	at := types.FlexTime(time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC))
	rec, err := glucose.Create(ctx, "", services.GlucoseInput{Value: &value, Time: &at})
	require.NoError(t, err)
	assert.Equal(t, models.GlucoseHigh, rec.Status)

	got, err := glucose.Get(ctx, "", rec.ID)
	require.NoError(t, err)
	assert.InDelta(t, 9.2, got.Value, 1e-9)
	assert.True(t, got.Time.Equal(at.Time()))

	require.NoError(t, glucose.Delete(ctx, "", rec.ID))
	_, err = glucose.Get(ctx, "", rec.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
