package services

import (
	"context"
	"testing"

	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/testutil"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prob(v float64) *types.FlexFloat64 {
	f := types.FlexFloat64(v)
	return &f
}

func TestRiskLevel(t *testing.T) {
	assert.Equal(t, models.RiskLow, RiskLevel(0))
	assert.Equal(t, models.RiskLow, RiskLevel(0.399))
	assert.Equal(t, models.RiskMedium, RiskLevel(0.4))
	assert.Equal(t, models.RiskMedium, RiskLevel(0.699))
	assert.Equal(t, models.RiskHigh, RiskLevel(0.7))
	assert.Equal(t, models.RiskHigh, RiskLevel(1))
}

func TestPredictionResource(t *testing.T) {
	res := NewResource(testutil.SetupTestDB(t), PredictionSchema())
	ctx := context.Background()

	rec, err := res.Create(ctx, "alice", PredictionInput{
		Probability: prob(0.55),
		Inputs:      map[string]interface{}{"BMI": 31},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RiskMedium, rec.RiskLevel)

	got, err := res.Get(ctx, "alice", rec.ID)
	require.NoError(t, err)
	var inputs map[string]float64
	require.NoError(t, got.Inputs.Decode(&inputs))
	assert.Equal(t, 31.0, inputs["BMI"])

	_, err = res.Get(ctx, "bob", rec.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	updated, err := res.Update(ctx, "alice", rec.ID, PredictionInput{Probability: prob(0.9)})
	require.NoError(t, err)
	assert.Equal(t, models.RiskHigh, updated.RiskLevel)

	_, err = res.Update(ctx, "alice", rec.ID, PredictionInput{Probability: prob(1.5)})
	_, ok := types.IsValidation(err)
	assert.True(t, ok)

	_, err = res.Create(ctx, "alice", PredictionInput{})
	_, ok = types.IsValidation(err)
	assert.True(t, ok)
}
