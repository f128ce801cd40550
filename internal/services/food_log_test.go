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

func TestMealImpact(t *testing.T) {
	cases := map[string]string{
		"ice cream and salad":       models.ImpactHigh,
		"plain toast":               models.ImpactUnknown,
		"Salad then candy":          models.ImpactLow,
		"banana bread":              models.ImpactMedium,
		"  SODA  ":                  models.ImpactHigh,
		"cream then ice":            models.ImpactUnknown,
		"rice with ice cream":       models.ImpactMedium,
		"scrambled eggs":            models.ImpactLow,
		"":                          models.ImpactUnknown,
		"chickens are not chicken!": models.ImpactUnknown,
	}
	for meal, want := range cases {
		assert.Equal(t, want, MealImpact(meal), meal)
	}
}

func TestFoodLogOwnerScope(t *testing.T) {
	res := NewResource(testutil.SetupTestDB(t), FoodLogSchema())
	ctx := context.Background()

	mine, err := res.Create(ctx, "alice", FoodLogInput{Meal: ptr("  grilled chicken  ")})
	require.NoError(t, err)
	assert.Equal(t, "alice", mine.UserID)
	assert.Equal(t, "grilled chicken", mine.Meal)
	assert.Equal(t, models.ImpactLow, mine.Impact)

	_, err = res.Create(ctx, "bob", FoodLogInput{Meal: ptr("soda")})
	require.NoError(t, err)

	list, err := res.List(ctx, ListQuery{Owner: "alice"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	_, err = res.Get(ctx, "bob", mine.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = res.Update(ctx, "bob", mine.ID, FoodLogInput{Meal: ptr("candy")})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, res.Delete(ctx, "bob", mine.ID), types.ErrNotFound)

	updated, err := res.Update(ctx, "alice", mine.ID, FoodLogInput{Meal: ptr("white rice")})
	require.NoError(t, err)
	assert.Equal(t, models.ImpactMedium, updated.Impact)
}

func TestFoodLogValidation(t *testing.T) {
	res := NewResource(testutil.SetupTestDB(t), FoodLogSchema())

	_, err := res.Create(context.Background(), "alice", FoodLogInput{Meal: ptr("   ")})
	v, ok := types.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "meal", v.Fields[0].Field)

	_, err = res.Update(context.Background(), "alice", 1, FoodLogInput{Meal: ptr("")})
	_, ok = types.IsValidation(err)
	assert.True(t, ok)
}
