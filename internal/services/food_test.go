package services

import (
	"context"
	"testing"

	"github.com/localnerve/glucodb/internal/testutil"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodPairs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	res := NewResource(db, FoodSchema())
	ctx := context.Background()

	for _, f := range []FoodInput{
		{Number: flexInt(2), Food: ptr("Brown rice"), GlycemicIndex: flexInt(68)},
		{Number: flexInt(1), Food: ptr("White bread"), GlycemicIndex: flexInt(75)},
		{Number: flexInt(1), Food: ptr("Lentils"), GlycemicIndex: flexInt(32)},
		{Number: flexInt(2), Food: ptr("Quinoa"), GlycemicIndex: flexInt(53)},
	} {
		_, err := res.Create(ctx, "", f)
		require.NoError(t, err)
	}

	pairs, err := FoodPairs(ctx, db)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, 1, pairs[0].Number)
	require.Len(t, pairs[0].Foods, 2)
	assert.Equal(t, "White bread", pairs[0].Foods[0].Food)
	assert.Equal(t, "Quinoa", pairs[1].Foods[1].Food)

	group, err := res.List(ctx, ListQuery{Filters: map[string]interface{}{"number": 2}})
	require.NoError(t, err)
	assert.Len(t, group, 2)
}

func TestFoodValidation(t *testing.T) {
	res := NewResource(testutil.SetupTestDB(t), FoodSchema())

	_, err := res.Create(context.Background(), "", FoodInput{Food: ptr("Apple"), GlycemicIndex: flexInt(200)})
	v, ok := types.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "glycemic_index", v.Fields[0].Field)

	_, err = res.Create(context.Background(), "", FoodInput{})
	v, ok = types.IsValidation(err)
	require.True(t, ok)
	assert.Len(t, v.Fields, 2)
}

func TestFoodPairsEmpty(t *testing.T) {
	pairs, err := FoodPairs(context.Background(), testutil.SetupTestDB(t))
	require.NoError(t, err)
	assert.Empty(t, pairs)
	assert.NotNil(t, pairs)
}
