package services

import (
	"context"
	"testing"

	"github.com/localnerve/glucodb/internal/testutil"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurveyCreateAndViews(t *testing.T) {
	res := NewResource(testutil.SetupTestDB(t), SurveySchema())
	ctx := context.Background()

	named, err := res.Create(ctx, "alice", SurveyInput{Message: ptr(" Loved the games "), Name: ptr("Alice")})
	require.NoError(t, err)
	anon, err := res.Create(ctx, "bob", SurveyInput{Message: ptr("More trivia"), Name: ptr("  ")})
	require.NoError(t, err)
	assert.Nil(t, anon.Name)

	assert.Equal(t, `"Loved the games" - Alice`, NewSurveyView(named).Author)
	pub := NewPublicSurvey(anon)
	assert.Equal(t, `"More trivia" - Anonymous`, pub.Content)
	assert.Equal(t, anon.ID, pub.ID)

	all, err := res.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := res.List(ctx, ListQuery{Filters: map[string]interface{}{"user_id": "bob"}})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, anon.ID, mine[0].ID)
}

func TestSurveyValidation(t *testing.T) {
	res := NewResource(testutil.SetupTestDB(t), SurveySchema())

	_, err := res.Create(context.Background(), "alice", SurveyInput{Name: ptr("Alice")})
	v, ok := types.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "message", v.Fields[0].Field)

	_, err = res.Update(context.Background(), "alice", 1, SurveyInput{Message: ptr(" ")})
	_, ok = types.IsValidation(err)
	assert.True(t, ok)
}
