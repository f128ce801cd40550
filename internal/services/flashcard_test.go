package services

import (
	"context"
	"testing"

	"github.com/localnerve/glucodb/internal/testutil"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrade(t *testing.T) {
	res := Grade("prick test", "Finger Prick Test")
	assert.True(t, res.IsCorrect)
	assert.Equal(t, "Finger Prick Test", res.Term)
	assert.InDelta(t, 20.0/27.0, res.Similarity, 1e-9)

	res = Grade("  INSULIN ", "Insulin")
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 1.0, res.Similarity)

	res = Grade("insuln", "Insulin")
	assert.True(t, res.IsCorrect)
	assert.InDelta(t, 12.0/13.0, res.Similarity, 1e-9)

	res = Grade("xyz", "Insulin")
	assert.False(t, res.IsCorrect)
	assert.Zero(t, res.Similarity)

	res = Grade("", "Insulin")
	assert.False(t, res.IsCorrect)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.InDelta(t, 0.75, Similarity("abcd", "bcde"), 1e-9)
}

func TestFlashcardResource(t *testing.T) {
	res := NewResource(testutil.SetupTestDB(t), FlashcardSchema())
	ctx := context.Background()

	_, err := res.Create(ctx, "", FlashcardInput{Term: ptr("A1C")})
	v, ok := types.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "definition", v.Fields[0].Field)

	card, err := res.Create(ctx, "", FlashcardInput{Term: ptr("A1C"), Definition: ptr("Average blood sugar over three months.")})
	require.NoError(t, err)

	updated, err := res.Update(ctx, "", card.ID, FlashcardInput{Definition: ptr("A three month average.")})
	require.NoError(t, err)
	assert.Equal(t, "A1C", updated.Term)
	assert.Equal(t, "A three month average.", updated.Definition)

	_, err = res.Update(ctx, "", card.ID, FlashcardInput{Term: ptr(" ")})
	_, ok = types.IsValidation(err)
	assert.True(t, ok)
}
