package services

import (
	"context"
	"testing"

	"github.com/localnerve/glucodb/internal/testutil"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	first, err := SubmitFeedback(ctx, db, FeedbackInput{Accuracy: flexInt(80), Comment: ptr("Fun clues")})
	require.NoError(t, err)
	second, err := SubmitFeedback(ctx, db, FeedbackInput{Accuracy: flexInt(100), Comment: ptr("Too easy")})
	require.NoError(t, err)

	items, err := ListFeedback(ctx, db)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.ElementsMatch(t, []uint64{first.ID, second.ID}, []uint64{items[0].ID, items[1].ID})
	assert.False(t, items[0].Timestamp.Before(items[1].Timestamp))
}

func TestFeedbackValidation(t *testing.T) {
	_, err := BuildFeedback(FeedbackInput{Accuracy: flexInt(101), Comment: ptr("x")})
	v, ok := types.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "accuracy", v.Fields[0].Field)

	_, err = BuildFeedback(FeedbackInput{Accuracy: flexInt(50), Comment: ptr("  ")})
	v, ok = types.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "comment", v.Fields[0].Field)
}
