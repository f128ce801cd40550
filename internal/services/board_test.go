package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/testutil"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBoardEntry(t *testing.T) {
	now := time.Date(2026, 5, 4, 23, 30, 0, 0, time.UTC)

	entry, err := BuildBoardEntry(models.BoardRacing, BoardInput{Time: flexInt(42)}, now)
	require.NoError(t, err)
	assert.Equal(t, AnonymousPlayer, entry.Name)
	assert.Equal(t, "2026-05-04", entry.Date)

	long := strings.Repeat("x", 80)
	entry, err = BuildBoardEntry(models.BoardMatching, BoardInput{Name: &long, Time: flexInt(1), Date: ptr("2026-01-02")}, now)
	require.NoError(t, err)
	assert.Len(t, entry.Name, MaxBoardNameLen)
	assert.Equal(t, "2026-01-02", entry.Date)

	_, err = BuildBoardEntry("chess", BoardInput{Date: ptr("May 4")}, now)
	v, ok := types.IsValidation(err)
	require.True(t, ok)
	assert.Len(t, v.Fields, 3)
}

func TestBoardEntriesOrderAndLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 110; i++ {
		_, err := SubmitBoardEntry(ctx, db, models.BoardMatching, BoardInput{Name: ptr("p"), Time: flexInt((i * 13) % 97)})
		require.NoError(t, err)
	}
	_, err := SubmitBoardEntry(ctx, db, models.BoardRacing, BoardInput{Time: flexInt(0)})
	require.NoError(t, err)

	entries, err := BoardEntries(ctx, db, models.BoardMatching, 500)
	require.NoError(t, err)
	assert.Len(t, entries, MaxListLimit)
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i-1].Time, entries[i].Time)
	}

	entries, err = BoardEntries(ctx, db, models.BoardMatching, 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultBoardLimit)

	entries, err = BoardEntries(ctx, db, models.BoardRacing, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = BoardEntries(ctx, db, "chess", 0)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
