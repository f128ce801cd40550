package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// Limits for the matching and racing leaderboards
const (
	DefaultBoardLimit = 20
	MaxBoardNameLen   = 64
	AnonymousPlayer   = "Anonymous"
)

// BoardInput is a finished game submitted to a leaderboard
type BoardInput struct {
	Name *string        `json:"name"`
	Time *types.FlexInt `json:"time"`
	Date *string        `json:"date"`
}

// IsBoard reports whether name is a known leaderboard
func IsBoard(name string) bool {
	return name == models.BoardMatching || name == models.BoardRacing
}

func boardName(name *string) string {
	if name == nil {
		return AnonymousPlayer
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return AnonymousPlayer
	}
	if utf8.RuneCountInString(trimmed) > MaxBoardNameLen {
		trimmed = string([]rune(trimmed)[:MaxBoardNameLen])
	}
	return trimmed
}

// BuildBoardEntry validates a submission. now supplies the date when none is given.
func BuildBoardEntry(board string, in BoardInput, now time.Time) (models.BoardEntry, error) {
	v := &types.ValidationError{}
	if !IsBoard(board) {
		v.Add("board", "Board must be matching or racing")
	}
	if in.Time == nil {
		v.Missing("time")
	} else if in.Time.Int() < 0 {
		v.Add("time", "Time must not be negative")
	}

	date := now.UTC().Format(time.DateOnly)
	if in.Date != nil && strings.TrimSpace(*in.Date) != "" {
		d, err := time.Parse(time.DateOnly, strings.TrimSpace(*in.Date))
		if err != nil {
			v.Add("date", "Date must be formatted YYYY-MM-DD")
		} else {
			date = d.Format(time.DateOnly)
		}
	}

	if err := v.Err(); err != nil {
		return models.BoardEntry{}, err
	}
	return models.BoardEntry{
		Board: board,
		Name:  boardName(in.Name),
		Time:  in.Time.Int(),
		Date:  date,
	}, nil
}

// SubmitBoardEntry stores a finished game
func SubmitBoardEntry(ctx context.Context, db *gorm.DB, board string, in BoardInput) (*models.BoardEntry, error) {
	entry, err := BuildBoardEntry(board, in, time.Now())
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to record %s entry", board)
	}
	return &entry, nil
}

// BoardEntries returns the fastest games on a board. limit defaults to 20 and is capped at 100.
func BoardEntries(ctx context.Context, db *gorm.DB, board string, limit int) ([]models.BoardEntry, error) {
	if !IsBoard(board) {
		return nil, errors.Wrapf(types.ErrNotFound, "leaderboard %q", board)
	}
	limit = ClampLimit(limit, DefaultBoardLimit, MaxListLimit)

	entries := make([]models.BoardEntry, 0, limit)
	err := db.WithContext(ctx).
		Clauses(hints.Comment("select", board+" leaderboard")).
		Where("board = ?", board).
		Order("time asc, id asc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s leaderboard", board)
	}
	return entries, nil
}
