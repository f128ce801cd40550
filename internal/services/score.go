package services

import (
	"context"
	"strings"

	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// DefaultScoreVersion is stored when neither the payload nor the client names a game version
const DefaultScoreVersion = "1.0"

// ScoreInput is the create and update payload for a score
type ScoreInput struct {
	Points  *types.FlexInt `json:"points"`
	Level   *types.FlexInt `json:"level"`
	Version *string        `json:"version"`
}

func checkScore(v *types.ValidationError, in ScoreInput) {
	if in.Points != nil && in.Points.Int() < 0 {
		v.Add("points", "Points must not be negative")
	}
	if in.Level != nil && in.Level.Int() < 0 {
		v.Add("level", "Level must not be negative")
	}
	if in.Version != nil && len(*in.Version) > 20 {
		v.Add("version", "Version must be at most 20 characters")
	}
}

// ScoreSchema is the resource schema for game scores. Scores are public to read
// and mutable only by their owner.
func ScoreSchema() Schema[models.Score, ScoreInput, ScoreInput] {
	return Schema[models.Score, ScoreInput, ScoreInput]{
		Name:        "Score",
		OwnerColumn: "user_id",
		Order:       "points desc, id asc",
		SetOwner:    func(rec *models.Score, owner string) { rec.UserID = owner },

		Build: func(in ScoreInput) (models.Score, error) {
			v := &types.ValidationError{}
			if in.Points == nil {
				v.Missing("points")
			}
			if in.Level == nil {
				v.Missing("level")
			}
			checkScore(v, in)
			if err := v.Err(); err != nil {
				return models.Score{}, err
			}

			rec := models.Score{
				Points:  in.Points.Int(),
				Level:   in.Level.Int(),
				Version: DefaultScoreVersion,
			}
			if in.Version != nil && strings.TrimSpace(*in.Version) != "" {
				rec.Version = strings.TrimSpace(*in.Version)
			}
			return rec, nil
		},

		Check: func(in ScoreInput) error {
			v := &types.ValidationError{}
			checkScore(v, in)
			return v.Err()
		},

		Apply: func(rec *models.Score, in ScoreInput) {
			if in.Points != nil {
				rec.Points = in.Points.Int()
			}
			if in.Level != nil {
				rec.Level = in.Level.Int()
			}
			if in.Version != nil && strings.TrimSpace(*in.Version) != "" {
				rec.Version = strings.TrimSpace(*in.Version)
			}
		},
	}
}

// Leaderboard returns the top scores, highest first. limit defaults to 10 and is capped at 100.
func Leaderboard(ctx context.Context, db *gorm.DB, limit int) ([]models.Score, error) {
	limit = ClampLimit(limit, DefaultListLimit, MaxListLimit)

	scores := make([]models.Score, 0, limit)
	err := db.WithContext(ctx).
		Clauses(hints.Comment("select", "leaderboard")).
		Order("points desc, created asc, id asc").
		Limit(limit).
		Find(&scores).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load leaderboard")
	}
	return scores, nil
}
