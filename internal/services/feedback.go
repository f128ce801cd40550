package services

import (
	"context"
	"strings"

	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// FeedbackInput is a crossword feedback submission
type FeedbackInput struct {
	Accuracy *types.FlexInt `json:"accuracy"`
	Comment  *string        `json:"comment"`
}

// BuildFeedback validates a feedback submission
func BuildFeedback(in FeedbackInput) (models.Feedback, error) {
	v := &types.ValidationError{}
	if in.Accuracy == nil {
		v.Missing("accuracy")
	} else if a := in.Accuracy.Int(); a < 0 || a > 100 {
		v.Add("accuracy", "Accuracy must be between 0 and 100")
	}
	if blank(in.Comment) {
		v.Missing("comment")
	} else if len(strings.TrimSpace(*in.Comment)) > 500 {
		v.Add("comment", "Comment must be at most 500 characters")
	}
	if err := v.Err(); err != nil {
		return models.Feedback{}, err
	}
	return models.Feedback{Accuracy: in.Accuracy.Int(), Comment: strings.TrimSpace(*in.Comment)}, nil
}

// SubmitFeedback stores crossword feedback
func SubmitFeedback(ctx context.Context, db *gorm.DB, in FeedbackInput) (*models.Feedback, error) {
	fb, err := BuildFeedback(in)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Create(&fb).Error; err != nil {
		return nil, errors.Wrap(err, "failed to save feedback")
	}
	return &fb, nil
}

// ListFeedback returns all feedback, newest first
func ListFeedback(ctx context.Context, db *gorm.DB) ([]models.Feedback, error) {
	items := make([]models.Feedback, 0)
	if err := db.WithContext(ctx).Order("timestamp desc, id desc").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load feedback")
	}
	return items, nil
}
