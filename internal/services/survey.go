package services

import (
	"strings"

	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/types"
)

// PublicSurveyLimit caps the unauthenticated survey listing
const PublicSurveyLimit = 100

// SurveyInput is the create and update payload for a survey response
type SurveyInput struct {
	Message *string `json:"message"`
	Name    *string `json:"name"`
}

// SurveyView is a survey response with its formatted attribution
type SurveyView struct {
	models.Survey
	Author string `json:"author"`
}

// PublicSurvey is the read-only shape served without authentication
type PublicSurvey struct {
	ID        uint64 `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// NewSurveyView decorates a survey with its author line
func NewSurveyView(s *models.Survey) SurveyView {
	return SurveyView{Survey: *s, Author: s.Author()}
}

// NewPublicSurvey strips a survey down to its formatted content
func NewPublicSurvey(s *models.Survey) PublicSurvey {
	return PublicSurvey{
		ID:        s.ID,
		Content:   s.Author(),
		Timestamp: s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func normalizeName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SurveySchema is the resource schema for survey responses
func SurveySchema() Schema[models.Survey, SurveyInput, SurveyInput] {
	return Schema[models.Survey, SurveyInput, SurveyInput]{
		Name:        "Survey",
		OwnerColumn: "user_id",
		Order:       "id asc",
		SetOwner:    func(rec *models.Survey, owner string) { rec.UserID = owner },

		Build: func(in SurveyInput) (models.Survey, error) {
			if in.Message == nil || strings.TrimSpace(*in.Message) == "" {
				return models.Survey{}, types.Invalid("message", "Survey message is required")
			}
			return models.Survey{
				Message: strings.TrimSpace(*in.Message),
				Name:    normalizeName(in.Name),
			}, nil
		},

		Check: func(in SurveyInput) error {
			if in.Message != nil && strings.TrimSpace(*in.Message) == "" {
				return types.Invalid("message", "Updated message must not be empty")
			}
			return nil
		},

		Apply: func(rec *models.Survey, in SurveyInput) {
			if in.Message != nil {
				rec.Message = strings.TrimSpace(*in.Message)
			}
			if in.Name != nil {
				rec.Name = normalizeName(in.Name)
			}
		},
	}
}
