package services

import (
	"strings"

	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/types"
)

// impactKeywords are checked in this order at every token position.
// Multi-word keywords match a run of consecutive tokens.
var impactKeywords = []struct {
	impact   string
	keywords [][]string
}{
	{models.ImpactHigh, [][]string{{"candy"}, {"soda"}, {"ice", "cream"}}},
	{models.ImpactMedium, [][]string{{"banana"}, {"bread"}, {"rice"}}},
	{models.ImpactLow, [][]string{{"chicken"}, {"salad"}, {"eggs"}}},
}

// MealImpact estimates a meal's blood sugar impact from its text.
// The first keyword found reading left to right decides, not the most severe one.
func MealImpact(meal string) string {
	tokens := strings.Fields(strings.ToLower(meal))
	for i := range tokens {
		for _, group := range impactKeywords {
			for _, kw := range group.keywords {
				if hasPhraseAt(tokens, i, kw) {
					return group.impact
				}
			}
		}
	}
	return models.ImpactUnknown
}

func hasPhraseAt(tokens []string, at int, phrase []string) bool {
	if at+len(phrase) > len(tokens) {
		return false
	}
	for j, word := range phrase {
		if tokens[at+j] != word {
			return false
		}
	}
	return true
}

// FoodLogInput is the create and update payload for a food log entry
type FoodLogInput struct {
	Meal *string `json:"meal"`
}

// FoodLogSchema is the resource schema for food logs; entries are private to their owner
func FoodLogSchema() Schema[models.FoodLog, FoodLogInput, FoodLogInput] {
	return Schema[models.FoodLog, FoodLogInput, FoodLogInput]{
		Name:        "Food log",
		OwnerColumn: "user_id",
		ScopeReads:  true,
		Order:       "created_at desc, id desc",
		SetOwner:    func(rec *models.FoodLog, owner string) { rec.UserID = owner },

		Build: func(in FoodLogInput) (models.FoodLog, error) {
			if in.Meal == nil || strings.TrimSpace(*in.Meal) == "" {
				return models.FoodLog{}, types.Invalid("meal", "Meal is required")
			}
			meal := strings.TrimSpace(*in.Meal)
			return models.FoodLog{Meal: meal, Impact: MealImpact(meal)}, nil
		},

		Check: func(in FoodLogInput) error {
			if in.Meal != nil && strings.TrimSpace(*in.Meal) == "" {
				return types.Invalid("meal", "Meal must not be empty")
			}
			return nil
		},

		Apply: func(rec *models.FoodLog, in FoodLogInput) {
			if in.Meal != nil {
				rec.Meal = strings.TrimSpace(*in.Meal)
				rec.Impact = MealImpact(rec.Meal)
			}
		},
	}
}
