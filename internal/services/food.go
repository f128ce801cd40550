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

// FoodInput is the create and update payload for a food
type FoodInput struct {
	Number        *types.FlexInt `json:"number"`
	Food          *string        `json:"food"`
	GlycemicIndex *types.FlexInt `json:"glycemic_index"`
	GlycemicLoad  *types.FlexInt `json:"glycemic_load"`
	Description   *string        `json:"description"`
	Image         *string        `json:"image"`
}

// FoodPair is one comparison group of the food choice game
type FoodPair struct {
	Number int           `json:"number"`
	Foods  []models.Food `json:"foods"`
}

func checkFood(v *types.ValidationError, in FoodInput) {
	if in.GlycemicIndex != nil {
		if gi := in.GlycemicIndex.Int(); gi < 0 || gi > 150 {
			v.Add("glycemic_index", "Glycemic index must be between 0 and 150")
		}
	}
	if in.GlycemicLoad != nil && in.GlycemicLoad.Int() < 0 {
		v.Add("glycemic_load", "Glycemic load must not be negative")
	}
	if emptied(in.Food) {
		v.Add("food", "Food must not be empty")
	}
}

func applyFood(rec *models.Food, in FoodInput) {
	if in.Number != nil {
		rec.Number = in.Number.Int()
	}
	if in.Food != nil {
		rec.Food = strings.TrimSpace(*in.Food)
	}
	if in.GlycemicIndex != nil {
		rec.GlycemicIndex = in.GlycemicIndex.Int()
	}
	if in.GlycemicLoad != nil {
		rec.GlycemicLoad = in.GlycemicLoad.Int()
	}
	if in.Description != nil {
		rec.Description = strings.TrimSpace(*in.Description)
	}
	if in.Image != nil {
		rec.Image = strings.TrimSpace(*in.Image)
	}
}

// FoodSchema is the resource schema for foods
func FoodSchema() Schema[models.Food, FoodInput, FoodInput] {
	return Schema[models.Food, FoodInput, FoodInput]{
		Name:  "Food",
		Order: "number asc, id asc",

		Build: func(in FoodInput) (models.Food, error) {
			v := &types.ValidationError{}
			if blank(in.Food) {
				v.Missing("food")
			}
			if in.GlycemicIndex == nil {
				v.Missing("glycemic_index")
			}
			checkFood(v, in)
			if err := v.Err(); err != nil {
				return models.Food{}, err
			}

			var rec models.Food
			applyFood(&rec, in)
			return rec, nil
		},

		Check: func(in FoodInput) error {
			v := &types.ValidationError{}
			checkFood(v, in)
			return v.Err()
		},

		Apply: applyFood,
	}
}

// FoodPairs groups every food by its number, lowest number first
func FoodPairs(ctx context.Context, db *gorm.DB) ([]FoodPair, error) {
	var foods []models.Food
	err := db.WithContext(ctx).
		Clauses(hints.Comment("select", "food pairs")).
		Order("number asc, id asc").
		Find(&foods).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load foods")
	}

	pairs := make([]FoodPair, 0)
	for _, food := range foods {
		if n := len(pairs); n > 0 && pairs[n-1].Number == food.Number {
			pairs[n-1].Foods = append(pairs[n-1].Foods, food)
			continue
		}
		pairs = append(pairs, FoodPair{Number: food.Number, Foods: []models.Food{food}})
	}
	return pairs, nil
}
