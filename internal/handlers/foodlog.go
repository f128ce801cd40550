package handlers

import (
	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewFoodLogResource builds the CRUD handler for food logs; entries belong to the caller
func NewFoodLogResource(db *gorm.DB, log zerolog.Logger) *ResourceHandler[models.FoodLog, services.FoodLogInput, services.FoodLogInput] {
	return &ResourceHandler[models.FoodLog, services.FoodLogInput, services.FoodLogInput]{
		Resource: services.NewResource(db, services.FoodLogSchema()),
		Log:      log,
		Noun:     "foodlog",
		Owned:    true,
	}
}
