package data

import (
	_ "embed"
)

//go:embed seed/flashcards.json
var SeedFlashcards []byte

//go:embed seed/trivia.json
var SeedTrivia []byte

//go:embed seed/foods.json
var SeedFoods []byte

// TrainingIndicators is a sample of the CDC diabetes health indicators survey
//
//go:embed training/diabetes_indicators.csv
var TrainingIndicators []byte
