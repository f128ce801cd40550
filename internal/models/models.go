package models

// All lists every persisted model, in dependency order, for migrations
func All() []interface{} {
	return []interface{}{
		&GlucoseRecord{},
		&FoodLog{},
		&Score{},
		&Survey{},
		&Flashcard{},
		&TriviaQuestion{},
		&TriviaAnswer{},
		&Food{},
		&Prediction{},
		&BoardEntry{},
		&Feedback{},
	}
}
