package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/classifier"
	"github.com/localnerve/glucodb/internal/config"
	"github.com/localnerve/glucodb/internal/middleware"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps are the collaborators shared by every route
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Auth   services.Authenticator
	Model  *classifier.Service
	Log    zerolog.Logger
}

// Register mounts every /api route on app
func Register(app *fiber.App, d Deps) {
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware(services.DefaultScoreVersion))

	auth := middleware.RequireUser(d.Auth)

	health := &HealthHandler{Config: d.Config, DB: d.DB, Auth: d.Auth, Model: d.Model, Log: d.Log}
	api.Get("/health", health.Health)
	api.Get("/health/ready", health.Ready)

	// Glucose readings are shared and public
	glucose := NewGlucoseResource(d.DB, d.Log)
	glucoseHandler := &GlucoseHandler{DB: d.DB, Log: d.Log}
	glucoseGroup := api.Group("/glucose")
	glucoseGroup.Post("/restore", glucoseHandler.Restore)
	glucose.Mount(glucoseGroup, nil, false)

	NewFoodLogResource(d.DB, d.Log).Mount(api.Group("/foodlog"), auth, true)

	scores := NewScoreResource(d.DB, d.Log)
	scoreHandler := &ScoreHandler{DB: d.DB, Log: d.Log, Resource: scores.Resource}
	scoreGroup := api.Group("/scores")
	scoreGroup.Get("/leaderboard", scoreHandler.Leaderboard)
	scoreGroup.Get("/user", auth, scoreHandler.Mine)
	scores.Mount(scoreGroup, auth, true)

	surveys := NewSurveyResource(d.DB, d.Log)
	surveyHandler := &SurveyHandler{Log: d.Log, Resource: surveys.Resource}
	surveyGroup := api.Group("/surveys")
	surveyGroup.Get("/public", surveyHandler.Public)
	surveyGroup.Get("/user", auth, surveyHandler.Mine)
	surveys.Mount(surveyGroup, auth, true)

	// Reference data is public to read; changing it needs a signed-in caller
	flashcards := NewFlashcardResource(d.DB, d.Log)
	trivia := NewTriviaResource(d.DB, d.Log)
	reference := &ReferenceHandler{DB: d.DB, Log: d.Log, Flashcards: flashcards.Resource, Trivia: trivia.Resource}

	flashcardGroup := api.Group("/flashcards")
	flashcardGroup.Post("/:id/grade", reference.GradeFlashcard)
	flashcards.Mount(flashcardGroup, auth, false)

	triviaGroup := api.Group("/trivia")
	triviaGroup.Post("/:id/check", reference.CheckTrivia)
	trivia.Mount(triviaGroup, auth, false)

	foodGroup := api.Group("/food")
	foodGroup.Get("/pairs", reference.FoodPairs)
	NewFoodResource(d.DB, d.Log).Mount(foodGroup, auth, false)

	predictions := NewPredictionResource(d.DB, d.Log)
	predictions.Mount(api.Group("/predictions"), auth, true)

	diabetes := &DiabetesHandler{Model: d.Model, Log: d.Log, Predictions: predictions.Resource}
	diabetesGroup := api.Group("/diabetes")
	diabetesGroup.Post("/predict", diabetes.Predict)
	diabetesGroup.Post("/probability", diabetes.Probability)
	diabetesGroup.Get("/feature-importance", diabetes.FeatureImportance)
	diabetesGroup.Post("/assess", auth, diabetes.Assess)

	games := &GameHandler{DB: d.DB, Log: d.Log}
	api.Get("/leaderboards/:board", games.BoardEntries)
	api.Post("/leaderboards/:board", games.SubmitBoardEntry)
	api.Get("/feedback", games.ListFeedback)
	api.Post("/feedback", games.SubmitFeedback)
}
