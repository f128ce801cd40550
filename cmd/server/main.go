// main.go
//
// glucodb, a diabetes education data service with a glucose risk classifier
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of glucodb.
// glucodb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// glucodb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with glucodb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/localnerve/glucodb/data"
	"github.com/localnerve/glucodb/internal/classifier"
	"github.com/localnerve/glucodb/internal/config"
	"github.com/localnerve/glucodb/internal/database"
	"github.com/localnerve/glucodb/internal/handlers"
	"github.com/localnerve/glucodb/internal/logger"
	"github.com/localnerve/glucodb/internal/services"

	_ "github.com/localnerve/glucodb/docs/api" // Swagger docs
)

// @title glucodb API
// @version 1.0.0
// @description Diabetes education data service: glucose readings, food logs, games, reference data and risk prediction
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/glucodb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// No configured logger yet
		boot := logger.New("glucodb", "info")
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New("glucodb", cfg.LogLevel)

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Stack().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Stack().Err(err).Msg("Failed to run migrations")
	}

	if cfg.SeedData {
		seeded, err := database.Seed(db)
		if err != nil {
			log.Fatal().Stack().Err(err).Msg("Failed to seed reference data")
		}
		log.Info().
			Int("flashcards", seeded.Flashcards).
			Int("trivia", seeded.Trivia).
			Int("foods", seeded.Foods).
			Msg("Reference data seeded")
	}

	// Train the risk classifier; the service still starts without it and reports not ready
	model := classifier.NewService(classifier.DefaultOptions())
	if trained, err := model.Bootstrap(cfg.TrainingData, data.TrainingIndicators); err != nil {
		log.Error().Stack().Err(err).Msg("Failed to train diabetes model")
	} else {
		log.Info().
			Float64("accuracy", trained.Accuracy).
			Int("train_size", trained.TrainSize).
			Int("test_size", trained.TestSize).
			Msg("Diabetes model ready")
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	auth, err := services.NewAuthenticator(startCtx, cfg)
	cancelStart()
	if err != nil {
		log.Fatal().Stack().Err(err).Msg("Failed to initialize authentication")
	}
	log.Info().Str("mode", auth.Mode()).Msg("Authentication ready")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: log,
		Format: "${status} ${method} ${path} ${latency} ${locals:requestid}\n",
	}))
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("glucodb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	handlers.Register(app, handlers.Deps{
		Config: cfg,
		DB:     db,
		Auth:   auth,
		Model:  model,
		Log:    log,
	})

	// 404 handler
	app.Use(handlers.NotFound)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info().Msg("Gracefully shutting down...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// Start server
	log.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}

	log.Info().Msg("Server stopped")
}
