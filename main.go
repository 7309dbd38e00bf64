package main

import (
	"time"

	"go.uber.org/zap"

	"attune/internal/classifier"
	"attune/internal/config"
	"attune/internal/database"
	"attune/internal/handlers"
	logger "attune/internal/logging"
	"attune/internal/models"
	"attune/internal/router"
)

func main() {
	// Initialize Logger
	log, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	database.Init(log)

	// Load the study's content layouts; without them the environment ratio
	// falls back to the default content-AOI guess.
	layouts, err := models.LoadLayouts(config.Conf.Study.LayoutsPath)
	if err != nil {
		log.Warn("Failed to load content layouts, using default content AOIs", zap.Error(err))
		layouts = nil
	}

	// The feature list persisted by the training pipeline pins the names and
	// order the classifier expects.
	featureList, err := classifier.LoadFeatureList(config.Conf.Classifier.FeatureListPath)
	if err != nil {
		log.Fatal("Failed to load feature list", zap.Error(err))
	}

	classifierClient := classifier.NewClient(classifier.ClientConfig{
		BaseURL:    config.Conf.Classifier.BaseURL,
		Timeout:    time.Duration(config.Conf.Classifier.TimeoutSeconds) * time.Second,
		MaxRetries: config.Conf.Classifier.MaxRetries,
	}, featureList, log)

	windowHandler := handlers.NewWindowHandler(log, classifierClient, layouts)

	// Setup router, passing the logger to it
	r := router.Setup(log, windowHandler)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
