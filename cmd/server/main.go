package main

import (
	"errors"
	"log"
	"os"

	"github.com/delaywise/flights-backend-go/internal/airports"
	"github.com/delaywise/flights-backend-go/internal/api"
	"github.com/delaywise/flights-backend-go/internal/config"
	"github.com/delaywise/flights-backend-go/internal/database"
	"github.com/delaywise/flights-backend-go/internal/handler"
	"github.com/delaywise/flights-backend-go/internal/inference"
	"github.com/delaywise/flights-backend-go/internal/repository"
	"github.com/delaywise/flights-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	// Reference tables load once and stay immutable for the process lifetime
	airportTable, err := airports.Load(cfg.AirportsPath, cfg.TimezonesPath)
	if err != nil {
		log.Fatal("Failed to load airport reference table:", err)
	}
	log.Printf("Loaded %d airports", airportTable.Len())

	aggregateService, err := service.NewAggregateService(airportTable, cfg.StatsDir, cfg.CorpusRoot, cfg.ScanWorkers)
	if err != nil {
		log.Fatal("Failed to load aggregate tables:", err)
	}

	encoder, err := inference.LoadEncoder(cfg.CategoriesPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatal("Failed to load category table:", err)
		}
		log.Printf("No category table at %s; all categoricals will encode to the sentinel", cfg.CategoriesPath)
		encoder = inference.NewEncoder(nil)
	}

	var model inference.Predictor
	if cfg.ModelURL != "" {
		model = inference.NewHTTPModel(cfg.ModelURL, 0)
	} else {
		log.Printf("MODEL_URL not set; using stub model")
		model = inference.NewStubModel()
	}

	dbConfig := database.Config{Path: cfg.DBPath}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	predictionRepo := repository.NewPredictionRepository(database.GetDB())
	if err := predictionRepo.InitSchema(); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	predictionService := service.NewPredictionService(airportTable, aggregateService, encoder, model, predictionRepo)

	predictionHandler := handler.NewPredictionHandler(predictionService)
	adminHandler := handler.NewAdminHandler(aggregateService, predictionService)

	router := api.SetupRouter(cfg, predictionHandler, adminHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
