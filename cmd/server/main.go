package main

import (
	"net/http"
	"os"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/api"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/config"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/database"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/handler"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/logger"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/middleware"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Cloudinary est optionnel: sans configuration, l'upload d'avatar
	// répond 503 mais le reste de l'API fonctionne
	if cld, err := services.NewCloudinaryService(cfg); err != nil {
		logger.Warning("Cloudinary disabled: %v", err)
	} else {
		handler.Cloudinary = cld
	}

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	h := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
