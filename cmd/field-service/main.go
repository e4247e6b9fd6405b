package main

import (
	"fmt"
	"os"

	"field-service/internal/auth"
	"field-service/internal/client"
	"field-service/internal/config"
	"field-service/internal/db"
	httphandler "field-service/internal/http"
	"field-service/internal/http/middleware"
	"field-service/internal/logger"
	"field-service/internal/repository"
	"field-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	areaRepo := repository.NewAreaRepository(database)
	measurementRepo := repository.NewMeasurementRepository(database)
	deviceRepo := repository.NewDeviceRepository(database)

	var locationResolver service.LocationResolver
	if cfg.Geocoder.BaseURL != "" {
		locationResolver = client.NewGeocoderClient(cfg)
	}

	deviceService := service.NewDeviceService(deviceRepo)
	areaService := service.NewAreaService(areaRepo, deviceRepo)
	aggregationService := service.NewAggregationService(areaRepo, measurementRepo)
	measurementService := service.NewMeasurementService(measurementRepo, areaRepo, aggregationService, locationResolver)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(deviceService, areaService, measurementService, aggregationService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting field service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
