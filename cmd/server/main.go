package main

import (
	"log"

	"github.com/jengzang/hexmetrics-backend-go/internal/api"
	"github.com/jengzang/hexmetrics-backend-go/internal/config"
	"github.com/jengzang/hexmetrics-backend-go/internal/database"
	"github.com/jengzang/hexmetrics-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	migrator := database.NewMigrationManager(db, cfg.MigrationsPath)
	if err := migrator.Migrate(); err != nil {
		log.Fatal("Failed to apply migrations:", err)
	}

	engine := config.DefaultEngine()
	aggregation, err := service.NewAggregationService(db, engine, cfg.AggWorkers)
	if err != nil {
		log.Fatal("Failed to create aggregation service:", err)
	}
	metrics := service.NewMetricsService(db)

	router := api.SetupRouter(cfg, aggregation, metrics)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
