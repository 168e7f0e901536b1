package main

import (
	"context"
	"log"
	"time"

	"github.com/Apurer/go-gin-adoption-agency/internal/app/api"
	"github.com/Apurer/go-gin-adoption-agency/internal/platform/database"
	"github.com/Apurer/go-gin-adoption-agency/internal/platform/migrations"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.DatabaseDriver == database.DriverMemory {
		log.Fatal("ADOPT_DATABASE_DRIVER=memory has no schema to migrate")
	}
	db, err := database.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", cfg.DatabaseDriver, err)
	}
	defer database.Close(db)

	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Printf("pets schema migrated (%s)", cfg.DatabaseDriver)
}
