package main

// Run database migrations for the configured driver:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"hvac-ats-backend/internal/bootstrap"
	"hvac-ats-backend/internal/shared/config"
	"hvac-ats-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	handle, err := bootstrap.OpenDB(ctx, cfg, db.DefaultMigrateOptions())
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer handle.DB.Close()

	if err := db.RunMigrations(ctx, handle.DB, handle.Dialect); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	log.Printf("migrations applied dialect=%s", handle.Dialect)
}
