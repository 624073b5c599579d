package main

import (
	"log"

	"workout-generator-be/internal/config"
	"workout-generator-be/internal/model"
	"workout-generator-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up Extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate...")
	if err := database.Migrate(db, &model.Exercise{}); err != nil {
		log.Fatal("Error: ", err)
	}

	log.Println("Migration completed")
}
