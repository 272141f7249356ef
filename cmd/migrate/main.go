package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/pageza/calorix/backend/config"
	"github.com/pageza/calorix/backend/internal/database"
	"github.com/pageza/calorix/backend/internal/logger"
)

func main() {
	reset := flag.Bool("reset", false, "Drop every table before migrating")
	envFile := flag.String("env", "", "Optional .env file to load first")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("failed to load %s: %v", *envFile, err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	zlog := logger.New(logger.Options{Level: cfg.LogLevel})

	db, err := database.New(cfg, zlog)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if *reset {
		if err := database.DropAll(db.Gorm); err != nil {
			log.Fatalf("failed to drop tables: %v", err)
		}
		log.Println("Dropped all tables")
	}

	if err := database.RunMigrations(db.Gorm); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Printf("Migrated %d tables", len(database.Models()))
}
