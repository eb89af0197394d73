package main

import (
	"flag"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/aseeltahaa/smartspace/internal/infrastructure/database"
	"github.com/aseeltahaa/smartspace/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	dir := flag.String("dir", database.DefaultMigrationsDir, "migrations directory")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database using GORM
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	direction := migrate.Up
	if *down {
		direction = migrate.Down
	}

	log.Printf("🔄 Applying migrations from %s/ directory...", *dir)
	n, err := database.Migrate(db, *dir, direction)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Printf("✅ Successfully applied %d migration(s)!\n", n)
	os.Exit(0)
}
