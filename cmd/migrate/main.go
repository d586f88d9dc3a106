package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"hisab/backend/config"
	"hisab/backend/database"
	"hisab/backend/logging"
	"hisab/backend/migrations"
)

func main() {
	down := flag.Bool("down", false, "Revert all migrations")
	version := flag.Bool("version", false, "Print the current schema version and exit")
	seed := flag.Bool("seed", false, "Replace the user's data with demo data after migrating")
	user := flag.String("user", "", "User id to seed (defaults to SEED_USER_ID)")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Component: logging.ComponentMigration})

	// Initialize database connection
	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	switch {
	case *version:
		v, dirty, err := migrations.Version(db)
		if err != nil {
			logger.Error("Failed to read schema version", "error", err)
			os.Exit(1)
		}
		fmt.Printf("version=%d dirty=%v\n", v, dirty)
		return
	case *down:
		if err := migrations.Rollback(db); err != nil {
			logger.Error("Failed to revert migrations", "error", err)
			os.Exit(1)
		}
		fmt.Println("All migrations reverted")
		return
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	fmt.Println("Migrations completed successfully!")

	if *seed {
		userID := *user
		if userID == "" {
			userID = cfg.SeedUserID
		}
		if err := migrations.SeedDemoData(context.Background(), db, userID, nil); err != nil {
			logger.Error("Failed to seed demo data", "error", err, "user_id", userID)
			os.Exit(1)
		}
		fmt.Printf("Seeded demo data for %s\n", userID)
	}
}
