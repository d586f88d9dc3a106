package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hisab/backend/api"
	"hisab/backend/config"
	"hisab/backend/database"
	"hisab/backend/logging"
	"hisab/backend/middleware"
	"hisab/backend/migrations"
	"hisab/backend/services"
)

func main() {
	// Parse command line flags
	migrateOnly := flag.Bool("migrate-only", false, "Run migrations (and seeding, if enabled) then exit")
	seed := flag.Bool("seed", false, "Replace SEED_USER_ID's data with demo data on startup")
	flag.Parse()

	cfg := config.Load()
	if *seed {
		cfg.SeedDemoData = true
	}

	logger := logging.New(logging.Config{
		Level: cfg.LogLevel,
		JSON:  cfg.IsProduction(),
	})
	logging.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("Failed to open database", "error", err, "driver", cfg.DBDriver)
		os.Exit(1)
	}
	defer db.Close()

	migLogger := logger.WithComponent(logging.ComponentMigration)
	migLogger.Info("Running migrations...")
	if err := migrations.RunMigrations(db); err != nil {
		migLogger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	if version, dirty, err := migrations.Version(db); err == nil {
		migLogger.Info("Database schema ready", "version", version, "dirty", dirty)
	}

	if cfg.SeedDemoData {
		if err := migrations.SeedDemoData(context.Background(), db, cfg.SeedUserID, nil); err != nil {
			migLogger.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
		migLogger.Info("Seeded demo data", "user_id", cfg.SeedUserID)
	}

	if *migrateOnly {
		logger.Info("Database setup completed successfully. Exiting.")
		return
	}

	verifier, err := newVerifier(cfg, logger)
	if err != nil {
		logger.WithComponent(logging.ComponentAuth).Error("Failed to initialize Firebase", "error", err)
		os.Exit(1)
	}

	server := api.NewServer(db, api.Options{
		Verifier:       verifier,
		CookieName:     cfg.SessionCookieName,
		AllowedOrigins: cfg.CORSOrigins,
		Development:    !cfg.IsProduction(),
		Limits:         services.PageLimits{Default: cfg.DefaultPageLimit, Max: cfg.MaxPageLimit},
		Logger:         logger,
	})

	srv := &http.Server{
		Handler:        server.Handler(),
		Addr:           ":" + cfg.Port,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting server", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DBDriver)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

// newVerifier uses Firebase when credentials are configured. Without them
// (development only, enforced by Validate) the session value is the user id.
func newVerifier(cfg *config.Config, logger *logging.Logger) (middleware.Verifier, error) {
	authLogger := logger.WithComponent(logging.ComponentAuth)
	if !cfg.HasFirebaseCredentials() {
		authLogger.Warn("Firebase credentials not set; session cookies are trusted as user ids. Do NOT use in production!")
		return middleware.DevVerifier{}, nil
	}

	v, err := middleware.NewFirebaseVerifier(context.Background(), middleware.FirebaseConfig{
		ProjectID:         cfg.FirebaseProjectID,
		CredentialsJSON:   cfg.FirebaseCredentialsJSON,
		CredentialsBase64: cfg.FirebaseCredentialsBase64,
		CredentialsFile:   cfg.FirebaseCredentialsFile,
	})
	if err != nil {
		return nil, err
	}
	authLogger.Info("Firebase Admin SDK initialized")
	return v, nil
}
