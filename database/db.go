package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hisab/backend/config"

	_ "github.com/mattn/go-sqlite3"
)

// DB is a connection pool bound to the SQL dialect it speaks.
type DB struct {
	*sql.DB
	Dialect Dialect
	// DSN is kept so migrations can open their own connection.
	DSN string
}

// Open connects to the database selected by cfg.
func Open(cfg *config.Config) (*DB, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pc := PostgresConfig{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
			URL:      cfg.DatabaseURL,
		}
		return OpenPostgres(pc)
	default:
		return OpenSQLite(cfg.SQLiteDBPath)
	}
}

// SQLiteDSN builds the go-sqlite3 connection string for a database file.
func SQLiteDSN(dbPath string) string {
	return dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000&_foreign_keys=on"
}

// OpenSQLite opens (creating if needed) a SQLite database file.
func OpenSQLite(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := SQLiteDSN(dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := ping(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{DB: db, Dialect: SQLite, DSN: dsn}, nil
}

func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Rebind rewrites a query written with '?' placeholders for the pool's dialect.
func (db *DB) Rebind(query string) string {
	return db.Dialect.Rebind(query)
}
