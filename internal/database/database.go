package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"time"

	"rms_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
)

//go:embed schema.sql
var ledgerSchema string

// Config holds the connection settings of the ledger archive database.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the lib/pq keyword/value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// InitDB opens the connection pool and verifies it with a ping.
func InitDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	utils.LogInfo("Successfully connected to the database", map[string]interface{}{"host": cfg.Host, "db": cfg.Name})
	return db, nil
}

// ApplySchema creates the archive tables. An empty schemaPath uses the
// built-in schema; the statements are idempotent.
func ApplySchema(ctx context.Context, db *sql.DB, schemaPath string) error {
	content := ledgerSchema
	if schemaPath != "" {
		raw, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
		}
		content = string(raw)
	}

	if _, err := db.ExecContext(ctx, content); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema applied successfully")
	return nil
}
